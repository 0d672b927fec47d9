package readstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
)

type CreditReadStore struct {
	pool *pgxpool.Pool
}

func NewCreditReadStore(pool *pgxpool.Pool) *CreditReadStore {
	return &CreditReadStore{pool: pool}
}

func (r *CreditReadStore) FindPurchasesByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.PurchaseView, error) {
	query, args, err := psql.Select(
		"id", "type", "kind",
		"sessions_remaining", "sessions_total",
		"hour_minutes_remaining", "hour_minutes_total",
		"gift_pending", "purchased_at",
	).
		From("credit_purchases").
		Where(squirrel.Eq{"client_id": clientID, "is_active": true}).
		OrderBy("purchased_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build purchase query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query purchases", err)
	}
	defer rows.Close()

	var out []*queries.PurchaseView
	for rows.Next() {
		view := &queries.PurchaseView{}
		if err := rows.Scan(
			&view.ID, &view.Type, &view.Kind,
			&view.SessionsLeft, &view.SessionsTotal,
			&view.HourMinutesLeft, &view.HourMinutesTotal,
			&view.GiftPending, &view.PurchasedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read purchase rows", err)
	}
	return out, nil
}
