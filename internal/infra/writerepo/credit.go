package writerepo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/credit"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

type CreditRepository struct{}

func NewCreditRepository() *CreditRepository {
	return &CreditRepository{}
}

// FindEligibleForUpdate locks and loads the client's active purchases so
// selection happens against balances no concurrent commit can move.
func (r *CreditRepository) FindEligibleForUpdate(ctx context.Context, tx db.DBTX, clientID uuid.UUID) ([]*credit.Purchase, error) {
	query, args, err := psql.Select(
		"id", "client_id", "type", "kind",
		"sessions_total", "sessions_remaining",
		"hour_minutes_total", "hour_minutes_remaining",
		"gift_pending", "is_active", "purchased_at",
	).
		From("credit_purchases").
		Where(squirrel.Eq{"client_id": clientID, "is_active": true}).
		OrderBy("purchased_at").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build purchase lock query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock purchases", err)
	}
	defer rows.Close()

	var out []*credit.Purchase
	for rows.Next() {
		var (
			id            uuid.UUID
			client        uuid.UUID
			pkgType       string
			kind          string
			sessionsTotal int
			sessionsLeft  int
			minutesTotal  int
			minutesLeft   int
			giftPending   bool
			active        bool
			purchasedAt   time.Time
		)
		if err := rows.Scan(
			&id, &client, &pkgType, &kind,
			&sessionsTotal, &sessionsLeft,
			&minutesTotal, &minutesLeft,
			&giftPending, &active, &purchasedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", err)
		}
		out = append(out, credit.Reconstruct(
			id, client, credit.PackageType(pkgType), credit.Kind(kind),
			sessionsTotal, sessionsLeft, minutesTotal, minutesLeft,
			giftPending, active, purchasedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read purchase rows", err)
	}
	return out, nil
}

// Consume decrements a purchase balance with the guard expressed in SQL:
// the row only updates if the remaining amounts still cover the debit. Zero
// rows affected means a concurrent consumer got there first.
func (r *CreditRepository) Consume(ctx context.Context, tx db.DBTX, purchaseID uuid.UUID, sessions, hourMinutes int) error {
	query, args, err := psql.Update("credit_purchases").
		Set("sessions_remaining", squirrel.Expr("sessions_remaining - ?", sessions)).
		Set("hour_minutes_remaining", squirrel.Expr("hour_minutes_remaining - ?", hourMinutes)).
		Where(squirrel.Eq{"id": purchaseID}).
		Where(squirrel.GtOrEq{"sessions_remaining": sessions}).
		Where(squirrel.GtOrEq{"hour_minutes_remaining": hourMinutes}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build credit consume", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to consume credit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("credit balance too low", nil, infra.KindBalanceExceeded)
	}
	return nil
}

// Restore is the symmetric increment, capped at the purchased totals.
func (r *CreditRepository) Restore(ctx context.Context, tx db.DBTX, purchaseID uuid.UUID, sessions, hourMinutes int) error {
	query, args, err := psql.Update("credit_purchases").
		Set("sessions_remaining", squirrel.Expr("LEAST(sessions_remaining + ?, sessions_total)", sessions)).
		Set("hour_minutes_remaining", squirrel.Expr("LEAST(hour_minutes_remaining + ?, hour_minutes_total)", hourMinutes)).
		Where(squirrel.Eq{"id": purchaseID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build credit restore", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to restore credit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("purchase not found for restore", nil, infra.KindNotFound)
	}
	return nil
}
