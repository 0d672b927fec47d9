package readstore

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/resource"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

var resourceColumns = []string{"id", "kind", "name", "bay_number", "is_active", "is_coaching_bay", "hourly_rate_cents"}

type ResourceReadStore struct {
	pool *pgxpool.Pool
}

func NewResourceReadStore(pool *pgxpool.Pool) *ResourceReadStore {
	return &ResourceReadStore{pool: pool}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	query, args, err := psql.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource query", err)
	}

	res, err := scanResource(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return res, nil
}

func (r *ResourceReadStore) ActiveBays(ctx context.Context, coachingOnly bool) ([]*resource.Resource, error) {
	query, args, err := psql.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"kind": string(resource.KindBay), "is_active": true, "is_coaching_bay": coachingOnly}).
		OrderBy("bay_number").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build bay query", err)
	}
	return r.queryResources(ctx, query, args)
}

func (r *ResourceReadStore) ActiveCoaches(ctx context.Context) ([]*resource.Resource, error) {
	query, args, err := psql.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"kind": string(resource.KindCoach), "is_active": true}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build coach query", err)
	}
	return r.queryResources(ctx, query, args)
}

func (r *ResourceReadStore) queryResources(ctx context.Context, query string, args []any) ([]*resource.Resource, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query resources", err)
	}
	defer rows.Close()

	var out []*resource.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resource rows", err)
	}
	return out, nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id              uuid.UUID
		kind            string
		name            string
		bayNumber       int
		isActive        bool
		isCoachingBay   bool
		hourlyRateCents int64
	)
	if err := row.Scan(&id, &kind, &name, &bayNumber, &isActive, &isCoachingBay, &hourlyRateCents); err != nil {
		return nil, err
	}
	if resource.Kind(kind) == resource.KindCoach {
		return resource.NewCoach(id, name, isActive)
	}
	return resource.NewBay(id, name, bayNumber, isActive, isCoachingBay, hourlyRateCents)
}
