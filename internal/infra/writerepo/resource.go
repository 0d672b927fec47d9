// Package writerepo implements the command-side repository ports on top of
// PostgreSQL.
package writerepo

import (
	"context"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/resource"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/readstore"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

type ResourceRepository struct {
	reads *readstore.ResourceReadStore
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{reads: readstore.NewResourceReadStore(pool)}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.reads.FindByID(ctx, id)
}

// LockForCommit takes row locks on the given resources. IDs are sorted
// first so concurrent commits always acquire locks in the same order and
// cannot deadlock each other.
func (r *ResourceRepository) LockForCommit(ctx context.Context, tx db.DBTX, resourceIDs []uuid.UUID) error {
	if len(resourceIDs) == 0 {
		return nil
	}
	ids := append([]uuid.UUID{}, resourceIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	query, args, err := psql.Select("id").
		From("resources").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build resource lock query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to lock resources", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return infra.WrapRepoErr("failed to scan locked resource", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read locked resources", err)
	}
	if locked != len(ids) {
		return infra.WrapRepoErr("resource disappeared while locking", nil, infra.KindNotFound)
	}
	return nil
}
