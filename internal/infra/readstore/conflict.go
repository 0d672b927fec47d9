package readstore

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra/db"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/shared"
)

// ConflictReadStore serves the commit path's re-checks through whatever
// transaction currently holds the resource locks.
type ConflictReadStore struct{}

func NewConflictReadStore() *ConflictReadStore {
	return &ConflictReadStore{}
}

func (r *ConflictReadStore) OverlappingBookings(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, iv booking.Interval, excludeBookingID *uuid.UUID) ([]shared.BookingSpan, error) {
	builder := psql.Select("id", "start_at", "end_at").
		From("bookings").
		Where(squirrel.Eq{"status": []string{booking.StatusConfirmed.String(), booking.StatusCompleted.String()}}).
		Where(squirrel.Or{squirrel.Eq{"bay_id": resourceID}, squirrel.Eq{"coach_id": resourceID}}).
		Where(squirrel.Lt{"start_at": iv.End()}).
		Where(squirrel.Gt{"end_at": iv.Start()})
	if excludeBookingID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build overlap query", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var out []shared.BookingSpan
	for rows.Next() {
		var (
			id    uuid.UUID
			start time.Time
			end   time.Time
		)
		if err := rows.Scan(&id, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlap row", err)
		}
		span, err := booking.NewInterval(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid interval in booking row", err)
		}
		out = append(out, shared.BookingSpan{BookingID: id, Interval: span})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlap rows", err)
	}
	return out, nil
}

func (r *ConflictReadStore) CountOverlappingActiveHolds(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, iv booking.Interval, now time.Time, excludeHoldID *uuid.UUID) (int64, error) {
	builder := psql.Select("COUNT(*)").
		From("temporary_holds").
		Where(squirrel.Eq{"status": "reserved"}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Or{squirrel.Eq{"bay_id": resourceID}, squirrel.Eq{"coach_id": resourceID}}).
		Where(squirrel.Lt{"start_at": iv.End()}).
		Where(squirrel.Gt{"end_at": iv.Start()})
	if excludeHoldID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeHoldID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build hold overlap query", err)
	}

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping holds", err)
	}
	return count, nil
}

func (r *ConflictReadStore) ActiveClosures(ctx context.Context, tx db.DBTX) ([]*schedule.ClosureRule, error) {
	return queryClosures(ctx, tx)
}

func (r *ConflictReadStore) ActiveEvents(ctx context.Context, tx db.DBTX, from, to time.Time) ([]*schedule.CalendarEvent, error) {
	return queryEvents(ctx, tx, from, to)
}
