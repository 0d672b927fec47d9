package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
	"github.com/ronygeorgen/golf-backend-sub000/internal/usecase/queries"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

const bookingViewSelect = "b.id, b.client_id, b.category, b.bay_id, bay.name, b.coach_id, coach.name, " +
	"b.start_at, b.end_at, b.status, b.price_cents, b.purchase_id, b.created_at, b.updated_at"

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := psql.Select(bookingViewSelect).
		From("bookings b").
		Join("resources bay ON bay.id = b.bay_id").
		LeftJoin("resources coach ON coach.id = b.coach_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := scanBookingView(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByClient(ctx context.Context, clientID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	query, args, err := psql.Select("b.id", "b.category", "bay.name", "b.start_at", "b.end_at", "b.status", "b.created_at").
		From("bookings b").
		Join("resources bay ON bay.id = b.bay_id").
		Where(squirrel.Eq{"b.client_id": clientID}).
		OrderBy("b.start_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings by client", err)
	}
	defer rows.Close()

	var out []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		if err := rows.Scan(&item.ID, &item.Category, &item.BayName, &item.Start, &item.End, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		normalizeListItem(item)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list rows", err)
	}
	return out, nil
}

func (r *BookingReadStore) FindForDay(ctx context.Context, day time.Time) ([]*queries.BookingView, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psql.Select(bookingViewSelect).
		From("bookings b").
		Join("resources bay ON bay.id = b.bay_id").
		LeftJoin("resources coach ON coach.id = b.coach_id").
		Where(squirrel.Lt{"b.start_at": dayEnd}).
		Where(squirrel.Gt{"b.end_at": dayStart}).
		OrderBy("b.start_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build day booking query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query day bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan day booking row", err)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read day booking rows", err)
	}
	return out, nil
}

// BookingSpans loads capacity-counting booking intervals per resource. A
// booking occupies both its bay and, when present, its coach.
func (r *BookingReadStore) BookingSpans(ctx context.Context, resourceIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]booking.Interval, error) {
	query, args, err := psql.Select("bay_id", "coach_id", "start_at", "end_at").
		From("bookings").
		Where(squirrel.Eq{"status": []string{booking.StatusConfirmed.String(), booking.StatusCompleted.String()}}).
		Where(squirrel.Or{squirrel.Eq{"bay_id": resourceIDs}, squirrel.Eq{"coach_id": resourceIDs}}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking span query", err)
	}
	return r.querySpans(ctx, query, args, resourceIDs)
}

// ActiveHoldSpans loads intervals held by unexpired reserved holds. The
// deadline filter is part of the query: stale reserved rows never count.
func (r *BookingReadStore) ActiveHoldSpans(ctx context.Context, resourceIDs []uuid.UUID, from, to, now time.Time) (map[uuid.UUID][]booking.Interval, error) {
	query, args, err := psql.Select("bay_id", "coach_id", "start_at", "end_at").
		From("temporary_holds").
		Where(squirrel.Eq{"status": "reserved"}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Or{squirrel.Eq{"bay_id": resourceIDs}, squirrel.Eq{"coach_id": resourceIDs}}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hold span query", err)
	}
	return r.querySpans(ctx, query, args, resourceIDs)
}

func (r *BookingReadStore) querySpans(ctx context.Context, query string, args []any, resourceIDs []uuid.UUID) (map[uuid.UUID][]booking.Interval, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupancy spans", err)
	}
	defer rows.Close()

	wanted := make(map[uuid.UUID]bool, len(resourceIDs))
	for _, id := range resourceIDs {
		wanted[id] = true
	}

	out := map[uuid.UUID][]booking.Interval{}
	for rows.Next() {
		var (
			bayID   uuid.UUID
			coachID *uuid.UUID
			start   time.Time
			end     time.Time
		)
		if err := rows.Scan(&bayID, &coachID, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupancy span", err)
		}
		iv, err := booking.NewInterval(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid interval in occupancy row", err)
		}
		if wanted[bayID] {
			out[bayID] = append(out[bayID], iv)
		}
		if coachID != nil && wanted[*coachID] {
			out[*coachID] = append(out[*coachID], iv)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupancy spans", err)
	}
	return out, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	if err := row.Scan(
		&view.ID, &view.ClientID, &view.Category, &view.BayID, &view.BayName,
		&view.CoachID, &view.CoachName,
		&view.Start, &view.End, &view.Status, &view.PriceCents, &view.PurchaseID,
		&view.CreatedAt, &view.UpdatedAt,
	); err != nil {
		return nil, err
	}
	view.Start = view.Start.UTC()
	view.End = view.End.UTC()
	return view, nil
}

func normalizeListItem(item *queries.BookingListItem) {
	item.Start = item.Start.UTC()
	item.End = item.End.UTC()
}
