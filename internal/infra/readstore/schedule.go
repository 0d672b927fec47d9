package readstore

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"
	"github.com/ronygeorgen/golf-backend-sub000/internal/infra"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/psql"
)

type ScheduleReadStore struct {
	pool *pgxpool.Pool
}

func NewScheduleReadStore(pool *pgxpool.Pool) *ScheduleReadStore {
	return &ScheduleReadStore{pool: pool}
}

func (s *ScheduleReadStore) WindowsForResources(ctx context.Context, resourceIDs []uuid.UUID) ([]schedule.AvailabilityWindow, error) {
	query, args, err := psql.Select("id", "resource_id", "weekday", "date", "start_minutes", "end_minutes").
		From("availability_windows").
		Where(squirrel.Eq{"resource_id": resourceIDs}).
		OrderBy("resource_id", "start_minutes").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build availability window query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability windows", err)
	}
	defer rows.Close()

	var out []schedule.AvailabilityWindow
	for rows.Next() {
		var (
			id         uuid.UUID
			resourceID uuid.UUID
			weekday    *int
			date       *time.Time
			startMin   int
			endMin     int
		)
		if err := rows.Scan(&id, &resourceID, &weekday, &date, &startMin, &endMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability window", err)
		}
		window := schedule.Window{Start: schedule.TimeOfDay(startMin), End: schedule.TimeOfDay(endMin)}
		switch {
		case date != nil:
			out = append(out, schedule.NewDateAvailability(id, resourceID, *date, window))
		case weekday != nil:
			out = append(out, schedule.NewWeeklyAvailability(id, resourceID, time.Weekday(*weekday), window))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability windows", err)
	}
	return out, nil
}

func (s *ScheduleReadStore) ActiveClosures(ctx context.Context) ([]*schedule.ClosureRule, error) {
	return queryClosures(ctx, s.pool)
}

func (s *ScheduleReadStore) ActiveEvents(ctx context.Context, from, to time.Time) ([]*schedule.CalendarEvent, error) {
	return queryEvents(ctx, s.pool, from, to)
}

// queryClosures and queryEvents are shared with the transactional conflict
// reads, which run the same lookups through an open transaction.
func queryClosures(ctx context.Context, q querier) ([]*schedule.ClosureRule, error) {
	query, args, err := psql.Select("id", "title", "start_date", "end_date", "start_minutes", "end_minutes", "recurrence").
		From("closure_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("start_date").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build closure query", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query closures", err)
	}
	defer rows.Close()

	var out []*schedule.ClosureRule
	for rows.Next() {
		var (
			id         uuid.UUID
			title      string
			startDate  time.Time
			endDate    time.Time
			startMin   *int
			endMin     *int
			recurrence string
		)
		if err := rows.Scan(&id, &title, &startDate, &endDate, &startMin, &endMin, &recurrence); err != nil {
			return nil, infra.WrapRepoErr("failed to scan closure row", err)
		}
		var window *schedule.Window
		if startMin != nil && endMin != nil {
			window = &schedule.Window{Start: schedule.TimeOfDay(*startMin), End: schedule.TimeOfDay(*endMin)}
		}
		rule, err := schedule.NewClosureRule(id, title, startDate, endDate, window, schedule.Recurrence(recurrence), true)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid closure rule row", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read closure rows", err)
	}
	return out, nil
}

func queryEvents(ctx context.Context, q querier, from, to time.Time) ([]*schedule.CalendarEvent, error) {
	query, args, err := psql.Select("id", "title", "recurrence", "anchor_date", "end_date", "start_minutes", "end_minutes", "capacity").
		From("calendar_events").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"anchor_date": to}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": from.AddDate(0, 0, -1)},
		}).
		OrderBy("anchor_date").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build event query", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query events", err)
	}
	defer rows.Close()

	type eventRow struct {
		id         uuid.UUID
		title      string
		recurrence string
		anchor     time.Time
		end        *time.Time
		startMin   int
		endMin     int
		capacity   int
	}
	var raw []eventRow
	for rows.Next() {
		var er eventRow
		if err := rows.Scan(&er.id, &er.title, &er.recurrence, &er.anchor, &er.end, &er.startMin, &er.endMin, &er.capacity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan event row", err)
		}
		raw = append(raw, er)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read event rows", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(raw))
	for i, er := range raw {
		ids[i] = er.id
	}
	paused, err := queryEventPauses(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*schedule.CalendarEvent, 0, len(raw))
	for _, er := range raw {
		out = append(out, schedule.NewCalendarEvent(er.id, er.title,
			schedule.Rule{
				Recurrence: schedule.Recurrence(er.recurrence),
				Anchor:     er.anchor,
				End:        er.end,
				Paused:     paused[er.id],
			},
			schedule.Window{Start: schedule.TimeOfDay(er.startMin), End: schedule.TimeOfDay(er.endMin)},
			er.capacity, true))
	}
	return out, nil
}

func queryEventPauses(ctx context.Context, q querier, eventIDs []uuid.UUID) (map[uuid.UUID]map[time.Time]struct{}, error) {
	query, args, err := psql.Select("event_id", "paused_date").
		From("calendar_event_pauses").
		Where(squirrel.Eq{"event_id": eventIDs}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build event pause query", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query event pauses", err)
	}
	defer rows.Close()

	out := map[uuid.UUID]map[time.Time]struct{}{}
	for rows.Next() {
		var (
			eventID uuid.UUID
			date    time.Time
		)
		if err := rows.Scan(&eventID, &date); err != nil {
			return nil, infra.WrapRepoErr("failed to scan event pause", err)
		}
		if out[eventID] == nil {
			out[eventID] = map[time.Time]struct{}{}
		}
		out[eventID][date.UTC()] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read event pauses", err)
	}
	return out, nil
}
