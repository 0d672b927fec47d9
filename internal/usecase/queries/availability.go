package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/booking"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/resource"
	"github.com/ronygeorgen/golf-backend-sub000/internal/domain/schedule"
	"github.com/ronygeorgen/golf-backend-sub000/internal/pkg/clock"
)

// ResourceStore supplies schedulable resources for the read side.
type ResourceStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	ActiveBays(ctx context.Context, coachingOnly bool) ([]*resource.Resource, error)
	ActiveCoaches(ctx context.Context) ([]*resource.Resource, error)
}

// ScheduleStore supplies the configuration that shapes a day: configured
// windows, closure rules, and calendar events.
type ScheduleStore interface {
	WindowsForResources(ctx context.Context, resourceIDs []uuid.UUID) ([]schedule.AvailabilityWindow, error)
	ActiveClosures(ctx context.Context) ([]*schedule.ClosureRule, error)
	ActiveEvents(ctx context.Context, from, to time.Time) ([]*schedule.CalendarEvent, error)
}

// OccupancyStore supplies what already counts toward capacity. Hold rows
// past their deadline must be filtered out by the query itself.
type OccupancyStore interface {
	BookingSpans(ctx context.Context, resourceIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]booking.Interval, error)
	ActiveHoldSpans(ctx context.Context, resourceIDs []uuid.UUID, from, to, now time.Time) (map[uuid.UUID][]booking.Interval, error)
}

type SlotsParams struct {
	Category        booking.Category
	Date            time.Time
	DurationMinutes int
	BayID           *uuid.UUID
	CoachID         *uuid.UUID
}

type AvailabilityQueries interface {
	OpenWindows(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]OpenWindowView, error)
	Slots(ctx context.Context, p SlotsParams) (*DayAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	resources ResourceStore
	schedules ScheduleStore
	occupancy OccupancyStore
	clk       clock.Clock
	gridMin   int
}

func NewAvailabilityQueries(resources ResourceStore, schedules ScheduleStore, occupancy OccupancyStore, clk clock.Clock, slotGridMinutes int) AvailabilityQueries {
	return &availabilityQueriesImpl{
		resources: resources,
		schedules: schedules,
		occupancy: occupancy,
		clk:       clk,
		gridMin:   slotGridMinutes,
	}
}

// span is a concrete open stretch of one resource's day.
type span struct {
	start time.Time
	end   time.Time
}

func (q *availabilityQueriesImpl) OpenWindows(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]OpenWindowView, error) {
	date = clock.Midnight(date)

	windows, err := q.schedules.WindowsForResources(ctx, []uuid.UUID{resourceID})
	if err != nil {
		return nil, err
	}
	closures, err := q.schedules.ActiveClosures(ctx)
	if err != nil {
		return nil, err
	}
	events, err := q.schedules.ActiveEvents(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	spans := resolveOpenSpans(windows, date, closures, events)
	out := make([]OpenWindowView, len(spans))
	for i, s := range spans {
		out[i] = OpenWindowView{Start: s.start, End: s.end}
	}
	return out, nil
}

// Slots lists bookable start times for a date. A day with no open window, or
// one entirely closed, yields an empty list rather than an error.
func (q *availabilityQueriesImpl) Slots(ctx context.Context, p SlotsParams) (*DayAvailabilityView, error) {
	date := clock.Midnight(p.Date)
	view := &DayAvailabilityView{
		Date:            date.Format("2006-01-02"),
		Category:        p.Category.String(),
		DurationMinutes: p.DurationMinutes,
		Slots:           []SlotView{},
	}

	bays, coach, err := q.candidateResources(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(bays) == 0 {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(bays)+1)
	for _, b := range bays {
		ids = append(ids, b.ID())
	}
	if coach != nil {
		ids = append(ids, coach.ID())
	}

	windows, err := q.schedules.WindowsForResources(ctx, ids)
	if err != nil {
		return nil, err
	}
	closures, err := q.schedules.ActiveClosures(ctx)
	if err != nil {
		return nil, err
	}
	events, err := q.schedules.ActiveEvents(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// Occupied spans are loaded a day wide in each direction so bookings
	// reaching across midnight still count.
	dayFrom := date.AddDate(0, 0, -1)
	dayTo := date.AddDate(0, 0, 2)
	booked, err := q.occupancy.BookingSpans(ctx, ids, dayFrom, dayTo)
	if err != nil {
		return nil, err
	}
	held, err := q.occupancy.ActiveHoldSpans(ctx, ids, dayFrom, dayTo, q.clk.Now())
	if err != nil {
		return nil, err
	}
	occupied := make(map[uuid.UUID][]booking.Interval, len(ids))
	for _, id := range ids {
		occupied[id] = append(append([]booking.Interval{}, booked[id]...), held[id]...)
	}

	var coachSpans []span
	if coach != nil {
		coachSpans = resolveOpenSpans(filterWindows(windows, coach.ID()), date, closures, events)
	}

	notBefore := time.Time{}
	if now := q.clk.Now(); clock.Midnight(now).Equal(date) {
		notBefore = now
	}

	merged := map[time.Time]*SlotView{}
	perBay := map[time.Time]map[uuid.UUID]span{}
	for _, bay := range bays {
		spans := resolveOpenSpans(filterWindows(windows, bay.ID()), date, closures, events)
		if coach != nil {
			spans = intersectSpans(spans, coachSpans)
		}
		blockers := occupied[bay.ID()]
		if coach != nil {
			blockers = append(append([]booking.Interval{}, blockers...), occupied[coach.ID()]...)
		}

		for _, s := range spans {
			q.collectSlots(merged, perBay, bay.ID(), s, blockers, p.DurationMinutes, notBefore)
		}
	}

	starts := make([]time.Time, 0, len(merged))
	for start := range merged {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	for _, start := range starts {
		slot := merged[start]
		sort.Slice(slot.BayIDs, func(i, j int) bool {
			return slot.BayIDs[i].String() < slot.BayIDs[j].String()
		})
		if slot.FitsDuration {
			if best, ok := pickOptimalBay(slot.BayIDs, perBay[start], start, slot.End, occupied); ok {
				slot.OptimalBayID = &best
			}
		}
		view.Slots = append(view.Slots, *slot)
	}
	return view, nil
}

func (q *availabilityQueriesImpl) candidateResources(ctx context.Context, p SlotsParams) ([]*resource.Resource, *resource.Resource, error) {
	var coach *resource.Resource
	if p.Category == booking.CategoryCoaching {
		if p.CoachID == nil {
			return nil, nil, nil
		}
		found, err := q.resources.FindByID(ctx, *p.CoachID)
		if err != nil {
			return nil, nil, err
		}
		if !found.IsActive() || found.Kind() != resource.KindCoach {
			return nil, nil, nil
		}
		coach = found
	}

	if p.BayID != nil {
		bay, err := q.resources.FindByID(ctx, *p.BayID)
		if err != nil {
			return nil, nil, err
		}
		if !bay.IsActive() || bay.Kind() != resource.KindBay {
			return nil, nil, nil
		}
		return []*resource.Resource{bay}, coach, nil
	}

	bays, err := q.resources.ActiveBays(ctx, p.Category == booking.CategoryCoaching)
	if err != nil {
		return nil, nil, err
	}
	return bays, coach, nil
}

// collectSlots walks one open span on the grid and records each start that
// is not blocked. A start whose full duration overruns the span is still
// reported, flagged fits_duration=false, as long as the remainder is free.
func (q *availabilityQueriesImpl) collectSlots(
	merged map[time.Time]*SlotView,
	perBay map[time.Time]map[uuid.UUID]span,
	bayID uuid.UUID,
	s span,
	blockers []booking.Interval,
	durationMin int,
	notBefore time.Time,
) {
	duration := time.Duration(durationMin) * time.Minute
	grid := time.Duration(q.gridMin) * time.Minute

	for start := alignToGrid(s.start, grid); start.Before(s.end); start = start.Add(grid) {
		if start.Before(notBefore) {
			continue
		}
		end := start.Add(duration)
		fits := !end.After(s.end)
		checkEnd := end
		if !fits {
			checkEnd = s.end
		}
		if isBlocked(start, checkEnd, blockers) {
			continue
		}

		slot, ok := merged[start]
		if !ok {
			slot = &SlotView{Start: start, End: end, FitsDuration: fits}
			merged[start] = slot
			perBay[start] = map[uuid.UUID]span{}
		}
		// Any bay that fully fits upgrades the merged slot. Bays collected
		// while the slot was truncated cannot host the full duration, so
		// they are dropped rather than advertised alongside fitting ones.
		if fits && !slot.FitsDuration {
			slot.FitsDuration = true
			slot.End = end
			slot.BayIDs = nil
			perBay[start] = map[uuid.UUID]span{}
		}
		if fits == slot.FitsDuration {
			slot.BayIDs = append(slot.BayIDs, bayID)
			perBay[start][bayID] = s
		}
	}
}

func alignToGrid(t time.Time, grid time.Duration) time.Time {
	aligned := t.Truncate(grid)
	if aligned.Before(t) {
		aligned = aligned.Add(grid)
	}
	return aligned
}

func isBlocked(start, end time.Time, blockers []booking.Interval) bool {
	for _, b := range blockers {
		if b.Start().Before(end) && b.End().After(start) {
			return true
		}
	}
	return false
}

func filterWindows(windows []schedule.AvailabilityWindow, resourceID uuid.UUID) []schedule.AvailabilityWindow {
	var out []schedule.AvailabilityWindow
	for _, w := range windows {
		if w.ResourceID == resourceID {
			out = append(out, w)
		}
	}
	return out
}

// resolveOpenSpans produces the concrete open stretches of one resource's
// date. Date-specific windows override the weekly pattern when present;
// closures and calendar events are subtracted from whatever remains.
func resolveOpenSpans(windows []schedule.AvailabilityWindow, date time.Time, closures []*schedule.ClosureRule, events []*schedule.CalendarEvent) []span {
	var dated, weekly []schedule.AvailabilityWindow
	for _, w := range windows {
		if !w.Matches(date) {
			continue
		}
		if w.Date != nil {
			dated = append(dated, w)
		} else {
			weekly = append(weekly, w)
		}
	}
	applicable := weekly
	if len(dated) > 0 {
		applicable = dated
	}

	var spans []span
	for _, w := range applicable {
		start, end := w.Window.Span(date)
		spans = append(spans, span{start: start, end: end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	for _, rule := range closures {
		spans = subtractClosure(spans, rule)
	}
	for _, ev := range events {
		spans = subtractEvent(spans, ev, date)
	}
	return spans
}

// subtractClosure clips the closed stretches of a rule out of each span.
// Every day the span touches is tested, the same walk BlocksInterval does,
// so a closure on the following day clips a cross-midnight tail too.
func subtractClosure(spans []span, rule *schedule.ClosureRule) []span {
	var out []span
	for _, s := range spans {
		pieces := []span{s}
		for d := clock.Midnight(s.start); d.Before(s.end); d = d.AddDate(0, 0, 1) {
			if !rule.BlocksDate(d) {
				continue
			}
			cs, ce := d, d.AddDate(0, 0, 1)
			if w := rule.Window(); w != nil {
				cs, ce = w.Span(d)
			}
			var next []span
			for _, p := range pieces {
				next = append(next, subtractInterval(p, cs, ce)...)
			}
			pieces = next
		}
		out = append(out, pieces...)
	}
	return out
}

func subtractEvent(spans []span, ev *schedule.CalendarEvent, date time.Time) []span {
	// The previous day's occurrences can spill in, and a cross-midnight
	// span can run into the next day's.
	occs := ev.Occurrences(date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	var out []span
	for _, s := range spans {
		pieces := []span{s}
		for _, occ := range occs {
			es, ee := ev.Window().Span(occ)
			var next []span
			for _, p := range pieces {
				next = append(next, subtractInterval(p, es, ee)...)
			}
			pieces = next
		}
		out = append(out, pieces...)
	}
	return out
}

func subtractInterval(s span, from, to time.Time) []span {
	if !from.Before(s.end) || !to.After(s.start) {
		return []span{s}
	}
	var out []span
	if from.After(s.start) {
		out = append(out, span{start: s.start, end: from})
	}
	if to.Before(s.end) {
		out = append(out, span{start: to, end: s.end})
	}
	return out
}

func intersectSpans(a, b []span) []span {
	var out []span
	for _, x := range a {
		for _, y := range b {
			start := x.start
			if y.start.After(start) {
				start = y.start
			}
			end := x.end
			if y.end.Before(end) {
				end = y.end
			}
			if start.Before(end) {
				out = append(out, span{start: start, end: end})
			}
		}
	}
	return out
}

// pickOptimalBay chooses the bay whose assignment packs the day tightest:
// the score sums the idle gap left before and after the candidate inside its
// open span, plus a weight for how many bookings the bay already carries.
func pickOptimalBay(bayIDs []uuid.UUID, spans map[uuid.UUID]span, start, end time.Time, occupied map[uuid.UUID][]booking.Interval) (uuid.UUID, bool) {
	const usageWeight = 15

	var best uuid.UUID
	bestScore := -1
	for _, id := range bayIDs {
		s, ok := spans[id]
		if !ok {
			continue
		}
		gapBefore, gapAfter := nearestGaps(s, start, end, occupied[id])
		score := gapBefore + gapAfter + len(occupied[id])*usageWeight
		if bestScore < 0 || score < bestScore {
			best = id
			bestScore = score
		}
	}
	return best, bestScore >= 0
}

func nearestGaps(s span, start, end time.Time, occupied []booking.Interval) (int, int) {
	prevEnd := s.start
	nextStart := s.end
	for _, b := range occupied {
		if !b.End().After(start) && b.End().After(prevEnd) {
			prevEnd = b.End()
		}
		if !b.Start().Before(end) && b.Start().Before(nextStart) {
			nextStart = b.Start()
		}
	}
	gapBefore := int(start.Sub(prevEnd) / time.Minute)
	gapAfter := int(nextStart.Sub(end) / time.Minute)
	if gapBefore < 0 {
		gapBefore = 0
	}
	if gapAfter < 0 {
		gapAfter = 0
	}
	return gapBefore, gapAfter
}
