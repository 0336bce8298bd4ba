package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/calendar"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// AvailabilityStore defines the database operations needed to record availability
type AvailabilityStore interface {
	DailyEditStore
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
}

// CalendarStore defines the database operations needed for a member's calendar
type CalendarStore interface {
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error)
	GetEvents(ctx context.Context) ([]db.EventRecord, error)
}

// GroupAvailabilityStore defines the database operations needed for group availability
type GroupAvailabilityStore interface {
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
	GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error)
}

// RecordAvailability sets a member's availability on each of the given dates
func RecordAvailability(ctx context.Context, store AvailabilityStore, logger *zap.Logger, memberID string, dates []time.Time, state model.AvailabilityState, notes string) error {
	if !state.IsValid() {
		return fmt.Errorf("invalid availability state %q", state)
	}
	if len(dates) == 0 {
		return fmt.Errorf("at least one date is required")
	}

	// Check the member exists before creating any daily rows for them
	if _, err := store.GetMember(ctx, memberID); err != nil {
		return fmt.Errorf("failed to fetch member: %w", err)
	}

	entry := model.Availability{State: state, Notes: strings.TrimSpace(notes)}
	for _, date := range dates {
		if err := updateDaily(ctx, store, date, func(d *model.Daily) {
			if d.Availability == nil {
				d.Availability = map[string]model.Availability{}
			}
			d.Availability[memberID] = entry
		}); err != nil {
			return err
		}
		logger.Debug("Availability recorded",
			zap.String("member_id", memberID),
			zap.String("date", date.Format(model.DateLayout)),
			zap.String("state", string(state)))
	}

	logger.Info("Availability recorded", zap.String("member_id", memberID), zap.Int("dates", len(dates)))
	return nil
}

// CalendarDay is one date on a member's calendar
type CalendarDay struct {
	Date         string
	Availability *model.Availability
	Race         string
	Event        string
}

// CalendarView is a member's personal calendar
type CalendarView struct {
	Member model.Member
	Days   []CalendarDay
}

// ViewCalendar returns the viewer's availability for every recorded date in [from, to],
// with the races and events the viewer is allowed to see
func ViewCalendar(ctx context.Context, store CalendarStore, logger *zap.Logger, filter calendar.Filter, viewerID string, from, to time.Time) (*CalendarView, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", model.ErrInvalidDateRange, from.Format(model.DateLayout), to.Format(model.DateLayout))
	}

	record, err := store.GetMember(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	viewer := record.ToModel()

	dailies, err := loadDailies(ctx, store, from, to)
	if err != nil {
		return nil, err
	}

	events, err := loadEvents(ctx, store)
	if err != nil {
		return nil, err
	}

	// Split each day's race and event references so both can be filtered
	races := calendar.Entries{}
	others := calendar.Entries{}
	for _, d := range dailies {
		date := d.Date.Format(model.DateLayout)
		if d.Race != "" {
			races[date] = d.Race
		}
		if d.Event != "" {
			others[date] = d.Event
		}
	}

	if !filter.Privileged(viewer.Tags) {
		for _, entries := range []calendar.Entries{races, others} {
			for _, date := range calendar.Unresolved(entries, events) {
				logger.Warn("Calendar entry names an unknown event, hiding it",
					zap.String("date", date),
					zap.String("name", entries[date]))
			}
		}
	}

	visibleRaces := filter.Apply(viewer.Tags, races, events)
	visibleEvents := filter.Apply(viewer.Tags, others, events)

	// Keep only days with something left to show the viewer
	view := &CalendarView{Member: viewer}
	for _, d := range dailies {
		date := d.Date.Format(model.DateLayout)
		day := CalendarDay{
			Date:  date,
			Race:  visibleRaces[date],
			Event: visibleEvents[date],
		}
		if a, ok := d.Availability[viewerID]; ok {
			day.Availability = &a
		}
		if day.Availability == nil && day.Race == "" && day.Event == "" {
			continue
		}
		view.Days = append(view.Days, day)
	}

	logger.Debug("Calendar built",
		zap.String("viewer_id", viewerID),
		zap.Int("days", len(view.Days)),
		zap.Int("hidden_races", len(races)-len(visibleRaces)),
		zap.Int("hidden_events", len(others)-len(visibleEvents)))

	return view, nil
}

// GroupFilter narrows group availability. Empty fields match every member.
type GroupFilter struct {
	Squad string
	Tag   string
	Boat  string
}

func (f GroupFilter) matches(m model.Member) bool {
	if f.Squad != "" && !strings.EqualFold(f.Squad, m.Squad) {
		return false
	}
	if f.Tag != "" && !m.Tags.Has(f.Tag) {
		return false
	}
	if f.Boat != "" && !m.Boats.Has(f.Boat) {
		return false
	}
	return true
}

// GroupRow is one member's availability across the requested dates
type GroupRow struct {
	Member model.Member
	States map[string]model.AvailabilityState
}

// GroupView is the availability of a group of members
type GroupView struct {
	Dates []string
	Rows  []GroupRow
}

// GroupAvailability returns the availability of every matching member on each recorded date in [from, to]
func GroupAvailability(ctx context.Context, store GroupAvailabilityStore, logger *zap.Logger, filter GroupFilter, from, to time.Time) (*GroupView, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", model.ErrInvalidDateRange, from.Format(model.DateLayout), to.Format(model.DateLayout))
	}

	members, err := loadMembers(ctx, store)
	if err != nil {
		return nil, err
	}

	dailies, err := loadDailies(ctx, store, from, to)
	if err != nil {
		return nil, err
	}

	// One column per recorded date, in date order
	view := &GroupView{}
	for _, d := range dailies {
		view.Dates = append(view.Dates, d.Date.Format(model.DateLayout))
	}

	// Dates a member has not answered stay absent from their row
	for _, m := range members {
		if !filter.matches(m) {
			continue
		}
		row := GroupRow{Member: m, States: map[string]model.AvailabilityState{}}
		for _, d := range dailies {
			if a, ok := d.Availability[m.ID]; ok {
				row.States[d.Date.Format(model.DateLayout)] = a.State
			}
		}
		view.Rows = append(view.Rows, row)
	}

	sort.SliceStable(view.Rows, func(i, j int) bool {
		return view.Rows[i].Member.DisplayName() < view.Rows[j].Member.DisplayName()
	})

	logger.Debug("Group availability built",
		zap.String("squad", filter.Squad),
		zap.String("tag", filter.Tag),
		zap.String("boat", filter.Boat),
		zap.Int("members", len(view.Rows)),
		zap.Int("dates", len(view.Dates)))

	return view, nil
}

type dailyLister interface {
	GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error)
}

func loadDailies(ctx context.Context, store dailyLister, from, to time.Time) ([]model.Daily, error) {
	records, err := store.GetDailiesBetween(ctx, from.Format(model.DateLayout), to.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dailies: %w", err)
	}
	dailies := make([]model.Daily, 0, len(records))
	for _, r := range records {
		d, err := r.ToModel(dateLoc)
		if err != nil {
			return nil, err
		}
		dailies = append(dailies, d)
	}
	return dailies, nil
}

type eventLister interface {
	GetEvents(ctx context.Context) ([]db.EventRecord, error)
}

func loadEvents(ctx context.Context, store eventLister) ([]model.Event, error) {
	records, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	events := make([]model.Event, 0, len(records))
	for _, r := range records {
		e, err := r.ToModel(dateLoc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
