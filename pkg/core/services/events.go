package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// Calendar dates carry no time of day and are kept in UTC
var dateLoc = time.UTC

// DailyEditStore defines the database operations needed to update daily records
type DailyEditStore interface {
	GetDaily(ctx context.Context, date string) (*db.DailyRecord, error)
	UpsertDaily(ctx context.Context, daily *db.DailyRecord) error
}

// EventEditStore defines the database operations needed to define and delete events
type EventEditStore interface {
	DailyEditStore
	GetEvent(ctx context.Context, id string) (*db.EventRecord, error)
	UpsertEvent(ctx context.Context, event *db.EventRecord) error
	DeleteEvent(ctx context.Context, id string) error
}

// EventRequest creates a new event, or edits an existing one when ID is set
type EventRequest struct {
	ID    string
	Name  string
	Date  time.Time
	Type  model.EventType
	Crews model.Set
}

// DefineEvent saves an event and points the daily record for its date at it.
// When an edit moves the event to another date or type, the old reference is cleared.
func DefineEvent(ctx context.Context, store EventEditStore, logger *zap.Logger, req EventRequest) (*model.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("invalid event type %q, must be %s or %s", req.Type, model.EventTypeRace, model.EventTypeEvent)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("event date is required")
	}

	event := model.Event{
		ID:    strings.TrimSpace(req.ID),
		Name:  name,
		Date:  time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, dateLoc),
		Type:  req.Type,
		Crews: model.NewSet(req.Crews...),
	}

	var previous *model.Event
	if event.ID == "" {
		event.ID = uuid.New().String()
	} else {
		record, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch event: %w", err)
		}
		old, err := record.ToModel(dateLoc)
		if err != nil {
			return nil, err
		}
		previous = &old
	}

	logger.Debug("Defining event",
		zap.String("event_id", event.ID),
		zap.String("name", event.Name),
		zap.String("date", event.Date.Format(model.DateLayout)),
		zap.String("type", string(event.Type)))

	record := db.EventRecordFrom(event)
	if err := store.UpsertEvent(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	if previous != nil && (!sameDay(previous.Date, event.Date) || previous.Type != event.Type) {
		if err := clearEventReference(ctx, store, logger, *previous); err != nil {
			return nil, err
		}
	}

	if err := updateDaily(ctx, store, event.Date, func(d *model.Daily) {
		setEventReference(d, event.Type, event.Name)
	}); err != nil {
		return nil, err
	}

	logger.Info("Event saved", zap.String("event_id", event.ID), zap.String("name", event.Name))
	return &event, nil
}

// DeleteEvent removes an event and clears the daily record's reference to it
func DeleteEvent(ctx context.Context, store EventEditStore, logger *zap.Logger, eventID string) error {
	record, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event: %w", err)
	}
	event, err := record.ToModel(dateLoc)
	if err != nil {
		return err
	}

	if err := store.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := clearEventReference(ctx, store, logger, event); err != nil {
		return err
	}

	logger.Info("Event deleted", zap.String("event_id", eventID), zap.String("name", event.Name))
	return nil
}

// clearEventReference only clears the daily reference if it still names the event
func clearEventReference(ctx context.Context, store DailyEditStore, logger *zap.Logger, event model.Event) error {
	date := event.Date.Format(model.DateLayout)
	record, err := store.GetDaily(ctx, date)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch daily %s: %w", date, err)
	}

	daily, err := record.ToModel(dateLoc)
	if err != nil {
		return err
	}
	if eventReference(daily, event.Type) != event.Name {
		return nil
	}
	setEventReference(&daily, event.Type, "")

	updated, err := db.DailyRecordFrom(daily)
	if err != nil {
		return err
	}
	if err := store.UpsertDaily(ctx, &updated); err != nil {
		return fmt.Errorf("failed to save daily %s: %w", date, err)
	}
	logger.Debug("Cleared daily event reference", zap.String("date", date), zap.String("name", event.Name))
	return nil
}

// updateDaily applies edit to the daily record for date, creating it if missing
func updateDaily(ctx context.Context, store DailyEditStore, date time.Time, edit func(*model.Daily)) error {
	key := date.Format(model.DateLayout)

	daily := model.Daily{
		Date:         time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, dateLoc),
		Availability: map[string]model.Availability{},
	}

	record, err := store.GetDaily(ctx, key)
	switch {
	case err == nil:
		daily, err = record.ToModel(dateLoc)
		if err != nil {
			return err
		}
	case !isNotFound(err):
		return fmt.Errorf("failed to fetch daily %s: %w", key, err)
	}

	edit(&daily)

	updated, err := db.DailyRecordFrom(daily)
	if err != nil {
		return err
	}
	if err := store.UpsertDaily(ctx, &updated); err != nil {
		return fmt.Errorf("failed to save daily %s: %w", key, err)
	}
	return nil
}

func eventReference(d model.Daily, t model.EventType) string {
	if t == model.EventTypeRace {
		return d.Race
	}
	return d.Event
}

func setEventReference(d *model.Daily, t model.EventType, name string) {
	if t == model.EventTypeRace {
		d.Race = name
	} else {
		d.Event = name
	}
}

func sameDay(a, b time.Time) bool {
	return a.Format(model.DateLayout) == b.Format(model.DateLayout)
}
