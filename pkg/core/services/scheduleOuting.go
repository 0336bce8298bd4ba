package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// ScratchBoatName is recorded on scratch outings that are not given a boat name
const ScratchBoatName = "Scratch"

// ScheduleStore defines the database operations needed to schedule outings
type ScheduleStore interface {
	GetBoat(ctx context.Context, name string) (*db.BoatRecord, error)
	UpsertOuting(ctx context.Context, outing *db.OutingRecord) error
}

// OutingRequest describes one outing, or a series when Recurrence is set
type OutingRequest struct {
	Start       time.Time
	BoatName    string
	Scratch     bool
	ScratchCrew model.SeatMap
	SetCrew     model.Overrides
	Subs        model.Set
	Shell       string
	Coach       string
	TimeType    string
	Notes       string
	// Recurrence is an RRULE (e.g. "FREQ=WEEKLY;BYDAY=TU,TH") expanded from Start
	Recurrence string
}

// ScheduleOuting creates the outings described by req.
// A recurring request produces one outing per occurrence within horizonWeeks of Start.
func ScheduleOuting(ctx context.Context, store ScheduleStore, logger *zap.Logger, req OutingRequest, horizonWeeks int) ([]model.Outing, error) {
	if req.Start.IsZero() {
		return nil, fmt.Errorf("outing start time is required")
	}

	template, err := outingTemplate(ctx, store, req)
	if err != nil {
		return nil, err
	}

	starts, err := occurrences(req.Start, req.Recurrence, horizonWeeks)
	if err != nil {
		return nil, err
	}

	logger.Debug("Scheduling outings",
		zap.String("boat", template.BoatName),
		zap.Bool("scratch", template.Scratch),
		zap.Int("occurrences", len(starts)))

	created := make([]model.Outing, 0, len(starts))
	for _, start := range starts {
		o := template
		o.ID = uuid.New().String()
		o.DateTime = start

		record, err := db.OutingRecordFrom(o)
		if err != nil {
			return nil, err
		}
		if err := store.UpsertOuting(ctx, &record); err != nil {
			return nil, fmt.Errorf("failed to save outing for %s: %w", start.Format(time.RFC3339), err)
		}

		logger.Debug("Outing created", zap.String("outing_id", o.ID), zap.Time("date_time", start))
		created = append(created, o)
	}

	logger.Info("Outings scheduled", zap.String("boat", template.BoatName), zap.Int("count", len(created)))
	return created, nil
}

// outingTemplate validates the request and returns the outing shared by every occurrence
func outingTemplate(ctx context.Context, store ScheduleStore, req OutingRequest) (model.Outing, error) {
	o := model.Outing{
		BoatName: strings.TrimSpace(req.BoatName),
		Scratch:  req.Scratch,
		Subs:     model.NewSet(req.Subs...),
		Shell:    req.Shell,
		Coach:    strings.TrimSpace(req.Coach),
		TimeType: req.TimeType,
		Notes:    req.Notes,
	}

	if req.Scratch {
		if len(req.SetCrew) > 0 {
			return model.Outing{}, fmt.Errorf("%w: scratch outings cannot carry substitutions", model.ErrMalformedOverride)
		}
		crew := req.ScratchCrew.Clone()
		if err := crew.Validate(); err != nil {
			return model.Outing{}, err
		}
		if o.BoatName == "" {
			o.BoatName = ScratchBoatName
		}
		o.ScratchCrew = crew
		// scratch rowers are found through subs, so the seat occupants lead the list
		o.Subs = model.NewSet(append(crew.Occupants(), req.Subs...)...)
		return o, nil
	}

	if o.BoatName == "" {
		return model.Outing{}, fmt.Errorf("boat name is required for a rostered outing")
	}

	record, err := store.GetBoat(ctx, o.BoatName)
	if err != nil {
		return model.Outing{}, fmt.Errorf("failed to fetch boat: %w", err)
	}
	boat := record.ToModel()
	if !boat.Active {
		return model.Outing{}, fmt.Errorf("boat %s is inactive", boat.Name)
	}
	if o.Shell == "" {
		o.Shell = boat.Shell
	}

	if len(req.SetCrew) > 0 {
		if err := checkOverrides(req.SetCrew, boat); err != nil {
			return model.Outing{}, err
		}
		o.SetCrew = model.Overrides{}
		for original, substitute := range req.SetCrew {
			o.SetCrew[strings.TrimSpace(original)] = strings.TrimSpace(substitute)
		}
	}

	return o, nil
}

// checkOverrides requires every original to hold a seat in the boat right now
func checkOverrides(overrides model.Overrides, boat model.Boat) error {
	if err := overrides.Validate(); err != nil {
		return err
	}
	for original := range overrides {
		if _, ok := boat.Seats.SeatOf(strings.TrimSpace(original)); !ok {
			return fmt.Errorf("%w: %s holds no seat in %s", model.ErrOrphanedSubstitution, original, boat.Name)
		}
	}
	return nil
}

// occurrences expands rule from start, capped at horizonWeeks after start
func occurrences(start time.Time, rule string, horizonWeeks int) ([]time.Time, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return []time.Time{start}, nil
	}
	if horizonWeeks <= 0 {
		return nil, fmt.Errorf("recurrence horizon must be positive, got %d weeks", horizonWeeks)
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	r.DTStart(start)

	until := start.AddDate(0, 0, 7*horizonWeeks)
	starts := r.Between(start, until, true)
	if len(starts) == 0 {
		return nil, fmt.Errorf("recurrence rule %q has no occurrences before %s", rule, until.Format(model.DateLayout))
	}
	return starts, nil
}
