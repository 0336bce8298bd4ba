package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// ToModel converts a member record into a model.Member
func (r MemberRecord) ToModel() model.Member {
	return model.Member{
		ID:            r.ID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		PreferredName: r.PreferredName,
		Squad:         r.Squad,
		Tags:          splitSet(r.Tags),
		Boats:         splitSet(r.Boats),
		LogbookID:     r.LogbookID,
		Color:         r.Color,
	}
}

// MemberRecordFrom converts a model.Member into its record form
func MemberRecordFrom(m model.Member) MemberRecord {
	return MemberRecord{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		PreferredName: m.PreferredName,
		Squad:         m.Squad,
		Tags:          joinSet(m.Tags),
		Boats:         joinSet(m.Boats),
		LogbookID:     m.LogbookID,
		Color:         m.Color,
	}
}

// seatColumns returns pointers to the record's seat columns keyed by seat
func (r *BoatRecord) seatColumns() map[model.Seat]**string {
	return map[model.Seat]**string{
		model.SeatCox:    &r.Cox,
		model.SeatStroke: &r.Stroke,
		model.SeatSeven:  &r.Seven,
		model.SeatSix:    &r.Six,
		model.SeatFive:   &r.Five,
		model.SeatFour:   &r.Four,
		model.SeatThree:  &r.Three,
		model.SeatTwo:    &r.Two,
		model.SeatBow:    &r.Bow,
	}
}

// ToModel converts a boat record into a model.Boat
func (r BoatRecord) ToModel() model.Boat {
	seats := model.SeatMap{}
	for seat, column := range r.seatColumns() {
		if *column != nil && strings.TrimSpace(**column) != "" {
			seats[seat] = strings.TrimSpace(**column)
		}
	}
	return model.Boat{
		Name:     r.Name,
		Seats:    seats,
		CrewType: model.CrewType(r.CrewType),
		Shell:    r.Shell,
		Active:   r.Active,
		Tags:     splitSet(r.Tags),
	}
}

// BoatRecordFrom converts a model.Boat into its record form
func BoatRecordFrom(b model.Boat) BoatRecord {
	r := BoatRecord{
		Name:     b.Name,
		CrewType: string(b.CrewType),
		Shell:    b.Shell,
		Active:   b.Active,
		Tags:     joinSet(b.Tags),
	}
	for seat, column := range r.seatColumns() {
		*column = nullable(b.Seats[seat])
	}
	return r
}

// ToModel converts an outing record into a model.Outing.
// If the stored crew map cannot be decoded the outing is still returned, without
// any overrides or scratch crew, alongside an error wrapping model.ErrMalformedOverride.
func (r OutingRecord) ToModel() (model.Outing, error) {
	o := model.Outing{
		ID:       r.ID,
		DateTime: r.DateTime,
		BoatName: r.BoatName,
		Scratch:  r.Scratch,
		Subs:     splitSet(r.Subs),
		Shell:    deref(r.Shell),
		Coach:    deref(r.Coach),
		TimeType: deref(r.TimeType),
		Notes:    deref(r.Notes),
	}

	flat, err := decodeFlatMap(r.SetCrew)
	if err != nil {
		return o, fmt.Errorf("outing %s: %w", r.ID, err)
	}

	if r.Scratch {
		crew := model.SeatMap{}
		for key, memberID := range flat {
			seat, err := model.ParseSeat(key)
			if err != nil {
				return o, fmt.Errorf("outing %s: %w: scratch crew has unknown seat %q", r.ID, model.ErrMalformedOverride, key)
			}
			crew[seat] = memberID
		}
		if err := crew.Validate(); err != nil {
			return o, fmt.Errorf("outing %s: %w: %v", r.ID, model.ErrMalformedOverride, err)
		}
		o.ScratchCrew = crew
		return o, nil
	}

	if flat != nil {
		overrides := model.Overrides(flat)
		if err := overrides.Validate(); err != nil {
			return o, fmt.Errorf("outing %s: %w", r.ID, err)
		}
		o.SetCrew = overrides
	}
	return o, nil
}

// OutingRecordFrom converts a model.Outing into its record form.
// No overrides (nil or empty) are stored as NULL.
func OutingRecordFrom(o model.Outing) (OutingRecord, error) {
	flat := map[string]string(o.SetCrew)
	if o.Scratch {
		flat = make(map[string]string, len(o.ScratchCrew))
		for seat, memberID := range o.ScratchCrew {
			flat[string(seat)] = memberID
		}
	}

	setCrew, err := encodeFlatMap(flat)
	if err != nil {
		return OutingRecord{}, fmt.Errorf("failed to encode crew for outing %s: %w", o.ID, err)
	}

	return OutingRecord{
		ID:       o.ID,
		DateTime: o.DateTime,
		BoatName: o.BoatName,
		Scratch:  o.Scratch,
		SetCrew:  setCrew,
		Subs:     joinSet(o.Subs),
		Shell:    nullable(o.Shell),
		Coach:    nullable(o.Coach),
		TimeType: nullable(o.TimeType),
		Notes:    nullable(o.Notes),
	}, nil
}

type availabilityJSON struct {
	State string `json:"state"`
	Notes string `json:"notes"`
}

// ToModel converts a daily record into a model.Daily
func (r DailyRecord) ToModel(loc *time.Location) (model.Daily, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation(model.DateLayout, r.Date, loc)
	if err != nil {
		return model.Daily{}, fmt.Errorf("invalid daily date %q: %w", r.Date, err)
	}

	d := model.Daily{
		Date:         date,
		Availability: map[string]model.Availability{},
		Race:         deref(r.Races),
		Event:        deref(r.Events),
	}

	if raw := deref(r.UserData); raw != "" {
		var entries map[string]availabilityJSON
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return model.Daily{}, fmt.Errorf("invalid availability data for %s: %w", r.Date, err)
		}
		for memberID, entry := range entries {
			d.Availability[memberID] = model.Availability{
				State: model.AvailabilityState(entry.State),
				Notes: entry.Notes,
			}
		}
	}
	return d, nil
}

// DailyRecordFrom converts a model.Daily into its record form
func DailyRecordFrom(d model.Daily) (DailyRecord, error) {
	r := DailyRecord{
		Date:   d.Date.Format(model.DateLayout),
		Races:  nullable(d.Race),
		Events: nullable(d.Event),
	}
	if len(d.Availability) > 0 {
		entries := make(map[string]availabilityJSON, len(d.Availability))
		for memberID, a := range d.Availability {
			entries[memberID] = availabilityJSON{State: string(a.State), Notes: a.Notes}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return DailyRecord{}, fmt.Errorf("failed to encode availability for %s: %w", r.Date, err)
		}
		r.UserData = nullable(string(data))
	}
	return r, nil
}

// ToModel converts an event record into a model.Event
func (r EventRecord) ToModel(loc *time.Location) (model.Event, error) {
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation(model.DateLayout, r.Date, loc)
	if err != nil {
		return model.Event{}, fmt.Errorf("invalid date %q for event %s: %w", r.Date, r.ID, err)
	}
	return model.Event{
		ID:    r.ID,
		Name:  r.Name,
		Date:  date,
		Type:  model.EventType(r.Type),
		Crews: splitSet(r.Crews),
	}, nil
}

// EventRecordFrom converts a model.Event into its record form
func EventRecordFrom(e model.Event) EventRecord {
	return EventRecord{
		ID:    e.ID,
		Name:  e.Name,
		Date:  e.Date.Format(model.DateLayout),
		Type:  string(e.Type),
		Crews: joinSet(e.Crews),
	}
}

// joinSet stores an empty set as NULL
func joinSet(s model.Set) *string {
	if len(s) == 0 {
		return nil
	}
	joined := strings.Join(s, ",")
	return &joined
}

func splitSet(s *string) model.Set {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return model.NewSet(strings.Split(*s, ",")...)
}

// encodeFlatMap stores an empty map as NULL
func encodeFlatMap(m map[string]string) (*string, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := string(data)
	return &out, nil
}

func decodeFlatMap(s *string) (map[string]string, error) {
	if s == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*s)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedOverride, err)
	}
	return m, nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
