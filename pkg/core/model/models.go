package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout used for calendar dates throughout the roster
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Member represents a club member
type Member struct {
	ID            string
	FirstName     string
	LastName      string
	PreferredName string
	Squad         string
	Tags          Set
	Boats         Set // boats in which the member holds a permanent seat
	LogbookID     *int
	Color         string
}

// DisplayName returns the name shown on outing sheets and matched against outing coaches
func (m Member) DisplayName() string {
	first := m.PreferredName
	if first == "" {
		first = m.FirstName
	}
	name := strings.TrimSpace(first + " " + m.LastName)
	if name == "" {
		return m.ID
	}
	return name
}

// Boat represents a permanent crew and its seat layout
type Boat struct {
	Name     string
	Seats    SeatMap
	CrewType CrewType
	Shell    string
	Active   bool
	Tags     Set
}

// Overrides maps an original seat-holder's identifier to the identifier of their substitute
type Overrides map[string]string

// Validate reports ErrMalformedOverride for blank or self-referencing entries
func (o Overrides) Validate() error {
	for original, substitute := range o {
		original = strings.TrimSpace(original)
		substitute = strings.TrimSpace(substitute)
		if original == "" || substitute == "" {
			return fmt.Errorf("%w: blank entry %q -> %q", ErrMalformedOverride, original, substitute)
		}
		if original == substitute {
			return fmt.Errorf("%w: %s substitutes for themselves", ErrMalformedOverride, original)
		}
	}
	return nil
}

// Outing represents a scheduled session on the water
type Outing struct {
	ID          string
	DateTime    time.Time
	BoatName    string
	Scratch     bool
	ScratchCrew SeatMap   // inline crew for scratch outings
	SetCrew     Overrides // nil when no substitutions are recorded
	Subs        Set       // cover volunteers, not bound to a seat
	Shell       string
	Coach       string
	TimeType    string
	Notes       string
}

// AvailabilityState is a member's declared availability for a date
type AvailabilityState string

const (
	StateAvailable    AvailabilityState = "available"
	StateIfRequired   AvailabilityState = "if-required"
	StateNotAvailable AvailabilityState = "not-available"
	StateOutOfCam     AvailabilityState = "out-of-cam"
)

func (s AvailabilityState) IsValid() bool {
	switch s {
	case StateAvailable, StateIfRequired, StateNotAvailable, StateOutOfCam:
		return true
	}
	return false
}

// Availability is one member's entry on a Daily record
type Availability struct {
	State AvailabilityState
	Notes string
}

// Daily holds everything recorded against one calendar date
type Daily struct {
	Date         time.Time
	Availability map[string]Availability // keyed by member identifier
	Race         string
	Event        string
}

// EventType distinguishes races from other club events
type EventType string

const (
	EventTypeRace  EventType = "Race"
	EventTypeEvent EventType = "Event"
)

func (t EventType) IsValid() bool {
	return t == EventTypeRace || t == EventTypeEvent
}

// Event represents a race or club event
type Event struct {
	ID    string
	Name  string
	Date  time.Time
	Type  EventType
	Crews Set // member tags authorised to see the event
}
