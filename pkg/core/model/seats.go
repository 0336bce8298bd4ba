package model

import (
	"fmt"
	"sort"
	"strings"
)

// Seat is one of the nine fixed positions in a boat
type Seat string

const (
	SeatCox    Seat = "cox"
	SeatStroke Seat = "stroke"
	SeatSeven  Seat = "seven"
	SeatSix    Seat = "six"
	SeatFive   Seat = "five"
	SeatFour   Seat = "four"
	SeatThree  Seat = "three"
	SeatTwo    Seat = "two"
	SeatBow    Seat = "bow"
)

// Seats lists every seat from cox to bow
var Seats = []Seat{
	SeatCox, SeatStroke, SeatSeven, SeatSix, SeatFive, SeatFour, SeatThree, SeatTwo, SeatBow,
}

func (s Seat) IsValid() bool {
	for _, seat := range Seats {
		if s == seat {
			return true
		}
	}
	return false
}

// ParseSeat converts a seat name (case-insensitive) into a Seat
func ParseSeat(name string) (Seat, error) {
	seat := Seat(strings.ToLower(strings.TrimSpace(name)))
	if !seat.IsValid() {
		return "", fmt.Errorf("%w: unknown seat %q", ErrInvalidSeatMap, name)
	}
	return seat, nil
}

// SeatMap maps occupied seats to member identifiers. Unoccupied seats are absent.
type SeatMap map[Seat]string

// Clone returns a copy of the seat map with blank entries dropped
func (m SeatMap) Clone() SeatMap {
	out := make(SeatMap, len(m))
	for seat, id := range m {
		if id = strings.TrimSpace(id); id != "" {
			out[seat] = id
		}
	}
	return out
}

// Occupants returns the member identifiers holding a seat, in seat order cox to bow
func (m SeatMap) Occupants() []string {
	occupants := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, seat := range Seats {
		id := strings.TrimSpace(m[seat])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		occupants = append(occupants, id)
	}
	return occupants
}

// SeatOf finds the seat currently held by memberID
func (m SeatMap) SeatOf(memberID string) (Seat, bool) {
	for _, seat := range Seats {
		if id := m[seat]; id != "" && id == memberID {
			return seat, true
		}
	}
	return "", false
}

// Count returns the number of occupied seats
func (m SeatMap) Count() int {
	count := 0
	for _, id := range m {
		if strings.TrimSpace(id) != "" {
			count++
		}
	}
	return count
}

// Validate checks every key is a known seat and no member holds two seats
func (m SeatMap) Validate() error {
	holders := make(map[string]Seat, len(m))

	seats := make([]Seat, 0, len(m))
	for seat := range m {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool { return seatIndex(seats[i]) < seatIndex(seats[j]) })

	for _, seat := range seats {
		if !seat.IsValid() {
			return fmt.Errorf("%w: unknown seat %q", ErrInvalidSeatMap, seat)
		}
		id := strings.TrimSpace(m[seat])
		if id == "" {
			continue
		}
		if previous, exists := holders[id]; exists {
			return fmt.Errorf("%w: member %s holds both %s and %s", ErrInvalidSeatMap, id, previous, seat)
		}
		holders[id] = seat
	}
	return nil
}

func seatIndex(s Seat) int {
	for i, seat := range Seats {
		if seat == s {
			return i
		}
	}
	return len(Seats)
}

// CrewType labels a boat class
type CrewType string

const (
	CrewTypeNone        CrewType = ""
	CrewTypePair        CrewType = "pair"
	CrewTypeCoxlessFour CrewType = "coxless-four"
	CrewTypeCoxedFour   CrewType = "coxed-four"
	CrewTypeEight       CrewType = "eight"
)

// CrewTypeFor derives the crew type from the number of occupied seats
func CrewTypeFor(occupied int) CrewType {
	switch {
	case occupied <= 0:
		return CrewTypeNone
	case occupied <= 2:
		return CrewTypePair
	case occupied <= 4:
		return CrewTypeCoxlessFour
	case occupied == 5:
		return CrewTypeCoxedFour
	default:
		return CrewTypeEight
	}
}
