package db

import "time"

// MemberRecord represents a database member record
type MemberRecord struct {
	ID            string  `db:"id"`
	FirstName     string  `db:"first_name"`
	LastName      string  `db:"last_name"`
	PreferredName string  `db:"preferred_name"`
	Squad         string  `db:"squad"`
	Tags          *string `db:"tags"`  // comma-joined
	Boats         *string `db:"boats"` // comma-joined
	LogbookID     *int    `db:"logbook_id"`
	Color         string  `db:"color"`
}

// BoatRecord represents a database boat record, one nullable column per seat
type BoatRecord struct {
	Name     string  `db:"name"`
	Cox      *string `db:"cox"`
	Stroke   *string `db:"stroke"`
	Seven    *string `db:"seven"`
	Six      *string `db:"six"`
	Five     *string `db:"five"`
	Four     *string `db:"four"`
	Three    *string `db:"three"`
	Two      *string `db:"two"`
	Bow      *string `db:"bow"`
	CrewType string  `db:"crew_type"`
	Shell    string  `db:"shell"`
	Active   bool    `db:"active"`
	Tags     *string `db:"tags"` // comma-joined
}

// OutingRecord represents a database outing record.
// SetCrew holds a flat JSON object: original occupant -> substitute for rostered
// outings, seat -> member for scratch outings.
type OutingRecord struct {
	ID       string    `db:"id"`
	DateTime time.Time `db:"date_time"`
	BoatName string    `db:"boat_name"`
	Scratch  bool      `db:"scratch"`
	SetCrew  *string   `db:"set_crew"`
	Subs     *string   `db:"subs"` // comma-joined
	Shell    *string   `db:"shell"`
	Coach    *string   `db:"coach"`
	TimeType *string   `db:"time_type"`
	Notes    *string   `db:"notes"`
}

// DailyRecord represents a database daily record.
// UserData holds a JSON object keyed by member id: {"state": ..., "notes": ...}.
type DailyRecord struct {
	Date     string  `db:"date"`
	UserData *string `db:"user_data"`
	Races    *string `db:"races"`
	Events   *string `db:"events"`
}

// EventRecord represents a database race or event record
type EventRecord struct {
	ID    string  `db:"id"`
	Name  string  `db:"name"`
	Date  string  `db:"date"`
	Type  string  `db:"type"`
	Crews *string `db:"crews"` // comma-joined member tags
}
