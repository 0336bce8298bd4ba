package db

import (
	"context"
	"time"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// ErrNotFound is returned by every store when a keyed lookup matches nothing
var ErrNotFound = model.ErrNotFound

// MemberStore defines the interface for member database operations
type MemberStore interface {
	GetMember(ctx context.Context, id string) (*MemberRecord, error)
	GetMembers(ctx context.Context) ([]MemberRecord, error)
	UpsertMember(ctx context.Context, member *MemberRecord) error
}

// BoatStore defines the interface for boat database operations
type BoatStore interface {
	GetBoat(ctx context.Context, name string) (*BoatRecord, error)
	GetBoats(ctx context.Context) ([]BoatRecord, error)
	UpsertBoat(ctx context.Context, boat *BoatRecord) error
}

// OutingStore defines the interface for outing database operations
type OutingStore interface {
	GetOuting(ctx context.Context, id string) (*OutingRecord, error)
	// GetOutingsBetween returns outings dated within [from, to], ordered by date-time
	GetOutingsBetween(ctx context.Context, from, to time.Time) ([]OutingRecord, error)
	UpsertOuting(ctx context.Context, outing *OutingRecord) error
	DeleteOuting(ctx context.Context, id string) error
}

// DailyStore defines the interface for daily calendar database operations
type DailyStore interface {
	GetDaily(ctx context.Context, date string) (*DailyRecord, error)
	// GetDailiesBetween returns the daily records for dates within [from, to]
	GetDailiesBetween(ctx context.Context, from, to string) ([]DailyRecord, error)
	UpsertDaily(ctx context.Context, daily *DailyRecord) error
}

// EventStore defines the interface for race and event database operations
type EventStore interface {
	GetEvent(ctx context.Context, id string) (*EventRecord, error)
	GetEvents(ctx context.Context) ([]EventRecord, error)
	UpsertEvent(ctx context.Context, event *EventRecord) error
	DeleteEvent(ctx context.Context, id string) error
}

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	MemberStore
	BoatStore
	OutingStore
	DailyStore
	EventStore
	Close()
}
