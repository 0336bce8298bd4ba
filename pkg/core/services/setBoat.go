package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/calendar"
	"github.com/dcbc/crewboard/pkg/core/membership"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// BoatEditStore defines the database operations needed to edit boats and their crews
type BoatEditStore interface {
	GetBoat(ctx context.Context, name string) (*db.BoatRecord, error)
	UpsertBoat(ctx context.Context, boat *db.BoatRecord) error
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	UpsertMember(ctx context.Context, member *db.MemberRecord) error
}

// RepairStore defines the database operations needed to rebuild boat memberships
type RepairStore interface {
	GetBoats(ctx context.Context) ([]db.BoatRecord, error)
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
	UpsertMember(ctx context.Context, member *db.MemberRecord) error
}

// BoatUpdate replaces a boat's seats, shell and tags
type BoatUpdate struct {
	Name  string
	Seats model.SeatMap
	Shell string
	Tags  model.Set
}

// SetBoatResult represents the result of editing a boat
type SetBoatResult struct {
	Boat      model.Boat
	Created   bool
	Mutations []membership.Mutation
}

// SetBoat creates or replaces a boat's crew and brings every affected member's boat set in line.
// All seat occupants must be existing members; nothing is written otherwise.
func SetBoat(ctx context.Context, store BoatEditStore, logger *zap.Logger, update BoatUpdate) (*SetBoatResult, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return nil, fmt.Errorf("boat name is required")
	}

	seats := update.Seats.Clone()
	if err := seats.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Setting boat", zap.String("boat", name), zap.Int("occupied", seats.Count()))

	// Every occupant must exist before anything is written
	members := make(map[string]*model.Member)
	for _, id := range seats.Occupants() {
		record, err := store.GetMember(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seat occupant %s: %w", id, err)
		}
		m := record.ToModel()
		members[id] = &m
	}

	// Load the current boat, if any, to diff against its seats
	var oldSeats model.SeatMap
	boat := model.Boat{Name: name, Active: true}
	created := false

	existing, err := store.GetBoat(ctx, name)
	switch {
	case err == nil:
		boat = existing.ToModel()
		oldSeats = boat.Seats
	case isNotFound(err):
		created = true
		logger.Info("Creating new boat", zap.String("boat", name))
	default:
		return nil, fmt.Errorf("failed to fetch boat: %w", err)
	}

	// Replace the crew and derive the crew type from the occupied seats
	boat.Seats = seats
	boat.Shell = update.Shell
	boat.Tags = update.Tags
	boat.CrewType = model.CrewTypeFor(seats.Count())

	mutations := membership.SyncBoatMembership(name, oldSeats, seats)

	// Save the boat before touching members so their boat sets never name a missing boat
	record := db.BoatRecordFrom(boat)
	if err := store.UpsertBoat(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to save boat: %w", err)
	}

	if err := applyMutations(ctx, store, logger, members, mutations); err != nil {
		return nil, err
	}

	logger.Info("Boat saved",
		zap.String("boat", name),
		zap.String("crew_type", string(boat.CrewType)),
		zap.Int("mutations", len(mutations)))

	return &SetBoatResult{Boat: boat, Created: created, Mutations: mutations}, nil
}

// applyMutations fetches any member not already in known. Members removed from a boat
// who no longer exist are skipped, since there is no boat set left to update.
func applyMutations(ctx context.Context, store BoatEditStore, logger *zap.Logger, known map[string]*model.Member, mutations []membership.Mutation) error {
	for _, id := range membership.Affected(mutations) {
		m, ok := known[id]
		if !ok {
			record, err := store.GetMember(ctx, id)
			if isNotFound(err) {
				logger.Warn("Member removed from boat no longer exists", zap.String("member_id", id))
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to fetch member %s: %w", id, err)
			}
			fetched := record.ToModel()
			m = &fetched
		}

		// Unchanged boat sets are not rewritten
		if !membership.Apply(m, mutations) {
			continue
		}

		record := db.MemberRecordFrom(*m)
		if err := store.UpsertMember(ctx, &record); err != nil {
			return fmt.Errorf("failed to save boats for member %s: %w", id, err)
		}
		logger.Debug("Member boats updated", zap.String("member_id", id), zap.Strings("boats", m.Boats))
	}
	return nil
}

// SetBoatActive marks a boat active or inactive. Inactive boats cannot have new outings scheduled.
func SetBoatActive(ctx context.Context, store BoatEditStore, logger *zap.Logger, name string, active bool) (*model.Boat, error) {
	record, err := store.GetBoat(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boat: %w", err)
	}

	boat := record.ToModel()
	if boat.Active == active {
		logger.Debug("Boat already in requested state", zap.String("boat", name), zap.Bool("active", active))
		return &boat, nil
	}

	boat.Active = active
	updated := db.BoatRecordFrom(boat)
	if err := store.UpsertBoat(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save boat: %w", err)
	}

	logger.Info("Boat active flag changed", zap.String("boat", name), zap.Bool("active", active))
	return &boat, nil
}

// RepairMemberships recomputes every member's boat set from the boats' seat maps
func RepairMemberships(ctx context.Context, store RepairStore, logger *zap.Logger) ([]membership.Mutation, error) {
	boatsByName, err := loadBoats(ctx, store)
	if err != nil {
		return nil, err
	}
	boats := make([]model.Boat, 0, len(boatsByName))
	for _, b := range boatsByName {
		boats = append(boats, b)
	}

	members, err := loadMembers(ctx, store)
	if err != nil {
		return nil, err
	}

	mutations := membership.Reconcile(boats, members)
	logger.Info("Reconciled boat memberships", zap.Int("mutations", len(mutations)))

	for i := range members {
		m := &members[i]
		if !membership.Apply(m, mutations) {
			continue
		}
		record := db.MemberRecordFrom(*m)
		if err := store.UpsertMember(ctx, &record); err != nil {
			return nil, fmt.Errorf("failed to save boats for member %s: %w", m.ID, err)
		}
	}

	return mutations, nil
}

// BoatListStore defines the database operations needed to list boats
type BoatListStore interface {
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	GetBoats(ctx context.Context) ([]db.BoatRecord, error)
}

// ListBoats returns the boats the viewer may see, ordered by name
func ListBoats(ctx context.Context, store BoatListStore, logger *zap.Logger, filter calendar.Filter, viewerID string) ([]model.Boat, error) {
	record, err := store.GetMember(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch viewer: %w", err)
	}
	viewer := record.ToModel()

	boatsByName, err := loadBoats(ctx, store)
	if err != nil {
		return nil, err
	}
	boats := make([]model.Boat, 0, len(boatsByName))
	for _, b := range boatsByName {
		boats = append(boats, b)
	}
	sort.Slice(boats, func(i, j int) bool { return boats[i].Name < boats[j].Name })

	visible := filter.VisibleBoats(viewer.Tags, boats)
	logger.Debug("Listed boats",
		zap.String("viewer_id", viewerID),
		zap.Int("visible", len(visible)),
		zap.Int("total", len(boats)))
	return visible, nil
}
