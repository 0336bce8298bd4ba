package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/crew"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// MemberLister lists every member record
type MemberLister interface {
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
}

// BoatLister lists every boat record
type BoatLister interface {
	GetBoats(ctx context.Context) ([]db.BoatRecord, error)
}

func loadMembers(ctx context.Context, store MemberLister) ([]model.Member, error) {
	records, err := store.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	members := make([]model.Member, len(records))
	for i, r := range records {
		members[i] = r.ToModel()
	}
	return members, nil
}

func loadBoats(ctx context.Context, store BoatLister) (map[string]model.Boat, error) {
	records, err := store.GetBoats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boats: %w", err)
	}
	boats := make(map[string]model.Boat, len(records))
	for _, r := range records {
		boats[r.Name] = r.ToModel()
	}
	return boats, nil
}

func loadDirectory(ctx context.Context, store MemberLister) (crew.Members, error) {
	members, err := loadMembers(ctx, store)
	if err != nil {
		return nil, err
	}
	return crew.NewDirectory(members), nil
}

// decodedOuting is an outing read from the store. Malformed is set when its stored crew
// could not be decoded, in which case the outing carries no overrides.
type decodedOuting struct {
	model.Outing
	Malformed error
}

func decodeOuting(r db.OutingRecord, logger *zap.Logger) decodedOuting {
	o, err := r.ToModel()
	if err != nil {
		logger.Warn("Outing crew could not be decoded, using base crew",
			zap.String("outing_id", r.ID),
			zap.Error(err))
	}
	return decodedOuting{Outing: o, Malformed: err}
}

func decodeOutings(records []db.OutingRecord, logger *zap.Logger) []decodedOuting {
	decoded := make([]decodedOuting, len(records))
	for i, r := range records {
		decoded[i] = decodeOuting(r, logger)
	}
	return decoded
}

// decodeStrict rejects outings whose stored crew is malformed.
// Edits must not rewrite such a record without its overrides.
func decodeStrict(r db.OutingRecord) (model.Outing, error) {
	o, err := r.ToModel()
	if err != nil {
		return model.Outing{}, fmt.Errorf("failed to decode outing %s: %w", r.ID, err)
	}
	return o, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
