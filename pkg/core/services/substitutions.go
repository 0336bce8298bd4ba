package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// OutingEditStore defines the database operations needed to edit a scheduled outing
type OutingEditStore interface {
	GetOuting(ctx context.Context, id string) (*db.OutingRecord, error)
	GetBoat(ctx context.Context, name string) (*db.BoatRecord, error)
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	UpsertOuting(ctx context.Context, outing *db.OutingRecord) error
}

// OutingDeleteStore defines the database operations needed to delete an outing
type OutingDeleteStore interface {
	DeleteOuting(ctx context.Context, id string) error
}

// AddSubstitute records that substituteID replaces originalID for one outing.
// The original must hold a seat in the outing's boat. The substitute may be a
// free-text name rather than a member id. A member substitute is also added
// to the outing's subs so the outing shows up as one they are covering.
func AddSubstitute(ctx context.Context, store OutingEditStore, logger *zap.Logger, outingID, originalID, substituteID string) (*model.Outing, error) {
	originalID = strings.TrimSpace(originalID)
	substituteID = strings.TrimSpace(substituteID)

	o, err := getOutingForEdit(ctx, store, outingID)
	if err != nil {
		return nil, err
	}
	if o.Scratch {
		return nil, fmt.Errorf("%w: outing %s is a scratch outing; edit its crew instead", model.ErrMalformedOverride, outingID)
	}

	record, err := store.GetBoat(ctx, o.BoatName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boat: %w", err)
	}
	boat := record.ToModel()

	entry := model.Overrides{originalID: substituteID}
	if err := checkOverrides(entry, boat); err != nil {
		return nil, err
	}

	isMember, err := knownMember(ctx, store, substituteID)
	if err != nil {
		return nil, err
	}

	if o.SetCrew == nil {
		o.SetCrew = model.Overrides{}
	}
	if previous, ok := o.SetCrew[originalID]; ok && previous != substituteID {
		logger.Info("Replacing existing substitute",
			zap.String("outing_id", outingID),
			zap.String("original_id", originalID),
			zap.String("previous_id", previous))
		delete(o.SetCrew, originalID)
		o.Subs = dropSubstitute(o, previous)
	}
	o.SetCrew[originalID] = substituteID
	if isMember {
		o.Subs = o.Subs.Add(substituteID)
	}

	if err := saveOuting(ctx, store, o); err != nil {
		return nil, err
	}

	logger.Info("Substitute added",
		zap.String("outing_id", outingID),
		zap.String("original_id", originalID),
		zap.String("substitute_id", substituteID))
	return &o, nil
}

// RemoveSubstitute restores originalID to their seat for one outing.
// The substitute leaves subs unless they still fill another seat.
func RemoveSubstitute(ctx context.Context, store OutingEditStore, logger *zap.Logger, outingID, originalID string) (*model.Outing, error) {
	originalID = strings.TrimSpace(originalID)

	o, err := getOutingForEdit(ctx, store, outingID)
	if err != nil {
		return nil, err
	}

	substituteID, ok := o.SetCrew[originalID]
	if !ok {
		return nil, fmt.Errorf("%w: no substitute for %s in outing %s", model.ErrNotFound, originalID, outingID)
	}
	delete(o.SetCrew, originalID)
	o.Subs = dropSubstitute(o, substituteID)

	if err := saveOuting(ctx, store, o); err != nil {
		return nil, err
	}

	logger.Info("Substitute removed", zap.String("outing_id", outingID), zap.String("original_id", originalID))
	return &o, nil
}

// AddCover adds a volunteer to an outing's covers. Adding the same volunteer twice is a no-op.
func AddCover(ctx context.Context, store OutingEditStore, logger *zap.Logger, outingID, coverID string) (*model.Outing, error) {
	coverID = strings.TrimSpace(coverID)
	if coverID == "" {
		return nil, fmt.Errorf("cover id is required")
	}

	o, err := getOutingForEdit(ctx, store, outingID)
	if err != nil {
		return nil, err
	}

	if o.Subs.Has(coverID) {
		logger.Debug("Cover already recorded", zap.String("outing_id", outingID), zap.String("cover_id", coverID))
		return &o, nil
	}
	o.Subs = o.Subs.Add(coverID)

	if err := saveOuting(ctx, store, o); err != nil {
		return nil, err
	}

	logger.Info("Cover added", zap.String("outing_id", outingID), zap.String("cover_id", coverID))
	return &o, nil
}

// DeleteOuting permanently removes an outing
func DeleteOuting(ctx context.Context, store OutingDeleteStore, logger *zap.Logger, outingID string) error {
	if err := store.DeleteOuting(ctx, outingID); err != nil {
		return fmt.Errorf("failed to delete outing: %w", err)
	}
	logger.Info("Outing deleted", zap.String("outing_id", outingID))
	return nil
}

// knownMember reports whether id names a member; a free-text name does not
func knownMember(ctx context.Context, store OutingEditStore, id string) (bool, error) {
	if _, err := store.GetMember(ctx, id); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch substitute: %w", err)
	}
	return true, nil
}

// dropSubstitute removes substituteID from subs once no override points at them
func dropSubstitute(o model.Outing, substituteID string) model.Set {
	for _, other := range o.SetCrew {
		if other == substituteID {
			return o.Subs
		}
	}
	return o.Subs.Remove(substituteID)
}

func getOutingForEdit(ctx context.Context, store OutingEditStore, outingID string) (model.Outing, error) {
	record, err := store.GetOuting(ctx, outingID)
	if err != nil {
		return model.Outing{}, fmt.Errorf("failed to fetch outing: %w", err)
	}
	return decodeStrict(*record)
}

func saveOuting(ctx context.Context, store OutingEditStore, o model.Outing) error {
	record, err := db.OutingRecordFrom(o)
	if err != nil {
		return err
	}
	if err := store.UpsertOuting(ctx, &record); err != nil {
		return fmt.Errorf("failed to save outing: %w", err)
	}
	return nil
}
