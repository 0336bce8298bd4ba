package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/crew"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/outings"
	"github.com/dcbc/crewboard/pkg/db"
)

// ViewOutingsStore defines the database operations needed to view outings
type ViewOutingsStore interface {
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
	GetBoats(ctx context.Context) ([]db.BoatRecord, error)
	GetOutingsBetween(ctx context.Context, from, to time.Time) ([]db.OutingRecord, error)
}

// ViewOutingStore defines the database operations needed to view a single outing
type ViewOutingStore interface {
	GetOuting(ctx context.Context, id string) (*db.OutingRecord, error)
	GetBoat(ctx context.Context, name string) (*db.BoatRecord, error)
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
}

// OutingView is an outing together with its resolved crew
type OutingView struct {
	Outing model.Outing
	// Crew is nil when the outing's boat no longer exists
	Crew *crew.Resolution
	// Degraded is set when substitutions could not be applied and Crew is the base crew
	Degraded bool
}

// OutingsView is one member's view of the outings in a window
type OutingsView struct {
	Viewer   outings.Viewer
	From     time.Time
	To       time.Time
	Mine     []OutingView
	Covering []OutingView
	Other    []OutingView
}

// ViewOutings partitions the outings in [from, to] for the viewer and resolves each crew
func ViewOutings(ctx context.Context, store ViewOutingsStore, logger *zap.Logger, viewerID string, from, to time.Time) (*OutingsView, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", model.ErrInvalidDateRange, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	logger.Debug("Viewing outings",
		zap.String("viewer_id", viewerID),
		zap.Time("from", from),
		zap.Time("to", to))

	// Resolve the viewer up front so an unknown id fails before any other reads
	viewerRecord, err := store.GetMember(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch viewer: %w", err)
	}
	viewer := outings.ViewerFor(viewerRecord.ToModel())

	// Name lookups and seat maps are shared by every outing in the window
	dir, err := loadDirectory(ctx, store)
	if err != nil {
		return nil, err
	}

	boats, err := loadBoats(ctx, store)
	if err != nil {
		return nil, err
	}

	records, err := store.GetOutingsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outings: %w", err)
	}
	logger.Debug("Found outings in window", zap.Int("count", len(records)))

	// Malformed override blobs are kept alongside the outing so the view can degrade
	decoded := decodeOutings(records, logger)
	byID := make(map[string]decodedOuting, len(decoded))
	all := make([]model.Outing, len(decoded))
	for i, d := range decoded {
		byID[d.ID] = d
		all[i] = d.Outing
	}

	buckets, err := outings.PartitionOutings(viewer, from, to, all)
	if err != nil {
		return nil, err
	}

	// Resolve crews per bucket, keeping the partition order
	view := func(list []model.Outing) []OutingView {
		views := make([]OutingView, 0, len(list))
		for _, o := range list {
			d := byID[o.ID]
			var boat *model.Boat
			if b, ok := boats[o.BoatName]; ok {
				boat = &b
			}
			views = append(views, resolveView(d, boat, dir, logger))
		}
		return views
	}

	result := &OutingsView{
		Viewer:   viewer,
		From:     from,
		To:       to,
		Mine:     view(buckets.Mine),
		Covering: view(buckets.Covering),
		Other:    view(buckets.Other),
	}

	logger.Debug("Outings partitioned",
		zap.Int("mine", len(result.Mine)),
		zap.Int("covering", len(result.Covering)),
		zap.Int("other", len(result.Other)))

	return result, nil
}

// ViewOuting returns one outing with its resolved crew.
// A rostered outing whose boat is missing is reported as db.ErrNotFound.
func ViewOuting(ctx context.Context, store ViewOutingStore, logger *zap.Logger, outingID string) (*OutingView, error) {
	record, err := store.GetOuting(ctx, outingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outing: %w", err)
	}
	d := decodeOuting(*record, logger)

	// Scratch outings carry their own crew and need no boat
	var boat *model.Boat
	if !d.Scratch {
		boatRecord, err := store.GetBoat(ctx, d.BoatName)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch boat for outing %s: %w", outingID, err)
		}
		b := boatRecord.ToModel()
		boat = &b
	}

	dir, err := loadDirectory(ctx, store)
	if err != nil {
		return nil, err
	}

	v := resolveView(d, boat, dir, logger)
	return &v, nil
}

// resolveView never fails: a malformed override falls back to the base crew and a
// missing boat leaves Crew nil
func resolveView(d decodedOuting, boat *model.Boat, dir crew.Directory, logger *zap.Logger) OutingView {
	v := OutingView{Outing: d.Outing, Degraded: d.Malformed != nil}

	res, err := crew.ResolveCrew(d.Outing, boat, dir)
	if errors.Is(err, model.ErrMalformedOverride) {
		logger.Warn("Outing overrides are malformed, using base crew",
			zap.String("outing_id", d.ID),
			zap.Error(err))
		v.Degraded = true
		res, err = crew.ResolveBase(d.Outing, boat, dir)
	}
	if err != nil {
		logger.Warn("Could not resolve outing crew",
			zap.String("outing_id", d.ID),
			zap.String("boat", d.BoatName),
			zap.Error(err))
		return v
	}

	for _, stale := range res.Stale {
		logger.Warn("Substitution no longer matches a seat",
			zap.String("outing_id", d.ID),
			zap.String("original_id", stale.OriginalID),
			zap.String("substitute_id", stale.SubstituteID))
	}

	v.Crew = res
	return v
}
