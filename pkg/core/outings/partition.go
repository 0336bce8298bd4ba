package outings

import (
	"fmt"
	"sort"
	"time"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// Viewer identifies the member an outing list is built for
type Viewer struct {
	ID          string
	Boats       model.Set
	DisplayName string
}

// ViewerFor builds a Viewer from a member record
func ViewerFor(m model.Member) Viewer {
	return Viewer{ID: m.ID, Boats: m.Boats, DisplayName: m.DisplayName()}
}

// Buckets splits the outings in a window by how they concern the viewer.
// Every outing in the window lands in exactly one bucket.
type Buckets struct {
	Mine     []model.Outing // outings the viewer is expected to attend
	Covering []model.Outing // outings the viewer attends as cover for someone else
	Other    []model.Outing
}

// Total returns the number of outings across all buckets
func (b Buckets) Total() int {
	return len(b.Mine) + len(b.Covering) + len(b.Other)
}

// PartitionOutings classifies every outing dated within [from, to] into mine, covering or other.
//
// An outing is mine if it is for one of the viewer's boats, the viewer coaches it, or it is a
// scratch outing listing the viewer as a cover. A rostered outing listing the viewer as a cover
// is covering. A mine outing in which the viewer has been substituted out moves to other.
// Each bucket is ordered by date-time.
func PartitionOutings(viewer Viewer, from, to time.Time, all []model.Outing) (Buckets, error) {
	if from.After(to) {
		return Buckets{}, fmt.Errorf("%w: %s is after %s", model.ErrInvalidDateRange,
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	candidates := make([]model.Outing, 0, len(all))
	for _, o := range all {
		if o.DateTime.Before(from) || o.DateTime.After(to) {
			continue
		}
		candidates = append(candidates, o)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DateTime.Before(candidates[j].DateTime)
	})

	var buckets Buckets
	var mine []model.Outing
	for _, o := range candidates {
		switch {
		case isMine(viewer, o):
			mine = append(mine, o)
		case !o.Scratch && o.Subs.Has(viewer.ID):
			buckets.Covering = append(buckets.Covering, o)
		default:
			buckets.Other = append(buckets.Other, o)
		}
	}

	// substituted out of their own seat: no longer the viewer's outing
	for _, o := range mine {
		if _, subbedOut := o.SetCrew[viewer.ID]; subbedOut {
			buckets.Other = append(buckets.Other, o)
			continue
		}
		buckets.Mine = append(buckets.Mine, o)
	}
	sort.SliceStable(buckets.Other, func(i, j int) bool {
		return buckets.Other[i].DateTime.Before(buckets.Other[j].DateTime)
	})

	return buckets, nil
}

func isMine(viewer Viewer, o model.Outing) bool {
	if o.BoatName != "" && viewer.Boats.Has(o.BoatName) {
		return true
	}
	if o.Coach != "" && o.Coach == viewer.DisplayName {
		return true
	}
	return o.Scratch && o.Subs.Has(viewer.ID)
}

// WeekOf returns the Monday 00:00 to Sunday 23:59:59 window containing t
func WeekOf(t time.Time) (time.Time, time.Time) {
	day := model.DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	from := day.AddDate(0, 0, -offset)
	to := from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return from, to
}
