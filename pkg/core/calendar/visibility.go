package calendar

import (
	"sort"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// DefaultBypass holds the tags that see every calendar entry
var DefaultBypass = model.NewSet("Captains", "Coaches")

// Entries maps a date (model.DateLayout) to the race or event name recorded on it
type Entries map[string]string

// Filter decides which race and event entries a member may see
type Filter struct {
	Bypass model.Set
}

// NewFilter returns a Filter with the given bypass tags, or DefaultBypass when none are given
func NewFilter(bypass model.Set) Filter {
	if len(bypass) == 0 {
		bypass = DefaultBypass
	}
	return Filter{Bypass: bypass}
}

// FilterVisibleCalendar applies the default filter
func FilterVisibleCalendar(viewerTags model.Set, entries Entries, events []model.Event) Entries {
	return NewFilter(nil).Apply(viewerTags, entries, events)
}

// Apply returns the entries the viewer may see.
// Viewers holding a bypass tag see everything. Otherwise an entry is kept only when its
// event resolves and shares a tag with the viewer; entries naming an unknown event are hidden.
func (f Filter) Apply(viewerTags model.Set, entries Entries, events []model.Event) Entries {
	out := make(Entries, len(entries))
	if f.Privileged(viewerTags) {
		for date, name := range entries {
			out[date] = name
		}
		return out
	}

	index := indexEvents(events)
	for date, name := range entries {
		event, ok := index.lookup(date, name)
		if !ok {
			continue
		}
		if viewerTags.Intersects(event.Crews) {
			out[date] = name
		}
	}
	return out
}

// Privileged reports whether the viewer holds a bypass tag
func (f Filter) Privileged(viewerTags model.Set) bool {
	return viewerTags.Intersects(f.Bypass)
}

// Unresolved lists, in date order, the entries whose event cannot be found
func Unresolved(entries Entries, events []model.Event) []string {
	index := indexEvents(events)
	var dates []string
	for date, name := range entries {
		if _, ok := index.lookup(date, name); !ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

// VisibleBoats returns the boats whose tags intersect the viewer's.
// Untagged boats are open to everyone.
func (f Filter) VisibleBoats(viewerTags model.Set, boats []model.Boat) []model.Boat {
	privileged := f.Privileged(viewerTags)
	out := make([]model.Boat, 0, len(boats))
	for _, b := range boats {
		if privileged || len(b.Tags) == 0 || viewerTags.Intersects(b.Tags) {
			out = append(out, b)
		}
	}
	return out
}

type eventIndex map[string][]model.Event

func indexEvents(events []model.Event) eventIndex {
	index := make(eventIndex, len(events))
	for _, e := range events {
		index[e.Name] = append(index[e.Name], e)
	}
	return index
}

// lookup prefers the event with the given name held on the entry's date
func (idx eventIndex) lookup(date, name string) (model.Event, bool) {
	candidates := idx[name]
	if len(candidates) == 0 {
		return model.Event{}, false
	}
	for _, e := range candidates {
		if e.Date.Format(model.DateLayout) == date {
			return e, true
		}
	}
	return candidates[0], true
}
