package crew

import (
	"fmt"
	"sort"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// Directory resolves member identifiers to display names
type Directory interface {
	DisplayName(memberID string) (string, bool)
}

// Members is a Directory over a fixed snapshot of member records
type Members map[string]model.Member

// NewDirectory indexes members by identifier
func NewDirectory(members []model.Member) Members {
	dir := make(Members, len(members))
	for _, m := range members {
		dir[m.ID] = m
	}
	return dir
}

func (m Members) DisplayName(memberID string) (string, bool) {
	member, ok := m[memberID]
	if !ok {
		return "", false
	}
	return member.DisplayName(), true
}

// StaleOverride is a substitution whose original member no longer holds a seat in the boat
type StaleOverride struct {
	OriginalID   string
	SubstituteID string
}

func (s StaleOverride) Error() string {
	return fmt.Sprintf("%s: %s no longer holds a seat (substitute %s)", model.ErrOrphanedSubstitution, s.OriginalID, s.SubstituteID)
}

func (s StaleOverride) Unwrap() error {
	return model.ErrOrphanedSubstitution
}

// SeatLine is one display row of a resolved crew
type SeatLine struct {
	Seat           model.Seat
	MemberID       string
	MemberName     string
	SubstituteID   string
	SubstituteName string
}

// Resolution is the effective crew of an outing
type Resolution struct {
	// Crew holds the seat occupants the outing is resolved against
	Crew model.SeatMap
	// SubsBySeat holds the substitute covering each seat, if any
	SubsBySeat model.SeatMap
	// DisplayCrew keeps the original occupant at every seat; substitutes are annotations
	DisplayCrew model.SeatMap
	Lines       []SeatLine
	Covers      []string
	CoverNames  []string
	Stale       []StaleOverride
}

// ResolveCrew computes the effective crew of an outing.
// Rostered outings resolve against the boat's current seat map, so boat must be
// non-nil unless the outing is scratch. Overrides whose original member no
// longer holds a seat are kept out of SubsBySeat and reported in Stale.
func ResolveCrew(outing model.Outing, boat *model.Boat, dir Directory) (*Resolution, error) {
	return resolve(outing, boat, dir, true)
}

// ResolveBase computes the crew without applying any substitution overrides.
// It is the fallback view when an outing's overrides are malformed.
func ResolveBase(outing model.Outing, boat *model.Boat, dir Directory) (*Resolution, error) {
	return resolve(outing, boat, dir, false)
}

func resolve(outing model.Outing, boat *model.Boat, dir Directory, withOverrides bool) (*Resolution, error) {
	res := &Resolution{
		SubsBySeat: model.SeatMap{},
		Covers:     append([]string{}, outing.Subs...),
	}

	if outing.Scratch {
		res.Crew = outing.ScratchCrew.Clone()
	} else {
		if boat == nil {
			return nil, fmt.Errorf("%w: no boat %q for outing %s", model.ErrNotFound, outing.BoatName, outing.ID)
		}
		res.Crew = boat.Seats.Clone()

		if withOverrides && len(outing.SetCrew) > 0 {
			if err := outing.SetCrew.Validate(); err != nil {
				return nil, fmt.Errorf("outing %s: %w", outing.ID, err)
			}

			originals := make([]string, 0, len(outing.SetCrew))
			for original := range outing.SetCrew {
				originals = append(originals, original)
			}
			sort.Strings(originals)

			for _, original := range originals {
				substitute := outing.SetCrew[original]
				seat, ok := res.Crew.SeatOf(original)
				if !ok {
					res.Stale = append(res.Stale, StaleOverride{OriginalID: original, SubstituteID: substitute})
					continue
				}
				res.SubsBySeat[seat] = substitute
			}
		}
	}

	res.DisplayCrew = res.Crew.Clone()

	for _, seat := range model.Seats {
		memberID, ok := res.Crew[seat]
		if !ok {
			continue
		}
		line := SeatLine{
			Seat:       seat,
			MemberID:   memberID,
			MemberName: nameOf(dir, memberID),
		}
		if substitute, ok := res.SubsBySeat[seat]; ok {
			line.SubstituteID = substitute
			line.SubstituteName = nameOf(dir, substitute)
		}
		res.Lines = append(res.Lines, line)
	}

	for _, cover := range res.Covers {
		res.CoverNames = append(res.CoverNames, nameOf(dir, cover))
	}

	return res, nil
}

// UnseatedCoverNames returns the names of covers who neither hold a seat nor
// substitute for one. Scratch crews and member substitutes are listed in subs
// as well, so this is the list to show alongside the seats.
func (r *Resolution) UnseatedCoverNames() []string {
	var names []string
	for i, cover := range r.Covers {
		if _, seated := r.Crew.SeatOf(cover); seated {
			continue
		}
		if _, substituting := r.SubsBySeat.SeatOf(cover); substituting {
			continue
		}
		names = append(names, r.CoverNames[i])
	}
	return names
}

// nameOf falls back to the raw identifier when the member is unknown
func nameOf(dir Directory, memberID string) string {
	if dir == nil {
		return memberID
	}
	if name, ok := dir.DisplayName(memberID); ok {
		return name
	}
	return memberID
}
