package membership

import (
	"sort"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// Op is the kind of change made to a member's boat set
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Mutation adds or removes one boat from one member's boat set
type Mutation struct {
	MemberID string
	Boat     string
	Op       Op
}

// SyncBoatMembership computes the membership changes caused by replacing a boat's
// seat map. Members who leave the boat lose it, members who join gain it, and members
// who only change seat are untouched. Mutations are ordered by member identifier.
func SyncBoatMembership(boat string, oldSeats, newSeats model.SeatMap) []Mutation {
	before := model.NewSet(oldSeats.Occupants()...)
	after := model.NewSet(newSeats.Occupants()...)

	var mutations []Mutation
	for _, id := range before {
		if !after.Has(id) {
			mutations = append(mutations, Mutation{MemberID: id, Boat: boat, Op: OpRemove})
		}
	}
	for _, id := range after {
		if !before.Has(id) {
			mutations = append(mutations, Mutation{MemberID: id, Boat: boat, Op: OpAdd})
		}
	}

	sortMutations(mutations)
	return mutations
}

// Apply applies the mutations addressed to member and reports whether its boat set changed.
// Applying the same mutations twice changes nothing the second time.
func Apply(member *model.Member, mutations []Mutation) bool {
	changed := false
	for _, m := range mutations {
		if m.MemberID != member.ID {
			continue
		}
		switch m.Op {
		case OpAdd:
			if !member.Boats.Has(m.Boat) {
				member.Boats = member.Boats.Add(m.Boat)
				changed = true
			}
		case OpRemove:
			if member.Boats.Has(m.Boat) {
				member.Boats = member.Boats.Remove(m.Boat)
				changed = true
			}
		}
	}
	return changed
}

// Reconcile computes the mutations that make every member's boat set equal the boats
// whose seat maps list them. Members other than those given are ignored.
func Reconcile(boats []model.Boat, members []model.Member) []Mutation {
	seated := make(map[string]model.Set, len(members))
	for _, b := range boats {
		for _, id := range b.Seats.Occupants() {
			seated[id] = seated[id].Add(b.Name)
		}
	}

	var mutations []Mutation
	for _, m := range members {
		want := seated[m.ID]
		for _, boat := range m.Boats {
			if !want.Has(boat) {
				mutations = append(mutations, Mutation{MemberID: m.ID, Boat: boat, Op: OpRemove})
			}
		}
		for _, boat := range want {
			if !m.Boats.Has(boat) {
				mutations = append(mutations, Mutation{MemberID: m.ID, Boat: boat, Op: OpAdd})
			}
		}
	}

	sortMutations(mutations)
	return mutations
}

// Affected returns the distinct member identifiers named by the mutations
func Affected(mutations []Mutation) []string {
	ids := model.NewSet()
	for _, m := range mutations {
		ids = ids.Add(m.MemberID)
	}
	return ids
}

func sortMutations(mutations []Mutation) {
	sort.SliceStable(mutations, func(i, j int) bool {
		if mutations[i].MemberID != mutations[j].MemberID {
			return mutations[i].MemberID < mutations[j].MemberID
		}
		if mutations[i].Boat != mutations[j].Boat {
			return mutations[i].Boat < mutations[j].Boat
		}
		return mutations[i].Op < mutations[j].Op
	})
}
