package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// mockStore is an in-memory db.Database keyed the same way as the real backends
type mockStore struct {
	members map[string]db.MemberRecord
	boats   map[string]db.BoatRecord
	outings map[string]db.OutingRecord
	dailies map[string]db.DailyRecord
	events  map[string]db.EventRecord

	upsertOutingErr error
	upserts         int
}

var _ db.Database = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		members: map[string]db.MemberRecord{},
		boats:   map[string]db.BoatRecord{},
		outings: map[string]db.OutingRecord{},
		dailies: map[string]db.DailyRecord{},
		events:  map[string]db.EventRecord{},
	}
}

func notFound(what, key string) error {
	return fmt.Errorf("%s %q: %w", what, key, db.ErrNotFound)
}

func (m *mockStore) GetMember(ctx context.Context, id string) (*db.MemberRecord, error) {
	r, ok := m.members[id]
	if !ok {
		return nil, notFound("member", id)
	}
	return &r, nil
}

func (m *mockStore) GetMembers(ctx context.Context) ([]db.MemberRecord, error) {
	out := make([]db.MemberRecord, 0, len(m.members))
	for _, r := range m.members {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) UpsertMember(ctx context.Context, r *db.MemberRecord) error {
	m.upserts++
	m.members[r.ID] = *r
	return nil
}

func (m *mockStore) GetBoat(ctx context.Context, name string) (*db.BoatRecord, error) {
	r, ok := m.boats[name]
	if !ok {
		return nil, notFound("boat", name)
	}
	return &r, nil
}

func (m *mockStore) GetBoats(ctx context.Context) ([]db.BoatRecord, error) {
	out := make([]db.BoatRecord, 0, len(m.boats))
	for _, r := range m.boats {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) UpsertBoat(ctx context.Context, r *db.BoatRecord) error {
	m.upserts++
	m.boats[r.Name] = *r
	return nil
}

func (m *mockStore) GetOuting(ctx context.Context, id string) (*db.OutingRecord, error) {
	r, ok := m.outings[id]
	if !ok {
		return nil, notFound("outing", id)
	}
	return &r, nil
}

func (m *mockStore) GetOutingsBetween(ctx context.Context, from, to time.Time) ([]db.OutingRecord, error) {
	var out []db.OutingRecord
	for _, r := range m.outings {
		if !r.DateTime.Before(from) && !r.DateTime.After(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockStore) UpsertOuting(ctx context.Context, r *db.OutingRecord) error {
	if m.upsertOutingErr != nil {
		return m.upsertOutingErr
	}
	m.upserts++
	m.outings[r.ID] = *r
	return nil
}

func (m *mockStore) DeleteOuting(ctx context.Context, id string) error {
	if _, ok := m.outings[id]; !ok {
		return notFound("outing", id)
	}
	delete(m.outings, id)
	return nil
}

func (m *mockStore) GetDaily(ctx context.Context, date string) (*db.DailyRecord, error) {
	r, ok := m.dailies[date]
	if !ok {
		return nil, notFound("daily", date)
	}
	return &r, nil
}

func (m *mockStore) GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error) {
	var out []db.DailyRecord
	for date, r := range m.dailies {
		if date >= from && date <= to {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *mockStore) UpsertDaily(ctx context.Context, r *db.DailyRecord) error {
	m.upserts++
	m.dailies[r.Date] = *r
	return nil
}

func (m *mockStore) GetEvent(ctx context.Context, id string) (*db.EventRecord, error) {
	r, ok := m.events[id]
	if !ok {
		return nil, notFound("event", id)
	}
	return &r, nil
}

func (m *mockStore) GetEvents(ctx context.Context) ([]db.EventRecord, error) {
	out := make([]db.EventRecord, 0, len(m.events))
	for _, r := range m.events {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *mockStore) UpsertEvent(ctx context.Context, r *db.EventRecord) error {
	m.upserts++
	m.events[r.ID] = *r
	return nil
}

func (m *mockStore) DeleteEvent(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return notFound("event", id)
	}
	delete(m.events, id)
	return nil
}

func (m *mockStore) Close() {}

// Seeding helpers

func (m *mockStore) addMember(t *testing.T, member model.Member) {
	t.Helper()
	m.members[member.ID] = db.MemberRecordFrom(member)
}

func (m *mockStore) addBoat(t *testing.T, boat model.Boat) {
	t.Helper()
	m.boats[boat.Name] = db.BoatRecordFrom(boat)
}

func (m *mockStore) addOuting(t *testing.T, o model.Outing) {
	t.Helper()
	r, err := db.OutingRecordFrom(o)
	require.NoError(t, err)
	m.outings[o.ID] = r
}

func (m *mockStore) addEvent(t *testing.T, e model.Event) {
	t.Helper()
	m.events[e.ID] = db.EventRecordFrom(e)
}

func (m *mockStore) member(t *testing.T, id string) model.Member {
	t.Helper()
	r, ok := m.members[id]
	require.True(t, ok, "member %s not stored", id)
	return r.ToModel()
}

func (m *mockStore) boat(t *testing.T, name string) model.Boat {
	t.Helper()
	r, ok := m.boats[name]
	require.True(t, ok, "boat %s not stored", name)
	return r.ToModel()
}

func (m *mockStore) outing(t *testing.T, id string) model.Outing {
	t.Helper()
	r, ok := m.outings[id]
	require.True(t, ok, "outing %s not stored", id)
	o, err := r.ToModel()
	require.NoError(t, err)
	return o
}

func (m *mockStore) daily(t *testing.T, date string) model.Daily {
	t.Helper()
	r, ok := m.dailies[date]
	require.True(t, ok, "daily %s not stored", date)
	d, err := r.ToModel(time.UTC)
	require.NoError(t, err)
	return d
}

// seedFirstEight stores the 1st VIII with a full crew and its members
func seedFirstEight(t *testing.T, m *mockStore) model.Boat {
	t.Helper()
	seats := model.SeatMap{
		model.SeatCox:    "cx001",
		model.SeatStroke: "ab123",
		model.SeatSeven:  "r7",
		model.SeatSix:    "r6",
		model.SeatFive:   "r5",
		model.SeatFour:   "r4",
		model.SeatThree:  "r3",
		model.SeatTwo:    "r2",
		model.SeatBow:    "r1",
	}
	for _, id := range seats.Occupants() {
		m.addMember(t, model.Member{ID: id, FirstName: "Rower", LastName: id, Boats: model.NewSet("1st VIII"), Tags: model.NewSet("Senior")})
	}
	m.addMember(t, model.Member{ID: "ab123", FirstName: "Alex", LastName: "Brown", Boats: model.NewSet("1st VIII"), Tags: model.NewSet("Senior")})
	m.addMember(t, model.Member{ID: "cd456", FirstName: "Chris", LastName: "Doe", Tags: model.NewSet("Novice")})

	boat := model.Boat{Name: "1st VIII", Seats: seats, CrewType: model.CrewTypeEight, Active: true}
	m.addBoat(t, boat)
	return boat
}
