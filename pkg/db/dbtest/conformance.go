// Package dbtest holds the behaviour every db.Database backend must share
package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcbc/crewboard/pkg/db"
)

func ptr(s string) *string { return &s }

// Run exercises store against an empty database
func Run(t *testing.T, store db.Database) {
	t.Helper()

	t.Run("members", func(t *testing.T) { members(t, store) })
	t.Run("boats", func(t *testing.T) { boats(t, store) })
	t.Run("outings", func(t *testing.T) { outings(t, store) })
	t.Run("dailies", func(t *testing.T) { dailies(t, store) })
	t.Run("events", func(t *testing.T) { events(t, store) })
}

func members(t *testing.T, store db.Database) {
	ctx := context.Background()

	_, err := store.GetMember(ctx, "nobody")
	assert.True(t, errors.Is(err, db.ErrNotFound))

	logbook := 7
	m := &db.MemberRecord{ID: "u1", FirstName: "Ann", LastName: "Smith", Squad: "Senior", Tags: ptr("Novice"), LogbookID: &logbook}
	require.NoError(t, store.UpsertMember(ctx, m))
	require.NoError(t, store.UpsertMember(ctx, &db.MemberRecord{ID: "u0", FirstName: "Bob"}))

	got, err := store.GetMember(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, m, got)

	m.Boats = ptr("M1")
	m.Tags = nil
	require.NoError(t, store.UpsertMember(ctx, m))

	all, err := store.GetMembers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "u0", all[0].ID)
	assert.Nil(t, all[0].Boats)
	assert.Nil(t, all[1].Tags)
	assert.Equal(t, "M1", *all[1].Boats)
}

func boats(t *testing.T, store db.Database) {
	ctx := context.Background()

	_, err := store.GetBoat(ctx, "ghost")
	assert.True(t, errors.Is(err, db.ErrNotFound))

	b := &db.BoatRecord{Name: "M1", Cox: ptr("c1"), Bow: ptr("b1"), CrewType: "pair", Active: true}
	require.NoError(t, store.UpsertBoat(ctx, b))

	b.Active = false
	b.Cox = nil
	require.NoError(t, store.UpsertBoat(ctx, b))

	got, err := store.GetBoat(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	all, err := store.GetBoats(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "inactive boats are still listed")
}

func outings(t *testing.T, store db.Database) {
	ctx := context.Background()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	late := &db.OutingRecord{ID: "o2", DateTime: day.Add(18 * time.Hour), BoatName: "M1", SetCrew: ptr(`{"c1":"z9"}`)}
	early := &db.OutingRecord{ID: "o1", DateTime: day.Add(6 * time.Hour), BoatName: "W1", Scratch: true, Subs: ptr("x1,x2"), Coach: ptr("Jo")}
	outside := &db.OutingRecord{ID: "o3", DateTime: day.Add(8 * 24 * time.Hour), BoatName: "M1"}
	for _, o := range []*db.OutingRecord{late, early, outside} {
		require.NoError(t, store.UpsertOuting(ctx, o))
	}

	got, err := store.GetOuting(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, late, got)

	week, err := store.GetOutingsBetween(ctx, day, day.Add(7*24*time.Hour-time.Nanosecond))
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.Equal(t, "o1", week[0].ID)
	assert.Equal(t, "o2", week[1].ID)
	assert.True(t, week[0].Scratch)

	inclusive, err := store.GetOutingsBetween(ctx, early.DateTime, late.DateTime)
	require.NoError(t, err)
	assert.Len(t, inclusive, 2)

	require.NoError(t, store.DeleteOuting(ctx, "o2"))
	_, err = store.GetOuting(ctx, "o2")
	assert.True(t, errors.Is(err, db.ErrNotFound))
	assert.True(t, errors.Is(store.DeleteOuting(ctx, "o2"), db.ErrNotFound))
}

func dailies(t *testing.T, store db.Database) {
	ctx := context.Background()

	_, err := store.GetDaily(ctx, "2024-05-01")
	assert.True(t, errors.Is(err, db.ErrNotFound))

	first := &db.DailyRecord{Date: "2024-05-01", UserData: ptr(`{"u1":{"state":"available","notes":""}}`)}
	second := &db.DailyRecord{Date: "2024-05-03", Races: ptr("Head Race")}
	require.NoError(t, store.UpsertDaily(ctx, second))
	require.NoError(t, store.UpsertDaily(ctx, first))

	first.Events = ptr("Dinner")
	require.NoError(t, store.UpsertDaily(ctx, first))

	got, err := store.GetDaily(ctx, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	between, err := store.GetDailiesBetween(ctx, "2024-05-01", "2024-05-03")
	require.NoError(t, err)
	require.Len(t, between, 2)
	assert.Equal(t, "2024-05-01", between[0].Date)
	assert.Equal(t, "2024-05-03", between[1].Date)
}

func events(t *testing.T, store db.Database) {
	ctx := context.Background()

	e := &db.EventRecord{ID: "e1", Name: "Head Race", Date: "2024-05-03", Type: "Race", Crews: ptr("Senior")}
	require.NoError(t, store.UpsertEvent(ctx, e))
	require.NoError(t, store.UpsertEvent(ctx, &db.EventRecord{ID: "e2", Name: "Dinner", Date: "2024-04-01", Type: "Event"}))

	got, err := store.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	all, err := store.GetEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "e2", all[0].ID)

	require.NoError(t, store.DeleteEvent(ctx, "e1"))
	assert.True(t, errors.Is(store.DeleteEvent(ctx, "e1"), db.ErrNotFound))
}
