package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

func seedOuting(t *testing.T, store *mockStore) model.Outing {
	t.Helper()
	seedFirstEight(t, store)
	o := model.Outing{ID: "o1", DateTime: time.Date(2024, 5, 7, 7, 0, 0, 0, time.UTC), BoatName: "1st VIII"}
	store.addOuting(t, o)
	return o
}

func TestAddSubstitute(t *testing.T) {
	store := newMockStore()
	seedOuting(t, store)

	o, err := AddSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123", "cd456")
	require.NoError(t, err)
	assert.Equal(t, model.Overrides{"ab123": "cd456"}, o.SetCrew)
	assert.Equal(t, model.Set{"cd456"}, store.outing(t, "o1").Subs)

	// replacing the substitute keeps a single entry per original
	_, err = AddSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123", "Guest Rower")
	require.NoError(t, err)
	stored := store.outing(t, "o1")
	assert.Equal(t, model.Overrides{"ab123": "Guest Rower"}, stored.SetCrew)
	assert.Empty(t, stored.Subs, "free-text substitutes are not added to subs")
}

func TestAddSubstitute_SubstituteIsCovering(t *testing.T) {
	store := newMockStore()
	o := seedOuting(t, store)

	_, err := AddSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123", "cd456")
	require.NoError(t, err)

	view, err := ViewOutings(t.Context(), store, zap.NewNop(), "cd456", o.DateTime.Add(-time.Hour), o.DateTime.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, view.Covering, 1)
	assert.Equal(t, "o1", view.Covering[0].Outing.ID)
	assert.Empty(t, view.Mine)
	assert.Empty(t, view.Other)

	_, err = RemoveSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123")
	require.NoError(t, err)

	view, err = ViewOutings(t.Context(), store, zap.NewNop(), "cd456", o.DateTime.Add(-time.Hour), o.DateTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, view.Covering)
	assert.Len(t, view.Other, 1)
}

func TestAddSubstitute_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		outingID   string
		original   string
		substitute string
		is         error
	}{
		{name: "original holds no seat", outingID: "o1", original: "cd456", substitute: "zz", is: model.ErrOrphanedSubstitution},
		{name: "self substitution", outingID: "o1", original: "ab123", substitute: "ab123", is: model.ErrMalformedOverride},
		{name: "blank substitute", outingID: "o1", original: "ab123", substitute: " ", is: model.ErrMalformedOverride},
		{name: "scratch outing", outingID: "s1", original: "x1", substitute: "x2", is: model.ErrMalformedOverride},
		{name: "unknown outing", outingID: "nope", original: "ab123", substitute: "cd456", is: db.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			seedOuting(t, store)
			store.addOuting(t, model.Outing{ID: "s1", BoatName: ScratchBoatName, Scratch: true, ScratchCrew: model.SeatMap{model.SeatBow: "x1"}})

			_, err := AddSubstitute(t.Context(), store, zap.NewNop(), tt.outingID, tt.original, tt.substitute)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
			assert.Nil(t, store.outing(t, "o1").SetCrew)
		})
	}
}

func TestAddSubstitute_RefusesMalformedRecord(t *testing.T) {
	store := newMockStore()
	seedOuting(t, store)
	bad := `not json`
	r := store.outings["o1"]
	r.SetCrew = &bad
	store.outings["o1"] = r

	_, err := AddSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123", "cd456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedOverride))
	assert.Equal(t, &bad, store.outings["o1"].SetCrew)
}

func TestRemoveSubstitute(t *testing.T) {
	store := newMockStore()
	o := seedOuting(t, store)
	o.SetCrew = model.Overrides{"ab123": "cd456", "r1": "zz"}
	o.Subs = model.NewSet("cd456")
	store.addOuting(t, o)

	updated, err := RemoveSubstitute(t.Context(), store, zap.NewNop(), "o1", "ab123")
	require.NoError(t, err)
	assert.Equal(t, model.Overrides{"r1": "zz"}, updated.SetCrew)
	assert.Empty(t, updated.Subs)

	_, err = RemoveSubstitute(t.Context(), store, zap.NewNop(), "o1", "r1")
	require.NoError(t, err)
	assert.Nil(t, store.outing(t, "o1").SetCrew, "empty overrides are stored as null")

	_, err = RemoveSubstitute(t.Context(), store, zap.NewNop(), "o1", "r1")
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestAddCover(t *testing.T) {
	store := newMockStore()
	seedOuting(t, store)

	_, err := AddCover(t.Context(), store, zap.NewNop(), "o1", "cd456")
	require.NoError(t, err)
	writes := store.upserts

	o, err := AddCover(t.Context(), store, zap.NewNop(), "o1", "cd456")
	require.NoError(t, err)
	assert.Equal(t, model.Set{"cd456"}, o.Subs)
	assert.Equal(t, writes, store.upserts, "second add does not write")

	_, err = AddCover(t.Context(), store, zap.NewNop(), "o1", "")
	assert.Error(t, err)
}

func TestDeleteOuting(t *testing.T) {
	store := newMockStore()
	seedOuting(t, store)

	require.NoError(t, DeleteOuting(t.Context(), store, zap.NewNop(), "o1"))
	assert.Empty(t, store.outings)

	err := DeleteOuting(t.Context(), store, zap.NewNop(), "o1")
	assert.True(t, errors.Is(err, db.ErrNotFound))
}
