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

func TestViewOutings_Partitions(t *testing.T) {
	ctx := t.Context()
	logger := zap.NewNop()
	store := newMockStore()
	seedFirstEight(t, store)
	store.addBoat(t, model.Boat{Name: "2nd VIII", Seats: model.SeatMap{model.SeatBow: "r9"}, Active: true})
	store.addMember(t, model.Member{ID: "r9", FirstName: "Sam", LastName: "Lee", Boats: model.NewSet("2nd VIII")})

	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	store.addOuting(t, model.Outing{ID: "o1", DateTime: day.Add(7 * time.Hour), BoatName: "1st VIII"})
	store.addOuting(t, model.Outing{ID: "o2", DateTime: day.Add(8 * time.Hour), BoatName: "2nd VIII", Subs: model.NewSet("ab123")})
	store.addOuting(t, model.Outing{ID: "o3", DateTime: day.Add(9 * time.Hour), BoatName: "2nd VIII"})
	store.addOuting(t, model.Outing{ID: "o4", DateTime: day.Add(30 * time.Hour), BoatName: "1st VIII", SetCrew: model.Overrides{"ab123": "cd456"}})
	store.addOuting(t, model.Outing{ID: "late", DateTime: day.AddDate(0, 0, 14), BoatName: "1st VIII"})

	view, err := ViewOutings(ctx, store, logger, "ab123", day, day.AddDate(0, 0, 7))
	require.NoError(t, err)

	ids := func(views []OutingView) []string {
		var out []string
		for _, v := range views {
			out = append(out, v.Outing.ID)
		}
		return out
	}
	assert.Equal(t, []string{"o1"}, ids(view.Mine))
	assert.Equal(t, []string{"o2"}, ids(view.Covering))
	assert.Equal(t, []string{"o3", "o4"}, ids(view.Other))
	assert.Equal(t, "Alex Brown", view.Viewer.DisplayName)

	subbed := view.Other[1]
	require.NotNil(t, subbed.Crew)
	assert.Equal(t, "cd456", subbed.Crew.SubsBySeat[model.SeatStroke])
	assert.Equal(t, "ab123", subbed.Crew.DisplayCrew[model.SeatStroke])
	assert.False(t, subbed.Degraded)
}

func TestViewOutings_MalformedOverridesFallBackToBaseCrew(t *testing.T) {
	ctx := t.Context()
	store := newMockStore()
	seedFirstEight(t, store)

	when := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	bad := `{"ab123":`
	store.outings["o1"] = db.OutingRecord{ID: "o1", DateTime: when, BoatName: "1st VIII", SetCrew: &bad}

	view, err := ViewOutings(ctx, store, zap.NewNop(), "ab123", when.Add(-time.Hour), when.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, view.Mine, 1)

	v := view.Mine[0]
	assert.True(t, v.Degraded)
	require.NotNil(t, v.Crew)
	assert.Empty(t, v.Crew.SubsBySeat)
	assert.Equal(t, "ab123", v.Crew.Crew[model.SeatStroke])
}

func TestViewOutings_StaleOverrideReported(t *testing.T) {
	ctx := t.Context()
	store := newMockStore()
	seedFirstEight(t, store)

	when := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	store.addOuting(t, model.Outing{ID: "o1", DateTime: when, BoatName: "1st VIII", SetCrew: model.Overrides{"gone": "cd456"}})

	view, err := ViewOutings(ctx, store, zap.NewNop(), "ab123", when, when)
	require.NoError(t, err)
	require.Len(t, view.Mine, 1)

	res := view.Mine[0].Crew
	require.NotNil(t, res)
	require.Len(t, res.Stale, 1)
	assert.Equal(t, "gone", res.Stale[0].OriginalID)
	assert.Empty(t, res.SubsBySeat)
}

func TestViewOutings_MissingBoatLeavesCrewNil(t *testing.T) {
	ctx := t.Context()
	store := newMockStore()
	store.addMember(t, model.Member{ID: "ab123", FirstName: "Alex", LastName: "Brown", Boats: model.NewSet("Sold")})

	when := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	store.addOuting(t, model.Outing{ID: "o1", DateTime: when, BoatName: "Sold"})

	view, err := ViewOutings(ctx, store, zap.NewNop(), "ab123", when, when)
	require.NoError(t, err)
	require.Len(t, view.Mine, 1)
	assert.Nil(t, view.Mine[0].Crew)
}

func TestViewOutings_InvalidRange(t *testing.T) {
	store := newMockStore()
	from := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	_, err := ViewOutings(t.Context(), store, zap.NewNop(), "ab123", from, from.Add(-time.Second))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidDateRange))
}

func TestViewOutings_UnknownViewer(t *testing.T) {
	store := newMockStore()
	from := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	_, err := ViewOutings(t.Context(), store, zap.NewNop(), "nobody", from, from.AddDate(0, 0, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestViewOuting(t *testing.T) {
	ctx := t.Context()
	store := newMockStore()
	seedFirstEight(t, store)

	when := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	store.addOuting(t, model.Outing{ID: "o1", DateTime: when, BoatName: "1st VIII", SetCrew: model.Overrides{"ab123": "cd456"}, Subs: model.NewSet("r9")})
	store.addOuting(t, model.Outing{ID: "s1", DateTime: when, BoatName: ScratchBoatName, Scratch: true,
		ScratchCrew: model.SeatMap{model.SeatBow: "cd456"}})
	store.addOuting(t, model.Outing{ID: "gone", DateTime: when, BoatName: "Sold"})

	t.Run("rostered", func(t *testing.T) {
		v, err := ViewOuting(ctx, store, zap.NewNop(), "o1")
		require.NoError(t, err)
		require.NotNil(t, v.Crew)

		var stroke string
		for _, line := range v.Crew.Lines {
			if line.Seat == model.SeatStroke {
				stroke = line.MemberName + "/" + line.SubstituteName
			}
		}
		assert.Equal(t, "Alex Brown/Chris Doe", stroke)
		assert.Equal(t, []string{"r9"}, v.Crew.CoverNames)
	})

	t.Run("scratch", func(t *testing.T) {
		v, err := ViewOuting(ctx, store, zap.NewNop(), "s1")
		require.NoError(t, err)
		require.NotNil(t, v.Crew)
		assert.Equal(t, model.SeatMap{model.SeatBow: "cd456"}, v.Crew.Crew)
	})

	t.Run("missing boat", func(t *testing.T) {
		_, err := ViewOuting(ctx, store, zap.NewNop(), "gone")
		require.Error(t, err)
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("missing outing", func(t *testing.T) {
		_, err := ViewOuting(ctx, store, zap.NewNop(), "nope")
		assert.True(t, errors.Is(err, db.ErrNotFound))
	})
}
