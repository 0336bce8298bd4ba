package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
)

func TestScheduleOuting_Single(t *testing.T) {
	store := newMockStore()
	boat := seedFirstEight(t, store)
	boat.Shell = "Empacher"
	store.addBoat(t, boat)

	start := time.Date(2024, 5, 7, 6, 30, 0, 0, time.UTC)
	created, err := ScheduleOuting(t.Context(), store, zap.NewNop(), OutingRequest{
		Start:    start,
		BoatName: "1st VIII",
		Coach:    " Jo Bloggs ",
		SetCrew:  model.Overrides{"ab123": "cd456"},
	}, 12)
	require.NoError(t, err)
	require.Len(t, created, 1)

	o := created[0]
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, start, o.DateTime)
	assert.Equal(t, "Empacher", o.Shell)
	assert.Equal(t, "Jo Bloggs", o.Coach)

	stored := store.outing(t, o.ID)
	assert.Equal(t, model.Overrides{"ab123": "cd456"}, stored.SetCrew)
}

func TestScheduleOuting_Recurring(t *testing.T) {
	store := newMockStore()
	seedFirstEight(t, store)

	start := time.Date(2024, 5, 7, 7, 0, 0, 0, time.UTC) // Tuesday

	tests := []struct {
		name     string
		rule     string
		horizon  int
		expected []string
	}{
		{
			name:     "weekly with count",
			rule:     "FREQ=WEEKLY;COUNT=3",
			horizon:  12,
			expected: []string{"2024-05-07", "2024-05-14", "2024-05-21"},
		},
		{
			name:     "twice weekly capped by horizon",
			rule:     "FREQ=WEEKLY;BYDAY=TU,TH",
			horizon:  1,
			expected: []string{"2024-05-07", "2024-05-09", "2024-05-14"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := ScheduleOuting(t.Context(), store, zap.NewNop(), OutingRequest{
				Start:      start,
				BoatName:   "1st VIII",
				Recurrence: tt.rule,
			}, tt.horizon)
			require.NoError(t, err)

			var dates []string
			ids := map[string]bool{}
			for _, o := range created {
				dates = append(dates, o.DateTime.Format(model.DateLayout))
				assert.Equal(t, 7, o.DateTime.Hour())
				ids[o.ID] = true
			}
			assert.Equal(t, tt.expected, dates)
			assert.Len(t, ids, len(created), "each occurrence gets its own id")
		})
	}
}

func TestScheduleOuting_Scratch(t *testing.T) {
	store := newMockStore()

	created, err := ScheduleOuting(t.Context(), store, zap.NewNop(), OutingRequest{
		Start:       time.Date(2024, 5, 8, 18, 0, 0, 0, time.UTC),
		Scratch:     true,
		ScratchCrew: model.SeatMap{model.SeatStroke: "x1", model.SeatBow: "x2"},
		Subs:        model.NewSet("x3"),
	}, 12)
	require.NoError(t, err)
	require.Len(t, created, 1)

	stored := store.outing(t, created[0].ID)
	assert.True(t, stored.Scratch)
	assert.Equal(t, ScratchBoatName, stored.BoatName)
	assert.Equal(t, model.SeatMap{model.SeatStroke: "x1", model.SeatBow: "x2"}, stored.ScratchCrew)
	assert.Equal(t, model.Set{"x1", "x2", "x3"}, stored.Subs, "crew first, then extra covers")
}

func TestScheduleOuting_ScratchCrewSeesOutingAsMine(t *testing.T) {
	store := newMockStore()
	seedFirstEight(t, store)
	start := time.Date(2024, 5, 8, 18, 0, 0, 0, time.UTC)

	created, err := ScheduleOuting(t.Context(), store, zap.NewNop(), OutingRequest{
		Start:       start,
		Scratch:     true,
		ScratchCrew: model.SeatMap{model.SeatBow: "cd456"},
	}, 12)
	require.NoError(t, err)
	require.Len(t, created, 1)

	view, err := ViewOutings(t.Context(), store, zap.NewNop(), "cd456", start.Add(-time.Hour), start.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, view.Mine, 1)
	assert.Equal(t, created[0].ID, view.Mine[0].Outing.ID)
	assert.Empty(t, view.Covering)
	assert.Empty(t, view.Other)
}

func TestScheduleOuting_Rejects(t *testing.T) {
	start := time.Date(2024, 5, 7, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(t *testing.T, store *mockStore)
		req     OutingRequest
		horizon int
		is      error
	}{
		{
			name: "inactive boat",
			setup: func(t *testing.T, store *mockStore) {
				store.addBoat(t, model.Boat{Name: "Old", Seats: model.SeatMap{model.SeatBow: "a"}, Active: false})
			},
			req: OutingRequest{Start: start, BoatName: "Old"},
		},
		{
			name: "unknown boat",
			req:  OutingRequest{Start: start, BoatName: "Nope"},
			is:   model.ErrNotFound,
		},
		{
			name:  "override for a member without a seat",
			setup: func(t *testing.T, store *mockStore) { seedFirstEight(t, store) },
			req:   OutingRequest{Start: start, BoatName: "1st VIII", SetCrew: model.Overrides{"cd456": "zz"}},
			is:    model.ErrOrphanedSubstitution,
		},
		{
			name:  "self substitution",
			setup: func(t *testing.T, store *mockStore) { seedFirstEight(t, store) },
			req:   OutingRequest{Start: start, BoatName: "1st VIII", SetCrew: model.Overrides{"ab123": "ab123"}},
			is:    model.ErrMalformedOverride,
		},
		{
			name: "scratch with substitutions",
			req:  OutingRequest{Start: start, Scratch: true, SetCrew: model.Overrides{"a": "b"}},
			is:   model.ErrMalformedOverride,
		},
		{
			name: "scratch crew in two seats",
			req:  OutingRequest{Start: start, Scratch: true, ScratchCrew: model.SeatMap{model.SeatBow: "a", model.SeatTwo: "a"}},
			is:   model.ErrInvalidSeatMap,
		},
		{
			name:    "bad rule",
			req:     OutingRequest{Start: start, Scratch: true, Recurrence: "FREQ=SOMETIMES"},
			horizon: 4,
		},
		{
			name: "recurrence without horizon",
			req:  OutingRequest{Start: start, Scratch: true, Recurrence: "FREQ=WEEKLY"},
		},
		{
			name: "missing start",
			req:  OutingRequest{Scratch: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			if tt.setup != nil {
				tt.setup(t, store)
			}

			_, err := ScheduleOuting(t.Context(), store, zap.NewNop(), tt.req, tt.horizon)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
			assert.Empty(t, store.outings)
		})
	}
}
