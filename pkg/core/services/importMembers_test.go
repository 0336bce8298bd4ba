package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
)

type mockMemberSource struct {
	members []model.Member
	err     error
}

func (m *mockMemberSource) ListMembers(spreadsheetID, tab string) ([]model.Member, error) {
	return m.members, m.err
}

func TestImportMembers(t *testing.T) {
	store := newMockStore()
	logbook := 7
	store.addMember(t, model.Member{ID: "ab123", FirstName: "Al", Boats: model.NewSet("M1"), LogbookID: &logbook, Color: "#ff0000"})

	source := &mockMemberSource{members: []model.Member{
		{ID: "ab123", FirstName: "Alex", LastName: "Brown", Squad: "Men", Tags: model.NewSet("Senior")},
		{ID: "cd456", FirstName: "Chris", LastName: "Doe", Boats: model.NewSet("ignored")},
	}}

	result, err := ImportMembers(t.Context(), store, source, zap.NewNop(), "sheet-1", "Members")
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Created: 1, Updated: 1}, result)

	updated := store.member(t, "ab123")
	assert.Equal(t, "Alex", updated.FirstName)
	assert.Equal(t, model.Set{"Senior"}, updated.Tags)
	assert.Equal(t, model.Set{"M1"}, updated.Boats)
	require.NotNil(t, updated.LogbookID)
	assert.Equal(t, 7, *updated.LogbookID)
	assert.Equal(t, "#ff0000", updated.Color)

	assert.Empty(t, store.member(t, "cd456").Boats)
}

func TestImportMembers_Errors(t *testing.T) {
	store := newMockStore()

	_, err := ImportMembers(t.Context(), store, &mockMemberSource{}, zap.NewNop(), "", "Members")
	assert.Error(t, err)

	boom := errors.New("sheet missing")
	_, err = ImportMembers(t.Context(), store, &mockMemberSource{err: boom}, zap.NewNop(), "sheet-1", "Members")
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, store.members)
}
