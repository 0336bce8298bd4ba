package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSet_TrimsAndDeduplicates(t *testing.T) {
	s := NewSet(" Senior", "Novice", "", "Senior ", "Captains")
	assert.Equal(t, Set{"Senior", "Novice", "Captains"}, s)
}

func TestSet_RemoveDoesNotAlias(t *testing.T) {
	s := NewSet("a", "b", "c")
	removed := s.Remove("b")

	assert.Equal(t, Set{"a", "c"}, removed)
	assert.Equal(t, Set{"a", "b", "c"}, s)
}

func TestSet_Intersects(t *testing.T) {
	assert.True(t, NewSet("Novice", "Coaches").Intersects(NewSet("Captains", "Coaches")))
	assert.False(t, NewSet("Novice").Intersects(NewSet("Senior")))
	assert.False(t, Set(nil).Intersects(NewSet("Senior")))
}

func TestSet_Equal(t *testing.T) {
	assert.True(t, NewSet("a", "b").Equal(NewSet("b", "a")))
	assert.False(t, NewSet("a").Equal(NewSet("a", "b")))
}
