package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSetAnswerKeepsFirstPosition(t *testing.T) {
	s := NewSession("1", "name")

	s.SetAnswer("name", "Alice")
	s.SetAnswer("age", int64(30))
	s.SetAnswer("name", "Alicia")

	assert.Equal(t, []string{"name", "age"}, s.Order)
	assert.Equal(t, "Alicia", s.Answers["name"])
}

func TestSessionAnswer(t *testing.T) {
	s := NewSession("1", "name")
	s.SetAnswer("name", "Alice")

	v, ok := s.Answer("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", v)

	_, ok = s.Answer("age")
	assert.False(t, ok)
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := NewSession("1", "name")
	s.SetAnswer("name", "Alice")

	cp := s.Clone()
	cp.SetAnswer("age", int64(30))
	cp.Answers["name"] = "Mallory"

	assert.Equal(t, "Alice", s.Answers["name"])
	assert.Equal(t, []string{"name"}, s.Order)
}
