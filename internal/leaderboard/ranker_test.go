package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopN_OrdersByExpDescending(t *testing.T) {
	competitors := []Competitor{
		{ID: 1, Name: "A", Exp: 50},
		{ID: 2, Name: "B", Exp: 10},
		{ID: 3, Name: "C", Exp: 30},
	}

	top := TopN(competitors, 2)
	require.Len(t, top, 2)
	assert.Equal(t, Entry{Name: "A", Exp: 50}, top[0])
	assert.Equal(t, Entry{Name: "C", Exp: 30}, top[1])
}

func TestTopN_TiesKeepInputOrder(t *testing.T) {
	competitors := []Competitor{
		{ID: 1, Name: "First", Exp: 20},
		{ID: 2, Name: "Second", Exp: 20},
		{ID: 3, Name: "Third", Exp: 20},
	}

	top := TopN(competitors, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "First", top[0].Name)
	assert.Equal(t, "Second", top[1].Name)
	assert.Equal(t, "Third", top[2].Name)
}

func TestTopN_Bounds(t *testing.T) {
	competitors := []Competitor{{ID: 1, Name: "A", Exp: 5}}

	assert.Len(t, TopN(competitors, 10), 1)
	assert.Empty(t, TopN(competitors, 0))
	assert.Empty(t, TopN(nil, 5))
}

func TestTopN_DoesNotMutateInput(t *testing.T) {
	competitors := []Competitor{
		{ID: 1, Name: "A", Exp: 1},
		{ID: 2, Name: "B", Exp: 9},
	}

	TopN(competitors, 2)
	assert.Equal(t, int64(1), competitors[0].ID)
	assert.Equal(t, int64(2), competitors[1].ID)
}

func TestRankOf(t *testing.T) {
	competitors := []Competitor{
		{ID: 1, Name: "A", Exp: 50},
		{ID: 2, Name: "B", Exp: 10},
		{ID: 3, Name: "C", Exp: 30},
	}

	rank := RankOf(competitors, 2)
	require.NotNil(t, rank)
	assert.Equal(t, 3, *rank)

	first := RankOf(competitors, 1)
	require.NotNil(t, first)
	assert.Equal(t, 1, *first)

	assert.Nil(t, RankOf(competitors, 99))
}
