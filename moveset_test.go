package fairduel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticMoves(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("m%02d", i)
	}
	return labels
}

func TestNewMoveSet(t *testing.T) {
	ms, err := NewMoveSet([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)

	assert.Equal(t, 3, ms.Len())
	assert.Equal(t, []string{"rock", "paper", "scissors"}, ms.Labels())
	assert.Equal(t, "paper", ms.Label(1))

	i, ok := ms.Index("scissors")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = ms.Index("dynamite")
	assert.False(t, ok)
}

func TestNewMoveSet_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   error
	}{
		{"nil", nil, ErrTooFewMoves},
		{"one", []string{"rock"}, ErrTooFewMoves},
		{"two", []string{"rock", "paper"}, ErrTooFewMoves},
		{"even", []string{"a", "b", "c", "d"}, ErrEvenMoveCount},
		{"duplicate", []string{"rock", "paper", "rock"}, ErrDuplicateMove},
		{"empty label", []string{"rock", "", "scissors"}, ErrEmptyMove},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMoveSet(tc.labels)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestMoveSet_LabelsIsACopy(t *testing.T) {
	ms, err := NewMoveSet([]string{"rock", "paper", "scissors"})
	require.NoError(t, err)

	labels := ms.Labels()
	labels[0] = "mutated"
	assert.Equal(t, "rock", ms.Label(0))
}
