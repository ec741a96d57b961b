package npuzzle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoalBoardIsZeroDistanceFromItself(t *testing.T) {
	board := goalBoard(4)
	require.Equal(t, 0, manhattan(board, 4))
}

func TestScrambleProducesAPermutationOfTheGoal(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	board := Scramble(4, 50, r)

	counts := make(map[byte]int)
	for _, v := range board {
		counts[v]++
	}
	for v := byte(0); v < 16; v++ {
		require.Equal(t, 1, counts[v], "tile %d should appear exactly once", v)
	}
}

func TestStepStaysInBounds(t *testing.T) {
	_, _, ok := step(3, 0, 0, MoveUp)
	require.False(t, ok)
	_, _, ok = step(3, 0, 0, MoveLeft)
	require.False(t, ok)

	r, c, ok := step(3, 0, 0, MoveRight)
	require.True(t, ok)
	require.Equal(t, 0, r)
	require.Equal(t, 1, c)
}

func TestOppositeMoveIsInvolutive(t *testing.T) {
	for _, m := range allMoves {
		require.Equal(t, m, opposite(opposite(m)))
	}
}
