package npuzzle

import "math/rand"

// Scramble starts from the goal configuration and applies complexity
// random legal blank moves, never immediately undoing the previous move.
// The result is solvable by construction, mirroring generate_start_config
// from the original C demo.
func Scramble(n, complexity int, r *rand.Rand) []byte {
	board := goalBoard(n)
	blankR, blankC := n-1, n-1
	forbidden := -1

	for i := 0; i < complexity; i++ {
		var candidates []Move
		for _, m := range allMoves {
			if int(m) == forbidden {
				continue
			}
			if _, _, ok := step(n, blankR, blankC, m); ok {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) == 0 {
			break
		}
		m := candidates[r.Intn(len(candidates))]
		nr, nc, _ := step(n, blankR, blankC, m)
		swap(board, n, blankR, blankC, nr, nc)
		blankR, blankC = nr, nc
		forbidden = int(opposite(m))
	}
	return board
}
