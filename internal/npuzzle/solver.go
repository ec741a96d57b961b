package npuzzle

import (
	"container/heap"
	"unsafe"

	"github.com/pkg/errors"

	"mempool/pool"
)

// ErrUnsolvable is returned when the fringe empties before the goal is
// reached, which should not happen for a board produced by Scramble.
var ErrUnsolvable = errors.New("npuzzle: no solution found")

// node is the A* search state. Its board snapshot lives in a span
// allocated from the pool; everything else is ordinary Go heap state
// needed to drive the search and reconstruct the solution path.
type node struct {
	boardPtr unsafe.Pointer
	board    []byte
	blankR   int
	blankC   int
	g        int
	h        int
	parent   *node
	move     Move
}

func (nd *node) f() int { return nd.g + nd.h }

// fringe is a binary min-heap over the A* open set, ordered by f() with
// h breaking ties toward states closer to the goal.
type fringe []*node

func (f fringe) Len() int { return len(f) }
func (f fringe) Less(i, j int) bool {
	if f[i].f() != f[j].f() {
		return f[i].f() < f[j].f()
	}
	return f[i].h < f[j].h
}
func (f fringe) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *fringe) Push(x interface{}) {
	*f = append(*f, x.(*node))
}
func (f *fringe) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Solver runs A* over boards allocated from a pool.Pool sized for exactly
// one n*n-byte board per block.
type Solver struct {
	pool *pool.Pool
	n    int
}

// NewSolver builds a solver for an n*n puzzle backed by p.
func NewSolver(p *pool.Pool, n int) *Solver {
	return &Solver{pool: p, n: n}
}

// Step is one move of the reconstructed solution path.
type Step struct {
	Move  Move
	Board []byte // a copy, safe to use after Solve returns
}

// Solve runs A* from start to the solved configuration and returns the
// sequence of moves (and the board after each move) that reaches it.
// Every board allocated during the search is returned to the pool before
// Solve returns, whether or not a solution was found.
func (s *Solver) Solve(start []byte) ([]Step, error) {
	blankR, blankC := locateBlank(start, s.n)
	root, err := s.allocBoard(start, blankR, blankC, 0, nil, 0)
	if err != nil {
		return nil, errors.Wrap(err, "npuzzle: allocating start state")
	}

	all := []*node{root}
	defer func() {
		for _, nd := range all {
			_ = s.pool.Release(nd.boardPtr)
		}
	}()

	open := &fringe{root}
	heap.Init(open)
	closed := make(map[string]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		key := string(cur.board)
		if closed[key] {
			continue
		}
		if cur.h == 0 {
			return reconstructPath(cur), nil
		}
		closed[key] = true

		for _, m := range allMoves {
			nr, nc, ok := step(s.n, cur.blankR, cur.blankC, m)
			if !ok {
				continue
			}
			child, err := s.allocBoard(cur.board, cur.blankR, cur.blankC, cur.g+1, cur, m)
			if err != nil {
				// The pool is exhausted or fragmented; stop expanding this
				// branch rather than failing the whole search.
				continue
			}
			swap(child.board, s.n, cur.blankR, cur.blankC, nr, nc)
			child.blankR, child.blankC = nr, nc
			child.h = manhattan(child.board, s.n)
			if closed[string(child.board)] {
				_ = s.pool.Release(child.boardPtr)
				continue
			}
			all = append(all, child)
			heap.Push(open, child)
		}
	}
	return nil, ErrUnsolvable
}

// allocBoard allocates a board span from the pool, seeds it with a copy
// of baseBoard, and wraps it in a node. The caller is responsible for any
// further mutation (a move's swap) and for recomputing h afterward.
func (s *Solver) allocBoard(baseBoard []byte, blankR, blankC, g int, parent *node, m Move) (*node, error) {
	ptr, err := s.pool.Allocate(uint32(s.n * s.n))
	if err != nil {
		return nil, err
	}
	board := unsafe.Slice((*byte)(ptr), s.n*s.n)
	copy(board, baseBoard)
	return &node{
		boardPtr: ptr,
		board:    board,
		blankR:   blankR,
		blankC:   blankC,
		g:        g,
		h:        manhattan(board, s.n),
		parent:   parent,
		move:     m,
	}, nil
}

func locateBlank(board []byte, n int) (int, int) {
	for i, v := range board {
		if v == 0 {
			return i / n, i % n
		}
	}
	return n - 1, n - 1
}

// reconstructPath walks the parent chain from the goal node back to the
// root, copying each board out of pool memory before it is released.
func reconstructPath(goal *node) []Step {
	var reversed []Step
	for nd := goal; nd.parent != nil; nd = nd.parent {
		b := make([]byte, len(nd.board))
		copy(b, nd.board)
		reversed = append(reversed, Step{Move: nd.move, Board: b})
	}
	steps := make([]Step, len(reversed))
	for i, st := range reversed {
		steps[len(reversed)-1-i] = st
	}
	return steps
}
