package pool

import (
	stderrors "errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors. Callers compare against these with errors.Is; the pool
// never returns a negative status code, unlike the C ABI it descends from.
var (
	ErrInvalidCapacity  = stderrors.New("pool: invalid capacity")
	ErrInvalidBlockSize = stderrors.New("pool: invalid block size")
	ErrAlreadyDestroyed = stderrors.New("pool: already destroyed")
	ErrNilPointer       = stderrors.New("pool: nil pointer")
	ErrTooLarge         = stderrors.New("pool: requested size exceeds capacity")
	ErrFreeListEmpty    = stderrors.New("pool: free list exhausted")
	ErrFragmented       = stderrors.New("pool: no contiguous run satisfies request")
	ErrNotAllocated     = stderrors.New("pool: pointer not on allocated list")
	ErrZeroSize         = stderrors.New("pool: zero-size request")
)

// report writes a failure to the pool's diagnostic channel. Wrapped errors
// (those carrying a pkg/errors cause chain) are printed with their stack
// so the channel records where the failure actually originated.
func (p *Pool) report(err error) {
	reportTo(p.diag, err)
}

func reportTo(w io.Writer, err error) {
	if w == nil || err == nil {
		return
	}
	if pkgerrors.Cause(err) != err {
		fmt.Fprintf(w, "allocator error: %+v\n", err)
		return
	}
	fmt.Fprintf(w, "allocator error: %s\n", err)
}
