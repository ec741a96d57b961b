package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocateFastPathDisjointSpans(t *testing.T) {
	p, err := New(4096, 64)
	require.NoError(t, err)

	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < 64; i++ {
		ptr, err := p.Allocate(64)
		require.NoError(t, err)
		require.False(t, seen[ptr], "allocate returned an overlapping span")
		seen[ptr] = true
	}
}

// B1/B2: the fast/coalescing boundary sits exactly at the block stride.
func TestAllocateSizeClassification(t *testing.T) {
	p, err := New(4096, 64)
	require.NoError(t, err)

	_, err = p.Allocate(64)
	require.NoError(t, err)
	_, _, coalesced := p.Stats()
	require.Equal(t, 0, coalesced, "allocate(B) must not coalesce")

	_, err = p.Allocate(65)
	require.NoError(t, err)
	_, _, coalesced = p.Stats()
	require.Equal(t, 1, coalesced, "allocate(B+1) must coalesce exactly once")

	p2, err := New(4096, 64)
	require.NoError(t, err)
	ptr, err := p2.Allocate(3 * 64)
	require.NoError(t, err)
	require.NoError(t, p2.Release(ptr))
	_, free, coalesced := p2.Stats()
	require.Equal(t, 64, free)
	require.Equal(t, 1, coalesced)
}

func TestZeroAllocateRejectsZeroProduct(t *testing.T) {
	p, err := New(1024, 64)
	require.NoError(t, err)

	_, err = p.ZeroAllocate(0, 8)
	require.ErrorIs(t, err, ErrZeroSize)

	_, err = p.ZeroAllocate(8, 0)
	require.ErrorIs(t, err, ErrZeroSize)
}

// L2: zero_allocate fills the returned span with zero bytes.
func TestZeroAllocateFillsZero(t *testing.T) {
	p, err := New(1024, 64)
	require.NoError(t, err)

	ptr, err := p.ZeroAllocate(10, 10)
	require.NoError(t, err)
	for _, b := range unsafe.Slice((*byte)(ptr), 100) {
		require.Zero(t, b)
	}
}

func TestAllocateTooLargeWithoutScanning(t *testing.T) {
	p, err := New(1024, 64)
	require.NoError(t, err)

	_, free0, _ := p.Stats()
	_, err = p.Allocate(10000)
	require.ErrorIs(t, err, ErrTooLarge)
	_, free1, _ := p.Stats()
	require.Equal(t, free0, free1, "a too-large request must not touch the free list")
}

func TestAllocateOnExhaustedPoolReturnsError(t *testing.T) {
	p, err := New(128, 64)
	require.NoError(t, err)

	_, err = p.Allocate(64)
	require.NoError(t, err)
	_, err = p.Allocate(64)
	require.NoError(t, err)

	_, err = p.Allocate(64)
	require.ErrorIs(t, err, ErrFreeListEmpty)
}
