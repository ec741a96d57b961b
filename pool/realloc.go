package pool

import (
	"unsafe"

	pkgerrors "github.com/pkg/errors"
)

// Reallocate grows a span to at least nBytes, never shrinks it. If the
// span is already large enough, ptr is returned unchanged. Otherwise a
// fresh span is allocated, the original bytes are copied into it, and the
// original is released. If growth fails, the original pointer remains
// valid and nil is returned alongside the error.
func (p *Pool) Reallocate(ptr unsafe.Pointer, nBytes uint32) (unsafe.Pointer, error) {
	if ptr == nil {
		p.report(ErrNilPointer)
		return nil, ErrNilPointer
	}
	if nBytes == 0 {
		p.report(ErrZeroSize)
		return nil, ErrZeroSize
	}

	p.allocMu.Lock()
	if p.allocHead == noLink {
		p.allocMu.Unlock()
		p.report(ErrNotAllocated)
		return nil, ErrNotAllocated
	}
	idx, ok := p.indexOf(ptr)
	if !ok || !p.onAllocatedListLocked(idx) {
		p.allocMu.Unlock()
		p.report(ErrNotAllocated)
		return nil, ErrNotAllocated
	}
	currentBytes := uint64(p.descriptors[idx].sizeBlocks) * uint64(p.stride)
	if currentBytes >= uint64(nBytes) {
		p.allocMu.Unlock()
		return ptr, nil
	}
	p.allocMu.Unlock()

	newPtr, err := p.allocate(nBytes)
	if err != nil {
		wrapped := pkgerrors.Wrap(err, "reallocate: grow failed")
		p.report(wrapped)
		return nil, err
	}

	src := unsafe.Slice((*byte)(ptr), currentBytes)
	dst := unsafe.Slice((*byte)(newPtr), currentBytes)
	copy(dst, src)

	if err := p.Release(ptr); err != nil {
		p.report(pkgerrors.Wrap(err, "reallocate: releasing old span"))
	}
	return newPtr, nil
}

// onAllocatedListLocked reports whether idx is reachable from the
// allocated list head. Callers must hold allocMu.
func (p *Pool) onAllocatedListLocked(idx int32) bool {
	for cur := p.allocHead; cur != noLink; cur = p.descriptors[cur].next {
		if cur == idx {
			return true
		}
	}
	return false
}
