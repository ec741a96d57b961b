package pool

import "unsafe"

// Allocate returns a pointer to a span of at least nBytes within the pool.
// Requests at or below the block stride take the fast path (detach one
// free descriptor); larger requests coalesce a contiguous run of free
// descriptors into a single span.
func (p *Pool) Allocate(nBytes uint32) (unsafe.Pointer, error) {
	ptr, err := p.allocate(nBytes)
	if err != nil {
		p.report(err)
		return nil, err
	}
	return ptr, nil
}

// allocate is Allocate without diagnostic reporting, so callers that wrap
// the error with additional context (Reallocate) do not double-report.
func (p *Pool) allocate(nBytes uint32) (unsafe.Pointer, error) {
	if uint64(nBytes) >= uint64(p.capacity) {
		return nil, ErrTooLarge
	}
	if nBytes <= p.stride {
		return p.allocateFast()
	}
	return p.allocateCoalesced(nBytes)
}

func (p *Pool) allocateFast() (unsafe.Pointer, error) {
	p.freeMu.Lock()
	idx := p.freeHead
	if idx == noLink {
		p.freeMu.Unlock()
		return nil, ErrFreeListEmpty
	}
	p.freeHead = p.descriptors[idx].next
	p.freeMu.Unlock()

	d := &p.descriptors[idx]
	d.state = stateAllocated
	d.sizeBlocks = 1
	d.next = noLink

	p.allocMu.Lock()
	d.next = p.allocHead
	p.allocHead = idx
	p.allocMu.Unlock()

	return p.blockPtr(idx), nil
}

func (p *Pool) allocateCoalesced(nBytes uint32) (unsafe.Pointer, error) {
	k := int32((uint64(nBytes) + uint64(p.stride) - 1) / uint64(p.stride))

	p.freeMu.Lock()
	if p.freeHead == noLink {
		p.freeMu.Unlock()
		return nil, ErrFreeListEmpty
	}
	headIdx, ok := p.spliceRun(k)
	if !ok {
		p.freeMu.Unlock()
		return nil, ErrFragmented
	}
	p.coalesceCount++
	p.freeMu.Unlock()

	head := &p.descriptors[headIdx]
	head.sizeBlocks = k
	head.state = stateAllocated
	head.next = noLink
	for i := int32(1); i < k; i++ {
		retired := &p.descriptors[headIdx+i]
		retired.state = stateRetired
		retired.sizeBlocks = 0
		retired.next = noLink
	}

	p.allocMu.Lock()
	head.next = p.allocHead
	p.allocHead = headIdx
	p.allocMu.Unlock()

	return p.blockPtr(headIdx), nil
}

// spliceRun scans the free list for the first run of k descriptors whose
// indices are strictly consecutive (and therefore byte-adjacent, since
// block i always sits at alignedBase + i*stride) and splices it out of
// the list in a single forward pass. Callers must hold freeMu.
func (p *Pool) spliceRun(k int32) (int32, bool) {
	var beforeRun int32 = noLink
	var runStart int32 = noLink
	var runLen int32 = 0
	var prev int32 = noLink

	cur := p.freeHead
	for cur != noLink {
		next := p.descriptors[cur].next
		if runLen > 0 && cur == runStart+runLen {
			runLen++
		} else {
			runStart = cur
			runLen = 1
			beforeRun = prev
		}
		if runLen == k {
			afterTail := next
			if beforeRun == noLink {
				p.freeHead = afterTail
			} else {
				p.descriptors[beforeRun].next = afterTail
			}
			return runStart, true
		}
		prev = cur
		cur = next
	}
	return 0, false
}
