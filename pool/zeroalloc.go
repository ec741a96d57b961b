package pool

import "unsafe"

// ZeroAllocate allocates a span of count*elemSize bytes and zeroes it
// before returning. The product must be nonzero.
func (p *Pool) ZeroAllocate(count, elemSize uint32) (unsafe.Pointer, error) {
	n := uint64(count) * uint64(elemSize)
	if n == 0 {
		p.report(ErrZeroSize)
		return nil, ErrZeroSize
	}
	if n > 0xFFFFFFFF {
		p.report(ErrTooLarge)
		return nil, ErrTooLarge
	}

	ptr, err := p.allocate(uint32(n))
	if err != nil {
		p.report(err)
		return nil, err
	}

	clear(unsafe.Slice((*byte)(ptr), n))
	return ptr, nil
}
