package storage

import (
	"fmt"
	"iter"
)

// Storage is a fixed-capacity allocator of equally sized raw byte slots
type Storage struct {
	buf      []byte
	elemSize int
	links    linker
}

// New preallocates capacity slots of elemSize bytes in one contiguous buffer
func New(elemSize, capacity int) (*Storage, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidElementSize, elemSize)
	}
	if capacity <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Storage{
		buf:      make([]byte, elemSize*capacity),
		elemSize: elemSize,
		links:    newLinker(capacity),
	}, nil
}

// Allocate moves one slot from the free list to the tail of the used list and returns its index
// The slot is zeroed
func (s *Storage) Allocate() (int, error) {
	i, ok := s.links.acquire()
	if !ok {
		return 0, ErrPoolExhausted
	}
	clear(s.Slot(i))
	return i, nil
}

// Deallocate returns a used slot to the free list
// i must be an index currently in use
func (s *Storage) Deallocate(i int) {
	s.links.release(i)
	if debugAssertions {
		clear(s.Slot(i))
	}
}

// Slot returns the bytes of slot i, capped so appends cannot spill into the neighbour
func (s *Storage) Slot(i int) []byte {
	off := i * s.elemSize
	return s.buf[off : off+s.elemSize : off+s.elemSize]
}

// Used yields occupied indices in linked order
// The yielded index may be deallocated inside the loop body
func (s *Storage) Used() iter.Seq[int] {
	return func(yield func(int) bool) {
		walk(s.links, yield)
	}
}

// Next returns the index following i in whichever list i belongs to
func (s *Storage) Next(i int) int {
	return s.links.next(i)
}

// Prev returns the index preceding i in whichever list i belongs to
func (s *Storage) Prev(i int) int {
	return s.links.prev(i)
}

// Count returns the number of live slots
func (s *Storage) Count() int {
	return s.links.count()
}

// Cap returns the slot capacity
func (s *Storage) Cap() int {
	return s.links.capacity()
}

// Full reports whether Allocate would fail
func (s *Storage) Full() bool {
	return s.links.count() == s.links.capacity()
}

// ElemSize returns the slot size in bytes
func (s *Storage) ElemSize() int {
	return s.elemSize
}

// IndexWidth returns the byte width chosen for each link field
func (s *Storage) IndexWidth() int {
	return s.links.width()
}
