package storage

import (
	"fmt"
	"iter"
	"unsafe"
)

// Resetter is implemented by values that release resources before their slot is recycled
type Resetter interface {
	Reset()
}

// Pool is a fixed-capacity typed allocator backed by the same free/used lists as Storage
// Pointers returned by Allocate stay valid until the value is deallocated
type Pool[T any] struct {
	items []T
	links linker
}

// NewPool creates a pool holding up to capacity values of T
func NewPool[T any](capacity int) (*Pool[T], error) {
	if capacity <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	// Zero-size values share one address, so slots could not be told apart
	if unsafe.Sizeof(*new(T)) == 0 {
		return nil, fmt.Errorf("%w: zero-size type %T", ErrInvalidElementSize, *new(T))
	}
	return &Pool[T]{
		items: make([]T, capacity),
		links: newLinker(capacity),
	}, nil
}

// MustNewPool is NewPool for static capacities, panics on error
func MustNewPool[T any](capacity int) *Pool[T] {
	p, err := NewPool[T](capacity)
	if err != nil {
		panic(err)
	}
	return p
}

// Allocate takes a free slot and returns a pointer to its zero value
func (p *Pool[T]) Allocate() (*T, error) {
	i, ok := p.links.acquire()
	if !ok {
		return nil, ErrPoolExhausted
	}
	var zero T
	p.items[i] = zero
	return &p.items[i], nil
}

// Deallocate runs the value's Reset hook if any, zeroes it and frees its slot
// v must have been returned by Allocate on this pool and not yet deallocated
func (p *Pool[T]) Deallocate(v *T) {
	i := p.IndexOf(v)
	p.release(i)
}

func (p *Pool[T]) release(i int) {
	p.links.release(i)
	if r, ok := any(&p.items[i]).(Resetter); ok {
		r.Reset()
	}
	var zero T
	p.items[i] = zero
}

// IndexOf returns the slot index of a pointer obtained from Allocate
func (p *Pool[T]) IndexOf(v *T) int {
	size := unsafe.Sizeof(p.items[0])
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.items)))
	addr := uintptr(unsafe.Pointer(v))
	if debugAssertions {
		if addr < base || (addr-base)%size != 0 || int((addr-base)/size) >= len(p.items) {
			panic(fmt.Errorf("%w: pointer %p outside pool", ErrInvalidOwnership, v))
		}
	}
	return int((addr - base) / size)
}

// At returns the value stored at slot i, live or not
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// All yields live values in linked order
// The yielded value may be deallocated inside the loop body
func (p *Pool[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		walk(p.links, func(i int) bool {
			return yield(&p.items[i])
		})
	}
}

// Indexed yields slot index and value pairs in linked order
func (p *Pool[T]) Indexed() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		walk(p.links, func(i int) bool {
			return yield(i, &p.items[i])
		})
	}
}

// Clear deallocates every live value
func (p *Pool[T]) Clear() {
	for v := range p.All() {
		p.Deallocate(v)
	}
}

// Len returns the number of live values
func (p *Pool[T]) Len() int {
	return p.links.count()
}

// Cap returns the value capacity
func (p *Pool[T]) Cap() int {
	return p.links.capacity()
}

// Full reports whether Allocate would fail
func (p *Pool[T]) Full() bool {
	return p.links.count() == p.links.capacity()
}

// Empty reports whether no value is live
func (p *Pool[T]) Empty() bool {
	return p.links.count() == 0
}

// IndexWidth returns the byte width chosen for each link field
func (p *Pool[T]) IndexWidth() int {
	return p.links.width()
}
