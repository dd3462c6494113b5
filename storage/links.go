package storage

import (
	"fmt"
	"math"
	"unsafe"
)

// index is the set of link widths a list array may use
type index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// linker is the width-erased view of a links[I] used by Storage and Pool
type linker interface {
	acquire() (int, bool)
	release(i int)
	first() (int, bool)
	next(i int) int
	prev(i int) int
	count() int
	capacity() int
	width() int
	reset()
}

// link is one slot's position in either the free or the used list
type link[I index] struct {
	prev I
	next I
}

// links partitions capacity slots between two circular doubly-linked lists
// nilIndex (the maximum value of I) marks an empty list head
type links[I index] struct {
	nodes []link[I]
	used  I
	free  I
	n     int

	// live tracks ownership for pooldebug builds only
	live []bool
}

// newLinker picks the narrowest link width whose maximum value can serve as the empty-list sentinel
func newLinker(capacity int) linker {
	switch {
	case capacity <= math.MaxUint8:
		return newLinks[uint8](capacity)
	case capacity <= math.MaxUint16:
		return newLinks[uint16](capacity)
	case uint64(capacity) <= math.MaxUint32:
		return newLinks[uint32](capacity)
	default:
		return newLinks[uint64](capacity)
	}
}

func newLinks[I index](capacity int) *links[I] {
	l := &links[I]{
		nodes: make([]link[I], capacity),
	}
	if debugAssertions {
		l.live = make([]bool, capacity)
	}
	l.reset()
	return l
}

func nilIndex[I index]() I {
	return ^I(0)
}

// reset links every slot into the free list in index order
func (l *links[I]) reset() {
	last := len(l.nodes) - 1
	for i := range l.nodes {
		p, n := i-1, i+1
		if i == 0 {
			p = last
		}
		if i == last {
			n = 0
		}
		l.nodes[i] = link[I]{prev: I(p), next: I(n)}
	}
	l.free = 0
	l.used = nilIndex[I]()
	l.n = 0
	clear(l.live)
}

func (l *links[I]) connect(a, b I) {
	l.nodes[a].next = b
	l.nodes[b].prev = a
}

// unlink removes i from the list whose head is *head
func (l *links[I]) unlink(i I, head *I) {
	node := l.nodes[i]
	if node.next == i {
		*head = nilIndex[I]()
		return
	}
	l.connect(node.prev, node.next)
	if *head == i {
		*head = node.next
	}
}

// append inserts i before *head, making it the list tail
func (l *links[I]) append(i I, head *I) {
	if *head == nilIndex[I]() {
		l.nodes[i] = link[I]{prev: i, next: i}
		*head = i
		return
	}
	tail := l.nodes[*head].prev
	l.connect(tail, i)
	l.connect(i, *head)
}

func (l *links[I]) acquire() (int, bool) {
	if l.free == nilIndex[I]() {
		return 0, false
	}
	i := l.free
	l.unlink(i, &l.free)
	l.append(i, &l.used)
	l.n++
	if debugAssertions {
		l.live[i] = true
	}
	return int(i), true
}

func (l *links[I]) release(i int) {
	if debugAssertions {
		if i < 0 || i >= len(l.nodes) || !l.live[i] {
			panic(fmt.Errorf("%w: slot %d", ErrInvalidOwnership, i))
		}
		l.live[i] = false
	}
	idx := I(i)
	l.unlink(idx, &l.used)
	l.append(idx, &l.free)
	l.n--
}

func (l *links[I]) first() (int, bool) {
	if l.used == nilIndex[I]() {
		return 0, false
	}
	return int(l.used), true
}

func (l *links[I]) next(i int) int {
	return int(l.nodes[i].next)
}

func (l *links[I]) prev(i int) int {
	return int(l.nodes[i].prev)
}

func (l *links[I]) count() int {
	return l.n
}

func (l *links[I]) capacity() int {
	return len(l.nodes)
}

// width returns the size in bytes of one link field
func (l *links[I]) width() int {
	var zero I
	return int(unsafe.Sizeof(zero))
}

// walk yields used indices in linked order
// The index being visited may be released by fn; the walk is bounded by the count at entry
func walk(l linker, fn func(int) bool) {
	i, ok := l.first()
	if !ok {
		return
	}
	for remaining := l.count(); remaining > 0; remaining-- {
		next := l.next(i)
		if !fn(i) {
			return
		}
		i = next
	}
}
