package navigation

// openEntry is one queued cell; seq breaks f ties in insertion order
type openEntry struct {
	idx int
	f   int
	seq uint32
}

func (e openEntry) less(o openEntry) bool {
	if e.f != o.f {
		return e.f < o.f
	}
	return e.seq < o.seq
}

// openSet is a binary min-heap keyed by (f, seq)
// Decrease-key drains the heap into a spill buffer until the cell is found, then refills
type openSet struct {
	heap  []openEntry
	spill []openEntry
	seq   uint32
}

func newOpenSet(capacity int) openSet {
	return openSet{
		heap:  make([]openEntry, 0, capacity),
		spill: make([]openEntry, 0, capacity),
	}
}

func (o *openSet) reset() {
	o.heap = o.heap[:0]
	o.spill = o.spill[:0]
	o.seq = 0
}

func (o *openSet) len() int {
	return len(o.heap)
}

// add queues a cell with a fresh sequence number
func (o *openSet) add(idx, f int) {
	o.push(openEntry{idx: idx, f: f, seq: o.seq})
	o.seq++
}

func (o *openSet) push(e openEntry) {
	o.heap = append(o.heap, e)
	i := len(o.heap) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !o.heap[i].less(o.heap[parent]) {
			break
		}
		o.heap[parent], o.heap[i] = o.heap[i], o.heap[parent]
		i = parent
	}
}

func (o *openSet) pop() openEntry {
	h := o.heap
	n := len(h) - 1
	e := h[0]
	h[0] = h[n]
	o.heap = h[:n]

	i := 0
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && o.heap[right].less(o.heap[left]) {
			smallest = right
		}
		if !o.heap[smallest].less(o.heap[i]) {
			break
		}
		o.heap[i], o.heap[smallest] = o.heap[smallest], o.heap[i]
		i = smallest
	}
	return e
}

// rearrange lowers the key of a queued cell, keeping its original seq
// Reports false if idx is not queued
func (o *openSet) rearrange(idx, f int) bool {
	o.spill = o.spill[:0]
	found := false
	for len(o.heap) > 0 {
		e := o.pop()
		if e.idx == idx {
			e.f = f
			found = true
		}
		o.spill = append(o.spill, e)
		if found {
			break
		}
	}
	for _, e := range o.spill {
		o.push(e)
	}
	return found
}
