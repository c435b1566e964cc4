package search

import "container/heap"

type entry struct {
	id   int
	cost float64
	seq  uint64
}

// entryHeap orders entries by path cost; equal costs pop in insertion
// order.
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(entry))
}
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// priorityFringe is the min-cost fringe shared by both uniform-cost
// strategies.
type priorityFringe struct {
	h   entryHeap
	seq uint64
}

func (f *priorityFringe) push(id int, cost float64) {
	heap.Push(&f.h, entry{id: id, cost: cost, seq: f.seq})
	f.seq++
}

func (f *priorityFringe) pop() int {
	return heap.Pop(&f.h).(entry).id
}

func (f *priorityFringe) Len() int {
	return f.h.Len()
}
