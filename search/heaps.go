package search

import (
	"container/heap"

	"github.com/vlsicore/mzrouter/patharena"
)

// heapItem is one entry of the near/window/completion heaps, keyed by a
// plain int64 priority, the same container/heap idiom used throughout
// this module.
type heapItem struct {
	id  patharena.PathID
	key int64
}

type itemHeap []heapItem

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func (h *itemHeap) push(id patharena.PathID, key int64) { heap.Push(h, heapItem{id: id, key: key}) }

func (h *itemHeap) peek() (heapItem, bool) {
	if len(*h) == 0 {
		return heapItem{}, false
	}
	return (*h)[0], true
}

func (h *itemHeap) pop() (heapItem, bool) {
	if len(*h) == 0 {
		return heapItem{}, false
	}
	return heap.Pop(h).(heapItem), true
}

// maxItemHeap orders heapItems with the LARGEST key on top: the max_togo
// heap holds paths nearer the goal than the sliding window's lower edge
// (togo below it), and the promotion loop peels off the farthest first as
// the window's lower edge drops past them.
type maxItemHeap []heapItem

func (h maxItemHeap) Len() int            { return len(h) }
func (h maxItemHeap) Less(i, j int) bool  { return h[i].key > h[j].key }
func (h maxItemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxItemHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *maxItemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func (h *maxItemHeap) push(id patharena.PathID, key int64) {
	heap.Push(h, heapItem{id: id, key: key})
}

func (h *maxItemHeap) peek() (heapItem, bool) {
	if len(*h) == 0 {
		return heapItem{}, false
	}
	return (*h)[0], true
}

func (h *maxItemHeap) pop() (heapItem, bool) {
	if len(*h) == 0 {
		return heapItem{}, false
	}
	return heap.Pop(h).(heapItem), true
}

// farItem is an entry of the min_adj_cost heap: its heap key
// is the adjusted cost computed once at demotion time (against the window
// position then in force), fixed for the heap's internal ordering, but cost
// and togo are kept alongside so the top entry's adjusted cost can be
// recomputed against the *current* window position ("de-normalised") when
// compared to the min_cost heap's top, without disturbing heap order.
type farItem struct {
	id   patharena.PathID
	cost int64
	togo int64
	key  int64
}

type farHeapSlice []farItem

func (h farHeapSlice) Len() int            { return len(h) }
func (h farHeapSlice) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h farHeapSlice) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *farHeapSlice) Push(x interface{}) { *h = append(*h, x.(farItem)) }
func (h *farHeapSlice) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func (h *farHeapSlice) push(it farItem) { heap.Push(h, it) }

func (h *farHeapSlice) peek() (farItem, bool) {
	if len(*h) == 0 {
		return farItem{}, false
	}
	return (*h)[0], true
}

func (h *farHeapSlice) pop() (farItem, bool) {
	if len(*h) == 0 {
		return farItem{}, false
	}
	return heap.Pop(h).(farItem), true
}

// currentAdjCost recomputes it's adjusted cost against windowMaxToGo, the
// denormalisation step used when comparing the min_adj_cost
// heap's top against the min_cost heap's top.
func currentAdjCost(it farItem, windowMaxToGo int64, penaltyApply func(int64) int64) int64 {
	overshoot := it.togo - windowMaxToGo
	return patharena.AddSat(it.cost, penaltyApply(overshoot))
}
