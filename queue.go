package wfc

import "container/heap"

// entropyEntry is a cell position with the entropy it had when pushed.
// Entries go stale as cells change; the solver checks the live cell on pop.
type entropyEntry struct {
	pos     int
	entropy float64
	noise   float64 // tie-break between equal entropies
}

type entropyQueue []entropyEntry

func (q entropyQueue) Len() int { return len(q) }

func (q entropyQueue) Less(i, j int) bool {
	if q[i].entropy != q[j].entropy {
		return q[i].entropy < q[j].entropy
	}
	return q[i].noise < q[j].noise
}

func (q entropyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *entropyQueue) Push(x any) { *q = append(*q, x.(entropyEntry)) }

func (q *entropyQueue) Pop() any {
	old := *q
	e := old[len(old)-1]
	*q = old[:len(old)-1]
	return e
}

func (q *entropyQueue) push(e entropyEntry) { heap.Push(q, e) }

func (q *entropyQueue) pop() (entropyEntry, bool) {
	if q.Len() == 0 {
		return entropyEntry{}, false
	}
	return heap.Pop(q).(entropyEntry), true
}
