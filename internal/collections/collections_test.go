package collections

import "testing"

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]()
	q.Enqueue(40001)
	q.Enqueue(40002)

	if v, ok := q.Dequeue(); !ok || v != 40001 {
		t.Fatalf("expected 40001, got %d ok=%v", v, ok)
	}
	if v, ok := q.Dequeue(); !ok || v != 40002 {
		t.Fatalf("expected 40002, got %d ok=%v", v, ok)
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestSetAddRemove(t *testing.T) {
	s := NewSet[string]()
	s.Add("a")
	s.Add("a")
	if s.Len() != 1 {
		t.Fatalf("expected duplicate add to be a no-op, got len %d", s.Len())
	}
	if !s.Contains("a") {
		t.Fatalf("expected set to contain a")
	}
	s.Remove("a")
	if s.Contains("a") {
		t.Fatalf("expected a to be removed")
	}
}
