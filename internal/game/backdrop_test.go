package game

import (
	"math"
	"testing"
)

func collect(b *Backdrop, scene int) []Node {
	var nodes []Node
	b.Each(scene, func(n Node) { nodes = append(nodes, n) })
	return nodes
}

func TestBackdropCounts(t *testing.T) {
	b := NewBackdrop(3, DefaultPeripheralNodes, 1)
	for s := 0; s < 3; s++ {
		if b.Count(s) != DefaultPeripheralNodes {
			t.Errorf("Scene %d: expected %d nodes, got %d", s, DefaultPeripheralNodes, b.Count(s))
		}
		if got := len(collect(b, s)); got != DefaultPeripheralNodes {
			t.Errorf("Scene %d: Each visited %d nodes", s, got)
		}
	}
	if b.Count(3) != 0 || b.Count(-1) != 0 {
		t.Error("Expected no nodes for unknown scenes")
	}
}

func TestBackdropRanges(t *testing.T) {
	b := NewBackdrop(2, 50, 7)
	for _, n := range collect(b, 1) {
		if n.Spot.X < 0 || n.Spot.X >= 1 || n.Spot.Y < 0 || n.Spot.Y >= 1 {
			t.Errorf("Spot out of range: %+v", n.Spot)
		}
		if n.Pulse.Size < 1 || n.Pulse.Size >= 3 {
			t.Errorf("Size out of range: %f", n.Pulse.Size)
		}
		if n.Pulse.Delay < 0 || n.Pulse.Delay >= 5 {
			t.Errorf("Delay out of range: %f", n.Pulse.Delay)
		}
	}
}

func TestBackdropDeterministic(t *testing.T) {
	a := collect(NewBackdrop(2, 10, 42), 1)
	b := collect(NewBackdrop(2, 10, 42), 1)
	if len(a) != len(b) {
		t.Fatalf("Expected equal lengths, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Node %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBackdropBrightness(t *testing.T) {
	b := NewBackdrop(1, 1, 0)
	n := Node{Pulse: Pulse{Size: 2}}
	if got := b.Brightness(n); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected full brightness at phase 0, got %f", got)
	}
	b.Tick(1)
	if got := b.Brightness(n); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Expected dimmest at half period, got %f", got)
	}
	b.Tick(1)
	if got := b.Brightness(n); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected full brightness after one period, got %f", got)
	}
}
