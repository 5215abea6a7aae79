package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// DefaultPeripheralNodes is the number of pulsing nodes scattered per scene.
const DefaultPeripheralNodes = 15

// pulsePeriod is the length of one brightness cycle in seconds.
const pulsePeriod = 2.0

// Anchor ties a backdrop node to its scene.
type Anchor struct {
	Scene int
}

// Spot is a node position as fractions of the scene box.
type Spot struct {
	X, Y float64
}

// Pulse describes a node's size in pixels and its phase delay in seconds.
type Pulse struct {
	Size  float64
	Delay float64
}

// Node is a read-only view of one backdrop entity.
type Node struct {
	Spot  Spot
	Pulse Pulse
}

// Backdrop holds the decorative peripheral nodes of every scene.
type Backdrop struct {
	ECS  *ecs.World
	Time float64 // seconds since mount

	filter *ecs.Filter3[Anchor, Spot, Pulse]
	counts []int
}

// NewBackdrop scatters perScene nodes over each of scenes scenes, seeded for
// reproducible layouts.
func NewBackdrop(scenes, perScene int, seed int64) *Backdrop {
	w := ecs.NewWorld(scenes*perScene + 1)
	mapper := ecs.NewMap3[Anchor, Spot, Pulse](w)
	rng := rand.New(rand.NewSource(seed))

	counts := make([]int, scenes)
	for s := 0; s < scenes; s++ {
		for i := 0; i < perScene; i++ {
			mapper.NewEntity(
				&Anchor{Scene: s},
				&Spot{X: rng.Float64(), Y: rng.Float64()},
				&Pulse{Size: rng.Float64()*2 + 1, Delay: rng.Float64() * 5},
			)
			counts[s]++
		}
	}

	return &Backdrop{
		ECS:    w,
		filter: ecs.NewFilter3[Anchor, Spot, Pulse](w),
		counts: counts,
	}
}

// Tick advances the pulse clock.
func (b *Backdrop) Tick(dt float64) {
	b.Time += dt
}

// Count returns the number of nodes anchored to scene.
func (b *Backdrop) Count(scene int) int {
	if scene < 0 || scene >= len(b.counts) {
		return 0
	}
	return b.counts[scene]
}

// Each calls fn for every node of scene.
func (b *Backdrop) Each(scene int, fn func(Node)) {
	query := b.filter.Query()
	for query.Next() {
		anchor, spot, pulse := query.Get()
		if anchor.Scene != scene {
			continue
		}
		fn(Node{Spot: *spot, Pulse: *pulse})
	}
}

// Brightness returns the node's current opacity in [0.3, 1].
func (b *Backdrop) Brightness(n Node) float64 {
	phase := (b.Time + n.Pulse.Delay) / pulsePeriod
	return 0.65 + 0.35*math.Cos(2*math.Pi*phase)
}
