package race

import colorful "github.com/lucasb-eyer/go-colorful"

// Rival is a traffic car. X is fixed at spawn; Y is screen pixels and grows
// as the car falls behind the player.
type Rival struct {
	X, Y   float64
	Speed  float64
	Width  float64
	Height float64
	Hue    float64 // degrees
	Flash  float64 // seconds of collision flash left
}

// Color is the rival's livery, HSL(hue, 80%, 60%).
func (r Rival) Color() colorful.Color {
	return colorful.Hsl(r.Hue, 0.8, 0.6).Clamped()
}

// RivalPool owns every rival. Nothing outside the pool keeps pointers into
// Rivals across steps.
type RivalPool struct {
	Rivals    []Rival
	SpawnRate float64 // per second
	rng       *Rand
}

func NewRivalPool(rng *Rand, spawnRate float64) *RivalPool {
	return &RivalPool{
		Rivals:    make([]Rival, 0, RivalPoolCap*2),
		SpawnRate: spawnRate,
		rng:       rng,
	}
}

func (p *RivalPool) Len() int { return len(p.Rivals) }

func (p *RivalPool) Clear() {
	p.Rivals = p.Rivals[:0]
}

func (p *RivalPool) spawn(x, y, speed float64) {
	p.Rivals = append(p.Rivals, Rival{
		X:      x,
		Y:      y,
		Speed:  speed,
		Width:  RivalWidth,
		Height: RivalHeight,
		Hue:    float64(p.rng.Intn(360)),
	})
}

// SpawnInitial scatters the starting traffic above and below the camera so
// rivals are visible from the first frame.
func (p *RivalPool) SpawnInitial() {
	for i := 0; i < RivalInitialCount; i++ {
		p.spawn(
			p.rng.RangeF(RivalInitialMinX, RivalInitialMaxX),
			p.rng.RangeF(RivalInitialMinY, RivalInitialMaxY),
			p.rng.RangeF(RivalInitialMinV, RivalInitialMaxV),
		)
	}
}

// MaybeSpawn tops up the pool. The chance per step is SpawnRate·dt, so the
// expected spawn count per second does not depend on frame rate.
func (p *RivalPool) MaybeSpawn(dt float64) bool {
	if len(p.Rivals) >= RivalPoolCap || dt <= 0 {
		return false
	}
	if p.rng.Float64() >= Clamp(p.SpawnRate*dt, 0, 1) {
		return false
	}
	p.spawn(
		p.rng.RangeF(RivalSpawnMinX, RivalSpawnMaxX),
		RivalSpawnY,
		p.rng.RangeF(RivalSpawnMinV, RivalSpawnMaxV),
	)
	return true
}

// Advance scrolls every rival relative to the player and decays flashes.
func (p *RivalPool) Advance(playerSpeed, dt float64) {
	for i := range p.Rivals {
		r := &p.Rivals[i]
		r.Y += (r.Speed - playerSpeed) * dt
		r.Flash -= dt
		if r.Flash < 0 {
			r.Flash = 0
		}
	}
}

// Cull drops rivals that scrolled past the bottom margin, preserving the order
// of the survivors. Returns the number removed.
func (p *RivalPool) Cull(viewH float64) int {
	limit := viewH + RivalCullMargin
	kept := p.Rivals[:0]
	for _, r := range p.Rivals {
		if r.Y <= limit {
			kept = append(kept, r)
		}
	}
	removed := len(p.Rivals) - len(kept)
	// Zero the tail so stale entries are not visible through the backing array.
	for i := len(kept); i < len(p.Rivals); i++ {
		p.Rivals[i] = Rival{}
	}
	p.Rivals = kept
	return removed
}
