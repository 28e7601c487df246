package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a hit-scan firing ray. Dir is unit length for any ray built with NewRay.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay normalises dir. A zero direction yields a ray that hits nothing.
func NewRay(origin, dir mgl64.Vec3) Ray {
	if dir.Len() < 1e-12 {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

func (r Ray) valid() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(r.Origin[i]) || math.IsInf(r.Origin[i], 0) ||
			math.IsNaN(r.Dir[i]) || math.IsInf(r.Dir[i], 0) {
			return false
		}
	}
	return true
}

// At returns the point t units along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// HitPart is one sphere of a creature's composite hitbox, in creature-local
// coordinates (+Z is the way the creature faces).
type HitPart struct {
	Name   string
	Offset mgl64.Vec3
	Radius float64
}

// DefaultHitbox approximates the bird: body, head, wings and tail.
var DefaultHitbox = []HitPart{
	{Name: "body", Offset: mgl64.Vec3{0, 0, 0}, Radius: 1.3},
	{Name: "head", Offset: mgl64.Vec3{0, 1, 1.2}, Radius: 0.7},
	{Name: "wing_l", Offset: mgl64.Vec3{-0.8, 0.3, 0}, Radius: 0.6},
	{Name: "wing_r", Offset: mgl64.Vec3{0.8, 0.3, 0}, Radius: 0.6},
	{Name: "tail", Offset: mgl64.Vec3{0, 0.5, -1.5}, Radius: 0.5},
}

// HitResult is the outcome of a hit test. The zero value is a miss.
type HitResult struct {
	Hit        bool
	CreatureID int
	Part       string
	Distance   float64
	Point      mgl64.Vec3
}

// Miss is the result of a ray that struck nothing.
var Miss = HitResult{CreatureID: -1}

// hitPrimitive is one world-space sphere; owner resolves it back to a creature.
type hitPrimitive struct {
	center mgl64.Vec3
	radius float64
	part   string
}

// hitIndex is the flattened set of spheres for every living creature plus
// the primitive → creature table that replaces a scene-graph parent walk.
type hitIndex struct {
	prims []hitPrimitive
	owner []int
}

func buildHitIndex(creatures []Creature, hitbox []HitPart) hitIndex {
	idx := hitIndex{
		prims: make([]hitPrimitive, 0, len(creatures)*len(hitbox)),
		owner: make([]int, 0, len(creatures)*len(hitbox)),
	}
	for i := range creatures {
		c := &creatures[i]
		if !c.Alive {
			continue
		}
		rot := mgl64.Rotate3DY(c.Facing)
		for _, part := range hitbox {
			idx.prims = append(idx.prims, hitPrimitive{
				center: c.Position.Add(rot.Mul3x1(part.Offset)),
				radius: part.Radius,
				part:   part.Name,
			})
			idx.owner = append(idx.owner, c.ID)
		}
	}
	return idx
}

// ResolveHit returns the nearest living creature the ray strikes. Distances
// are in world units whatever the length of ray.Dir.
func ResolveHit(ray Ray, creatures []Creature, hitbox []HitPart) HitResult {
	if !ray.valid() {
		return Miss
	}
	ray = NewRay(ray.Origin, ray.Dir)
	if ray.Dir.Len() == 0 {
		return Miss
	}
	idx := buildHitIndex(creatures, hitbox)
	best := Miss
	for i, p := range idx.prims {
		t, ok := raySphere(ray, p.center, p.radius)
		if !ok {
			continue
		}
		if !best.Hit || t < best.Distance {
			best = HitResult{
				Hit:        true,
				CreatureID: idx.owner[i],
				Part:       p.part,
				Distance:   t,
				Point:      ray.At(t),
			}
		}
	}
	return best
}

// raySphere returns the first non-negative distance at which ray meets the
// sphere. A ray starting inside the sphere hits at its exit point.
func raySphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	if t1 < 0 {
		return 0, false
	}
	if t0 >= 0 {
		return t0, true
	}
	return t1, true
}
