package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Scenery layout ---

const (
	houseRingMin    = 80.0
	houseRingSpread = 0.6
	houseJitter     = 100.0
	houseHalfWidth  = 6.0
	houseHalfDeep   = 5.0
	terrainSegments = 80 // grid is (segments+1)^2 vertices
	terrainJitter   = 1.5
)

type propCounts struct {
	houses, trees, rocks, bushes, hills int
}

var (
	desktopProps = propCounts{houses: 25, trees: 80, rocks: 100, bushes: 60, hills: 15}
	touchProps   = propCounts{houses: 16, trees: 50, rocks: 70, bushes: 40, hills: 10}
)

// Prop is one static decoration: where it stands, how big, which way it faces.
type Prop struct {
	Position mgl64.Vec3
	Radius   float64
	Rotation float64
}

// Scenery is the static dressing of the world. The simulation never reads
// it; presentation draws it.
type Scenery struct {
	WorldSize float64
	Houses    []Prop
	Trees     []Prop
	Rocks     []Prop
	Bushes    []Prop
	Hills     []Prop

	// Heights is a row-major (Segments+1)^2 grid of ground offsets spanning
	// ±WorldSize on both axes.
	Segments int
	Heights  []float64
}

// GenerateScenery lays out houses on a jittered ring, trees, rocks, bushes
// and hills scattered over the map, and a jittered ground grid. The touch
// profile gets a lighter scene.
func GenerateScenery(worldSize float64, touch bool, rng Rand) Scenery {
	counts := desktopProps
	if touch {
		counts = touchProps
	}
	sc := Scenery{WorldSize: worldSize, Segments: terrainSegments}

	n := counts.houses
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		dist := houseRingMin + rng.Float64()*(worldSize*houseRingSpread)
		x := math.Cos(angle)*dist + (rng.Float64()-0.5)*houseJitter
		z := math.Sin(angle)*dist + (rng.Float64()-0.5)*houseJitter
		sc.Houses = append(sc.Houses, Prop{
			Position: mgl64.Vec3{x, 0, z},
			Radius:   math.Hypot(houseHalfWidth, houseHalfDeep),
			Rotation: rng.Float64() * 2 * math.Pi,
		})
	}

	scatter := func(count int, spread, minR, rangeR float64) []Prop {
		out := make([]Prop, 0, count)
		for i := 0; i < count; i++ {
			out = append(out, Prop{
				Position: mgl64.Vec3{
					(rng.Float64() - 0.5) * worldSize * spread,
					0,
					(rng.Float64() - 0.5) * worldSize * spread,
				},
				Radius:   minR + rng.Float64()*rangeR,
				Rotation: rng.Float64() * 2 * math.Pi,
			})
		}
		return out
	}
	sc.Trees = scatter(counts.trees, 1.6, 2.5, 1.5)
	sc.Rocks = scatter(counts.rocks, 1.8, 0.8, 2)
	sc.Bushes = scatter(counts.bushes, 1.4, 2, 2)
	sc.Hills = scatter(counts.hills, 1.5, 20, 30)

	verts := (terrainSegments + 1) * (terrainSegments + 1)
	sc.Heights = make([]float64, verts)
	for i := range sc.Heights {
		sc.Heights[i] = rng.Float64()*2*terrainJitter - terrainJitter
	}
	return sc
}

// HeightAt returns the ground offset of the grid vertex nearest to (x, z).
func (sc Scenery) HeightAt(x, z float64) float64 {
	if len(sc.Heights) == 0 || sc.WorldSize <= 0 {
		return 0
	}
	cell := 2 * sc.WorldSize / float64(sc.Segments)
	col := int(math.Round((x + sc.WorldSize) / cell))
	row := int(math.Round((z + sc.WorldSize) / cell))
	col = clampInt(col, 0, sc.Segments)
	row = clampInt(row, 0, sc.Segments)
	return sc.Heights[row*(sc.Segments+1)+col]
}
