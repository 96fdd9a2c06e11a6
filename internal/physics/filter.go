package physics

import "github.com/jakecoffman/cp"

// Category is a collision category bit.
type Category uint

const (
	CategoryPlayer Category = 1 << iota
	CategoryAnimal
	CategoryTerrain
	CategoryCeiling
)

// Filter decides which categories a shape belongs to and collides with.
// Two shapes collide only when each one's categories intersect the other's mask.
type Filter struct {
	Categories Category
	Mask       Category
}

// Collision filters for each kind of object.
var (
	PlayerFilter  = Filter{Categories: CategoryPlayer, Mask: CategoryTerrain | CategoryCeiling | CategoryAnimal}
	AnimalFilter  = Filter{Categories: CategoryAnimal, Mask: CategoryPlayer | CategoryAnimal | CategoryTerrain}
	TerrainFilter = Filter{Categories: CategoryTerrain, Mask: CategoryPlayer | CategoryAnimal}
	CeilingFilter = Filter{Categories: CategoryCeiling, Mask: CategoryPlayer}
)

// Collides reports whether shapes with the two filters would collide.
func (f Filter) Collides(o Filter) bool {
	return f.Categories&o.Mask != 0 && o.Categories&f.Mask != 0
}

func (f Filter) toCP() cp.ShapeFilter {
	return cp.NewShapeFilter(0, uint(f.Categories), uint(f.Mask))
}
