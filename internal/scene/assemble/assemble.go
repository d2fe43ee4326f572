// Package assemble builds a complete scene graph from a generator profile.
package assemble

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/thatdc/birb-hunt/internal/assets"
	"github.com/thatdc/birb-hunt/internal/mathx"
	"github.com/thatdc/birb-hunt/internal/scene"
	"github.com/thatdc/birb-hunt/internal/scene/placement"
	"github.com/thatdc/birb-hunt/internal/scene/profile"
)

type Stats struct {
	Perimeter  int
	Rocks      int
	Trees      int
	Rejections int
}

func (s Stats) Objects() int { return s.Perimeter + s.Rocks + s.Trees }

// DebugObject is the lone object of a debug scene.
func DebugObject() scene.Object {
	return scene.Object{
		Name:     "Test",
		Model:    "Tree_03",
		Position: mgl64.Vec3{0, 0, -4},
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.Vec3{0, 0, 0},
	}
}

// Assemble returns the root group: ground first, then every object in placement order.
func Assemble(p profile.Profile, cat *assets.Catalog, s *placement.Sampler) (*scene.Group, Stats, error) {
	var st Stats
	root := scene.NewRoot()
	root.Append(scene.NewGround())

	if p.Debug {
		root.Append(DebugObject())
		return root, st, nil
	}

	a := &assembler{cat: cat, sampler: s}

	if p.Perimeter {
		for _, at := range PerimeterPositions(p.Span, p.PerimeterStep) {
			if err := a.place(assets.CategoryBigRocks, fmt.Sprintf("perimeter_rock_%d", st.Perimeter+1), &at); err != nil {
				return nil, st, err
			}
			st.Perimeter++
		}
	}
	for i := 0; i < p.Rocks; i++ {
		if err := a.place(assets.CategoryRocks, fmt.Sprintf("rock_%d", i), nil); err != nil {
			return nil, st, err
		}
		st.Rocks++
	}
	for i := 0; i < p.Trees; i++ {
		if err := a.place(assets.CategoryTrees, fmt.Sprintf("tree_%d", i), nil); err != nil {
			return nil, st, err
		}
		st.Trees++
	}

	st.Rejections = a.rejected
	for _, o := range a.objects {
		root.Append(o)
	}
	return root, st, nil
}

type assembler struct {
	cat     *assets.Catalog
	sampler *placement.Sampler

	objects   []scene.Object
	positions []mgl64.Vec3
	rejected  int
}

func (a *assembler) place(cat assets.Category, name string, at *mgl64.Vec3) error {
	pl, err := a.sampler.Sample(a.cat.In(cat), a.positions, at)
	if err != nil {
		return fmt.Errorf("place %s: %w", name, err)
	}
	a.rejected += pl.Rejected
	a.objects = append(a.objects, pl.Object(name))
	a.positions = append(a.positions, pl.Position)
	return nil
}

// PerimeterPositions walks the four edges of the span square: the x edges along z first,
// then the z edges along x. Corners appear more than once.
func PerimeterPositions(span, step int) []mgl64.Vec3 {
	lo, hi := mathx.HalfSpan(span)
	var out []mgl64.Vec3
	for _, x := range []int{lo, hi} {
		for _, z := range mathx.Steps(lo, hi, step) {
			out = append(out, mgl64.Vec3{float64(x), 0, float64(z)})
		}
	}
	for _, z := range []int{lo, hi} {
		for _, x := range mathx.Steps(lo, hi, step) {
			out = append(out, mgl64.Vec3{float64(x), 0, float64(z)})
		}
	}
	return out
}
