package assemble

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/thatdc/birb-hunt/internal/assets"
	"github.com/thatdc/birb-hunt/internal/scene"
	"github.com/thatdc/birb-hunt/internal/scene/placement"
	"github.com/thatdc/birb-hunt/internal/scene/profile"
)

func builtin(t *testing.T, id string) profile.Profile {
	t.Helper()
	cfg, err := profile.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	p, ok := cfg.Profile(id)
	if !ok {
		t.Fatalf("missing profile %s", id)
	}
	return p
}

func run(t *testing.T, p profile.Profile, seed int64) (*scene.Group, Stats) {
	t.Helper()
	s := placement.New(p.Span, p.CollisionThreshold, p.MaxAttempts, rand.New(rand.NewSource(seed)))
	root, st, err := Assemble(p, assets.Default(), s)
	if err != nil {
		t.Fatalf("assemble %s: %v", p.ID, err)
	}
	return root, st
}

func TestAssemble_PerimeterProfile(t *testing.T) {
	p := builtin(t, "perimeter")
	root, st := run(t, p, 42)

	if err := scene.CheckLayout(root); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if st.Perimeter != 200 || st.Rocks != 50 || st.Trees != 300 {
		t.Fatalf("stats=%+v", st)
	}
	objs := root.Objects()
	if len(objs) != st.Objects() || len(root.Children) != st.Objects()+1 {
		t.Fatalf("objects=%d children=%d stats=%+v", len(objs), len(root.Children), st)
	}
	if objs[0].Name != "perimeter_rock_1" || objs[199].Name != "perimeter_rock_200" {
		t.Fatalf("perimeter names: %s..%s", objs[0].Name, objs[199].Name)
	}
	if objs[200].Name != "rock_0" || objs[250].Name != "tree_0" || objs[len(objs)-1].Name != "tree_299" {
		t.Fatalf("placement order broken: %s %s %s", objs[200].Name, objs[250].Name, objs[len(objs)-1].Name)
	}

	cat := assets.Default()
	for i, o := range objs {
		e, ok := cat.Lookup(o.Model)
		if !ok {
			t.Fatalf("%s: unknown model %s", o.Name, o.Model)
		}
		switch {
		case strings.HasPrefix(o.Name, "perimeter_rock_"):
			if e.Kind != assets.KindBigRock {
				t.Fatalf("%s: model %s is not a big rock", o.Name, o.Model)
			}
		case strings.HasPrefix(o.Name, "rock_"):
			if e.Kind != assets.KindBigRock && e.Kind != assets.KindSmallRock {
				t.Fatalf("%s: model %s is not a rock", o.Name, o.Model)
			}
		case strings.HasPrefix(o.Name, "tree_"):
			if e.Kind != assets.KindTree {
				t.Fatalf("%s: model %s is not a tree", o.Name, o.Model)
			}
		}
		// Randomly placed objects keep clear of everything placed before them.
		if i < st.Perimeter {
			continue
		}
		for _, prev := range objs[:i] {
			if d := scene.PlanarDistance(o.Position, prev.Position); d <= p.CollisionThreshold {
				t.Fatalf("%s is %.3f from %s", o.Name, d, prev.Name)
			}
		}
	}
}

func TestAssemble_OpenProfileHasNoPerimeter(t *testing.T) {
	p := builtin(t, "open")
	root, st := run(t, p, 7)
	if st.Perimeter != 0 || st.Rocks != 20 || st.Trees != 60 {
		t.Fatalf("stats=%+v", st)
	}
	for _, o := range root.Objects() {
		if strings.HasPrefix(o.Name, "perimeter_") {
			t.Fatalf("unexpected perimeter object %s", o.Name)
		}
		if o.Position.X() < -50 || o.Position.X() > 50 || o.Position.Z() < -50 || o.Position.Z() > 50 {
			t.Fatalf("%s outside span: %v", o.Name, o.Position)
		}
	}
	if s := scene.Summarize(root); s.MinGap <= p.CollisionThreshold {
		t.Fatalf("min gap %.3f within threshold", s.MinGap)
	}
}

func TestAssemble_EmptyProfileHasOnlyGround(t *testing.T) {
	p := builtin(t, "open")
	p.Rocks, p.Trees = 0, 0
	root, st := run(t, p, 1)
	if len(root.Children) != 1 || st.Objects() != 0 {
		t.Fatalf("children=%d stats=%+v", len(root.Children), st)
	}
	if g, ok := root.Children[0].(scene.Ground); !ok || g.Name != "ground" || g.Model != "Ground" {
		t.Fatalf("first child=%#v", root.Children[0])
	}
}

func TestAssemble_DebugProfile(t *testing.T) {
	root, st := run(t, builtin(t, "debug"), 1)
	objs := root.Objects()
	if len(root.Children) != 2 || len(objs) != 1 || st.Objects() != 0 {
		t.Fatalf("children=%d objs=%d", len(root.Children), len(objs))
	}
	if objs[0] != DebugObject() {
		t.Fatalf("debug object=%+v", objs[0])
	}
}

func TestAssemble_BoundedModeFailsFast(t *testing.T) {
	p := builtin(t, "open")
	p.Span, p.Rocks, p.Trees, p.MaxAttempts = 10, 50, 0, 100
	s := placement.New(p.Span, p.CollisionThreshold, p.MaxAttempts, rand.New(rand.NewSource(3)))
	_, _, err := Assemble(p, assets.Default(), s)
	if !errors.Is(err, placement.ErrPlacementExhausted) {
		t.Fatalf("want ErrPlacementExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "place rock_") {
		t.Fatalf("error should name the object: %v", err)
	}
}

func TestPerimeterPositions(t *testing.T) {
	got := PerimeterPositions(200, 4)
	if len(got) != 200 {
		t.Fatalf("len=%d want 200", len(got))
	}
	if got[0] != (mgl64.Vec3{-100, 0, -100}) || got[49] != (mgl64.Vec3{-100, 0, 96}) {
		t.Fatalf("first edge: %v .. %v", got[0], got[49])
	}
	if got[50] != (mgl64.Vec3{100, 0, -100}) {
		t.Fatalf("second edge starts at %v", got[50])
	}
	if got[100] != (mgl64.Vec3{-100, 0, -100}) || got[199] != (mgl64.Vec3{96, 0, 100}) {
		t.Fatalf("z edges: %v .. %v", got[100], got[199])
	}
	for _, v := range got {
		if v.Y() != 0 {
			t.Fatalf("perimeter y=%v", v.Y())
		}
	}
}
