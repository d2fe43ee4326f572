package schema

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/thatdc/birb-hunt/internal/scene"
)

func TestValidateDocument_GeneratedScene(t *testing.T) {
	root := scene.NewRoot()
	root.Append(scene.NewGround(), scene.Object{
		Name:     "tree_0",
		Model:    "Tree_01",
		Position: mgl64.Vec3{-3.25, 0, 17},
		Scale:    mgl64.Vec3{1.2, 1.2, 1.2},
		Rotation: mgl64.Vec3{0, 181, 0},
	})
	b, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateDocument(b); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// Documents written by the earlier tooling carried empty children arrays on every node.
func TestValidateDocument_AcceptsEmptyLeafChildren(t *testing.T) {
	doc := `{
	  "name": "root",
	  "children": [
	    {"name": "ground", "model": "Ground", "children": []},
	    {"name": "rock_0", "model": "SmallRock_01", "position": [1, 0, 2], "scale": [1, 1, 1], "rotation": [0, 90, 0], "children": []}
	  ]
	}`
	if err := ValidateDocument([]byte(doc)); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateDocument_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing children":  `{"name":"root"}`,
		"partial transform": `{"name":"root","children":[{"name":"r","model":"BigRock_01","position":[0,0,0]}]}`,
		"short vector":      `{"name":"root","children":[{"name":"r","model":"BigRock_01","position":[0,0],"scale":[1,1,1],"rotation":[0,0,0]}]}`,
		"unknown field":     `{"name":"root","children":[],"seed":4}`,
		"leaf children":     `{"name":"root","children":[{"name":"g","model":"Ground","children":[{"name":"x","children":[]}]}]}`,
		"not json":          `{"name":`,
	}
	for name, doc := range cases {
		if err := ValidateDocument([]byte(doc)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
