// Package scene holds the scene graph written for the viewer: a root group whose children are
// the ground marker and the placed objects.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	RootName    = "root"
	GroundName  = "ground"
	GroundModel = "Ground"
)

// Node is one entry of the scene graph. It is implemented by *Group, Ground and Object only.
type Node interface {
	NodeName() string
	sceneNode()
}

// Group is a structural node. It never carries a model or transform.
type Group struct {
	Name     string
	Children []Node
}

// Ground marks the ground plane; the viewer places it at the origin.
type Ground struct {
	Name  string
	Model string
}

// Object is a placed asset. Rotation is in degrees.
type Object struct {
	Name     string
	Model    string
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3
}

func (g *Group) NodeName() string { return g.Name }
func (g Ground) NodeName() string { return g.Name }
func (o Object) NodeName() string { return o.Name }

func (*Group) sceneNode() {}
func (Ground) sceneNode() {}
func (Object) sceneNode() {}

func NewRoot() *Group {
	return &Group{Name: RootName, Children: []Node{}}
}

func NewGround() Ground {
	return Ground{Name: GroundName, Model: GroundModel}
}

func (g *Group) Append(children ...Node) {
	g.Children = append(g.Children, children...)
}

// Objects returns the direct Object children in order.
func (g *Group) Objects() []Object {
	var out []Object
	for _, c := range g.Children {
		if o, ok := c.(Object); ok {
			out = append(out, o)
		}
	}
	return out
}

// PlanarDistance is the distance between a and b on the ground plane (Y ignored).
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return mgl64.Vec2{a.X() - b.X(), a.Z() - b.Z()}.Len()
}

type groupJSON struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

type groundJSON struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

type objectJSON struct {
	Name     string     `json:"name"`
	Model    string     `json:"model"`
	Position mgl64.Vec3 `json:"position"`
	Scale    mgl64.Vec3 `json:"scale"`
	Rotation mgl64.Vec3 `json:"rotation"`
}

func (g *Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(groupJSON{Name: g.Name, Children: children})
}

func (g Ground) MarshalJSON() ([]byte, error) {
	return json.Marshal(groundJSON(g))
}

func (o Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(objectJSON(o))
}

var ErrMixedFields = errors.New("node must set model, position, scale and rotation together")

type rawNode struct {
	Name     *string           `json:"name"`
	Model    *string           `json:"model"`
	Position *mgl64.Vec3       `json:"position"`
	Scale    *mgl64.Vec3       `json:"scale"`
	Rotation *mgl64.Vec3       `json:"rotation"`
	Children []json.RawMessage `json:"children"`
}

// Decode parses one node and its descendants. The node kind follows from the fields present:
// all of model/position/scale/rotation is an Object, a lone model is a Ground, neither is a Group.
func Decode(raw []byte) (Node, error) {
	var r rawNode
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	if r.Name == nil {
		return nil, fmt.Errorf("node: missing name")
	}
	name := *r.Name

	transforms := 0
	for _, v := range []*mgl64.Vec3{r.Position, r.Scale, r.Rotation} {
		if v != nil {
			transforms++
		}
	}
	switch {
	case transforms == 3 && r.Model != nil:
		if len(r.Children) > 0 {
			return nil, fmt.Errorf("node %s: objects cannot have children", name)
		}
		return Object{Name: name, Model: *r.Model, Position: *r.Position, Scale: *r.Scale, Rotation: *r.Rotation}, nil
	case transforms > 0:
		return nil, fmt.Errorf("node %s: %w", name, ErrMixedFields)
	case r.Model != nil:
		if len(r.Children) > 0 {
			return nil, fmt.Errorf("node %s: ground markers cannot have children", name)
		}
		return Ground{Name: name, Model: *r.Model}, nil
	}

	g := &Group{Name: name, Children: make([]Node, 0, len(r.Children))}
	for i, c := range r.Children {
		n, err := Decode(c)
		if err != nil {
			return nil, fmt.Errorf("%s.children[%d]: %w", name, i, err)
		}
		g.Children = append(g.Children, n)
	}
	return g, nil
}

// DecodeRoot parses a whole scene document; the top level must be a group.
func DecodeRoot(raw []byte) (*Group, error) {
	n, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	g, ok := n.(*Group)
	if !ok {
		return nil, fmt.Errorf("scene root %q is not a group", n.NodeName())
	}
	return g, nil
}
