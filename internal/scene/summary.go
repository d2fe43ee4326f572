package scene

import (
	"fmt"
	"math"
	"sort"
)

type Summary struct {
	Grounds int
	Objects int
	Models  map[string]int

	// MinGap is the smallest planar distance between two objects; +Inf with fewer than two.
	MinGap float64
}

func Summarize(root *Group) Summary {
	s := Summary{Models: map[string]int{}, MinGap: math.Inf(1)}
	var objs []Object
	for _, c := range root.Children {
		switch n := c.(type) {
		case Ground:
			s.Grounds++
		case Object:
			s.Objects++
			s.Models[n.Model]++
			objs = append(objs, n)
		}
	}
	for i := range objs {
		for j := i + 1; j < len(objs); j++ {
			if d := PlanarDistance(objs[i].Position, objs[j].Position); d < s.MinGap {
				s.MinGap = d
			}
		}
	}
	return s
}

// ModelNames returns the models seen, sorted.
func (s Summary) ModelNames() []string {
	out := make([]string, 0, len(s.Models))
	for m := range s.Models {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// CheckLayout verifies the shape the viewer expects: a root group named "root" whose first
// child is the ground marker and whose other children are objects.
func CheckLayout(root *Group) error {
	if root.Name != RootName {
		return fmt.Errorf("root is named %q, want %q", root.Name, RootName)
	}
	if len(root.Children) == 0 {
		return fmt.Errorf("root has no ground child")
	}
	if _, ok := root.Children[0].(Ground); !ok {
		return fmt.Errorf("first child %q is not the ground", root.Children[0].NodeName())
	}
	for i, c := range root.Children[1:] {
		if _, ok := c.(Object); !ok {
			return fmt.Errorf("child %d (%s) is not an object", i+1, c.NodeName())
		}
	}
	return nil
}
