package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindBigRock   Kind = "BIG_ROCK"
	KindSmallRock Kind = "SMALL_ROCK"
	KindTree      Kind = "TREE"
	KindFlower    Kind = "FLOWER"
)

type Category string

const (
	CategoryRocks    Category = "rocks"
	CategoryBigRocks Category = "big_rocks"
	CategoryTrees    Category = "trees"
	CategoryFlowers  Category = "flowers"
)

var categoryKinds = map[Category][]Kind{
	CategoryRocks:    {KindBigRock, KindSmallRock},
	CategoryBigRocks: {KindBigRock},
	CategoryTrees:    {KindTree},
	CategoryFlowers:  {KindFlower},
}

type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

type Catalog struct {
	Entries []Entry
	Digest  string

	byName map[string]Entry
}

// Default is the asset list shipped with the scene viewer, in viewer order.
func Default() *Catalog {
	c, err := New([]Entry{
		{Name: "BigRock_01", Kind: KindBigRock},
		{Name: "BigRock_02", Kind: KindBigRock},
		{Name: "BigRock_03", Kind: KindBigRock},
		{Name: "Flower_04", Kind: KindFlower},
		{Name: "Tree_01", Kind: KindTree},
		{Name: "Tree_03", Kind: KindTree},
		{Name: "Tree_05", Kind: KindTree},
		{Name: "Tree_06", Kind: KindTree},
		{Name: "SmallRock_01", Kind: KindSmallRock},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		Entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog: empty asset name")
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("catalog: asset %s: unknown kind %q", e.Name, e.Kind)
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate asset %s", e.Name)
		}
		c.byName[e.Name] = e
		c.Entries = append(c.Entries, e)
	}
	raw, _ := json.Marshal(c.Entries)
	sum := sha256.Sum256(raw)
	c.Digest = hex.EncodeToString(sum[:])
	return c, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindBigRock, KindSmallRock, KindTree, KindFlower:
		return true
	}
	return false
}

// In returns the entries tagged with one of the category's kinds, in catalog order.
func (c *Catalog) In(cat Category) []Entry {
	kinds, ok := categoryKinds[cat]
	if !ok {
		return nil
	}
	var out []Entry
	for _, e := range c.Entries {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}
