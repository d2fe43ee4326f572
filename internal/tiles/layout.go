// Package tiles slices the ground sprite sheet into one image per tile.
package tiles

import (
	"fmt"
	"image"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout describes the sprite sheet grid: one row per shape, one column per variant, tiles
// separated (and surrounded) by Margin pixels, plus a single water window.
type Layout struct {
	Shapes   []string `yaml:"shapes"`
	Variants int      `yaml:"variants"`
	TileSize int      `yaml:"tile_size"`
	Margin   int      `yaml:"margin"`
	Water    Window   `yaml:"water"`
}

type Window struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Size int `yaml:"size"`
}

func (w Window) Rect() image.Rectangle {
	return image.Rect(w.X, w.Y, w.X+w.Size, w.Y+w.Size)
}

type Crop struct {
	Name string
	Rect image.Rectangle
}

func DefaultLayout() Layout {
	return Layout{
		Shapes:   []string{"tri", "circ", "quad"},
		Variants: 10,
		TileSize: 64,
		Margin:   4,
		Water:    Window{X: 4, Y: 208, Size: 128},
	}
}

// LoadLayout reads a YAML override on top of DefaultLayout. An empty path returns the default.
func LoadLayout(path string) (Layout, error) {
	l := DefaultLayout()
	if strings.TrimSpace(path) == "" {
		return l, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}
	if err := yaml.Unmarshal(b, &l); err != nil {
		return l, fmt.Errorf("layout.yaml: %w", err)
	}
	if err := l.Validate(); err != nil {
		return l, fmt.Errorf("layout.yaml: %w", err)
	}
	return l, nil
}

func (l Layout) Validate() error {
	if len(l.Shapes) == 0 {
		return fmt.Errorf("shapes must not be empty")
	}
	seen := map[string]bool{}
	for _, s := range l.Shapes {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("shape name must not be empty")
		}
		if seen[s] {
			return fmt.Errorf("duplicate shape: %s", s)
		}
		seen[s] = true
	}
	if l.Variants <= 0 {
		return fmt.Errorf("variants must be > 0")
	}
	if l.TileSize <= 0 {
		return fmt.Errorf("tile_size must be > 0")
	}
	if l.Margin < 0 {
		return fmt.Errorf("margin must be >= 0")
	}
	if l.Water.Size <= 0 {
		return fmt.Errorf("water.size must be > 0")
	}
	return nil
}

// TileRect is the window of variant i (column) and shape j (row).
func (l Layout) TileRect(i, j int) image.Rectangle {
	left := (i+1)*l.Margin + i*l.TileSize
	top := (j+1)*l.Margin + j*l.TileSize
	return image.Rect(left, top, left+l.TileSize, top+l.TileSize)
}

// Crops lists every output, variant-major, then the water tile.
func (l Layout) Crops(ext string) []Crop {
	out := make([]Crop, 0, l.Variants*len(l.Shapes)+1)
	for i := 0; i < l.Variants; i++ {
		for j, shape := range l.Shapes {
			out = append(out, Crop{Name: fmt.Sprintf("s%d_%s.%s", i, shape, ext), Rect: l.TileRect(i, j)})
		}
	}
	return append(out, Crop{Name: "water." + ext, Rect: l.Water.Rect()})
}

// SheetSize is the smallest source image holding every crop.
func (l Layout) SheetSize() image.Point {
	var p image.Point
	for _, c := range l.Crops("png") {
		if c.Rect.Max.X > p.X {
			p.X = c.Rect.Max.X
		}
		if c.Rect.Max.Y > p.Y {
			p.Y = c.Rect.Max.Y
		}
	}
	return p
}
