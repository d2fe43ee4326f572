// Package placement draws asset, position, scale and rotation for scattered scene objects.
package placement

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/thatdc/birb-hunt/internal/assets"
	"github.com/thatdc/birb-hunt/internal/mathx"
	"github.com/thatdc/birb-hunt/internal/scene"
)

const DefaultThreshold = 5.0

var (
	ErrNoModels           = errors.New("no models to choose from")
	ErrPlacementExhausted = errors.New("placement exhausted")
)

// ExhaustedError is returned when every attempt of a bounded sampler collided.
type ExhaustedError struct {
	Attempts  int
	Committed int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("placement exhausted after %d attempts against %d placed objects", e.Attempts, e.Committed)
}

func (e *ExhaustedError) Unwrap() error { return ErrPlacementExhausted }

type Placement struct {
	Model    string
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3

	// Rejected counts candidate positions discarded for colliding.
	Rejected int
}

// Object names the placement as a scene object.
func (p Placement) Object(name string) scene.Object {
	return scene.Object{Name: name, Model: p.Model, Position: p.Position, Scale: p.Scale, Rotation: p.Rotation}
}

type Sampler struct {
	Span      int
	Threshold float64

	// MaxAttempts bounds the collision retries; 0 retries forever.
	MaxAttempts int

	Rand *rand.Rand
}

func New(span int, threshold float64, maxAttempts int, rng *rand.Rand) *Sampler {
	return &Sampler{Span: span, Threshold: threshold, MaxAttempts: maxAttempts, Rand: rng}
}

// Sample picks one of models and a transform for it. When at is set the position is used as is;
// otherwise positions within Threshold (inclusive) of a committed one are redrawn.
func (s *Sampler) Sample(models []assets.Entry, committed []mgl64.Vec3, at *mgl64.Vec3) (Placement, error) {
	if len(models) == 0 {
		return Placement{}, ErrNoModels
	}
	m := models[s.Rand.Intn(len(models))]
	p := Placement{Model: m.Name}

	if at != nil {
		p.Position = *at
	} else {
		lo, hi := mathx.HalfSpan(s.Span)
		for {
			c := mgl64.Vec3{s.uniform(float64(lo), float64(hi)), 0, s.uniform(float64(lo), float64(hi))}
			if !s.collides(c, committed) {
				p.Position = c
				break
			}
			p.Rejected++
			if s.MaxAttempts > 0 && p.Rejected >= s.MaxAttempts {
				return Placement{}, &ExhaustedError{Attempts: p.Rejected, Committed: len(committed)}
			}
		}
	}

	k := s.scaleFor(m.Kind)
	p.Scale = mgl64.Vec3{k, k, k}
	p.Rotation = mgl64.Vec3{0, float64(s.Rand.Intn(361)), 0}
	return p, nil
}

func (s *Sampler) collides(c mgl64.Vec3, committed []mgl64.Vec3) bool {
	for _, o := range committed {
		if scene.PlanarDistance(c, o) <= s.Threshold {
			return true
		}
	}
	return false
}

func (s *Sampler) scaleFor(k assets.Kind) float64 {
	switch k {
	case assets.KindFlower:
		return s.uniform(1, 2)
	case assets.KindTree:
		return s.uniform(1, 1.25)
	default:
		return 1
	}
}

func (s *Sampler) uniform(a, b float64) float64 {
	return a + (b-a)*s.Rand.Float64()
}
