// Package profile holds the scene generator configurations.
package profile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thatdc/birb-hunt/internal/scene/placement"
)

const (
	DefaultOutput        = "../scene-graph.json"
	DefaultPerimeterStep = 4
	DefaultThreshold     = placement.DefaultThreshold
)

type Config struct {
	DefaultProfile string    `yaml:"default_profile"`
	Profiles       []Profile `yaml:"profiles"`
}

type Profile struct {
	ID    string `yaml:"id"`
	Span  int    `yaml:"span"`
	Rocks int    `yaml:"rocks"`
	Trees int    `yaml:"trees"`

	Perimeter     bool `yaml:"perimeter"`
	PerimeterStep int  `yaml:"perimeter_step,omitempty"`

	CollisionThreshold float64 `yaml:"collision_threshold,omitempty"`
	// MaxAttempts bounds collision retries per object; 0 retries forever.
	MaxAttempts int `yaml:"max_attempts,omitempty"`

	Debug  bool   `yaml:"debug,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// Load reads a profiles file. An empty path yields the built-in profiles.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg = Config{}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("profiles.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("profiles.yaml: %w", err)
	}
	return cfg, nil
}

// LoadOrDefaults is Load, except a missing file falls back to the built-in profiles.
func LoadOrDefaults(path string) (Config, bool, error) {
	cfg, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		cfg, err = Load("")
		return cfg, false, err
	}
	return cfg, err == nil && strings.TrimSpace(path) != "", err
}

func Defaults() Config {
	return Config{
		DefaultProfile: "perimeter",
		Profiles: []Profile{
			{ID: "perimeter", Span: 200, Rocks: 50, Trees: 300, Perimeter: true, PerimeterStep: DefaultPerimeterStep},
			{ID: "open", Span: 100, Rocks: 20, Trees: 60},
			{ID: "debug", Span: 200, Debug: true},
		},
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	for i := range c.Profiles {
		p := &c.Profiles[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.PerimeterStep == 0 {
			p.PerimeterStep = DefaultPerimeterStep
		}
		if p.CollisionThreshold == 0 {
			p.CollisionThreshold = DefaultThreshold
		}
		if strings.TrimSpace(p.Output) == "" {
			p.Output = DefaultOutput
		}
	}
	if strings.TrimSpace(c.DefaultProfile) == "" && len(c.Profiles) > 0 {
		c.DefaultProfile = c.Profiles[0].ID
	}
}

func (c Config) Validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("profiles must not be empty")
	}
	seen := map[string]bool{}
	for _, p := range c.Profiles {
		if p.ID == "" {
			return fmt.Errorf("profile id must not be empty")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate profile id: %s", p.ID)
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if !seen[c.DefaultProfile] {
		return fmt.Errorf("default_profile %q not found in profiles", c.DefaultProfile)
	}
	return nil
}

func (p Profile) Validate() error {
	if p.Span <= 0 {
		return fmt.Errorf("profile %s span must be > 0", p.ID)
	}
	if p.Rocks < 0 || p.Trees < 0 {
		return fmt.Errorf("profile %s rocks/trees must be >= 0", p.ID)
	}
	if p.Perimeter && p.PerimeterStep <= 0 {
		return fmt.Errorf("profile %s perimeter_step must be > 0", p.ID)
	}
	if p.CollisionThreshold < 0 {
		return fmt.Errorf("profile %s collision_threshold must be >= 0", p.ID)
	}
	if p.MaxAttempts < 0 {
		return fmt.Errorf("profile %s max_attempts must be >= 0", p.ID)
	}
	return nil
}

func (c Config) Profile(id string) (Profile, bool) {
	if id == "" {
		id = c.DefaultProfile
	}
	for _, p := range c.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// IDs returns the profile ids, sorted.
func (c Config) IDs() []string {
	out := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, p.ID)
	}
	sort.Strings(out)
	return out
}
