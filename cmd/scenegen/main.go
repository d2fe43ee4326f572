package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thatdc/birb-hunt/internal/assets"
	"github.com/thatdc/birb-hunt/internal/persistence/scenefile"
	"github.com/thatdc/birb-hunt/internal/scene"
	"github.com/thatdc/birb-hunt/internal/scene/assemble"
	"github.com/thatdc/birb-hunt/internal/scene/placement"
	"github.com/thatdc/birb-hunt/internal/scene/profile"
	"github.com/thatdc/birb-hunt/internal/scene/schema"
)

const defaultProfilesPath = "./configs/profiles.yaml"

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "generate":
			os.Exit(generateCmd(os.Args[2:]))
		case "inspect":
			os.Exit(inspectCmd(os.Args[2:]))
		case "profiles":
			os.Exit(profilesCmd(os.Args[2:]))
		}
	}
	os.Exit(generateCmd(os.Args[1:]))
}

type generateOpts struct {
	ProfilesPath string
	ProfileID    string
	Out          string
	Seed         int64
	Debug        *bool // nil keeps the profile's setting
	MaxAttempts  int
	Rocks        int
	Trees        int
	Span         int
}

func generateCmd(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var o generateOpts
	fs.StringVar(&o.ProfilesPath, "profiles", defaultProfilesPath, "profiles file (built-in profiles if missing)")
	fs.StringVar(&o.ProfileID, "profile", "", "profile id (default: the file's default_profile)")
	fs.StringVar(&o.Out, "out", "", "output path, .zst to compress (default: profile output)")
	fs.Int64Var(&o.Seed, "seed", 0, "random seed (0: time based)")
	debug := fs.Bool("debug", false, "write the debug scene instead (default: profile)")
	fs.IntVar(&o.MaxAttempts, "max_attempts", -1, "collision retries per object, 0 retries forever (default: profile)")
	fs.IntVar(&o.Rocks, "rocks", -1, "random rock count (default: profile)")
	fs.IntVar(&o.Trees, "trees", -1, "random tree count (default: profile)")
	fs.IntVar(&o.Span, "span", 0, "terrain side length (default: profile)")
	_ = fs.Parse(args)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "debug" {
			o.Debug = debug
		}
	})

	logger := log.New(os.Stdout, "[scenegen] ", log.LstdFlags|log.Lmicroseconds)
	errLog := log.New(os.Stderr, "[scenegen] ", log.LstdFlags|log.Lmicroseconds)
	return generate(o, logger, errLog)
}

// generate reports progress on logger and failures on errLog.
func generate(o generateOpts, logger, errLog *log.Logger) int {
	cfg, fromFile, err := profile.LoadOrDefaults(o.ProfilesPath)
	if err != nil {
		errLog.Printf("load profiles: %v", err)
		return 1
	}
	if !fromFile {
		logger.Printf("profiles not found (%s); using built-in profiles", o.ProfilesPath)
	}
	p, ok := cfg.Profile(o.ProfileID)
	if !ok {
		errLog.Printf("unknown profile %q (have %s)", o.ProfileID, strings.Join(cfg.IDs(), ", "))
		return 2
	}
	p = applyOverrides(p, o)
	if err := p.Validate(); err != nil {
		errLog.Printf("profile: %v", err)
		return 2
	}

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cat := assets.Default()
	sampler := placement.New(p.Span, p.CollisionThreshold, p.MaxAttempts, rand.New(rand.NewSource(seed)))
	logger.Printf("generating profile=%s span=%d rocks=%d trees=%d perimeter=%v debug=%v seed=%d catalog=%s",
		p.ID, p.Span, p.Rocks, p.Trees, p.Perimeter, p.Debug, seed, cat.Digest[:12])

	root, st, err := assemble.Assemble(p, cat, sampler)
	if err != nil {
		if errors.Is(err, placement.ErrPlacementExhausted) {
			errLog.Printf("%v (raise -max_attempts, lower counts or widen -span)", err)
		} else {
			errLog.Printf("assemble: %v", err)
		}
		return 1
	}

	doc, err := scenefile.Encode(root)
	if err != nil {
		errLog.Printf("encode: %v", err)
		return 1
	}
	if err := schema.ValidateDocument(doc); err != nil {
		errLog.Printf("validate: %v", err)
		return 1
	}
	n, err := scenefile.Write(p.Output, doc)
	if err != nil {
		errLog.Printf("write %s: %v", p.Output, err)
		return 1
	}

	fmt.Println("File written!")
	logger.Printf("scene ok: out=%s objects=%d perimeter=%d rocks=%d trees=%d rejections=%d size=%s",
		p.Output, len(root.Objects()), st.Perimeter, st.Rocks, st.Trees, st.Rejections, humanize.Bytes(uint64(n)))
	return 0
}

func applyOverrides(p profile.Profile, o generateOpts) profile.Profile {
	if o.Debug != nil {
		p.Debug = *o.Debug
	}
	if o.MaxAttempts >= 0 {
		p.MaxAttempts = o.MaxAttempts
	}
	if o.Rocks >= 0 {
		p.Rocks = o.Rocks
	}
	if o.Trees >= 0 {
		p.Trees = o.Trees
	}
	if o.Span > 0 {
		p.Span = o.Span
	}
	if strings.TrimSpace(o.Out) != "" {
		p.Output = o.Out
	}
	return p
}

func inspectCmd(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	in := fs.String("in", profile.DefaultOutput, "scene document (.json or .json.zst)")
	_ = fs.Parse(args)

	root, raw, err := scenefile.Read(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read scene:", err)
		return 1
	}
	if err := schema.ValidateDocument(raw); err != nil {
		fmt.Fprintln(os.Stderr, "validate:", err)
		return 1
	}
	if err := scene.CheckLayout(root); err != nil {
		fmt.Fprintln(os.Stderr, "layout:", err)
		return 1
	}

	s := scene.Summarize(root)
	if missing := unknownModels(s, assets.Default()); len(missing) > 0 {
		fmt.Fprintln(os.Stderr, "models not in the asset catalog:", strings.Join(missing, ", "))
		return 1
	}
	fmt.Printf("scene %s: children=%d grounds=%d objects=%d size=%s\n",
		*in, len(root.Children), s.Grounds, s.Objects, humanize.Bytes(uint64(len(raw))))
	for _, m := range s.ModelNames() {
		fmt.Printf("  %-14s %d\n", m, s.Models[m])
	}
	if s.Objects > 1 {
		fmt.Printf("min planar gap: %.3f\n", s.MinGap)
	}
	return 0
}

func unknownModels(s scene.Summary, cat *assets.Catalog) []string {
	var out []string
	for _, m := range s.ModelNames() {
		if _, ok := cat.Lookup(m); !ok {
			out = append(out, m)
		}
	}
	return out
}

func profilesCmd(args []string) int {
	fs := flag.NewFlagSet("profiles", flag.ExitOnError)
	path := fs.String("profiles", defaultProfilesPath, "profiles file")
	_ = fs.Parse(args)

	cfg, _, err := profile.LoadOrDefaults(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load profiles:", err)
		return 1
	}
	for _, id := range cfg.IDs() {
		p, _ := cfg.Profile(id)
		mark := " "
		if id == cfg.DefaultProfile {
			mark = "*"
		}
		fmt.Printf("%s %-10s span=%d rocks=%d trees=%d perimeter=%v debug=%v max_attempts=%d out=%s\n",
			mark, p.ID, p.Span, p.Rocks, p.Trees, p.Perimeter, p.Debug, p.MaxAttempts, p.Output)
	}
	return 0
}
