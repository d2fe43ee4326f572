package main

import (
	"flag"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/thatdc/birb-hunt/internal/tiles"
)

func main() {
	logger := log.New(os.Stdout, "[tilecrop] ", log.LstdFlags|log.Lmicroseconds)
	errLog := log.New(os.Stderr, "[tilecrop] ", log.LstdFlags|log.Lmicroseconds)
	os.Exit(run(os.Args[1:], logger, errLog))
}

func run(args []string, logger, errLog *log.Logger) int {
	fs := flag.NewFlagSet("tilecrop", flag.ContinueOnError)
	var (
		src        = fs.String("src", "ground.png", "ground sprite sheet")
		outDir     = fs.String("out", ".", "output directory")
		layoutPath = fs.String("layout", "", "YAML layout override (optional)")
		ext        = fs.String("ext", "png", "output format: png, jpg, bmp")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	layout, err := tiles.LoadLayout(*layoutPath)
	if err != nil {
		errLog.Printf("load layout: %v", err)
		return 1
	}

	c := &tiles.Cropper{Layout: layout, Ext: *ext, Logger: logger}
	written, err := c.Run(*src, *outDir)
	if err != nil {
		errLog.Printf("crop %s: %v", *src, err)
		return 1
	}

	var total int64
	for _, w := range written {
		total += w.Bytes
	}
	logger.Printf("cropped %s: tiles=%d out=%s size=%s", *src, len(written), *outDir, humanize.Bytes(uint64(total)))
	return 0
}
