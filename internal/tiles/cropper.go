package tiles

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var encoders = map[string]func(io.Writer, image.Image) error{
	"png": png.Encode,
	"jpg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 95}) },
	"bmp": bmp.Encode,
}

func init() {
	encoders["jpeg"] = encoders["jpg"]
}

type Written struct {
	Name  string
	Path  string
	Bytes int64
}

type Cropper struct {
	Layout Layout
	Ext    string
	Logger *log.Logger
}

// CropImage copies rect out of src into a new RGBA image of exactly rect's size, whatever
// the source color model. Parts of rect outside src stay transparent black, also for
// sources without an alpha channel.
func CropImage(src image.Image, rect image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}

func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func (c *Cropper) Run(srcPath, outDir string) ([]Written, error) {
	ext := strings.ToLower(strings.TrimPrefix(c.Ext, "."))
	if ext == "" {
		ext = "png"
	}
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
	if err := c.Layout.Validate(); err != nil {
		return nil, err
	}

	src, err := Decode(srcPath)
	if err != nil {
		return nil, err
	}
	if need := c.Layout.SheetSize(); !(image.Rectangle{Max: need}).In(src.Bounds()) && c.Logger != nil {
		c.Logger.Printf("source %s is %v, layout needs %v; missing pixels stay transparent", filepath.Base(srcPath), src.Bounds().Size(), need)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	crops := c.Layout.Crops(ext)
	out := make([]Written, 0, len(crops))
	for _, cr := range crops {
		path := filepath.Join(outDir, cr.Name)
		n, err := writeImage(path, CropImage(src, cr.Rect), enc)
		if err != nil {
			return out, fmt.Errorf("write %s: %w", cr.Name, err)
		}
		out = append(out, Written{Name: cr.Name, Path: path, Bytes: n})
	}
	return out, nil
}

func writeImage(path string, img image.Image, enc func(io.Writer, image.Image) error) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := enc(bw, img); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return st.Size(), f.Close()
}
