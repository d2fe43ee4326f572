// Package scenefile reads and writes the scene document consumed by the viewer.
package scenefile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/thatdc/birb-hunt/internal/scene"
)

const zstdExt = ".zst"

// Encode renders the document with four-space indentation and a trailing newline.
func Encode(root *scene.Group) ([]byte, error) {
	b, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Write replaces the file at path with doc. Paths ending in .zst are zstd-compressed.
// It returns the number of bytes written to disk.
func Write(path string, doc []byte) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if !compressed(path) {
		n, err := f.Write(doc)
		if err != nil {
			return n, err
		}
		return n, f.Close()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if _, err := bw.Write(doc); err != nil {
		enc.Close()
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return int(st.Size()), f.Close()
}

// ReadRaw returns the uncompressed document bytes.
func ReadRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed(path) {
		return io.ReadAll(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(dec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Read(path string) (*scene.Group, []byte, error) {
	raw, err := ReadRaw(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := scene.DecodeRoot(raw)
	if err != nil {
		return nil, raw, err
	}
	return root, raw, nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, zstdExt)
}
