package reader

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Compression types.
const (
	Gzip  = "gzip"
	Bzip2 = "bzip2"
	Zstd  = "zstd"
)

// UniversalReader wraps an io.Reader to replace carriage returns with newlines.
// This is used with the csv scanner so it can properly delimit lines.
// Carriage returns inside double quoted text are kept as they are.
type UniversalReader struct {
	r      io.Reader
	quoted bool
}

func (r *UniversalReader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)

	for i, b := range buf[:n] {
		switch b {
		case '"':
			r.quoted = !r.quoted
		case '\r':
			if !r.quoted {
				buf[i] = '\n'
			}
		}
	}

	return n, err
}

func NewUniversalReader(r io.Reader) *UniversalReader {
	return &UniversalReader{r: r}
}

// NewTextReader decodes r as text. A leading byte order mark is removed and
// selects the decoder (UTF-8 or UTF-16); without one UTF-8 is assumed.
// Line endings are normalized to newlines.
func NewTextReader(r io.Reader) io.Reader {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return NewUniversalReader(transform.NewReader(r, dec))
}

func normalizeCompression(t string) (string, error) {
	switch strings.ToLower(t) {
	case "":
		return "", nil
	case "gzip", "gz":
		return Gzip, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "zstd", "zst":
		return Zstd, nil
	}

	return "", fmt.Errorf("compression type not supported: %s", t)
}

// DetectType attempts to detect the file format and compression types by looking at the
// file path extensions.
func DetectType(url string) (string, string) {
	_, name := path.Split(filepath.ToSlash(url))

	exts := strings.Split(name, ".")[1:]

	var (
		compression string
		format      string
	)

	for _, ext := range exts {
		switch strings.ToLower(ext) {
		case "gz", "gzip":
			compression = Gzip

		case "bz2", "bzip2":
			compression = Bzip2

		case "zst", "zstd":
			compression = Zstd

		case "csv", "txt":
			format = "csv"

		case "json", "ldjson", "tsv", "xml", "xlsx":
			format = strings.ToLower(ext)
		}
	}

	return format, compression
}

// Reader is an opened input: a file or stdin, decompressed and decoded.
type Reader struct {
	Name        string
	Compression string

	reader  io.Reader
	closers []func() error
}

// Read implements the io.Reader interface.
func (r *Reader) Read(buf []byte) (int, error) {
	return r.reader.Read(buf)
}

// Close releases the decompressor and the file, innermost first.
func (r *Reader) Close() error {
	var first error

	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}

	r.closers = nil

	return first
}

// Open a reader by name with optional compression. If the name is empty or
// "-", stdin is used. If no compression is given it is detected from the
// file extension.
func Open(name, compr string) (*Reader, error) {
	if compr == "" {
		_, compr = DetectType(name)
	}

	compr, err := normalizeCompression(compr)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		Name:        name,
		Compression: compr,
	}

	if name == "" || name == "-" {
		r.reader = os.Stdin
	} else {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		r.reader = file
		r.closers = append(r.closers, file.Close)
	}

	switch compr {
	case Gzip:
		gr, err := gzip.NewReader(r.reader)
		if err != nil {
			r.Close()
			return nil, err
		}

		r.reader = gr
		r.closers = append(r.closers, gr.Close)

	case Bzip2:
		r.reader = bzip2.NewReader(r.reader)

	case Zstd:
		zr, err := zstd.NewReader(r.reader)
		if err != nil {
			r.Close()
			return nil, err
		}

		r.reader = zr
		r.closers = append(r.closers, func() error {
			zr.Close()
			return nil
		})
	}

	r.reader = NewTextReader(r.reader)

	return r, nil
}
