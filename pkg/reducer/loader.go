package reducer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mholt/archives"
)

var ErrEmptyInput = errors.New("the input file is empty")

const maxLineLength = 1024 * 1024

// SubnetLoader provides the raw input lines for the pipeline.
type SubnetLoader interface {
	Load(ctx context.Context) ([]string, error)
}

// FileLoader reads a list of subnets from a plain or compressed file.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (f *FileLoader) Load(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("unable to read the file: %w", err)
	}
	defer file.Close()
	if info, err := file.Stat(); err == nil && info.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", f.path, ErrEmptyInput)
	}

	reader, err := decompress(ctx, f.path, file)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", f.path, err)
	}
	defer reader.Close()

	lines, err := ReadLines(reader)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", f.path, err)
	}
	if !hasContent(lines) {
		return nil, fmt.Errorf("%s: %w", f.path, ErrEmptyInput)
	}
	return lines, nil
}

// decompress detects compressed input and returns a reader of the decompressed stream. Unknown formats are
// treated as plain text, archives containing multiple files are rejected.
func decompress(ctx context.Context, name string, r io.Reader) (io.ReadCloser, error) {
	format, stream, err := archives.Identify(ctx, name, r)
	if stream == nil {
		stream = r
	}
	if errors.Is(err, archives.NoMatch) || errors.Is(err, io.EOF) {
		return io.NopCloser(stream), nil
	} else if err != nil {
		return nil, err
	}
	if _, ok := format.(archives.Extractor); ok {
		return nil, fmt.Errorf("%s archives are not supported, expected a plain or compressed list", format.Extension())
	}
	if d, ok := format.(archives.Decompressor); ok {
		return d.OpenReader(stream)
	}
	return io.NopCloser(stream), nil
}

// ReadLines returns all lines of r without their line endings.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
