// Package ingest parses sample streams into counter values.
//
// Two line formats are understood. Plain lines hold a counter name and a
// value separated by whitespace, or a bare value that goes to the default
// counter:
//
//	# frame timings
//	ms 16.4
//	fps 60
//	12.5
//
// JSON lines hold one object per line; Fields maps counter names to paths
// inside the object (gjson syntax or simple JSONPath such as $.frame.ms).
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/perfstats/internal/logging"
	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// DefaultName is the counter that receives bare values.
const DefaultName = "value"

// maxLineSize bounds a single input line. Longer lines are malformed.
const maxLineSize = 1024 * 1024

// ErrLineTooLong is the LineError cause for a line over maxLineSize bytes.
var ErrLineTooLong = errors.New("line exceeds 1 MiB")

// Sample is one parsed value.
type Sample struct {
	Name  string
	Value float64
	Line  int
}

// LineError reports a malformed input line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Options configures a Reader.
type Options struct {
	// DefaultName receives bare values (default: "value")
	DefaultName string

	// Fields switches to JSON lines, mapping counter name to path
	Fields map[string]string

	// Strict stops at the first malformed line instead of skipping it
	Strict bool

	// Logger receives warnings about skipped lines
	Logger *slog.Logger
}

// Reader reads samples from a line-oriented stream.
type Reader struct {
	input   *bufio.Reader
	opts    Options
	logger  *slog.Logger

	// fields holds (name, gjson path) pairs sorted by name
	fields [][2]string

	line    int
	skipped int
	pending []Sample
}

// NewReader creates a reader over r.
func NewReader(r io.Reader, opts Options) *Reader {
	if opts.DefaultName == "" {
		opts.DefaultName = DefaultName
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}


	names := make([]string, 0, len(opts.Fields))
	for name := range opts.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([][2]string, 0, len(names))
	for _, name := range names {
		fields = append(fields, [2]string{name, gjsonPath(opts.Fields[name])})
	}

	return &Reader{
		input:   bufio.NewReaderSize(r, 64*1024),
		opts:    opts,
		logger:  logger,
		fields:  fields,
	}
}

// Next returns the next sample. It returns io.EOF at the end of input and
// a *LineError for a malformed line in strict mode.
func (r *Reader) Next() (Sample, error) {
	for len(r.pending) == 0 {
		text, tooLong, err := r.readLine()
		if err == io.EOF {
			return Sample{}, io.EOF
		}
		if err != nil {
			return Sample{}, fmt.Errorf("failed to read input: %w", err)
		}
		r.line++

		var samples []Sample
		if tooLong {
			err = ErrLineTooLong
		} else {
			samples, err = r.parseLine(text)
		}
		if err != nil {
			lineErr := &LineError{Line: r.line, Text: text, Err: err}
			if r.opts.Strict {
				return Sample{}, lineErr
			}
			r.skipped++
			r.logger.Warn("skipping malformed line", "line", r.line, "error", err)
			continue
		}
		r.pending = samples
	}

	s := r.pending[0]
	r.pending = r.pending[1:]
	return s, nil
}

// readLine returns the next line without its terminator. A line longer
// than maxLineSize is consumed but not kept, and tooLong is set.
func (r *Reader) readLine() (text string, tooLong bool, err error) {
	var line []byte
	read := 0
	for {
		chunk, err := r.input.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineSize+2 {
				tooLong = true
				line = nil
			}
		}

		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			if read == 0 {
				return "", false, io.EOF
			}
			break
		}
		if err != nil {
			return "", false, err
		}
		break
	}
	if tooLong {
		return "", true, nil
	}

	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) > maxLineSize {
		return "", true, nil
	}
	return string(line), false, nil
}

// Skipped returns how many malformed lines were skipped.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) parseLine(text string) ([]Sample, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "#") {
		return nil, nil
	}
	if len(r.fields) > 0 {
		return r.parseJSON(text)
	}
	return r.parsePlain(text)
}

func (r *Reader) parsePlain(text string) ([]Sample, error) {
	parts := strings.Fields(text)

	switch len(parts) {
	case 1:
		v, err := parseValue(parts[0])
		if err != nil {
			return nil, err
		}
		return []Sample{{Name: r.opts.DefaultName, Value: v, Line: r.line}}, nil
	case 2:
		v, err := parseValue(parts[1])
		if err != nil {
			return nil, err
		}
		return []Sample{{Name: parts[0], Value: v, Line: r.line}}, nil
	default:
		return nil, fmt.Errorf("expected 'name value' or a bare value, got %d fields", len(parts))
	}
}

// parseJSON extracts every configured field. Fields absent from the
// object are skipped; present fields must be numbers.
func (r *Reader) parseJSON(text string) ([]Sample, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("invalid JSON")
	}

	samples := make([]Sample, 0, len(r.fields))
	for _, field := range r.fields {
		name, path := field[0], field[1]

		result := gjson.Get(text, path)
		if !result.Exists() || result.Type == gjson.Null {
			continue
		}

		var v float64
		switch result.Type {
		case gjson.Number:
			v = result.Float()
		case gjson.String:
			parsed, err := parseValue(result.Str)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			v = parsed
		default:
			return nil, fmt.Errorf("field %s: expected a number at %s, got %s", name, r.opts.Fields[name], result.Type)
		}
		samples = append(samples, Sample{Name: name, Value: v, Line: r.line})
	}
	return samples, nil
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

// Feed reads every sample from r into reg and returns the number of
// samples added. It stops early when ctx is cancelled.
func Feed(ctx context.Context, r *Reader, reg *stats.Registry) (int, error) {
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		s, err := r.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		reg.Add(s.Name, s.Value)
		n++
	}
}
