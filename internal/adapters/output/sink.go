// Package output writes decoded records as JSON lines or YAML documents.
package output

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/aisparser/internal/ports"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewSink returns a sink writing format to w. The sink closes w on Close
// unless w is os.Stdout or os.Stderr.
func NewSink(format string, w io.Writer) (ports.RecordSink, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "jsonl", "":
		return NewJSONSink(w), nil
	case FormatYAML, "yml":
		return NewYAMLSink(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// base holds the buffered writer shared by both sinks.
type base struct {
	dst io.Writer
	buf *bufio.Writer
}

func newBase(w io.Writer) base {
	return base{dst: w, buf: bufio.NewWriter(w)}
}

func (b base) close() error {
	err := b.buf.Flush()
	if b.dst == os.Stdout || b.dst == os.Stderr {
		return err
	}
	if c, ok := b.dst.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	base
	enc *json.Encoder
}

// NewJSONSink creates a JSONSink over w.
func NewJSONSink(w io.Writer) *JSONSink {
	b := newBase(w)
	enc := json.NewEncoder(b.buf)
	enc.SetEscapeHTML(false)
	return &JSONSink{base: b, enc: enc}
}

// Write encodes rec as a single line.
func (s *JSONSink) Write(ctx context.Context, rec ports.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.enc.Encode(rec)
}

// Flush pushes buffered lines to the destination.
func (s *JSONSink) Flush() error { return s.buf.Flush() }

// Close flushes and closes the destination.
func (s *JSONSink) Close() error { return s.close() }

// YAMLSink writes one YAML document per record.
type YAMLSink struct {
	base
	enc *yaml.Encoder
}

// NewYAMLSink creates a YAMLSink over w.
func NewYAMLSink(w io.Writer) *YAMLSink {
	b := newBase(w)
	enc := yaml.NewEncoder(b.buf)
	enc.SetIndent(2)
	return &YAMLSink{base: b, enc: enc}
}

// Write encodes rec as a YAML document.
func (s *YAMLSink) Write(ctx context.Context, rec ports.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.enc.Encode(rec)
}

// Flush pushes buffered documents to the destination.
func (s *YAMLSink) Flush() error { return s.buf.Flush() }

// Close ends the YAML stream, flushes and closes the destination.
func (s *YAMLSink) Close() error {
	if err := s.enc.Close(); err != nil {
		return err
	}
	return s.close()
}
