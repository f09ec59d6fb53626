package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/aisparser/internal/ports"
)

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return nil
}

func sampleRecords() []ports.Record {
	return []ports.Record{
		{Session: "s1", Line: 1, Channel: "B", Type: 3, MMSI: 366773110, Kind: "position_report",
			Message: map[string]any{"sog": 14.4}},
		{Session: "s1", Line: 3, Type: 5, MMSI: 351759000, Kind: "static_voyage_data",
			Message: map[string]any{"name": "EVER DIADEM"}},
	}
}

func TestJSONSink(t *testing.T) {
	var buf closeBuffer
	sink, err := NewSink("json", &buf)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	for _, rec := range sampleRecords() {
		if err := sink.Write(context.Background(), rec); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !buf.closed {
		t.Fatal("expected destination to be closed")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var got ports.Record
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.MMSI != 351759000 || got.Kind != "static_voyage_data" || got.Channel != "" {
		t.Fatalf("unexpected record %+v", got)
	}
	if strings.Contains(lines[1], `"channel"`) {
		t.Fatalf("empty channel should be omitted: %s", lines[1])
	}
}

func TestYAMLSink(t *testing.T) {
	var buf closeBuffer
	sink, err := NewSink("yaml", &buf)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	for _, rec := range sampleRecords() {
		if err := sink.Write(context.Background(), rec); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(buf.String()))
	var docs []ports.Record
	for {
		var rec ports.Record
		if err := dec.Decode(&rec); err != nil {
			break
		}
		docs = append(docs, rec)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d:\n%s", len(docs), buf.String())
	}
	if docs[0].MMSI != 366773110 || docs[0].Channel != "B" {
		t.Fatalf("unexpected first document %+v", docs[0])
	}
}

func TestNewSinkUnknownFormat(t *testing.T) {
	if _, err := NewSink("xml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
