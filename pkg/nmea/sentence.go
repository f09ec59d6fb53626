package nmea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bft-labs/aisparser/internal/domain"
)

// Formatters carrying AIS payloads.
const (
	FormatterVDM = "VDM"
	FormatterVDO = "VDO"
)

// Sentence is one parsed AIVDM/AIVDO line.
type Sentence struct {
	Raw       string
	Delimiter byte
	Talker    string
	Formatter string

	// Count is the number of fragments in the group, Number this fragment's
	// 1-based position.
	Count  int
	Number int

	// SeqID is the sequential message id shared by fragments of one group.
	// Empty for single-fragment sentences.
	SeqID string

	// Channel is the radio channel ("A", "B", "1", "2") or empty.
	Channel string

	Payload string
	Fill    int

	Checksum Result
}

// Own reports whether the sentence describes the receiver's own vessel (VDO).
func (s Sentence) Own() bool { return s.Formatter == FormatterVDO }

// Parse splits a raw AIVDM/AIVDO line into its fields.
// The checksum is computed and recorded but not enforced; callers decide
// the policy through Sentence.Checksum.
func Parse(line string) (Sentence, error) {
	line = strings.TrimRight(line, "\r\n")

	sum, err := Verify(line)
	if err != nil {
		return Sentence{}, err
	}

	start := strings.IndexAny(line, "!$")
	body := line[start+1:]
	if i := strings.IndexByte(body, '*'); i >= 0 {
		body = body[:i]
	}

	fields := strings.Split(body, ",")
	if len(fields) < 7 {
		return Sentence{}, malformed("expected 7 fields, got %d", len(fields))
	}

	addr := fields[0]
	if len(addr) != 5 {
		return Sentence{}, malformed("address field %q", addr)
	}
	s := Sentence{
		Raw:       line,
		Delimiter: line[start],
		Talker:    addr[:2],
		Formatter: addr[2:],
		SeqID:     fields[3],
		Channel:   fields[4],
		Payload:   fields[5],
		Checksum:  sum,
	}
	if s.Formatter != FormatterVDM && s.Formatter != FormatterVDO {
		return Sentence{}, fmt.Errorf("%w: %s", domain.ErrNotAIS, addr)
	}

	if s.Count, err = strconv.Atoi(fields[1]); err != nil || s.Count < 1 || s.Count > 9 {
		return Sentence{}, malformed("fragment count %q", fields[1])
	}
	if s.Number, err = strconv.Atoi(fields[2]); err != nil || s.Number < 1 || s.Number > s.Count {
		return Sentence{}, malformed("fragment number %q", fields[2])
	}
	if fields[6] != "" {
		if s.Fill, err = strconv.Atoi(fields[6]); err != nil || s.Fill < 0 || s.Fill > 5 {
			return Sentence{}, malformed("fill bits %q", fields[6])
		}
	}
	return s, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedSentence, fmt.Sprintf(format, args...))
}
