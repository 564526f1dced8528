package changelog

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RecordSeparator separates the fields of a serialized commit record.
const RecordSeparator = "|"

// RecordTerminator ends a commit record. Bodies span several lines, so a
// stream of records is split on the terminator rather than on newlines:
//
//	git log --format='%s|%b|%H|%h|%an|%at|>'
const RecordTerminator = "|>"

// terminatorPattern matches a RecordTerminator closing its line, so bodies
// quoting "|>" mid-line are left alone.
var terminatorPattern = regexp.MustCompile(`\|>\r?(?:\n|$)`)

// dateLayout is the form every commit date is reduced to.
const dateLayout = "2006-01-02"

// timestampLayouts are the non-epoch timestamp forms accepted in records,
// tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700", // git %ci
	"2006-01-02T15:04:05",
	dateLayout,
}

// ParseRecord splits a pipe-delimited record of the form
// subject|body|long_hash|short_hash|author|timestamp into a Record. A
// trailing RecordTerminator is dropped. Missing trailing fields are left
// empty, so five-field records without a timestamp are accepted. Any extra
// separators are kept in the timestamp.
func ParseRecord(line string) Record {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimRight(strings.TrimSuffix(line, RecordTerminator), "\r\n")
	fields := strings.SplitN(line, RecordSeparator, 6)
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Record{
		Subject:   field(0),
		Body:      field(1),
		LongHash:  field(2),
		ShortHash: field(3),
		Author:    field(4),
		Timestamp: field(5),
	}
}

// ParseRecords reads every record from r. Records ending in RecordTerminator
// at the end of a line may span lines; text after the last terminator, or
// input without one, is read one record per non-blank line.
func ParseRecords(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commit records: %w", err)
	}
	text := string(data)

	var records []Record
	for {
		loc := terminatorPattern.FindStringIndex(text)
		if loc == nil {
			break
		}
		chunk := strings.TrimLeft(text[:loc[0]], "\r\n")
		text = text[loc[1]:]
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		records = append(records, ParseRecord(chunk))
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseRecord(line))
	}

	return records, nil
}

// String serializes the record back to its pipe-delimited form.
func (r Record) String() string {
	return strings.Join([]string{r.Subject, r.Body, r.LongHash, r.ShortHash, r.Author, r.Timestamp}, RecordSeparator)
}

// FormatDate reduces a record timestamp to YYYY-MM-DD. Unix epoch seconds and
// the layouts in timestampLayouts are understood; anything else is returned
// unchanged.
func FormatDate(timestamp string) string {
	ts := strings.TrimSpace(timestamp)
	if ts == "" {
		return ""
	}

	if secs, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC().Format(dateLayout)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(dateLayout)
		}
	}

	return timestamp
}
