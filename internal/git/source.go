package git

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/convlog/internal/changelog"
)

// StdinPath selects standard input as the FileSource path.
const StdinPath = "-"

// FileSource is a CommitSource reading pipe-delimited records from a file or
// standard input. Records end in changelog.RecordTerminator, or with the line
// when they carry no terminator. The range is ignored; the input is
// expected to hold exactly the commits to render.
type FileSource struct {
	Path string
	// Stdin is read when Path is StdinPath. Defaults to os.Stdin.
	Stdin io.Reader
}

// Commits reads every record from the source.
func (s FileSource) Commits(ctx context.Context, _ Range) ([]changelog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.Path == StdinPath {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		logDebug("[git] FileSource: reading records from stdin")
		return changelog.ParseRecords(in)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening commit records: %w", err)
	}
	defer f.Close()

	logDebug("[git] FileSource: reading records from %s", s.Path)
	return changelog.ParseRecords(f)
}

// StaticSource is a CommitSource over records already in memory.
type StaticSource []changelog.Record

// Commits returns the records unchanged; the range is ignored.
func (s StaticSource) Commits(ctx context.Context, _ Range) ([]changelog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
