package maple

/*
Purpose: persist raw sample captures to disk for offline replay through
Debittify, the way the reference driver's debug_write_filename parameter
did for a single fixed path. Here every capture gets its own file, named
with a timestamp so a capture session doesn't overwrite itself.
*/

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lestrrat-go/strftime"
)

// defaultCapturePattern is the strftime pattern used when none is given.
const defaultCapturePattern = "capture-%Y%m%d-%H%M%S"

// CaptureSink writes every raw sample capture handed to it to its own
// timestamped file under Dir.
type CaptureSink struct {
	Dir string

	seq  uint64
	strf *strftime.Strftime
}

// NewCaptureSink builds a CaptureSink that writes into dir, naming each
// file from pattern (a strftime layout). An empty pattern defaults to
// "capture-%Y%m%d-%H%M%S".
func NewCaptureSink(dir, pattern string) (*CaptureSink, error) {
	if pattern == "" {
		pattern = defaultCapturePattern
	}

	strf, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("maple: capture sink pattern %q: %w", pattern, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("maple: capture sink dir %q: %w", dir, err)
	}

	return &CaptureSink{Dir: dir, strf: strf}, nil
}

// Write saves raw to a new file and returns the path written.
func (c *CaptureSink) Write(raw []byte) (string, error) {
	n := atomic.AddUint64(&c.seq, 1)
	name := fmt.Sprintf("%s-%04d.bin", c.strf.FormatString(time.Now()), n)
	path := filepath.Join(c.Dir, name)

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("maple: writing capture %q: %w", path, err)
	}
	return path, nil
}
