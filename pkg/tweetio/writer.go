package tweetio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
	"github.com/rs/zerolog"
)

// WriteOption configures a Writer at create time.
type WriteOption func(*Writer)

// WithAppend opens the destination in append mode instead of truncating it.
// Appending to a compressed destination writes a new compressed member,
// which readers handle transparently.
func WithAppend() WriteOption {
	return func(w *Writer) {
		w.appendMode = true
	}
}

// WithWriteLogger attaches a logger to the Writer. The default is a no-op
// logger.
func WithWriteLogger(logger zerolog.Logger) WriteOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// Writer serializes tweet records to a line-delimited JSON file, one record
// per line in call order, compressing transparently when the filename
// suffix names a registered codec. A Writer is not safe for concurrent use.
type Writer struct {
	dest string
	file *os.File
	comp io.WriteCloser // nil when writing a plain file
	buf  *bufio.Writer
	enc  *json.Encoder

	appendMode bool
	written    int
	logger     zerolog.Logger
	closed     bool
}

// NewWriter creates (or, with WithAppend, opens) dest for writing, creating
// parent directories as needed. The caller must call Close to flush.
func NewWriter(dest string, opts ...WriteOption) (*Writer, error) {
	w := &Writer{
		dest:   dest,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().Str("component", "TweetWriter").Str("destination", dest).Logger()

	if dir := filepath.Dir(dest); dir != "." && dir != string(filepath.Separator) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if w.appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(dest, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}
	w.file = f

	var out io.Writer = f
	if c, ok := codecFor(dest); ok {
		w.comp = c.wrapWriter(f)
		out = w.comp
	}
	w.buf = bufio.NewWriter(out)
	w.enc = json.NewEncoder(w.buf)
	return w, nil
}

// Write serializes one record as a single JSON line.
func (w *Writer) Write(tw *tweets.Tweet) error {
	if w.closed {
		return fmt.Errorf("writing to closed writer for %s", w.dest)
	}
	if err := w.enc.Encode(tw); err != nil {
		return fmt.Errorf("writing record to %s: %w", w.dest, err)
	}
	w.written++
	return nil
}

// WriteAll serializes records in order, one JSON line each. When the
// destination is compressed, batching all records into a single WriteAll
// call (and a single Writer lifetime) gives the codec one contiguous stream
// to work with; repeated single-record appends still work but compress
// worse.
func (w *Writer) WriteAll(records []*tweets.Tweet) error {
	for _, tw := range records {
		if err := w.Write(tw); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered data, finalizes any compression stream, and closes
// the file. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flushing %s: %w", w.dest, err))
	}
	if w.comp != nil {
		if err := w.comp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing compressor for %s: %w", w.dest, err))
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing %s: %w", w.dest, err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	w.logger.Debug().Int("records_written", w.written).Msg("Writer closed.")
	return nil
}
