package tweetio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
	"github.com/rs/zerolog"
)

// maxLineBytes bounds a single record's line length. Platform messages are
// small; 4MiB leaves ample headroom for heavily nested records.
const maxLineBytes = 4 * 1024 * 1024

// ReadOption configures a Reader at open time.
type ReadOption func(*Reader)

// SkipRetweetedAndQuoted drops records that are themselves reposts or
// quotes, yielding only original content.
func SkipRetweetedAndQuoted() ReadOption {
	return func(r *Reader) {
		r.skipShared = true
	}
}

// WithDuplicateFilter drops records whose id_str has already been seen in
// this pass, using a bloom filter sized for expectedItems with the given
// false-positive rate. A false positive drops an original record, so pick a
// rate appropriate for the corpus size. Records without an id_str are never
// filtered.
func WithDuplicateFilter(expectedItems uint, falsePositiveRate float64) ReadOption {
	return func(r *Reader) {
		r.seen = bloom.NewWithEstimates(expectedItems, falsePositiveRate)
	}
}

// WithLogger attaches a logger to the Reader. The default is a no-op logger.
func WithLogger(logger zerolog.Logger) ReadOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// Reader streams tweet records from a line-delimited JSON file, one record
// per line, decompressing transparently when the filename suffix names a
// registered codec. A Reader is single-pass and not safe for concurrent use.
type Reader struct {
	source  string
	file    *os.File
	decomp  io.ReadCloser // nil when reading a plain file
	scanner *bufio.Scanner
	line    int

	skipShared bool
	seen       *bloom.BloomFilter
	logger     zerolog.Logger
	closed     bool
}

// NewReader opens source for reading. The caller must call Close when done,
// whether or not the file is fully consumed.
func NewReader(source string, opts ...ReadOption) (*Reader, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", source, err)
	}

	r := &Reader{
		source: source,
		file:   f,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "TweetReader").Str("source", source).Logger()

	var in io.Reader = f
	if c, ok := codecFor(source); ok {
		decomp, err := c.wrapReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening compressed stream %s: %w", source, err)
		}
		r.decomp = decomp
		in = decomp
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	r.scanner = scanner
	return r, nil
}

// Read returns the next record in source order, or io.EOF once the file is
// exhausted. A line that is not valid JSON yields a *MalformedRecordError
// with the source and line number; the Reader advances past the bad line,
// so calling Read again resumes with the following record. Blank lines are
// skipped silently.
func (r *Reader) Read() (*tweets.Tweet, error) {
	for r.scanner.Scan() {
		r.line++
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var tw tweets.Tweet
		if err := json.Unmarshal(line, &tw); err != nil {
			return nil, &MalformedRecordError{Source: r.source, Line: r.line, Err: err}
		}

		if r.skipShared && (tw.IsRetweet() || tw.IsQuote()) {
			continue
		}
		if r.seen != nil && tw.IDStr != "" && r.seen.TestOrAddString(tw.IDStr) {
			r.logger.Debug().Str("id_str", tw.IDStr).Int("line", r.line).Msg("Skipping duplicate record.")
			continue
		}
		return &tw, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.source, err)
	}
	return nil, io.EOF
}

// ReadAll drains the Reader and returns every remaining record. The first
// error other than io.EOF, including a malformed line, stops the drain and
// is returned alongside the records read so far.
func (r *Reader) ReadAll() ([]*tweets.Tweet, error) {
	var records []*tweets.Tweet
	for {
		tw, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, tw)
	}
}

// Close releases the underlying file and any decompression handle. It is
// safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if r.decomp != nil {
		if err := r.decomp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing decompressor for %s: %w", r.source, err))
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing %s: %w", r.source, err))
	}
	return errors.Join(errs...)
}
