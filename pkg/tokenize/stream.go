package tokenize

import (
	"errors"
	"io"
	"strings"

	"github.com/illmade-knight/go-tweetflow/pkg/tweetio"
)

// TokenStream is a lazy, single-pass sequence of per-record token slices
// produced by driving a tweetio.Reader through a Tokenizer. It owns the
// underlying reader for its lifetime: the file and any decompression handle
// are released when the stream is exhausted, errors out, or is closed
// early. A TokenStream is not restartable; reopen the source for another
// pass.
type TokenStream struct {
	tokenizer Tokenizer
	reader    *tweetio.Reader
	tokens    []string
	err       error
	done      bool
}

// TokenizeFile opens source and returns a TokenStream yielding the
// tokenized content of each record in file order. Records that tokenize to
// nothing are skipped. Like TokenizeTweet, this works for any Tokenizer
// variant.
func TokenizeFile(t Tokenizer, source string, opts ...tweetio.ReadOption) (*TokenStream, error) {
	reader, err := tweetio.NewReader(source, opts...)
	if err != nil {
		return nil, err
	}
	return &TokenStream{tokenizer: t, reader: reader}, nil
}

// Next advances to the next record with a non-empty token sequence. It
// returns false when the source is exhausted or a read error occurred;
// check Err to tell the two apart. A malformed line stops the stream — the
// tokenize layer does not decide skip-or-abort on the caller's behalf.
func (s *TokenStream) Next() bool {
	if s.done {
		return false
	}
	for {
		rec, err := s.reader.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			s.finish()
			return false
		}
		tokens := TokenizeTweet(s.tokenizer, rec)
		if len(tokens) == 0 {
			continue
		}
		s.tokens = tokens
		return true
	}
}

// Tokens returns the current record's token sequence.
func (s *TokenStream) Tokens() []string {
	return s.tokens
}

// Text returns the current record's tokens joined by single spaces.
func (s *TokenStream) Text() string {
	return strings.Join(s.tokens, " ")
}

// Err returns the first error encountered by the stream, excluding io.EOF.
func (s *TokenStream) Err() error {
	return s.err
}

// Close releases the underlying reader. It is safe to call at any point,
// including after exhaustion, and more than once.
func (s *TokenStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.reader.Close()
}

func (s *TokenStream) finish() {
	s.done = true
	if err := s.reader.Close(); err != nil && s.err == nil {
		s.err = err
	}
}
