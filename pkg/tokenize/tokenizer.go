// Package tokenize turns tweet text into token sequences. It provides the
// Tokenizer contract, a configurable normalization pipeline, and presets
// that pin the pipeline to published preprocessing recipes.
package tokenize

import (
	"errors"
	"strings"

	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
)

// ErrNotImplemented is the panic value raised when Tokenize is called on a
// Base that has not been given a concrete implementation.
var ErrNotImplemented = errors.New("tokenize: Tokenize must be implemented by a concrete tokenizer")

// Tokenizer is the contract every tokenizer variant satisfies. Concrete
// variants embed Base to inherit the record-traversal methods and supply
// their own Tokenize; anything accepting a Tokenizer works with the
// configurable pipeline, the presets, and user-defined variants alike.
//
// Implementations must be safe for concurrent use: configuration is fixed
// at construction and Tokenize touches no instance state.
type Tokenizer interface {
	// Tokenize splits one text into its token sequence, in order of first
	// occurrence, duplicates preserved. Empty input yields an empty
	// sequence, never an error.
	Tokenize(text string) []string

	// FullText resolves a record's complete content, including embedded
	// retweet/quote content when the tokenizer was built to include it.
	FullText(rec *tweets.Tweet) string

	// Hashtags collects hashtag text from the record (and, when included,
	// its retweet/quote) in encounter order, markers stripped, duplicates
	// preserved.
	Hashtags(rec *tweets.Tweet) []string
}

// Base carries the construction-time options shared by all tokenizer
// variants and implements the record-traversal half of the Tokenizer
// contract. Embed it and supply Tokenize to build a custom variant.
type Base struct {
	includeRetweetedAndQuoted bool
}

// NewBase returns a Base configured to include or exclude embedded
// retweet/quote content in FullText and Hashtags.
func NewBase(includeRetweetedAndQuoted bool) Base {
	return Base{includeRetweetedAndQuoted: includeRetweetedAndQuoted}
}

// IncludesRetweetedAndQuoted reports whether FullText and Hashtags traverse
// embedded retweet/quote records.
func (b Base) IncludesRetweetedAndQuoted() bool {
	return b.includeRetweetedAndQuoted
}

// Tokenize panics with ErrNotImplemented. Concrete variants shadow it.
func (b Base) Tokenize(string) []string {
	panic(ErrNotImplemented)
}

// FullText resolves the record's primary content and, when inclusion is
// enabled, appends the resolved text of the retweeted and quoted
// sub-records, in that order, space-separated. Absent sub-records
// contribute nothing.
func (b Base) FullText(rec *tweets.Tweet) string {
	if rec == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if text := rec.PrimaryText(); text != "" {
		parts = append(parts, text)
	}
	if b.includeRetweetedAndQuoted {
		if text := rec.RetweetedStatus.PrimaryText(); text != "" {
			parts = append(parts, text)
		}
		if text := rec.QuotedStatus.PrimaryText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Hashtags collects hashtag text from the record's own entities and, when
// inclusion is enabled, from the retweeted and quoted sub-records, in that
// order. Leading '#' markers are stripped; order is preserved and
// duplicates are kept.
func (b Base) Hashtags(rec *tweets.Tweet) []string {
	if rec == nil {
		return nil
	}
	tags := hashtagText(rec)
	if b.includeRetweetedAndQuoted {
		tags = append(tags, hashtagText(rec.RetweetedStatus)...)
		tags = append(tags, hashtagText(rec.QuotedStatus)...)
	}
	return tags
}

func hashtagText(rec *tweets.Tweet) []string {
	if rec == nil || rec.Entities == nil || len(rec.Entities.Hashtags) == 0 {
		return nil
	}
	tags := make([]string, 0, len(rec.Entities.Hashtags))
	for _, h := range rec.Entities.Hashtags {
		tags = append(tags, strings.TrimPrefix(h.Text, "#"))
	}
	return tags
}

// TokenizeTweet is the convenience composition of FullText and Tokenize
// for a single record. It is implemented once against the Tokenizer
// contract, so every variant gets it for free.
func TokenizeTweet(t Tokenizer, rec *tweets.Tweet) []string {
	return t.Tokenize(t.FullText(rec))
}
