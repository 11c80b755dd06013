package tokenize

import "regexp"

// Preset tokenizers pin the configurable pipeline to published
// preprocessing recipes. They accept only the retweet/quote inclusion
// flag; everything else is fixed.

// bertweetPattern keeps hashtags whole (marker attached), emoji and
// modifier symbols as standalone tokens, and punctuation runs (which also
// covers common emoticons like ":)" after the pre-split pass).
var (
	bertweetPattern = `#?[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)*|[\p{So}\p{Sk}]|\p{P}+`
	emojiSplitRE    = regexp.MustCompile(`[\p{So}\p{Sk}]`)
)

// BERTweetTokenizer reproduces the preprocessing used for BERTweet-family
// transformer models: lowercased, hashtag markers preserved on the token,
// emoji and punctuation kept as tokens, contractions left alone (the
// model's own normalizer handles them).
type BERTweetTokenizer struct {
	*ConfigurableTokenizer
}

// NewBERTweetTokenizer builds the BERTweet preset.
func NewBERTweetTokenizer(includeRetweetedAndQuoted bool) *BERTweetTokenizer {
	cfg := DefaultConfig()
	cfg.IncludeRetweetedAndQuoted = includeRetweetedAndQuoted
	cfg.TokenPattern = bertweetPattern
	cfg.KeepHashtagMarkers = true
	cfg.ExpandContractions = false

	t := mustNew(cfg)
	t.preSplit = emojiSplitRE
	return &BERTweetTokenizer{t}
}

// GloVeTokenizer reproduces the preprocessing used for GloVe-style
// embedding models: lowercased letter-only tokens, hashtag markers
// stripped, emoji and punctuation discarded, contractions expanded.
type GloVeTokenizer struct {
	*ConfigurableTokenizer
}

// NewGloVeTokenizer builds the GloVe preset.
func NewGloVeTokenizer(includeRetweetedAndQuoted bool) *GloVeTokenizer {
	cfg := DefaultConfig()
	cfg.IncludeRetweetedAndQuoted = includeRetweetedAndQuoted
	cfg.TokenPattern = `\p{L}+`
	return &GloVeTokenizer{mustNew(cfg)}
}
