package tokenize

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTokenPattern matches runs of word characters (letters, digits,
// underscore) bounded by word boundaries. Alternatives worth knowing:
// letters only `\p{L}+`, letters and digits `[\p{L}\p{N}]+`, starts with a
// letter `\p{L}[\p{L}\p{N}]*`.
const DefaultTokenPattern = `\b\w+\b`

// Patterns for the fixed normalization steps. The removal alternation
// strips URLs, @-handles, and the standalone repost marker; the marker
// match is case-sensitive, which is why case normalization runs after this
// step.
var (
	hashtagRE       = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	hashtagMarkerRE = regexp.MustCompile(`#([\p{L}\p{N}_])`)
	removalRE       = regexp.MustCompile(`https?://[\w./?=]+|@\w+|\bRT\b`)
)

// supportedLanguages limits Config.Language to the languages the
// normalization pipeline has been validated against.
var supportedLanguages = map[string]bool{"en": true}

// ConfigError reports malformed tokenizer configuration. It is returned at
// construction time, never deferred to the first Tokenize call.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tokenize: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config holds the construction-time options for a ConfigurableTokenizer.
// Start from DefaultConfig and adjust; a zero Config disables lowercasing
// and contraction expansion rather than defaulting them on.
type Config struct {
	// Language is the BCP-47 tag of the corpus language. Only English is
	// supported.
	Language string

	// TokenPattern is the Go regular expression defining what counts as a
	// token during extraction. Unicode character classes are supported.
	TokenPattern string

	// Stopwords, when non-empty, drops extracted tokens by exact string
	// match after case normalization.
	Stopwords Stopwords

	// RemoveHashtags deletes each hashtag entirely, marker and word. When
	// false, only the '#' marker is stripped and the tag word survives as
	// an ordinary token candidate (unless KeepHashtagMarkers is set).
	RemoveHashtags bool

	// KeepHashtagMarkers leaves the '#' marker attached so a token pattern
	// that matches it can keep hashtags whole. Used by presets.
	KeepHashtagMarkers bool

	// Lowercase lowercases the text after noise removal and before
	// extraction.
	Lowercase bool

	// ExpandContractions rewrites English contractions to their expanded
	// forms ("can't" -> "can not") after lowercasing.
	ExpandContractions bool

	// IncludeRetweetedAndQuoted controls whether FullText and Hashtags
	// traverse embedded retweet/quote records.
	IncludeRetweetedAndQuoted bool
}

// DefaultConfig returns the configuration used by littlebird-style corpus
// preprocessing: English, word tokens, lowercased, contractions expanded,
// hashtag words kept, embedded content included.
func DefaultConfig() Config {
	return Config{
		Language:                  "en",
		TokenPattern:              DefaultTokenPattern,
		Lowercase:                 true,
		ExpandContractions:        true,
		IncludeRetweetedAndQuoted: true,
	}
}

// ConfigurableTokenizer implements Tokenize as a fixed-order pipeline:
// hashtag handling, noise removal (URLs, handles, repost markers),
// case normalization, contraction expansion, pattern extraction, and
// stopword filtering. Each step is optional per Config; the order is not.
//
// Instances are immutable after construction and safe for concurrent use.
type ConfigurableTokenizer struct {
	Base
	cfg     Config
	langTag language.Tag
	tokenRE *regexp.Regexp

	// preSplit, when set by a preset, spaces out emoji or punctuation
	// before the shared pipeline runs so they survive as standalone token
	// candidates.
	preSplit *regexp.Regexp
}

// New builds a ConfigurableTokenizer from cfg. An empty Language or
// TokenPattern falls back to the defaults; an invalid pattern or an
// unsupported language fails fast with a *ConfigError.
func New(cfg Config) (*ConfigurableTokenizer, error) {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.TokenPattern == "" {
		cfg.TokenPattern = DefaultTokenPattern
	}

	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, &ConfigError{Field: "language", Err: err}
	}
	base, _ := tag.Base()
	if !supportedLanguages[base.String()] {
		return nil, &ConfigError{Field: "language", Err: fmt.Errorf("unsupported language %q", cfg.Language)}
	}

	tokenRE, err := regexp.Compile(cfg.TokenPattern)
	if err != nil {
		return nil, &ConfigError{Field: "token pattern", Err: err}
	}

	return &ConfigurableTokenizer{
		Base:    NewBase(cfg.IncludeRetweetedAndQuoted),
		cfg:     cfg,
		langTag: tag,
		tokenRE: tokenRE,
	}, nil
}

// mustNew is New for pinned preset configurations, which always compile.
func mustNew(cfg Config) *ConfigurableTokenizer {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Tokenize runs the normalization pipeline over text and returns the
// extracted tokens in order of appearance. Empty input yields nil.
func (t *ConfigurableTokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	if t.preSplit != nil {
		text = t.preSplit.ReplaceAllString(text, " $0 ")
	}

	// Step 1: hashtags. Either remove marker and word, or detach the
	// marker so the tag word tokenizes like any other word.
	if t.cfg.RemoveHashtags {
		text = hashtagRE.ReplaceAllString(text, " ")
	} else if !t.cfg.KeepHashtagMarkers {
		text = hashtagMarkerRE.ReplaceAllString(text, "$1")
	}

	// Step 2: noise. URLs, @-handles, and the case-sensitive RT marker go
	// before lowercasing touches the text.
	text = removalRE.ReplaceAllString(text, " ")

	// Step 3: case normalization, language-aware. A Caser is stateful, so
	// one is created per call to keep Tokenize concurrency-safe.
	if t.cfg.Lowercase {
		text = cases.Lower(t.langTag).String(text)
	}

	// Step 4: contractions. The table is lowercase, so this follows the
	// case step.
	if t.cfg.ExpandContractions {
		text = expandContractions(text)
	}

	// Step 5: extraction.
	tokens := t.tokenRE.FindAllString(text, -1)

	// Step 6: stopwords, exact-match against the already-normalized token.
	if len(t.cfg.Stopwords) > 0 {
		kept := tokens[:0]
		for _, tok := range tokens {
			if !t.cfg.Stopwords.Contains(tok) {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}
	return tokens
}
