package tokenize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a tokenizer configuration. Boolean fields
// are pointers so an absent key keeps its default instead of forcing false.
type fileConfig struct {
	Language                  string   `yaml:"language"`
	TokenPattern              string   `yaml:"token_pattern"`
	Stopwords                 []string `yaml:"stopwords"`
	StopwordFile              string   `yaml:"stopword_file"`
	RemoveHashtags            *bool    `yaml:"remove_hashtags"`
	KeepHashtagMarkers        *bool    `yaml:"keep_hashtag_markers"`
	Lowercase                 *bool    `yaml:"lowercase"`
	ExpandContractions        *bool    `yaml:"expand_contractions"`
	IncludeRetweetedAndQuoted *bool    `yaml:"include_retweeted_and_quoted"`
}

// LoadConfig reads a tokenizer configuration from a YAML file, overlaying
// the file's settings on DefaultConfig. Stopwords may be listed inline,
// loaded from a referenced one-word-per-line file, or both (the sets are
// merged). The returned Config still goes through New, which is where
// pattern and language validation happen.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, &ConfigError{Field: "config file", Err: err}
	}

	cfg := DefaultConfig()
	if fc.Language != "" {
		cfg.Language = fc.Language
	}
	if fc.TokenPattern != "" {
		cfg.TokenPattern = fc.TokenPattern
	}
	if fc.RemoveHashtags != nil {
		cfg.RemoveHashtags = *fc.RemoveHashtags
	}
	if fc.KeepHashtagMarkers != nil {
		cfg.KeepHashtagMarkers = *fc.KeepHashtagMarkers
	}
	if fc.Lowercase != nil {
		cfg.Lowercase = *fc.Lowercase
	}
	if fc.ExpandContractions != nil {
		cfg.ExpandContractions = *fc.ExpandContractions
	}
	if fc.IncludeRetweetedAndQuoted != nil {
		cfg.IncludeRetweetedAndQuoted = *fc.IncludeRetweetedAndQuoted
	}

	if len(fc.Stopwords) > 0 || fc.StopwordFile != "" {
		stopwords := NewStopwords(fc.Stopwords...)
		if fc.StopwordFile != "" {
			fromFile, err := LoadStopwords(fc.StopwordFile)
			if err != nil {
				return Config{}, err
			}
			for w := range fromFile {
				stopwords[w] = struct{}{}
			}
		}
		cfg.Stopwords = stopwords
	}
	return cfg, nil
}
