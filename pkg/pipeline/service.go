// Package pipeline wires a tweetio.Reader, a tokenizer, and a
// tweetio.Writer into a whole-file tokenization job: read each record,
// attach its token sequence, and write it back out in source order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/illmade-knight/go-tweetflow/pkg/tokenize"
	"github.com/illmade-knight/go-tweetflow/pkg/tweetio"
	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
	"github.com/rs/zerolog"
)

// TweetTransformer produces the token sequence for one record. Returning
// skip=true drops the record from the output without error; returning an
// error aborts the run.
type TweetTransformer func(ctx context.Context, rec *tweets.Tweet) (tokens []string, skip bool, err error)

// TokenizeTransformer adapts any Tokenizer into a TweetTransformer.
// Records whose content tokenizes to nothing are skipped.
func TokenizeTransformer(t tokenize.Tokenizer) TweetTransformer {
	return func(_ context.Context, rec *tweets.Tweet) ([]string, bool, error) {
		tokens := tokenize.TokenizeTweet(t, rec)
		if len(tokens) == 0 {
			return nil, true, nil
		}
		return tokens, false, nil
	}
}

// ServiceConfig holds configuration for a Service.
type ServiceConfig struct {
	// LogEvery controls how often a progress line is logged, in records.
	LogEvery int
	// FailOnMalformed aborts the run on the first malformed input line
	// instead of counting and skipping it.
	FailOnMalformed bool
}

// Stats summarizes a completed run.
type Stats struct {
	// Read counts well-formed records consumed from the source.
	Read int
	// Written counts records written with tokens attached.
	Written int
	// Skipped counts records the transformer dropped.
	Skipped int
	// Malformed counts input lines that were not valid JSON.
	Malformed int
}

// Service drives one tokenization pass over a tweet file. Processing is
// sequential: output order matching input order is part of the contract,
// and the tokenizer itself is pure CPU work with no I/O to overlap.
type Service struct {
	cfg       ServiceConfig
	reader    *tweetio.Reader
	transform TweetTransformer
	writer    *tweetio.Writer
	logger    zerolog.Logger
}

// NewService validates the collaborators and returns a ready-to-run
// Service. The Service does not own the reader or writer; the caller
// closes both after Run returns.
func NewService(
	cfg ServiceConfig,
	reader *tweetio.Reader,
	transform TweetTransformer,
	writer *tweetio.Writer,
	logger zerolog.Logger,
) (*Service, error) {
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 10000
	}
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	if transform == nil {
		return nil, fmt.Errorf("transformer cannot be nil")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer cannot be nil")
	}

	return &Service{
		cfg:       cfg,
		reader:    reader,
		transform: transform,
		writer:    writer,
		logger:    logger.With().Str("service", "TokenizeService").Logger(),
	}, nil
}

// Run processes the whole file, honoring ctx cancellation between records.
// It returns the stats accumulated so far alongside any error.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	runLogger := s.logger.With().Str("run_id", uuid.NewString()).Logger()
	runLogger.Info().Msg("Starting tokenization run...")

	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			runLogger.Warn().Err(err).Msg("Run cancelled.")
			return stats, err
		}

		rec, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var malformed *tweetio.MalformedRecordError
		if errors.As(err, &malformed) {
			stats.Malformed++
			if s.cfg.FailOnMalformed {
				return stats, err
			}
			runLogger.Warn().Int("line", malformed.Line).Msg("Skipping malformed record.")
			continue
		}
		if err != nil {
			return stats, err
		}
		stats.Read++

		tokens, skip, err := s.transform(ctx, rec)
		if err != nil {
			return stats, fmt.Errorf("transforming record %q: %w", rec.IDStr, err)
		}
		if skip {
			stats.Skipped++
			continue
		}

		rec.Tokens = tokens
		if err := s.writer.Write(rec); err != nil {
			return stats, err
		}
		stats.Written++

		if stats.Read%s.cfg.LogEvery == 0 {
			runLogger.Info().
				Int("read", stats.Read).
				Int("written", stats.Written).
				Msg("Progress.")
		}
	}

	runLogger.Info().
		Int("read", stats.Read).
		Int("written", stats.Written).
		Int("skipped", stats.Skipped).
		Int("malformed", stats.Malformed).
		Msg("Tokenization run complete.")
	return stats, nil
}
