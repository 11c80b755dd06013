package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/illmade-knight/go-tweetflow/pkg/pipeline"
	"github.com/illmade-knight/go-tweetflow/pkg/tokenize"
	"github.com/illmade-knight/go-tweetflow/pkg/tweetio"
	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// newRunService builds a service over the given input lines and returns it
// with the output path. Reader and writer are cleaned up with the test.
func newRunService(t *testing.T, cfg pipeline.ServiceConfig, lines ...string) (*pipeline.Service, *tweetio.Writer, string) {
	t.Helper()
	dir := t.TempDir()
	inputPath := writeInput(t, dir, lines...)
	outputPath := filepath.Join(dir, "output.json")

	reader, err := tweetio.NewReader(inputPath)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, reader.Close()) })

	writer, err := tweetio.NewWriter(outputPath)
	require.NoError(t, err)

	tokenizer, err := tokenize.New(tokenize.DefaultConfig())
	require.NoError(t, err)

	service, err := pipeline.NewService(
		cfg, reader, pipeline.TokenizeTransformer(tokenizer), writer, zerolog.Nop())
	require.NoError(t, err)
	return service, writer, outputPath
}

func readOutput(t *testing.T, path string) []*tweets.Tweet {
	t.Helper()
	reader, err := tweetio.NewReader(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reader.Close()) }()
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestService_Run(t *testing.T) {
	// Arrange: one plain record, one noise-only record (skipped), one
	// malformed line (counted), one truncated record.
	service, writer, outputPath := newRunService(t, pipeline.ServiceConfig{},
		`{"id_str":"1","text":"Check this out! #cool"}`,
		`{"id_str":"2","text":"http://example.com"}`,
		`{not json`,
		`{"id_str":"3","text":"sho...","truncated":true,"extended_tweet":{"full_text":"the full story"}}`,
	)

	// Act
	stats, err := service.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	// Assert
	assert.Equal(t, pipeline.Stats{Read: 3, Written: 2, Skipped: 1, Malformed: 1}, stats)

	records := readOutput(t, outputPath)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].IDStr)
	assert.Equal(t, []string{"check", "this", "out", "cool"}, records[0].Tokens)
	assert.Equal(t, "3", records[1].IDStr)
	assert.Equal(t, []string{"the", "full", "story"}, records[1].Tokens)
}

func TestService_FailOnMalformed(t *testing.T) {
	service, writer, _ := newRunService(t, pipeline.ServiceConfig{FailOnMalformed: true},
		`{"id_str":"1","text":"fine"}`,
		`{not json`,
		`{"id_str":"2","text":"never reached"}`,
	)
	defer func() { require.NoError(t, writer.Close()) }()

	stats, err := service.Run(context.Background())

	var malformed *tweetio.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, 1, stats.Written)
}

func TestService_TransformerErrorAborts(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInput(t, dir, `{"id_str":"1","text":"fine"}`)

	reader, err := tweetio.NewReader(inputPath)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, reader.Close()) })
	writer, err := tweetio.NewWriter(filepath.Join(dir, "output.json"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, writer.Close()) })

	boom := errors.New("boom")
	failing := func(_ context.Context, _ *tweets.Tweet) ([]string, bool, error) {
		return nil, false, boom
	}
	service, err := pipeline.NewService(pipeline.ServiceConfig{}, reader, failing, writer, zerolog.Nop())
	require.NoError(t, err)

	_, err = service.Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestService_CancelledContext(t *testing.T) {
	service, writer, _ := newRunService(t, pipeline.ServiceConfig{},
		`{"id_str":"1","text":"fine"}`,
	)
	defer func() { require.NoError(t, writer.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := service.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, pipeline.Stats{}, stats)
}

func TestNewService_Validation(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeInput(t, dir, `{"text":"x"}`)

	reader, err := tweetio.NewReader(inputPath)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, reader.Close()) })
	writer, err := tweetio.NewWriter(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, writer.Close()) })

	tokenizer, err := tokenize.New(tokenize.DefaultConfig())
	require.NoError(t, err)
	transform := pipeline.TokenizeTransformer(tokenizer)

	_, err = pipeline.NewService(pipeline.ServiceConfig{}, nil, transform, writer, zerolog.Nop())
	require.Error(t, err)

	_, err = pipeline.NewService(pipeline.ServiceConfig{}, reader, nil, writer, zerolog.Nop())
	require.Error(t, err)

	_, err = pipeline.NewService(pipeline.ServiceConfig{}, reader, transform, nil, zerolog.Nop())
	require.Error(t, err)
}
