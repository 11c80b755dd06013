package tweetio_test

import (
	"path/filepath"
	"testing"

	"github.com/illmade-knight/go-tweetflow/pkg/tweetio"
	"github.com/illmade-knight/go-tweetflow/pkg/tweets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTweets() []*tweets.Tweet {
	return []*tweets.Tweet{
		{IDStr: "1", Text: "first tweet"},
		{
			IDStr:         "2",
			Text:          "second twe...",
			Truncated:     true,
			ExtendedTweet: &tweets.ExtendedTweet{FullText: "second tweet in full"},
			Entities:      &tweets.Entities{Hashtags: []tweets.Hashtag{{Text: "news"}}},
		},
		{IDStr: "3", Text: "a retweet", RetweetedStatus: &tweets.Tweet{Text: "inner"}},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, name := range []string{"tweets.json", "tweets.json.gz"} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			path := filepath.Join(t.TempDir(), name)
			original := sampleTweets()

			// Act: batch-write, then read back.
			writer, err := tweetio.NewWriter(path)
			require.NoError(t, err)
			require.NoError(t, writer.WriteAll(original))
			require.NoError(t, writer.Close())

			reader, err := tweetio.NewReader(path)
			require.NoError(t, err)
			defer func() { require.NoError(t, reader.Close()) }()
			records, err := reader.ReadAll()

			// Assert
			require.NoError(t, err)
			require.Len(t, records, len(original))
			for i := range original {
				assert.Equal(t, original[i], records[i])
			}
		})
	}
}

func TestWriter_Append(t *testing.T) {
	for _, name := range []string{"tweets.json", "tweets.json.gz"} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			path := filepath.Join(t.TempDir(), name)

			first, err := tweetio.NewWriter(path)
			require.NoError(t, err)
			require.NoError(t, first.Write(&tweets.Tweet{IDStr: "1", Text: "one"}))
			require.NoError(t, first.Close())

			// Act
			second, err := tweetio.NewWriter(path, tweetio.WithAppend())
			require.NoError(t, err)
			require.NoError(t, second.Write(&tweets.Tweet{IDStr: "2", Text: "two"}))
			require.NoError(t, second.Close())

			// Assert
			reader, err := tweetio.NewReader(path)
			require.NoError(t, err)
			defer func() { require.NoError(t, reader.Close()) }()
			records, err := reader.ReadAll()
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "one", records[0].Text)
			assert.Equal(t, "two", records[1].Text)
		})
	}
}

func TestWriter_TruncatesWithoutAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")

	first, err := tweetio.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, first.Write(&tweets.Tweet{Text: "stale"}))
	require.NoError(t, first.Close())

	second, err := tweetio.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, second.Write(&tweets.Tweet{Text: "fresh"}))
	require.NoError(t, second.Close())

	reader, err := tweetio.NewReader(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reader.Close()) }()
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].Text)
}

func TestWriter_CreatesParentDirectories(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tweets.json")

	// Act
	writer, err := tweetio.NewWriter(path)

	// Assert
	require.NoError(t, err)
	require.NoError(t, writer.Write(&tweets.Tweet{Text: "placed"}))
	require.NoError(t, writer.Close())

	reader, err := tweetio.NewReader(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reader.Close()) }()
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriter_WriteAfterCloseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")

	writer, err := tweetio.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	assert.Error(t, writer.Write(&tweets.Tweet{Text: "late"}))
	require.NoError(t, writer.Close())
}
