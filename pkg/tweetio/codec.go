// Package tweetio reads and writes line-delimited JSON tweet corpora,
// transparently (de)compressing files whose name carries a compression
// suffix.
package tweetio

import (
	"compress/gzip"
	"io"
	"path/filepath"
)

// codec wraps a file handle in a compression layer on the read and write
// paths. Codec selection happens once, at open/create time, keyed on the
// destination's filename extension; the tokenizer layer never sees it.
type codec struct {
	wrapReader func(io.Reader) (io.ReadCloser, error)
	wrapWriter func(io.Writer) io.WriteCloser
}

var codecs = map[string]codec{
	".gz": {
		wrapReader: func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) },
		wrapWriter: func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
	},
}

// codecFor returns the codec registered for the path's extension, if any.
func codecFor(path string) (codec, bool) {
	c, ok := codecs[filepath.Ext(path)]
	return c, ok
}
