package tweetio

import "fmt"

// MalformedRecordError reports a line that is not a valid JSON object. It
// carries the source identifier and line number so the caller can decide
// whether to skip the record or abort the run; the Reader itself stays
// usable after returning one.
type MalformedRecordError struct {
	Source string
	Line   int
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record: %v", e.Source, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
