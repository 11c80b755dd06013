package tweets

import (
	"encoding/json"
)

// Tweet is the canonical representation of one platform message. The fields
// the tokenizer family depends on are typed; every other field the platform
// sends is preserved verbatim in Extra so that a read-modify-write cycle
// never drops data the schema does not know about.
type Tweet struct {
	// IDStr is the platform's string identifier for the message.
	IDStr string

	// Text is the short, possibly length-limited content field. Do not read
	// it directly when resolving content; use PrimaryText, which applies the
	// truncation rule.
	Text string

	// Truncated indicates that Text is an abbreviation and the full content
	// lives in ExtendedTweet.
	Truncated bool

	// ExtendedTweet carries the untruncated content when Truncated is set.
	ExtendedTweet *ExtendedTweet

	// Entities holds the structured metadata the platform extracted from the
	// message, such as hashtags.
	Entities *Entities

	// RetweetedStatus and QuotedStatus are embedded sub-records of the same
	// shape, present when this message reposts or quotes another one. They
	// may themselves be truncated.
	RetweetedStatus *Tweet
	QuotedStatus    *Tweet

	// Tokens is the tokenized form of the message content, attached by a
	// processing pipeline. Empty until a tokenizer has run.
	Tokens []string

	// Extra preserves every platform field not covered by the typed fields
	// above, keyed by its original JSON name.
	Extra map[string]json.RawMessage
}

// ExtendedTweet holds the full content of a truncated message.
type ExtendedTweet struct {
	FullText string `json:"full_text,omitempty"`
}

// Entities holds structured metadata extracted from the message text.
type Entities struct {
	Hashtags []Hashtag `json:"hashtags,omitempty"`
}

// Hashtag is one hashtag entity. Text may or may not carry the leading '#'
// marker depending on the producing platform version.
type Hashtag struct {
	Text    string `json:"text"`
	Indices []int  `json:"indices,omitempty"`
}

// tweetFields mirrors Tweet's typed fields with their wire names. It exists
// so the custom (un)marshalling below can lean on encoding/json for the
// known part of the schema.
type tweetFields struct {
	IDStr           string         `json:"id_str,omitempty"`
	Text            string         `json:"text,omitempty"`
	Truncated       bool           `json:"truncated,omitempty"`
	ExtendedTweet   *ExtendedTweet `json:"extended_tweet,omitempty"`
	Entities        *Entities      `json:"entities,omitempty"`
	RetweetedStatus *Tweet         `json:"retweeted_status,omitempty"`
	QuotedStatus    *Tweet         `json:"quoted_status,omitempty"`
	Tokens          []string       `json:"tokens,omitempty"`
}

// knownKeys are the wire names handled by the typed fields; everything else
// ends up in Extra.
var knownKeys = []string{
	"id_str", "text", "truncated", "extended_tweet", "entities",
	"retweeted_status", "quoted_status", "tokens",
}

// UnmarshalJSON decodes the typed fields and stashes every unrecognized
// field in Extra.
func (t *Tweet) UnmarshalJSON(data []byte) error {
	var fields tweetFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}

	*t = Tweet{
		IDStr:           fields.IDStr,
		Text:            fields.Text,
		Truncated:       fields.Truncated,
		ExtendedTweet:   fields.ExtendedTweet,
		Entities:        fields.Entities,
		RetweetedStatus: fields.RetweetedStatus,
		QuotedStatus:    fields.QuotedStatus,
		Tokens:          fields.Tokens,
	}
	if len(raw) > 0 {
		t.Extra = raw
	}
	return nil
}

// MarshalJSON merges the typed fields with the preserved Extra fields. Typed
// fields win on a name collision.
func (t *Tweet) MarshalJSON() ([]byte, error) {
	fields := tweetFields{
		IDStr:           t.IDStr,
		Text:            t.Text,
		Truncated:       t.Truncated,
		ExtendedTweet:   t.ExtendedTweet,
		Entities:        t.Entities,
		RetweetedStatus: t.RetweetedStatus,
		QuotedStatus:    t.QuotedStatus,
		Tokens:          t.Tokens,
	}
	known, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if len(t.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(t.Extra)+len(knownKeys))
	for k, v := range t.Extra {
		merged[k] = v
	}
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(known, &typed); err != nil {
		return nil, err
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// PrimaryText resolves the message's main content. A truncated record
// resolves to the extended full text; otherwise the short Text field is the
// content. A record missing both degrades to the empty string rather than
// failing, so batch jobs keep moving.
func (t *Tweet) PrimaryText() string {
	if t == nil {
		return ""
	}
	if t.Truncated && t.ExtendedTweet != nil && t.ExtendedTweet.FullText != "" {
		return t.ExtendedTweet.FullText
	}
	return t.Text
}

// IsRetweet reports whether this message reposts another one.
func (t *Tweet) IsRetweet() bool {
	return t != nil && t.RetweetedStatus != nil
}

// IsQuote reports whether this message quotes another one.
func (t *Tweet) IsQuote() bool {
	return t != nil && t.QuotedStatus != nil
}
