package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ScrapeResponse is the envelope returned by the scrape API.
type ScrapeResponse struct {
	// Success is false when the key is absent.
	Success bool `json:"success"`

	// Data is nil when absent or null.
	Data *Document `json:"data,omitempty"`

	// Error is kept raw: scrape APIs disagree on whether it is a string
	// or an object.
	Error json.RawMessage `json:"error,omitempty"`
}

// ErrorMessage returns the envelope's error as display text. A JSON
// string is unquoted; any other value is returned as compact JSON.
// ok is false when the field is absent or null.
func (r *ScrapeResponse) ErrorMessage() (msg string, ok bool) {
	text := lenientText(r.Error)
	if text == nil {
		return "", false
	}
	return *text, true
}

// Document is the scraped page carried in ScrapeResponse.Data.
//
// Only the fields the report reads are typed, and those decode leniently:
// a field of an unexpected JSON type never fails the call. HTML, RawHTML
// and Screenshot are passed through untouched.
type Document struct {
	Metadata   *Metadata       `json:"metadata,omitempty"`
	Markdown   *string         `json:"markdown,omitempty"`
	HTML       json.RawMessage `json:"html,omitempty"`
	RawHTML    json.RawMessage `json:"rawHtml,omitempty"`
	Screenshot json.RawMessage `json:"screenshot,omitempty"`
	Links      []Link          `json:"links,omitempty"`
}

// UnmarshalJSON decodes a data object. Anything other than an object
// decodes to an empty Document.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{}
	if !isObject(data) {
		return nil
	}

	var raw struct {
		Metadata   json.RawMessage `json:"metadata"`
		Markdown   json.RawMessage `json:"markdown"`
		HTML       json.RawMessage `json:"html"`
		RawHTML    json.RawMessage `json:"rawHtml"`
		Screenshot json.RawMessage `json:"screenshot"`
		Links      json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if !isNull(raw.Metadata) {
		d.Metadata = &Metadata{}
		if err := d.Metadata.UnmarshalJSON(raw.Metadata); err != nil {
			return err
		}
	}
	d.Markdown = lenientText(raw.Markdown)
	d.HTML = raw.HTML
	d.RawHTML = raw.RawHTML
	d.Screenshot = raw.Screenshot
	d.Links = decodeLinks(raw.Links)
	return nil
}

// Metadata holds the page-level fields the report shows. Title and
// Description are pointers so that a missing value can be told apart from
// an empty one. Other metadata keys are ignored.
type Metadata struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UnmarshalJSON decodes a metadata object. A non-string title or
// description is kept as its JSON text; a non-object decodes to empty
// Metadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = Metadata{}
	if !isObject(data) {
		return nil
	}

	var raw struct {
		Title       json.RawMessage `json:"title"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Title = lenientText(raw.Title)
	m.Description = lenientText(raw.Description)
	return nil
}

// Link is one hyperlink from Document.Links.
//
// Most scrape APIs send links as plain strings; some send objects. Both
// decode into a Link, preferring an object's "url" then "href" field and
// falling back to the object's JSON text.
type Link string

func (l *Link) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Link(s)
		return nil
	}

	var obj struct {
		URL  string `json:"url"`
		Href string `json:"href"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		switch {
		case obj.URL != "":
			*l = Link(obj.URL)
			return nil
		case obj.Href != "":
			*l = Link(obj.Href)
			return nil
		}
	}

	*l = Link(compactText(data))
	return nil
}

// decodeLinks returns the non-null entries of a links array. A value that
// is not an array yields no links.
func decodeLinks(raw json.RawMessage) []Link {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	links := make([]Link, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		var l Link
		if err := l.UnmarshalJSON(item); err != nil {
			continue
		}
		links = append(links, l)
	}
	if len(links) == 0 {
		return nil
	}
	return links
}

// lenientText returns nil for an absent or null value, the string for a
// JSON string, and the compact JSON text of anything else.
func lenientText(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = compactText(raw)
	}
	return &s
}

func compactText(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// HealthResponse is the response for GET /healthz on the http transport.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
	Transport string `json:"transport"`
}
