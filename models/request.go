package models

import "encoding/json"

// Format is an output kind requested from the scrape API.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// requestFormats is sent with every request; callers cannot change it.
var requestFormats = []Format{FormatMarkdown, FormatHTML}

// ScrapeRequestParams is the JSON body POSTed to the scrape API.
//
// Pointer and map fields are optional: a nil value omits the key entirely
// rather than sending null.
type ScrapeRequestParams struct {
	// URL is the page to scrape. Always present.
	URL string `json:"url"`

	// Formats is always [markdown, html].
	Formats []Format `json:"formats"`

	OnlyMainContent bool `json:"onlyMainContent"`
	IncludeRawHTML  bool `json:"includeRawHtml"`

	// IncludeScreenshot is only set by scrape_url.
	IncludeScreenshot *bool `json:"includeScreenshot,omitempty"`

	// Mobile is only set by scrape_advanced.
	Mobile *bool `json:"mobile,omitempty"`

	// WaitFor is the post-load wait in milliseconds.
	WaitFor *int `json:"waitFor,omitempty"`

	// Headers are forwarded to the target site. An empty, non-nil map is
	// still sent as {}.
	Headers map[string]string `json:"-"`
}

// MarshalJSON encodes Headers by presence rather than by length, which
// the omitempty tag cannot express for maps.
func (p ScrapeRequestParams) MarshalJSON() ([]byte, error) {
	type plain ScrapeRequestParams
	out := struct {
		plain
		Headers json.RawMessage `json:"headers,omitempty"`
	}{plain: plain(p)}

	if p.Headers != nil {
		raw, err := json.Marshal(p.Headers)
		if err != nil {
			return nil, err
		}
		out.Headers = raw
	}
	return json.Marshal(out)
}

// SimpleScrapeArgs are the arguments of the scrape_url tool.
type SimpleScrapeArgs struct {
	URL string

	// GetFullContent selects the rendering mode only; it is never sent.
	GetFullContent bool

	OnlyMainContent bool
}

// NewSimpleScrapeArgs returns arguments with the tool's defaults applied.
func NewSimpleScrapeArgs(url string) SimpleScrapeArgs {
	return SimpleScrapeArgs{
		URL:             url,
		GetFullContent:  true,
		OnlyMainContent: true,
	}
}

// Params builds the request body for scrape_url.
func (a SimpleScrapeArgs) Params() *ScrapeRequestParams {
	return &ScrapeRequestParams{
		URL:               a.URL,
		Formats:           formats(),
		OnlyMainContent:   a.OnlyMainContent,
		IncludeRawHTML:    false,
		IncludeScreenshot: boolPtr(false),
	}
}

// AdvancedScrapeArgs are the arguments of the scrape_advanced tool.
type AdvancedScrapeArgs struct {
	URL            string
	Mobile         bool
	IncludeRawHTML bool

	// WaitTime is in milliseconds; nil means not supplied.
	WaitTime *int

	// CustomHeaders is nil when not supplied.
	CustomHeaders map[string]string
}

// Params builds the request body for scrape_advanced. Main-content
// extraction is always on for this tool.
func (a AdvancedScrapeArgs) Params() *ScrapeRequestParams {
	p := &ScrapeRequestParams{
		URL:             a.URL,
		Formats:         formats(),
		OnlyMainContent: true,
		IncludeRawHTML:  a.IncludeRawHTML,
		Mobile:          boolPtr(a.Mobile),
	}
	if a.WaitTime != nil {
		wait := *a.WaitTime
		p.WaitFor = &wait
	}
	if a.CustomHeaders != nil {
		p.Headers = make(map[string]string, len(a.CustomHeaders))
		for k, v := range a.CustomHeaders {
			p.Headers[k] = v
		}
	}
	return p
}

func formats() []Format {
	out := make([]Format, len(requestFormats))
	copy(out, requestFormats)
	return out
}

func boolPtr(b bool) *bool { return &b }
