package models

// ScrapeResult is the outcome of one scrape call: exactly one of Data and
// Err is set.
type ScrapeResult struct {
	Data *Document
	Err  *ScrapeError
}

// Succeeded wraps a document. A nil document is replaced by an empty one.
func Succeeded(doc *Document) ScrapeResult {
	if doc == nil {
		doc = &Document{}
	}
	return ScrapeResult{Data: doc}
}

// Failed wraps a scrape error.
func Failed(err *ScrapeError) ScrapeResult {
	return ScrapeResult{Err: err}
}

// OK reports whether the call succeeded.
func (r ScrapeResult) OK() bool {
	return r.Err == nil
}
