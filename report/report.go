// Package report renders scrape results as the text returned to the tool
// caller.
package report

import (
	"fmt"
	"strings"

	"github.com/use-agent/scrape-mcp/models"
)

// Mode selects how a successful result is rendered.
type Mode int

const (
	// ModeFullContent renders title, description and the page markdown.
	ModeFullContent Mode = iota

	// ModeMetadataOnly renders title, description and the first links.
	ModeMetadataOnly
)

func (m Mode) String() string {
	switch m {
	case ModeFullContent:
		return "full-content"
	case ModeMetadataOnly:
		return "metadata-only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFor maps scrape_url's get_full_content flag to a Mode.
func ModeFor(getFullContent bool) Mode {
	if getFullContent {
		return ModeFullContent
	}
	return ModeMetadataOnly
}

const (
	defaultTitle    = "No title"
	defaultMarkdown = "No content available"
	noLinks         = "No links found."

	// maxLinks caps the links listed in metadata-only mode.
	maxLinks = 5
)

// Render turns result into the caller-facing text. url is the page that
// was requested; failures carry no URL of their own.
func Render(url string, result models.ScrapeResult, mode Mode) string {
	if !result.OK() {
		return fmt.Sprintf("Error scraping %s: %s", url, result.Err.Message)
	}

	doc := result.Data
	if doc == nil {
		doc = &models.Document{}
	}
	title, description := headline(doc.Metadata)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", title, description)

	switch mode {
	case ModeMetadataOnly:
		sb.WriteString("## Links\n")
		writeLinks(&sb, doc.Links)
	default:
		markdown := defaultMarkdown
		if doc.Markdown != nil {
			markdown = *doc.Markdown
		}
		sb.WriteString("## Content\n\n")
		sb.WriteString(markdown)
	}

	return strings.TrimSpace(sb.String())
}

func headline(meta *models.Metadata) (title, description string) {
	title = defaultTitle
	if meta == nil {
		return title, ""
	}
	if meta.Title != nil {
		title = *meta.Title
	}
	if meta.Description != nil {
		description = *meta.Description
	}
	return title, description
}

func writeLinks(sb *strings.Builder, links []models.Link) {
	if len(links) == 0 {
		sb.WriteString(noLinks)
		return
	}

	shown := links
	if len(shown) > maxLinks {
		shown = shown[:maxLinks]
	}
	for i, link := range shown {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(string(link))
	}
	if extra := len(links) - maxLinks; extra > 0 {
		fmt.Fprintf(sb, "\n... and %d more links", extra)
	}
}
