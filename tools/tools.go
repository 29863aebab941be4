// Package tools exposes the scrape tools to an MCP host.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/scrape-mcp/models"
	"github.com/use-agent/scrape-mcp/report"
)

// Scraper performs one downstream scrape call.
type Scraper interface {
	Call(ctx context.Context, params *models.ScrapeRequestParams) models.ScrapeResult
}

// Register adds scrape_url and scrape_advanced to s.
func Register(s *server.MCPServer, sc Scraper, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.AddTool(ScrapeURLTool(), ScrapeURL(sc, logger))
	s.AddTool(ScrapeAdvancedTool(), ScrapeAdvanced(sc, logger))
}

// ScrapeURLTool describes the scrape_url tool.
func ScrapeURLTool() mcp.Tool {
	return mcp.NewTool("scrape_url",
		mcp.WithDescription("Scrape content from a URL and return the content."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to scrape"),
		),
		mcp.WithBoolean("get_full_content",
			mcp.Description("Whether to get full content or just metadata and links (default: true)"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("only_main_content",
			mcp.Description("Whether to extract only the main content (default: true)"),
			mcp.DefaultBool(true),
		),
	)
}

// ScrapeAdvancedTool describes the scrape_advanced tool.
func ScrapeAdvancedTool() mcp.Tool {
	return mcp.NewTool("scrape_advanced",
		mcp.WithDescription("Advanced web scraping with additional options."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to scrape"),
		),
		mcp.WithBoolean("mobile",
			mcp.Description("Whether to use a mobile user agent (default: false)"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("include_raw_html",
			mcp.Description("Whether to include raw HTML in the response (default: false)"),
			mcp.DefaultBool(false),
		),
		mcp.WithNumber("wait_time",
			mcp.Description("Time to wait after page load, in milliseconds"),
			mcp.Min(0),
		),
		mcp.WithObject("custom_headers",
			mcp.Description("Custom HTTP headers to send with the request"),
			mcp.AdditionalProperties(map[string]any{"type": "string"}),
		),
	)
}

// ScrapeURL returns the handler for scrape_url.
func ScrapeURL(sc Scraper, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		args := models.NewSimpleScrapeArgs(url)
		args.GetFullContent = request.GetBool("get_full_content", true)
		args.OnlyMainContent = request.GetBool("only_main_content", true)

		mode := report.ModeFor(args.GetFullContent)
		return run(ctx, sc, logger, "scrape_url", args.Params(), mode), nil
	}
}

// ScrapeAdvanced returns the handler for scrape_advanced. Its output is
// always the full-content report.
func ScrapeAdvanced(sc Scraper, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		args := models.AdvancedScrapeArgs{
			URL:            url,
			Mobile:         request.GetBool("mobile", false),
			IncludeRawHTML: request.GetBool("include_raw_html", false),
		}

		raw := request.GetArguments()
		if v, ok := raw["wait_time"]; ok && v != nil {
			wait, err := nonNegativeInt(v)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("wait_time %v", err)), nil
			}
			args.WaitTime = &wait
		}
		if v, ok := raw["custom_headers"]; ok && v != nil {
			headers, err := stringMap(v)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("custom_headers %v", err)), nil
			}
			args.CustomHeaders = headers
		}

		return run(ctx, sc, logger, "scrape_advanced", args.Params(), report.ModeFullContent), nil
	}
}

func run(ctx context.Context, sc Scraper, logger *slog.Logger, tool string, params *models.ScrapeRequestParams, mode report.Mode) *mcp.CallToolResult {
	logger.Info("tool call", "tool", tool, "url", params.URL, "mode", mode.String())

	result := sc.Call(ctx, params)
	return mcp.NewToolResultText(report.Render(params.URL, result, mode))
}

// nonNegativeInt accepts the numeric shapes an MCP host may decode a JSON
// number into.
func nonNegativeInt(v any) (int, error) {
	var n int
	switch x := v.(type) {
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("must be an integer, got %v", x)
		}
		if x < 0 {
			return 0, fmt.Errorf("must be non-negative, got %v", x)
		}
		if x >= math.MaxInt {
			return 0, fmt.Errorf("is too large: %v", x)
		}
		n = int(x)
	case int:
		n = x
	case int64:
		n = int(x)
	default:
		return 0, fmt.Errorf("must be an integer, got %T", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", n)
	}
	return n, nil
}

func stringMap(v any) (map[string]string, error) {
	switch m := v.(type) {
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("value for %q must be a string, got %T", k, val)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be an object of strings, got %T", v)
	}
}
