package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeResponse_Decode(t *testing.T) {
	body := `{
		"success": true,
		"data": {
			"metadata": {"title": "T", "description": "D", "sourceURL": "https://example.com", "statusCode": 200},
			"markdown": "Hello",
			"links": ["https://a", {"url": "https://b"}, {"href": "https://c"}, {"text": "x"}, null]
		}
	}`

	var resp ScrapeResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.NotNil(t, resp.Data.Metadata)
	assert.Equal(t, "T", *resp.Data.Metadata.Title)
	assert.Equal(t, "D", *resp.Data.Metadata.Description)
	assert.Equal(t, "Hello", *resp.Data.Markdown)
	assert.Equal(t, []Link{"https://a", "https://b", "https://c", `{"text":"x"}`}, resp.Data.Links)
}

func TestScrapeResponse_LenientData(t *testing.T) {
	body := `{
		"success": true,
		"data": {
			"metadata": {"title": ["A", "B"], "description": 42, "statusCode": "200", "language": ["en"]},
			"markdown": {"text": "Hello"},
			"screenshot": {"url": "x"},
			"html": 7,
			"links": "https://a"
		}
	}`

	var resp ScrapeResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.NotNil(t, resp.Data)
	require.NotNil(t, resp.Data.Metadata)
	assert.Equal(t, `["A","B"]`, *resp.Data.Metadata.Title)
	assert.Equal(t, "42", *resp.Data.Metadata.Description)
	assert.Equal(t, `{"text":"Hello"}`, *resp.Data.Markdown)
	assert.JSONEq(t, `{"url": "x"}`, string(resp.Data.Screenshot))
	assert.Nil(t, resp.Data.Links)
}

func TestScrapeResponse_NonObjectData(t *testing.T) {
	for _, body := range []string{
		`{"success": true, "data": "page"}`,
		`{"success": true, "data": {"metadata": "T", "markdown": null, "links": [null, null]}}`,
	} {
		var resp ScrapeResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp), body)
		require.NotNil(t, resp.Data, body)
		assert.Nil(t, resp.Data.Markdown, body)
		assert.Nil(t, resp.Data.Links, body)
		if resp.Data.Metadata != nil {
			assert.Nil(t, resp.Data.Metadata.Title, body)
		}
	}
}

func TestScrapeResponse_MissingFields(t *testing.T) {
	var resp ScrapeResponse
	require.NoError(t, json.Unmarshal([]byte(`{"data": null}`), &resp))

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	_, ok := resp.ErrorMessage()
	assert.False(t, ok)
}

func TestScrapeResponse_ErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{"string", `{"error": "timeout"}`, "timeout", true},
		{"empty string", `{"error": ""}`, "", true},
		{"object", `{"error": {"code": "E1", "message": "boom"}}`, `{"code":"E1","message":"boom"}`, true},
		{"null", `{"error": null}`, "", false},
		{"absent", `{}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ScrapeResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			got, ok := resp.ErrorMessage()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrapeError_Wrapping(t *testing.T) {
	cause := assert.AnError
	err := NewScrapeError(ErrCodeTransport, "connection refused", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "TRANSPORT_ERROR: connection refused: "+cause.Error(), err.Error())
}

func TestScrapeResult(t *testing.T) {
	ok := Succeeded(nil)
	assert.True(t, ok.OK())
	assert.NotNil(t, ok.Data)

	failed := Failed(NewScrapeError(ErrCodeScrapeFailed, "Unknown error", nil))
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Data)
}
