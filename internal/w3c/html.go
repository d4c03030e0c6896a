package w3c

import (
	"bytes"
	"context"
)

// HTMLContentType is the body type the Nu checker expects for raw uploads.
const HTMLContentType = "text/html; charset=utf-8"

// Nu checker message types.
const (
	HTMLTypeError       = "error"
	HTMLTypeInfo        = "info"
	HTMLTypeNonDocument = "non-document-error"
	HTMLSubTypeWarning  = "warning"
)

// HTMLResponse is the document returned by the Nu checker with out=json.
type HTMLResponse struct {
	URL      string        `json:"url,omitempty"`
	Messages []HTMLMessage `json:"messages"`
}

// HTMLMessage is one entry of HTMLResponse.Messages. Position fields are
// absent for document-level and non-document messages.
type HTMLMessage struct {
	Type         string `json:"type"`
	SubType      string `json:"subType,omitempty"`
	Message      string `json:"message"`
	Extract      string `json:"extract,omitempty"`
	FirstLine    int    `json:"firstLine,omitempty"`
	LastLine     int    `json:"lastLine,omitempty"`
	FirstColumn  int    `json:"firstColumn,omitempty"`
	LastColumn   int    `json:"lastColumn,omitempty"`
	HiliteStart  int    `json:"hiliteStart,omitempty"`
	HiliteLength int    `json:"hiliteLength,omitempty"`
}

// CheckHTML posts content to the HTML checker. name is only used for tracing.
func (c *Client) CheckHTML(ctx context.Context, name string, content []byte) (*HTMLResponse, error) {
	var resp HTMLResponse
	if err := c.post(ctx, name, c.htmlEndpoint, HTMLContentType, bytes.NewReader(content), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
