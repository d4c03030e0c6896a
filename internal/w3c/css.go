package w3c

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// CSSResponse is the document returned by the Jigsaw validator with
// output=json.
type CSSResponse struct {
	CSSValidation CSSValidation `json:"cssvalidation"`
}

// CSSValidation is the body of CSSResponse.
type CSSValidation struct {
	URI      string       `json:"uri,omitempty"`
	CSSLevel string       `json:"csslevel,omitempty"`
	Validity bool         `json:"validity"`
	Errors   []CSSMessage `json:"errors,omitempty"`
	Warnings []CSSMessage `json:"warnings,omitempty"`
	Result   CSSResult    `json:"result"`
}

// CSSResult carries the validator's own counts.
type CSSResult struct {
	ErrorCount   int `json:"errorcount"`
	WarningCount int `json:"warningcount"`
}

// CSSMessage is one error or warning. Level is only set on warnings.
type CSSMessage struct {
	Source  string `json:"source,omitempty"`
	Line    int    `json:"line"`
	Context string `json:"context,omitempty"`
	Type    string `json:"type,omitempty"`
	SubType string `json:"subtype,omitempty"`
	Message string `json:"message"`
	Level   int    `json:"level,omitempty"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// CheckCSS uploads content as the "file" part of a multipart form, named
// after name, together with output=json.
func (c *Client) CheckCSS(ctx context.Context, name string, content []byte) (*CSSResponse, error) {
	body, contentType, err := c.cssForm(name, content)
	if err != nil {
		return nil, err
	}
	var resp CSSResponse
	if err := c.post(ctx, name, c.cssEndpoint, contentType, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) cssForm(name string, content []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("output", "json"); err != nil {
		return nil, "", fmt.Errorf("writing form: %w", err)
	}
	if c.cssProfile != "" {
		if err := mw.WriteField("profile", c.cssProfile); err != nil {
			return nil, "", fmt.Errorf("writing form: %w", err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", "text/css")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("writing form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("writing form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("writing form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
