package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini generateContent wire format.
type generateRequest struct {
	Contents []wireContent `json:"contents"`
}

type wireContent struct {
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inlineData,omitempty"`
}

type wireInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// attemptResult is the decoded view of one upstream attempt. A transport
// failure never produces one; the caller gets a Go error instead.
type attemptResult struct {
	status     int
	text       string
	errMessage string
}

func (e *Engine) generate(ctx context.Context, req *Request) (*attemptResult, error) {
	body := generateRequest{Contents: []wireContent{{Parts: make([]wirePart, 0, len(req.Parts))}}}
	for _, p := range req.Parts {
		if p.Data != nil {
			body.Contents[0].Parts = append(body.Contents[0].Parts, wirePart{
				InlineData: &wireInlineData{
					MimeType: p.MimeType,
					Data:     base64.StdEncoding.EncodeToString(p.Data),
				},
			})
			continue
		}
		body.Contents[0].Parts = append(body.Contents[0].Parts, wirePart{Text: p.Text})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal model request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", e.baseURL, e.model, e.apiKey)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build model request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read model response: %w", err)
	}

	var decoded generateResponse
	// Body may be non-JSON on proxy errors; the status code still decides
	// the retry path, so a decode failure is not fatal here.
	_ = json.Unmarshal(raw, &decoded)

	out := &attemptResult{status: res.StatusCode}
	if decoded.Error != nil {
		out.errMessage = decoded.Error.Message
	}
	if out.errMessage == "" && res.StatusCode != http.StatusOK {
		out.errMessage = string(raw)
	}
	if len(decoded.Candidates) > 0 && len(decoded.Candidates[0].Content.Parts) > 0 {
		out.text = decoded.Candidates[0].Content.Parts[0].Text
	}
	return out, nil
}

func parseVerdict(raw string) (map[string]any, error) {
	var verdict map[string]any
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, err
	}
	return verdict, nil
}
