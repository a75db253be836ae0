package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	geminiEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	defaultGeminiModel   = "gemini-1.5-flash"
)

type geminiProvider struct {
	client *http.Client
	apiKey string
	model  string
}

func newGeminiProvider(client *http.Client, apiKey, model string) *geminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiProvider{client: client, apiKey: apiKey, model: model}
}

func (p *geminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete translates the transcript into Gemini's content format: system
// turns become the system instruction, assistant turns map to the "model"
// role.
func (p *geminiProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := geminiRequest{}
	for _, m := range messages {
		switch m.Role {
		case "system":
			reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		case "assistant":
			reqBody.Contents = append(reqBody.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			reqBody.Contents = append(reqBody.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpointFormat, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini returned %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
