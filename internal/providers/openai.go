package providers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const (
	OpenAIURL       = "https://api.openai.com/v1/completions"
	OpenAIModel     = "gpt-4"
	OpenAIMaxTokens = 150
)

// OpenAI talks to the legacy completions endpoint with a flat prompt.
type OpenAI struct {
	URL       string
	Model     string
	MaxTokens int
}

func (c *OpenAI) Name() ID { return CompletionText }

func (c *OpenAI) Build(question string, creds Credentials, _ string) Request {
	model := c.Model
	if model == "" {
		model = OpenAIModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = OpenAIMaxTokens
	}
	body := map[string]any{
		"model":      model,
		"prompt":     question,
		"max_tokens": maxTokens,
	}
	b, _ := json.Marshal(body)

	endpoint := c.URL
	if endpoint == "" {
		endpoint = OpenAIURL
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+creds.OpenAI)
	h.Set("Content-Type", "application/json")
	return Request{Method: http.MethodPost, URL: endpoint, Header: h, Body: b}
}

func (c *OpenAI) Parse(raw RawResponse) (string, error) {
	var out struct {
		Error   json.RawMessage `json:"error"`
		Choices json.RawMessage `json:"choices"`
	}
	if err := json.Unmarshal(raw.Body, &out); err != nil {
		return "", fail(MalformedPayload, "openai: "+err.Error())
	}

	// a reported error wins even when choices are present
	if !isNull(out.Error) {
		return "", fail(ProviderQuotaOrError, openAIErrorDetail(out.Error))
	}

	var choices []struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(out.Choices, &choices); err != nil || len(choices) == 0 {
		return "", fail(TextNotFound, "Text not found in response")
	}
	var text string
	if err := json.Unmarshal(choices[0].Text, &text); err != nil || isNull(choices[0].Text) {
		return "", fail(TextNotFound, "Text not found in response")
	}
	return text, nil
}

func openAIErrorDetail(raw json.RawMessage) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Message != "" {
		return e.Message
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		return s
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
