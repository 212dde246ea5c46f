package providers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-openapi/jsonpointer"

	"github.com/emandor/clt/internal/telemetry"
)

const (
	GeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash-exp:generateContent"

	// GeminiTextPath is the lookup the answer has always been read from.
	// The public API names the array "candidates"; override via config if needed.
	GeminiTextPath = "/candidate/0/content/parts/0/text"
)

// Gemini talks to the generateContent endpoint. The key travels as a query
// parameter, never in the body.
type Gemini struct {
	URL      string
	TextPath string
}

func (c *Gemini) Name() ID { return GenerativeText }

func (c *Gemini) Build(question string, creds Credentials, _ string) Request {
	body := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]string{"text": question},
				},
			},
		},
	}
	b, _ := json.Marshal(body)

	endpoint := c.URL
	if endpoint == "" {
		endpoint = GeminiURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		// the request goes out without a key and fails at the transport
		log := telemetry.L().With().Str("provider", string(c.Name())).Logger()
		log.Warn().Err(err).Msg("gemini_url_invalid_key_dropped")
	} else {
		q := u.Query()
		q.Set("key", creds.Gemini)
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return Request{Method: http.MethodPost, URL: endpoint, Header: h, Body: b}
}

func (c *Gemini) Parse(raw RawResponse) (string, error) {
	var tree any
	if err := json.Unmarshal(raw.Body, &tree); err != nil {
		return "", fail(MalformedPayload, "gemini: "+err.Error())
	}

	path := c.TextPath
	if path == "" {
		path = GeminiTextPath
	}
	ptr, err := jsonpointer.New(path)
	if err != nil {
		return "", fail(TextNotFound, "invalid text path "+path+": "+err.Error())
	}
	v, _, err := ptr.Get(tree)
	if err != nil {
		return "", fail(TextNotFound, "Text not found in response")
	}
	text, ok := v.(string)
	if !ok {
		return "", fail(TextNotFound, "Text not found in response")
	}
	return text, nil
}
