package providers

import (
	"context"
	"net/http"
)

type ID string

const (
	GenerativeText       ID = "GEMINI"
	CompletionText       ID = "CHATGPT"
	InteractiveAssistant ID = "COPILOT"
)

// All lists the known providers in menu order.
var All = []ID{GenerativeText, CompletionText, InteractiveAssistant}

func (id ID) Valid() bool {
	switch id {
	case GenerativeText, CompletionText, InteractiveAssistant:
		return true
	}
	return false
}

// Credentials holds one secret per HTTP-backed provider.
type Credentials struct {
	Gemini string
	OpenAI string
}

// Request is either an outbound HTTP call or an external command invocation.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	Command string
	Args    []string
}

func (r Request) IsCommand() bool { return r.Command != "" }

// RawResponse is what a transport hands to a parser. Status is the HTTP
// status code or the process exit code.
type RawResponse struct {
	Body   []byte
	Stderr []byte
	Status int
}

// Provider binds a request builder to a response parser for one backend.
type Provider interface {
	Name() ID
	Build(question string, creds Credentials, mode string) Request
	Parse(raw RawResponse) (string, error)
}

type Transport interface {
	Invoke(ctx context.Context, req Request) (RawResponse, error)
}
