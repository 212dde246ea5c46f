package cli

import (
	"strings"

	"github.com/emandor/clt/internal/providers"
)

// ResolveProvider maps a raw menu choice or provider name to an ID. Unknown
// or empty input falls back to CompletionText and reports ok=false.
func ResolveProvider(raw string) (providers.ID, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "gemini":
		return providers.GenerativeText, true
	case "2", "chatgpt", "openai":
		return providers.CompletionText, true
	case "3", "copilot":
		return providers.InteractiveAssistant, true
	}
	return providers.CompletionText, false
}

// Label is the human name printed in menus and multi-provider output.
func Label(id providers.ID) string {
	switch id {
	case providers.GenerativeText:
		return "Gemini"
	case providers.CompletionText:
		return "ChatGPT"
	case providers.InteractiveAssistant:
		return "Copilot"
	}
	return string(id)
}
