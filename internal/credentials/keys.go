package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/emandor/clt/internal/providers"
)

var ErrNotEnoughKeys = errors.New("not enough API keys in the file")

// ReadFile loads the key file: line 1 is the Gemini key, line 2 the OpenAI
// key. Lines are trimmed; anything past the second line is ignored.
func ReadFile(path string) (providers.Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return providers.Credentials{}, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	var keys []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		keys = append(keys, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return providers.Credentials{}, fmt.Errorf("read key file: %w", err)
	}
	if len(keys) < 2 {
		return providers.Credentials{}, ErrNotEnoughKeys
	}
	return providers.Credentials{Gemini: keys[0], OpenAI: keys[1]}, nil
}

// Resolve combines environment overrides with the key file. The file is
// skipped when both overrides are set.
func Resolve(path, geminiKey, openAIKey string) (providers.Credentials, error) {
	if geminiKey != "" && openAIKey != "" {
		return providers.Credentials{Gemini: geminiKey, OpenAI: openAIKey}, nil
	}
	creds, err := ReadFile(path)
	if err != nil {
		return providers.Credentials{}, err
	}
	if geminiKey != "" {
		creds.Gemini = geminiKey
	}
	if openAIKey != "" {
		creds.OpenAI = openAIKey
	}
	return creds, nil
}
