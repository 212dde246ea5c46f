package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/clt/internal/cli"
)

const fakeCopilot = `#!/bin/sh
echo ran >> "$(dirname "$0")/calls"
printf '%s|%s' "$2" "$3"
`

type env struct {
	keys  string
	calls string
}

// setupEnv points every provider at local fakes: an httptest server for the
// HTTP providers and a shell script standing in for gh.
func setupEnv(t *testing.T) env {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake copilot needs /bin/sh")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/gemini":
			_, _ = w.Write([]byte(`{"candidate":[{"content":{"parts":[{"text":"from gemini"}]}}]}`))
		case "/openai":
			var body struct {
				Prompt string `json:"prompt"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Prompt == "fail" {
				_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]string{{"text": "echo " + body.Prompt}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	bin := filepath.Join(dir, "gh")
	require.NoError(t, os.WriteFile(bin, []byte(fakeCopilot), 0o755))
	keys := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(keys, []byte("gemini-key\nopenai-key\n"), 0o600))

	t.Setenv("GEMINI_URL", srv.URL+"/gemini")
	t.Setenv("OPENAI_URL", srv.URL+"/openai")
	t.Setenv("COPILOT_BIN", bin)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_TEXT_PATH", "")
	t.Setenv("CLT_KEYS_FILE", "")
	t.Setenv("DRY_RUN", "")
	t.Setenv("LOG_FILE", "")

	return env{keys: keys, calls: filepath.Join(dir, "calls")}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootMenuSelection(t *testing.T) {
	e := setupEnv(t)

	tests := []struct {
		name  string
		stdin string
		want  []string
	}{
		{
			name:  "chatgpt by number",
			stdin: "2\nhello\n",
			want:  []string{"Success: echo hello"},
		},
		{
			name:  "invalid selection falls back to chatgpt",
			stdin: "9\nhello\n",
			want:  []string{"Invalid selection, defaulting to ChatGPT.", "Success: echo hello"},
		},
		{
			name:  "copilot lower-cases question and mode",
			stdin: "3\nHello\nEXPLAIN\n",
			want:  []string{"Success: explain|hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, "--keys", e.keys)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRootFlags(t *testing.T) {
	e := setupEnv(t)

	out, err := execute(t, "", "--keys", e.keys, "-p", "gemini", "-q", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Success: from gemini\n", out)
}

func TestRootKeysFromEnv(t *testing.T) {
	e := setupEnv(t)
	t.Setenv("CLT_KEYS_FILE", e.keys)

	out, err := execute(t, "", "-p", "chatgpt", "-q", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Success: echo hi\n", out)
}

func TestRootProviderFailure(t *testing.T) {
	e := setupEnv(t)

	out, err := execute(t, "", "--keys", e.keys, "-p", "2", "-q", "fail")
	require.ErrorIs(t, err, errDispatchFailed)
	assert.Equal(t, "Error: quota exceeded\n", out)
}

func TestRootAllRequiresMode(t *testing.T) {
	e := setupEnv(t)

	out, err := execute(t, "", "--keys", e.keys, "--all", "-q", "hi")
	require.ErrorIs(t, err, cli.ErrModeRequired)
	assert.Empty(t, out)
	assert.NoFileExists(t, e.calls)
}

func TestRootAllReadsModeFromInput(t *testing.T) {
	e := setupEnv(t)

	out, err := execute(t, "Suggest\n", "--keys", e.keys, "--all", "-q", "Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "Success: from gemini")
	assert.Contains(t, out, "Success: echo Hi")
	assert.Contains(t, out, "Success: suggest|hi")
	assert.FileExists(t, e.calls)
}

func TestRootCopilotRequiresMode(t *testing.T) {
	e := setupEnv(t)

	_, err := execute(t, "", "--keys", e.keys, "-p", "copilot", "-q", "list files")
	require.ErrorIs(t, err, cli.ErrModeRequired)
	assert.NoFileExists(t, e.calls)
}

func TestRootMissingKeysFile(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "--keys", filepath.Join(t.TempDir(), "missing.txt"), "-q", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading API keys")
}
