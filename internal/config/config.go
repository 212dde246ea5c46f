package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/emandor/clt/internal/providers"
)

const DefaultKeysFile = "/opt/keys/chatbots_api_keys.txt"

type Config struct {
	KeysFile string

	GeminiKey, OpenAIKey string

	GeminiURL, GeminiTextPath string
	OpenAIURL, OpenAIModel    string
	OpenAIMaxTokens           int
	CopilotBin                string

	DryRun bool
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		KeysFile:        GetEnv("CLT_KEYS_FILE", DefaultKeysFile),
		GeminiKey:       GetEnv("GEMINI_API_KEY", ""),
		OpenAIKey:       GetEnv("OPENAI_API_KEY", ""),
		GeminiURL:       GetEnv("GEMINI_URL", providers.GeminiURL),
		GeminiTextPath:  GetEnv("GEMINI_TEXT_PATH", providers.GeminiTextPath),
		OpenAIURL:       GetEnv("OPENAI_URL", providers.OpenAIURL),
		OpenAIModel:     GetEnv("OPENAI_MODEL", providers.OpenAIModel),
		OpenAIMaxTokens: GetEnvInt("OPENAI_MAX_TOKENS", providers.OpenAIMaxTokens),
		CopilotBin:      GetEnv("COPILOT_BIN", providers.CopilotBin),
		DryRun:          parseBool(GetEnv("DRY_RUN", "false")),
	}
}

// ProviderOptions maps the config onto the default dispatcher wiring.
func (c *Config) ProviderOptions() providers.Options {
	return providers.Options{
		GeminiURL:       c.GeminiURL,
		GeminiTextPath:  c.GeminiTextPath,
		OpenAIURL:       c.OpenAIURL,
		OpenAIModel:     c.OpenAIModel,
		OpenAIMaxTokens: c.OpenAIMaxTokens,
		CopilotBin:      c.CopilotBin,
	}
}

func GetEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

func parseBool(s string) bool { b, _ := strconv.ParseBool(s); return b }

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
