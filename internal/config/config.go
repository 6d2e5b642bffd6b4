package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by SPONGE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("SPONGE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// StatePath is the live JSON state file. Defaults to sponge_state.json.
func StatePath() string {
	p := os.Getenv("STATE_PATH")
	if p == "" {
		return "sponge_state.json"
	}
	return p
}

// HistoryDir holds one immutable file per superseded state version.
func HistoryDir() string {
	p := os.Getenv("HISTORY_DIR")
	if p == "" {
		return "sponge_history"
	}
	return p
}

// DatabaseURL is optional; without it the claim memory (and its novelty
// discounting) is disabled.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func AnthropicAPIKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

// LLMProvider returns the configured LLM provider.
// Defaults to "mock" if not set.
// Valid values: openai, anthropic, mock
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "mock"
	}
	return p
}

// EmbeddingProvider returns the configured embedding provider.
// Defaults to "mock" if not set.
// Valid values: openai, mock
func EmbeddingProvider() string {
	p := os.Getenv("EMBEDDING_PROVIDER")
	if p == "" {
		return "mock"
	}
	return p
}

// LLMAPIKey returns the API key for the configured LLM provider.
func LLMAPIKey() string {
	switch LLMProvider() {
	case "anthropic":
		return AnthropicAPIKey()
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// EmbeddingAPIKey returns the API key for the configured embedding provider.
func EmbeddingAPIKey() string {
	switch EmbeddingProvider() {
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// CoolingPeriod is how many interactions a staged update waits.
// Defaults to 2 if not set.
func CoolingPeriod() int {
	n, err := strconv.Atoi(os.Getenv("COOLING_PERIOD"))
	if err != nil || n < 0 {
		return 2
	}
	return n
}

// ReflectionInterval triggers a reflection cycle every N interactions.
// Defaults to 12 if not set.
func ReflectionInterval() int {
	n, err := strconv.Atoi(os.Getenv("REFLECTION_INTERVAL"))
	if err != nil || n <= 0 {
		return 12
	}
	return n
}

// DecayRate is the power-law exponent used during reflection decay.
// Defaults to 0.15 if not set.
func DecayRate() float64 {
	r, err := strconv.ParseFloat(os.Getenv("DECAY_RATE"), 64)
	if err != nil || r < 0 {
		return 0.15
	}
	return r
}

// ClaimRetentionDays is how long claim embeddings are kept before the
// retention sweep prunes them. Defaults to 90 if not set.
func ClaimRetentionDays() int {
	n, err := strconv.Atoi(os.Getenv("CLAIM_RETENTION_DAYS"))
	if err != nil || n <= 0 {
		return 90
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
