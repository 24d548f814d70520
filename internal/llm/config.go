package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Configuration keys. With BindEnv each key is also read from the
// environment as CERTLAB_<KEY>, dots becoming underscores.
const (
	KeyProvider         = "llm.provider"
	KeyModel            = "llm.model"
	KeyTimeout          = "llm.timeout"
	KeyRetryAttempts    = "llm.retry_attempts"
	KeyAnthropicAPIKey  = "anthropic.api_key"
	KeyAnthropicModel   = "anthropic.model"
	KeyAnthropicBaseURL = "anthropic.base_url"
	KeyOpenAIAPIKey     = "openai.api_key"
	KeyOpenAIModel      = "openai.model"
	KeyOpenAIBaseURL    = "openai.base_url"
	KeyGeminiAPIKey     = "gemini.api_key"
	KeyGeminiModel      = "gemini.model"
	KeyOpenRouterAPIKey = "openrouter.api_key"
	KeyOpenRouterModel  = "openrouter.model"
)

// EnvPrefix is prepended to every environment variable the app reads.
const EnvPrefix = "CERTLAB"

// Config selects and configures the tutor's model backend.
type Config struct {
	// Provider is one of the Provider* names.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig is the backoff policy for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// BindEnv makes v read CERTLAB_* environment variables for every key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(strings.ToLower(EnvPrefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ConfigFromViper overlays the values set in v on DefaultConfig.
func ConfigFromViper(v *viper.Viper) Config {
	cfg := DefaultConfig()

	setString := func(dst *string, key string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	setString(&cfg.Provider, KeyProvider)
	setString(&cfg.Anthropic.APIKey, KeyAnthropicAPIKey)
	setString(&cfg.Anthropic.Model, KeyAnthropicModel)
	setString(&cfg.Anthropic.BaseURL, KeyAnthropicBaseURL)
	setString(&cfg.OpenAI.APIKey, KeyOpenAIAPIKey)
	setString(&cfg.OpenAI.Model, KeyOpenAIModel)
	setString(&cfg.OpenAI.BaseURL, KeyOpenAIBaseURL)
	setString(&cfg.Gemini.APIKey, KeyGeminiAPIKey)
	setString(&cfg.Gemini.Model, KeyGeminiModel)
	setString(&cfg.OpenRouter.APIKey, KeyOpenRouterAPIKey)
	setString(&cfg.OpenRouter.Model, KeyOpenRouterModel)

	if m := v.GetString(KeyModel); m != "" {
		cfg.SetModel(m)
	}
	if d := v.GetDuration(KeyTimeout); d > 0 {
		cfg.Timeout = d
	}
	if n := v.GetInt(KeyRetryAttempts); n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// ConfigFromEnv reads the configuration from CERTLAB_* variables only.
func ConfigFromEnv() Config {
	v := viper.New()
	BindEnv(v)
	return ConfigFromViper(v)
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Model returns the configured model name of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}

// DiscoverConfig looks for the vendors' own API key variables, in the
// order Gemini, OpenAI, Anthropic, OpenRouter, and configures the first
// provider found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s_%s_API_KEY is required for the %s provider",
			EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
