package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured backend and wraps it as
// timeout → retry → logging → backend. rec may be nil.
func NewProvider(ctx context.Context, cfg Config, rec EventRecorder) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return withTimeout(WithRetry(WithLogging(base, rec), cfg.Retry), cfg.Timeout), nil
}

// ResolveConfig returns cfg when its provider has a key. When the
// provider was left at its default and has no key, the vendors' own
// variables are probed with DiscoverConfig, keeping cfg's retry policy
// and timeout.
func ResolveConfig(cfg Config, explicit bool) (Config, error) {
	if err := cfg.Validate(); err == nil || explicit {
		return cfg, err
	}
	found, ok := DiscoverConfig()
	if !ok {
		return cfg, cfg.Validate()
	}
	found.Retry = cfg.Retry
	found.Timeout = cfg.Timeout
	return found, nil
}
