package config

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/hupe1980/pagechat/core"
)

// Config is the user-editable settings document. The endpoint must use
// secure transport; a plain http endpoint is rejected at validation time, not
// at request time.
type Config struct {
	Endpoint     string  `toml:"endpoint" validate:"required,url,startswith=https://"`
	BearerToken  string  `toml:"bearer_token" validate:"required"`
	ModelName    string  `toml:"model" validate:"required"`
	SystemPrompt string  `toml:"system_prompt"`
	Temperature  float64 `toml:"temperature" validate:"gte=0,lte=2"`
	MaxPageChars int     `toml:"max_page_chars" validate:"gte=0"`
}

// Default returns the baseline configuration. Endpoint, token and model have
// no sensible defaults and must be supplied.
func Default() Config {
	return Config{
		Temperature:  0.7,
		MaxPageChars: 16000,
	}
}

var validate = validator.New()

// Validate checks the configuration, returning a field-level error on the
// first violation.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Provider is a core.ConfigProvider backed by an in-memory Config. Updates
// are validated and applied atomically, so concurrent requests always observe
// a complete, valid settings snapshot.
type Provider struct {
	mu  sync.RWMutex
	cfg Config
}

var _ core.ConfigProvider = (*Provider)(nil)

// NewProvider validates cfg and wraps it in a Provider.
func NewProvider(cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg}, nil
}

// Load reads a TOML settings file on top of the defaults and validates the
// result.
func Load(path string) (*Provider, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return NewProvider(cfg)
}

// Settings implements core.ConfigProvider.
func (p *Provider) Settings() (core.Settings, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return core.Settings{
		Endpoint:     p.cfg.Endpoint,
		BearerToken:  p.cfg.BearerToken,
		ModelName:    p.cfg.ModelName,
		SystemPrompt: p.cfg.SystemPrompt,
		Temperature:  p.cfg.Temperature,
		MaxPageChars: p.cfg.MaxPageChars,
	}, nil
}

// Update replaces the configuration after validating it.
func (p *Provider) Update(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
	return nil
}
