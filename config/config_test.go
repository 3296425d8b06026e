package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagechat/core"
)

func validConfig() Config {
	cfg := Default()
	cfg.Endpoint = "https://api.example.com/v1/responses"
	cfg.BearerToken = "sk-test"
	cfg.ModelName = "gpt-test"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: true},
		{name: "insecure endpoint rejected", mutate: func(c *Config) { c.Endpoint = "http://api.example.com" }, wantErr: true},
		{name: "missing token", mutate: func(c *Config) { c.BearerToken = "" }, wantErr: true},
		{name: "missing model", mutate: func(c *Config) { c.ModelName = "" }, wantErr: true},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 2.5 }, wantErr: true},
		{name: "negative max page chars", mutate: func(c *Config) { c.MaxPageChars = -1 }, wantErr: true},
		{name: "zero temperature allowed", mutate: func(c *Config) { c.Temperature = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProvider_Settings(t *testing.T) {
	p, err := NewProvider(validConfig())
	require.NoError(t, err)

	var _ core.ConfigProvider = p

	s, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/responses", s.Endpoint)
	assert.Equal(t, "gpt-test", s.ModelName)
	assert.Equal(t, 0.7, s.Temperature)
	assert.Equal(t, 16000, s.MaxPageChars)
}

func TestProvider_UpdateRevalidates(t *testing.T) {
	p, err := NewProvider(validConfig())
	require.NoError(t, err)

	bad := validConfig()
	bad.Endpoint = "http://insecure.example.com"
	assert.Error(t, p.Update(bad))

	// The previous settings survive a rejected update.
	s, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/responses", s.Endpoint)

	good := validConfig()
	good.ModelName = "gpt-next"
	require.NoError(t, p.Update(good))
	s, err = p.Settings()
	require.NoError(t, err)
	assert.Equal(t, "gpt-next", s.ModelName)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagechat.toml")
	doc := `
endpoint = "https://api.example.com/v1/responses"
bearer_token = "sk-file"
model = "gpt-file"
system_prompt = "answer in haiku"
temperature = 1.2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p, err := Load(path)
	require.NoError(t, err)

	s, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, "sk-file", s.BearerToken)
	assert.Equal(t, "gpt-file", s.ModelName)
	assert.Equal(t, "answer in haiku", s.SystemPrompt)
	assert.Equal(t, 1.2, s.Temperature)
	// Unset keys keep their defaults.
	assert.Equal(t, 16000, s.MaxPageChars)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagechat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`endpoint = "http://insecure"`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
