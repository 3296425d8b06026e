package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagechat/core"
)

func TestBuildPayload_RoleTagging(t *testing.T) {
	p := buildPayload(core.Request{
		Messages: []core.Message{
			core.UserMessage("u1"),
			core.AssistantMessage("a1"),
			core.UserMessage("u2"),
		},
		Model:           "m",
		SystemPrompt:    "sys",
		Temperature:     0.2,
		MaxOutputTokens: 128,
	})

	require.Len(t, p.Input, 3)
	assert.Equal(t, "input_text", p.Input[0].Content[0].Type)
	assert.Equal(t, "output_text", p.Input[1].Content[0].Type)
	assert.Equal(t, "input_text", p.Input[2].Content[0].Type)
	assert.Equal(t, "sys", p.Instructions)
	assert.True(t, p.Stream)
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "bare token gets bearer prefix", token: "sk-abc", want: "Bearer sk-abc"},
		{name: "bearer passed through", token: "Bearer sk-abc", want: "Bearer sk-abc"},
		{name: "basic passed through", token: "Basic dXNlcg==", want: "Basic dXNlcg=="},
		{name: "token scheme passed through", token: "Token t-1", want: "Token t-1"},
		{name: "surrounding whitespace trimmed", token: "  sk-abc  ", want: "Bearer sk-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authorizationHeader(tt.token))
		})
	}
}
