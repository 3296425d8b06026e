package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/pagechat/internal/testutil"
)

func TestDocumentText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "top-level output_text field",
			body: `{"output_text":"direct"}`,
			want: "direct",
		},
		{
			name: "top-level text field",
			body: `{"text":"plain"}`,
			want: "plain",
		},
		{
			name: "output list concatenated in order",
			body: `{"output":[{"content":[{"type":"output_text","text":"one "},{"type":"refusal","text":"skipped"},{"type":"text","text":"two"}]},{"content":[{"type":"output_text","text":" three"}]}]}`,
			want: "one two three",
		},
		{
			name: "responses envelope helper",
			body: testutil.ResponsesEnvelope("built"),
			want: "built",
		},
		{
			name: "chat completion choice",
			body: testutil.ChatCompletionDocument("choice text"),
			want: "choice text",
		},
		{
			name: "output list preferred over choice",
			body: `{"output":[{"content":[{"type":"output_text","text":"from output"}]}],"choices":[{"message":{"content":"from choice"}}]}`,
			want: "from output",
		},
		{
			name: "unrecognized shape yields empty",
			body: `{"unrelated":true}`,
			want: "",
		},
		{
			name: "non-json yields empty rather than raising",
			body: "definitely not json",
			want: "",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentText([]byte(tt.body)))
		})
	}
}
