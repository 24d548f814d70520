package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.0-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":     map[string]any{"type": "string", "description": "answer"},
			"level":    map[string]any{"type": "string", "enum": []any{"hint", "answer"}},
			"commands": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"score":    map[string]any{"type": "integer"},
		},
		"required":             []string{"text", "commands"},
		"additionalProperties": false,
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeString, s.Properties["text"].Type)
	assert.Equal(t, "answer", s.Properties["text"].Description)
	assert.Equal(t, []string{"hint", "answer"}, s.Properties["level"].Enum)
	assert.Equal(t, genai.TypeArray, s.Properties["commands"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["commands"].Items.Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, []string{"text", "commands"}, s.Required)
}

func TestGeminiContentsRoles(t *testing.T) {
	got := geminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, genai.RoleUser, got[0].Role)
	assert.Equal(t, genai.RoleModel, got[1].Role)
	assert.Equal(t, "hello", got[1].Parts[0].Text)
}

func TestGeminiProvider_Generate(t *testing.T) {
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"text":"use -noout","commands":[]}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
		})
	})

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-flash", BaseURL: url})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelID())
	assert.Equal(t, ProviderGemini, p.Name())

	resp, err := p.Generate(context.Background(), Request{
		System:   "You teach OpenSSL.",
		Messages: []Message{{Role: RoleUser, Content: "how do I view a CSR?"}},
		Schema:   replySchema,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.JSONEq(t, `{"text":"use -noout","commands":[]}`, resp.Text())
}

func TestNewGeminiProvider_NoKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}
