package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// stubCompleter implements Completer for testing.
type stubCompleter struct {
	completion string
	err        error

	// Captured inputs from the last call.
	gotSystem string
	gotUser   string
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.gotSystem = system
	s.gotUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.completion, nil
}

// =============================================================================
// Translator Tests
// =============================================================================

func TestTranslator_Translate_Success(t *testing.T) {
	stub := &stubCompleter{completion: `{
		"version": "1.0",
		"containers": {
			"nginx": {"image": "nginx:latest", "ports": ["8080:80"]}
		}
	}`}
	translator := NewTranslator(stub, nil)

	doc, explanation, err := translator.Translate(context.Background(), "Deploy nginx web server on port 8080")
	require.NoError(t, err)

	assert.Equal(t, "nginx:latest", doc.Containers["nginx"].Image)
	assert.Contains(t, explanation, "Containers: 1 container(s) - nginx")
	assert.Contains(t, explanation, "Exposed Ports: nginx: 8080:80")

	// The fixed instruction and the raw prompt are what goes out.
	assert.Contains(t, stub.gotSystem, "Kitten container orchestration system")
	assert.Equal(t, "Deploy nginx web server on port 8080", stub.gotUser)
}

func TestTranslator_Translate_FencedCompletion(t *testing.T) {
	stub := &stubCompleter{completion: "```json\n{\"version\":\"1.0\",\"containers\":{\"redis\":{\"image\":\"redis:alpine\"}}}\n```"}
	translator := NewTranslator(stub, nil)

	doc, _, err := translator.Translate(context.Background(), "run redis")
	require.NoError(t, err)
	assert.Equal(t, "redis:alpine", doc.Containers["redis"].Image)
}

func TestTranslator_Translate_NonJSONCompletion(t *testing.T) {
	stub := &stubCompleter{completion: "I'm sorry, I can't help with that."}
	translator := NewTranslator(stub, nil)

	_, _, err := translator.Translate(context.Background(), "deploy something")
	require.Error(t, err)

	var translateErr *TranslateError
	require.ErrorAs(t, err, &translateErr)
	assert.ErrorIs(t, err, ErrBadCompletion)
}

func TestTranslator_Translate_CompleterError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("rate limited")}
	translator := NewTranslator(stub, nil)

	_, _, err := translator.Translate(context.Background(), "deploy something")
	require.Error(t, err)

	var translateErr *TranslateError
	require.ErrorAs(t, err, &translateErr)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestTranslator_Translate_NoCredential(t *testing.T) {
	client := NewOpenAIClient(Config{})
	assert.False(t, client.Configured())

	translator := NewTranslator(client, nil)
	_, _, err := translator.Translate(context.Background(), "deploy nginx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestOpenAIClient_Configured(t *testing.T) {
	assert.True(t, NewOpenAIClient(Config{APIKey: "sk-test"}).Configured())
	assert.False(t, NewOpenAIClient(Config{}).Configured())
}
