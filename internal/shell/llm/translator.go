package llm

import (
	"context"
	"log/slog"

	"github.com/artpar/meow/internal/core/deploy"
)

// =============================================================================
// Translator
// =============================================================================

// Translator converts a natural-language prompt into a configuration document
// plus a derived explanation. The only side effect is the outbound completion
// call.
type Translator struct {
	completer Completer
	logger    *slog.Logger
}

// NewTranslator creates a translator backed by the given completer.
func NewTranslator(completer Completer, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		completer: completer,
		logger:    logger.With("component", "translator"),
	}
}

// Translate sends the prompt to the LLM provider and parses the completion
// into a Document. The explanation is derived deterministically from the
// parsed document, never from a second LLM call.
func (t *Translator) Translate(ctx context.Context, prompt string) (*deploy.Document, string, error) {
	completion, err := t.completer.Complete(ctx, systemInstruction, prompt)
	if err != nil {
		t.logger.Error("completion call failed", "error", err)
		return nil, "", NewTranslateError("completion call failed", err)
	}

	doc, err := deploy.Parse(completion)
	if err != nil {
		t.logger.Error("completion not parseable", "error", err)
		return nil, "", NewTranslateError("completion is not a valid configuration", ErrBadCompletion)
	}

	explanation := deploy.Explain(doc)

	t.logger.Debug("prompt translated",
		"containers", doc.ContainerCount(),
		"networks", len(doc.Networks),
	)

	return doc, explanation, nil
}
