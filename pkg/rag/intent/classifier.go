package intent

import (
	"context"
	"fmt"
	"strings"

	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/pkg/llm"
)

// Classifier maps a free-text farmer question to an Intent using a
// single LLM call. One classification attempt per query, no retry:
// malformed output is coerced by ParseLabel, transport errors surface
// to the caller.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (c *Classifier) Classify(ctx context.Context, question string) (Intent, error) {
	prompt := c.buildPrompt(question)

	// Temperature 0 for deterministic labels; the answer is one word,
	// so cap generation tightly.
	response, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(8),
	)
	if err != nil {
		return "", fmt.Errorf("intent classification call: %w", err)
	}

	detected := ParseLabel(response)
	c.logger.Info("intent", "Intent resolved", map[string]interface{}{
		"raw":    strings.TrimSpace(response),
		"intent": detected.String(),
	})

	return detected, nil
}

func (c *Classifier) buildPrompt(question string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an expert at understanding farmer queries in India.\n\n")
	prompt.WriteString("Classify the farmer's question into ONE of these intents:\n\n")

	prompt.WriteString("**disease** - Questions about:\n")
	prompt.WriteString("- Disease symptoms and identification\n")
	prompt.WriteString("- Pest problems and infestations\n")
	prompt.WriteString("- Treatment and prevention methods\n")
	prompt.WriteString("- Nutritional deficiencies\n")
	prompt.WriteString("- Plant health issues\n")
	prompt.WriteString("- Citrus diseases like canker, greening, foot rot, etc.\n\n")

	prompt.WriteString("**scheme** - Questions about:\n")
	prompt.WriteString("- Government subsidies and financial assistance\n")
	prompt.WriteString("- Agricultural support programs\n")
	prompt.WriteString("- Eligibility criteria for schemes\n")
	prompt.WriteString("- Application processes\n")
	prompt.WriteString("- Available benefits for farmers\n")
	prompt.WriteString("- Schemes like MIDH, PMKSY, PM-KISAN, etc.\n\n")

	prompt.WriteString("**hybrid** - Questions about:\n")
	prompt.WriteString("- Financial support FOR disease management\n")
	prompt.WriteString("- Schemes that help WITH specific pest control\n")
	prompt.WriteString("- Government assistance COMBINED with agricultural problems\n")
	prompt.WriteString("- Any query connecting schemes with diseases/pests\n\n")

	prompt.WriteString("Respond with ONLY ONE WORD: disease, scheme, or hybrid\n\n")

	prompt.WriteString("QUESTION: ")
	prompt.WriteString(question)

	return prompt.String()
}
