package synthesis

import (
	"context"
	"fmt"
	"strings"

	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/pkg/llm"
	"agri-advisory-be/pkg/rag/intent"
)

const diseaseTemplate = `You are an expert agricultural advisor helping farmers in India.

Based on the following information about citrus diseases and pests, provide a clear, actionable answer to the farmer's question.

CONTEXT FROM DISEASE KNOWLEDGE BASE:
{context}

FARMER'S QUESTION: {question}

Provide a comprehensive answer that includes:
1. Clear identification of the problem (if applicable)
2. Symptoms to look for
3. Management strategies (cultural, organic, and chemical options)
4. Preventive measures
5. When to seek expert help

Use simple language suitable for farmers. Be specific with dosages and timing when mentioning treatments.

ANSWER:`

const schemeTemplate = `You are an expert agricultural advisor helping farmers in India understand government schemes.

Based on the following information about government agricultural schemes, provide a clear, helpful answer to the farmer's question.

CONTEXT FROM SCHEME KNOWLEDGE BASE:
{context}

FARMER'S QUESTION: {question}

Provide a comprehensive answer that includes:
1. Relevant scheme names and purposes
2. Eligibility criteria
3. Subsidy amounts or benefits
4. Application process
5. Required documents
6. Contact information if available

Use simple language suitable for farmers. Be specific with amounts, percentages, and procedures.

ANSWER:`

const hybridTemplate = `You are an expert agricultural advisor helping farmers in India.

The farmer has a question that involves BOTH disease management AND government schemes.

CONTEXT:
{context}

FARMER'S QUESTION: {question}

Provide a comprehensive answer with two clear sections:

**DISEASE MANAGEMENT:**
- Problem identification and symptoms
- Treatment and prevention strategies
- Management recommendations

**GOVERNMENT SUPPORT:**
- Relevant schemes that can help
- Financial assistance available
- Application process and eligibility

Use simple language suitable for farmers. Be specific and actionable.

ANSWER:`

var templates = map[intent.Intent]string{
	intent.IntentDisease: diseaseTemplate,
	intent.IntentScheme:  schemeTemplate,
	intent.IntentHybrid:  hybridTemplate,
}

// Synthesizer renders the intent-specific answer prompt and asks the
// model for the final farmer-facing answer.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewSynthesizer(llmProvider llm.LLMProvider, logger logger.ILogger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Synthesize fills the template for the given intent with the assembled
// context and the farmer's question, then issues a single model call.
// An empty context still produces a call so the model can say it has no
// supporting material rather than the service failing outright.
func (s *Synthesizer) Synthesize(ctx context.Context, queryIntent intent.Intent, question, assembledContext string) (string, error) {
	template, ok := templates[queryIntent]
	if !ok {
		template = diseaseTemplate
	}

	prompt := strings.NewReplacer(
		"{context}", assembledContext,
		"{question}", question,
	).Replace(template)

	answer, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		s.logger.Error("synthesis", "answer generation failed", map[string]interface{}{
			"intent": string(queryIntent),
			"error":  err.Error(),
		})
		return "", fmt.Errorf("generating answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}
