package assemble

import (
	"strings"

	"agri-advisory-be/pkg/rag/intent"
	"agri-advisory-be/pkg/rag/retrieval"
)

// Assembler turns retrieved passages into the context block handed to
// the answer synthesizer. Passage order is preserved as retrieved.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Build produces the context string for the given intent. Single-corpus
// intents join their passages directly. Hybrid answers get the two
// corpora as labeled sections so the model can attribute advice to the
// right body of knowledge.
func (a *Assembler) Build(queryIntent intent.Intent, result *retrieval.Result) string {
	switch queryIntent {
	case intent.IntentHybrid:
		var sb strings.Builder
		sb.WriteString("DISEASE INFORMATION:\n")
		sb.WriteString(joinPassages(result.DiseasePassages))
		sb.WriteString("\n\nSCHEME INFORMATION:\n")
		sb.WriteString(joinPassages(result.SchemePassages))
		return sb.String()
	case intent.IntentScheme:
		return joinPassages(result.SchemePassages)
	default:
		return joinPassages(result.DiseasePassages)
	}
}

func joinPassages(passages []retrieval.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n\n")
}
