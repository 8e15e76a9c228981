package assemble

import (
	"strings"
	"testing"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/pkg/rag/intent"
	"agri-advisory-be/pkg/rag/retrieval"
)

func passages(corpus entity.Corpus, contents ...string) []retrieval.Passage {
	out := make([]retrieval.Passage, 0, len(contents))
	for i, c := range contents {
		out = append(out, retrieval.Passage{Content: c, SourceFile: "doc.pdf", Page: i + 1, Corpus: corpus})
	}
	return out
}

func TestBuildDisease(t *testing.T) {
	a := NewAssembler()
	res := &retrieval.Result{
		DiseasePassages: passages(entity.CorpusDisease, "first chunk", "second chunk"),
	}

	got := a.Build(intent.IntentDisease, res)
	want := "first chunk\n\nsecond chunk"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuildScheme(t *testing.T) {
	a := NewAssembler()
	res := &retrieval.Result{
		SchemePassages: passages(entity.CorpusScheme, "subsidy details"),
	}

	got := a.Build(intent.IntentScheme, res)
	if got != "subsidy details" {
		t.Errorf("Build() = %q, want %q", got, "subsidy details")
	}
}

func TestBuildHybridSections(t *testing.T) {
	a := NewAssembler()
	res := &retrieval.Result{
		DiseasePassages: passages(entity.CorpusDisease, "canker symptoms"),
		SchemePassages:  passages(entity.CorpusScheme, "PMKSY coverage"),
	}

	got := a.Build(intent.IntentHybrid, res)
	if !strings.HasPrefix(got, "DISEASE INFORMATION:\n") {
		t.Errorf("hybrid context missing disease header: %q", got)
	}
	if !strings.Contains(got, "\n\nSCHEME INFORMATION:\n") {
		t.Errorf("hybrid context missing scheme header: %q", got)
	}
	diseaseIdx := strings.Index(got, "canker symptoms")
	schemeIdx := strings.Index(got, "PMKSY coverage")
	if diseaseIdx < 0 || schemeIdx < 0 || diseaseIdx > schemeIdx {
		t.Errorf("hybrid context ordering wrong: %q", got)
	}
}

func TestBuildPreservesOrder(t *testing.T) {
	a := NewAssembler()
	res := &retrieval.Result{
		DiseasePassages: passages(entity.CorpusDisease, "alpha", "beta", "gamma"),
	}

	got := a.Build(intent.IntentDisease, res)
	if got != "alpha\n\nbeta\n\ngamma" {
		t.Errorf("Build() = %q, order not preserved", got)
	}
}

func TestBuildEmpty(t *testing.T) {
	a := NewAssembler()

	if got := a.Build(intent.IntentDisease, &retrieval.Result{}); got != "" {
		t.Errorf("Build() with no passages = %q, want empty", got)
	}
}
