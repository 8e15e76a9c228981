package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agri-advisory-be/internal/entity"
	"agri-advisory-be/pkg/rag/assemble"
	"agri-advisory-be/pkg/rag/intent"
	"agri-advisory-be/pkg/rag/retrieval"
)

type fakeClassifier struct {
	intent intent.Intent
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, question string) (intent.Intent, error) {
	return f.intent, f.err
}

type fakeStore struct {
	passages []retrieval.Passage
	err      error
}

func (f *fakeStore) Search(ctx context.Context, question string, k int) ([]retrieval.Passage, error) {
	if f.err != nil {
		return nil, f.err
	}
	if k <= 0 {
		return []retrieval.Passage{}, nil
	}
	if k < len(f.passages) {
		return f.passages[:k], nil
	}
	return f.passages, nil
}

type fakeSynthesizer struct {
	answer      string
	err         error
	lastContext string
	lastIntent  intent.Intent
	calls       int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, queryIntent intent.Intent, question, assembledContext string) (string, error) {
	f.calls++
	f.lastContext = assembledContext
	f.lastIntent = queryIntent
	return f.answer, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func diseaseStore() *fakeStore {
	return &fakeStore{passages: []retrieval.Passage{
		{Content: "Citrus canker causes raised corky lesions on leaves and fruit.", SourceFile: "CitrusPlantPestsAndDiseases.pdf", Page: 12, Corpus: entity.CorpusDisease},
		{Content: "Copper based sprays limit canker spread during wet weather.", SourceFile: "CitrusPlantPestsAndDiseases.pdf", Page: 13, Corpus: entity.CorpusDisease},
	}}
}

func schemeStore() *fakeStore {
	return &fakeStore{passages: []retrieval.Passage{
		{Content: "PMKSY funds micro irrigation for horticulture crops.", SourceFile: "GovernmentSchemes.pdf", Page: 4, Corpus: entity.CorpusScheme},
		{Content: "MIDH supports orchard rejuvenation with a 40 percent subsidy.", SourceFile: "GovernmentSchemes.pdf", Page: 9, Corpus: entity.CorpusScheme},
	}}
}

func newPipeline(classified intent.Intent, topK int, synth *fakeSynthesizer) (*Pipeline, *fakeStore, *fakeStore) {
	disease := diseaseStore()
	scheme := schemeStore()
	router := retrieval.NewRouter(disease, scheme, topK, nopLogger{})
	return NewPipeline(&fakeClassifier{intent: classified}, router, assemble.NewAssembler(), synth, nopLogger{}), disease, scheme
}

func TestProcessDiseaseIntent(t *testing.T) {
	synth := &fakeSynthesizer{answer: "Treat canker with copper oxychloride."}
	p, _, _ := newPipeline(intent.IntentDisease, 4, synth)

	res, err := p.Process(context.Background(), "My citrus leaves have raised brown spots, what is it?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Intent != intent.IntentDisease {
		t.Errorf("intent = %q, want disease", res.Intent)
	}
	if res.Answer != "Treat canker with copper oxychloride." {
		t.Errorf("answer = %q", res.Answer)
	}
	for _, s := range res.Sources {
		if s.Corpus != entity.CorpusDisease {
			t.Errorf("source from %q, want disease corpus only", s.Corpus)
		}
		if s.SourceFile != "CitrusPlantPestsAndDiseases.pdf" {
			t.Errorf("source file = %q", s.SourceFile)
		}
	}
	if strings.Contains(synth.lastContext, "PMKSY") {
		t.Error("disease context leaked scheme passages")
	}
}

func TestProcessSchemeIntent(t *testing.T) {
	synth := &fakeSynthesizer{answer: "Apply for PMKSY through the state portal."}
	p, _, _ := newPipeline(intent.IntentScheme, 4, synth)

	res, err := p.Process(context.Background(), "Is there a subsidy for drip irrigation?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range res.Sources {
		if s.Corpus != entity.CorpusScheme {
			t.Errorf("source from %q, want scheme corpus only", s.Corpus)
		}
	}
	if strings.Contains(synth.lastContext, "canker") {
		t.Error("scheme context leaked disease passages")
	}
}

func TestProcessHybridIntent(t *testing.T) {
	synth := &fakeSynthesizer{answer: "Use copper sprays; MIDH can fund replanting."}
	p, disease, scheme := newPipeline(intent.IntentHybrid, 4, synth)

	res, err := p.Process(context.Background(), "Which scheme helps me fight citrus canker?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Sources) > 8 {
		t.Errorf("sources = %d, want at most 2k", len(res.Sources))
	}
	wantTotal := len(disease.passages) + len(scheme.passages)
	if len(res.Sources) != wantTotal {
		t.Fatalf("sources = %d, want %d", len(res.Sources), wantTotal)
	}

	// Disease sources precede scheme sources.
	seenScheme := false
	for _, s := range res.Sources {
		if s.Corpus == entity.CorpusScheme {
			seenScheme = true
		} else if seenScheme {
			t.Fatal("disease source appears after a scheme source")
		}
	}

	if !strings.Contains(synth.lastContext, "DISEASE INFORMATION:") || !strings.Contains(synth.lastContext, "SCHEME INFORMATION:") {
		t.Errorf("hybrid context missing section headers:\n%s", synth.lastContext)
	}
}

func TestProcessZeroKStillSynthesizes(t *testing.T) {
	synth := &fakeSynthesizer{answer: "I have no supporting material for that."}
	p, _, _ := newPipeline(intent.IntentDisease, 0, synth)

	res, err := p.Process(context.Background(), "What causes leaf drop?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synth.calls != 1 {
		t.Errorf("synthesizer calls = %d, want 1", synth.calls)
	}
	if synth.lastContext != "" {
		t.Errorf("context = %q, want empty for k=0", synth.lastContext)
	}
	if len(res.Sources) != 0 {
		t.Errorf("sources = %d, want 0", len(res.Sources))
	}
}

func TestProcessClassificationError(t *testing.T) {
	router := retrieval.NewRouter(diseaseStore(), schemeStore(), 4, nopLogger{})
	p := NewPipeline(&fakeClassifier{err: errors.New("model down")}, router, assemble.NewAssembler(), &fakeSynthesizer{}, nopLogger{})

	res, err := p.Process(context.Background(), "q")
	if !errors.Is(err, ErrClassification) {
		t.Fatalf("err = %v, want ErrClassification", err)
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}

func TestProcessRetrievalError(t *testing.T) {
	disease := &fakeStore{err: errors.New("db unreachable")}
	router := retrieval.NewRouter(disease, schemeStore(), 4, nopLogger{})
	p := NewPipeline(&fakeClassifier{intent: intent.IntentDisease}, router, assemble.NewAssembler(), &fakeSynthesizer{}, nopLogger{})

	res, err := p.Process(context.Background(), "q")
	if !errors.Is(err, ErrRetrieval) {
		t.Fatalf("err = %v, want ErrRetrieval", err)
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}

func TestProcessSynthesisError(t *testing.T) {
	synth := &fakeSynthesizer{err: errors.New("generation failed")}
	p, _, _ := newPipeline(intent.IntentDisease, 4, synth)

	res, err := p.Process(context.Background(), "q")
	if !errors.Is(err, ErrSynthesis) {
		t.Fatalf("err = %v, want ErrSynthesis", err)
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}
