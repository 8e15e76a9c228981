package retrieval

import (
	"context"
	"sync"

	"agri-advisory-be/internal/pkg/logger"
	"agri-advisory-be/pkg/rag/intent"
)

// Result carries per-corpus retrieval output for one request. A nil or
// empty slice means the corresponding store was not queried (or
// returned nothing).
type Result struct {
	DiseasePassages []Passage
	SchemePassages  []Passage
}

// Sources returns the combined provenance list: disease entries before
// scheme entries, each in store relevance order, no de-duplication.
func (r *Result) Sources() []Passage {
	sources := make([]Passage, 0, len(r.DiseasePassages)+len(r.SchemePassages))
	sources = append(sources, r.DiseasePassages...)
	sources = append(sources, r.SchemePassages...)
	return sources
}

// Router is a three-way dispatch: disease queries the disease store,
// scheme the scheme store, hybrid both. The hybrid store queries are
// independent and issued concurrently, joined before returning.
type Router struct {
	diseaseStore Store
	schemeStore  Store
	topK         int
	logger       logger.ILogger
}

func NewRouter(diseaseStore, schemeStore Store, topK int, log logger.ILogger) *Router {
	if topK < 0 {
		topK = 0
	}
	return &Router{
		diseaseStore: diseaseStore,
		schemeStore:  schemeStore,
		topK:         topK,
		logger:       log,
	}
}

func (r *Router) Retrieve(ctx context.Context, it intent.Intent, question string) (*Result, error) {
	switch it {
	case intent.IntentScheme:
		passages, err := r.schemeStore.Search(ctx, question, r.topK)
		if err != nil {
			return nil, err
		}
		return &Result{SchemePassages: passages}, nil

	case intent.IntentHybrid:
		return r.retrieveBoth(ctx, question)

	default:
		// IntentDisease, plus anything unrecognized. Unknown intents
		// route to the disease store.
		passages, err := r.diseaseStore.Search(ctx, question, r.topK)
		if err != nil {
			return nil, err
		}
		return &Result{DiseasePassages: passages}, nil
	}
}

func (r *Router) retrieveBoth(ctx context.Context, question string) (*Result, error) {
	var (
		wg                    sync.WaitGroup
		diseaseRes, schemeRes []Passage
		diseaseErr, schemeErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		diseaseRes, diseaseErr = r.diseaseStore.Search(ctx, question, r.topK)
	}()
	go func() {
		defer wg.Done()
		schemeRes, schemeErr = r.schemeStore.Search(ctx, question, r.topK)
	}()
	wg.Wait()

	if diseaseErr != nil {
		return nil, diseaseErr
	}
	if schemeErr != nil {
		return nil, schemeErr
	}

	return &Result{
		DiseasePassages: diseaseRes,
		SchemePassages:  schemeRes,
	}, nil
}
