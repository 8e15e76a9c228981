package intent

import (
	"context"
	"errors"
	"testing"

	"agri-advisory-be/pkg/llm"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{
			name: "exact disease",
			raw:  "disease",
			want: IntentDisease,
		},
		{
			name: "exact scheme",
			raw:  "scheme",
			want: IntentScheme,
		},
		{
			name: "exact hybrid",
			raw:  "hybrid",
			want: IntentHybrid,
		},
		{
			name: "uppercase",
			raw:  "SCHEME",
			want: IntentScheme,
		},
		{
			name: "surrounding whitespace",
			raw:  "  hybrid\n",
			want: IntentHybrid,
		},
		{
			name: "unknown word falls back",
			raw:  "pestilence",
			want: IntentDisease,
		},
		{
			name: "punctuation falls back",
			raw:  "DISEASE!!",
			want: IntentDisease,
		},
		{
			name: "empty string falls back",
			raw:  "",
			want: IntentDisease,
		},
		{
			name: "multi-word falls back",
			raw:  "the intent is scheme",
			want: IntentDisease,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLabel(tt.raw)
			if got != tt.want {
				t.Errorf("ParseLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIntentValid(t *testing.T) {
	if !IntentDisease.Valid() || !IntentScheme.Valid() || !IntentHybrid.Valid() {
		t.Error("recognized intents must be valid")
	}
	if Intent("pestilence").Valid() {
		t.Error("unknown intent must not be valid")
	}
}

type stubProvider struct {
	response   string
	err        error
	gotOptions llm.Options
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	for _, opt := range options {
		opt(&s.gotOptions)
	}
	return s.response, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestClassifyGenerationOptions(t *testing.T) {
	provider := &stubProvider{response: "disease"}
	c := NewClassifier(provider, nopLogger{})

	if _, err := c.Classify(context.Background(), "test question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.gotOptions.Temperature != 0.0 {
		t.Errorf("temperature = %v, want 0", provider.gotOptions.Temperature)
	}
	// The label is a single word; generation must be capped.
	if provider.gotOptions.MaxTokens <= 0 || provider.gotOptions.MaxTokens > 16 {
		t.Errorf("max tokens = %d, want a small positive cap", provider.gotOptions.MaxTokens)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     Intent
		wantErr  bool
	}{
		{
			name:     "clean label",
			response: "scheme",
			want:     IntentScheme,
		},
		{
			name:     "noisy label coerced",
			response: "Intent: disease.",
			want:     IntentDisease,
		},
		{
			name:    "transport error surfaces",
			err:     errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&stubProvider{response: tt.response, err: tt.err}, nopLogger{})

			got, err := c.Classify(context.Background(), "test question")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
