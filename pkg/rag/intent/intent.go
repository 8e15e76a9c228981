package intent

import "strings"

// Intent is the closed classification of a query's topical category.
type Intent string

const (
	IntentDisease Intent = "disease"
	IntentScheme  Intent = "scheme"
	IntentHybrid  Intent = "hybrid"
)

func (i Intent) String() string {
	return string(i)
}

func (i Intent) Valid() bool {
	switch i {
	case IntentDisease, IntentScheme, IntentHybrid:
		return true
	}
	return false
}

// ParseLabel coerces raw classifier output to an Intent. This is the
// single string-to-intent boundary in the system: the label is trimmed
// and lower-cased, and anything that is not exactly one of the three
// recognized words (multi-word output, punctuation, empty string)
// falls back to IntentDisease deterministically.
func ParseLabel(raw string) Intent {
	label := strings.ToLower(strings.TrimSpace(raw))

	switch Intent(label) {
	case IntentDisease, IntentScheme, IntentHybrid:
		return Intent(label)
	}
	return IntentDisease
}
