package utils

import "strings"

// defaultSeparators are tried in order; the splitter falls through to
// the next one when a piece is still too large.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// SplitText splits a long string into chunks of at most chunkSize
// characters, preferring to break on paragraph and sentence boundaries.
// Adjacent chunks share up to 'overlap' characters so context survives
// the cut.
func SplitText(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return splitRecursive(text, chunkSize, overlap, defaultSeparators)
}

func splitRecursive(text string, chunkSize, overlap int, separators []string) []string {
	if len([]rune(text)) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	separator := separators[len(separators)-1]
	rest := separators
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			rest = separators[i+1:]
			break
		}
	}

	// Out of boundaries to break on; fall back to stepped slicing.
	if separator == "" {
		return splitRunes(text, chunkSize, overlap)
	}

	var pieces []string
	for _, p := range strings.Split(text, separator) {
		pieces = append(pieces, p+separator)
	}
	// The final piece has no trailing separator.
	last := len(pieces) - 1
	pieces[last] = strings.TrimSuffix(pieces[last], separator)

	var chunks []string
	var current strings.Builder
	carriedOnly := true
	flush := func() {
		chunk := current.String()
		if !carriedOnly && strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		if overlap > 0 {
			runes := []rune(chunk)
			if len(runes) > overlap {
				runes = runes[len(runes)-overlap:]
			}
			current.WriteString(string(runes))
		}
		carriedOnly = true
	}

	for _, piece := range pieces {
		pieceLen := len([]rune(piece))
		if pieceLen > chunkSize {
			flush()
			current.Reset()
			carriedOnly = true
			chunks = append(chunks, splitRecursive(piece, chunkSize, overlap, rest)...)
			continue
		}
		if len([]rune(current.String()))+pieceLen > chunkSize && !carriedOnly {
			flush()
		}
		// Trim carried overlap from the front when it would push the
		// next chunk past the limit.
		if carried := []rune(current.String()); len(carried)+pieceLen > chunkSize {
			current.Reset()
			current.WriteString(string(carried[len(carried)+pieceLen-chunkSize:]))
		}
		current.WriteString(piece)
		carriedOnly = false
	}
	if !carriedOnly && strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitRunes(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var out []string
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}
