package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short paragraph", 800, 200)
	if len(chunks) != 1 || chunks[0] != "short paragraph" {
		t.Errorf("SplitText() = %v, want single unchanged chunk", chunks)
	}
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("The orchard needs regular scouting for pests. ", 100)
	chunks := SplitText(text, 200, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 200 {
			t.Errorf("chunk %d has %d chars, want <= 200", i, len([]rune(c)))
		}
	}
}

func TestSplitTextPrefersParagraphBreaks(t *testing.T) {
	para1 := strings.Repeat("a", 150)
	para2 := strings.Repeat("b", 150)
	text := para1 + "\n\n" + para2

	chunks := SplitText(text, 200, 0)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2 (one per paragraph)", len(chunks))
	}
	if !strings.Contains(chunks[0], "a") || strings.Contains(chunks[0], "b") {
		t.Errorf("first chunk should hold only the first paragraph: %q", chunks[0])
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("x", 500)
	chunks := SplitText(text, 200, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-50:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not start with the previous chunk's tail", i)
		}
	}
}

func TestSplitTextPreservesContent(t *testing.T) {
	text := "Canker appears as raised lesions.\n\nGreening yellows the shoots.\n\nFoot rot attacks the trunk base."
	chunks := SplitText(text, 40, 0)

	joined := strings.Join(chunks, "")
	for _, want := range []string{"Canker", "Greening", "Foot rot"} {
		if !strings.Contains(joined, want) {
			t.Errorf("content %q lost during splitting", want)
		}
	}
}

func TestSplitTextBadParams(t *testing.T) {
	if chunks := SplitText("anything", 0, 10); len(chunks) != 1 {
		t.Errorf("chunkSize <= 0 should return input as one chunk, got %v", chunks)
	}
	// Overlap larger than chunk size falls back to no overlap.
	chunks := SplitText(strings.Repeat("y", 300), 100, 150)
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Errorf("chunk %d has %d chars, want <= 100", i, len([]rune(c)))
		}
	}
}
