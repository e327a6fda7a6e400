package embedding

import (
	"errors"
	"fmt"
	"testing"
)

// testDocuments is a small corpus with clearly repeated tokens.
func testDocuments() [][]string {
	return [][]string{
		{"good", "product", "good", "taste"},
		{"bad", "product", "bad", "smell"},
		{"good", "taste", "nice", "product"},
		{"bad", "smell", "awful", "product"},
		{"good", "product", "nice", "taste"},
	}
}

func smallConfig(minCount int) Config {
	cfg := DefaultConfig(minCount)
	cfg.Dim = 16
	cfg.Epochs = 5
	cfg.Workers = 1
	return cfg
}

func TestTrainVectorDimensions(t *testing.T) {
	space, err := Train(testDocuments(), smallConfig(1))
	if err != nil {
		t.Fatalf("Train returned error: %v", err)
	}
	if space.Dim() != 16 {
		t.Fatalf("Dim() = %d, want 16", space.Dim())
	}
	for token := range space.Vocabulary() {
		vector, ok := space.Vector(token)
		if !ok {
			t.Fatalf("vocabulary token %q has no vector", token)
		}
		if len(vector) != 16 {
			t.Errorf("vector for %q has length %d, want 16", token, len(vector))
		}
	}
}

func TestTrainMinCountFiltersVocabulary(t *testing.T) {
	space, err := Train(testDocuments(), smallConfig(3))
	if err != nil {
		t.Fatalf("Train returned error: %v", err)
	}

	// Counts: product=5, good=4, bad=3, taste=3, smell=2, nice=2, awful=1.
	for _, token := range []string{"product", "good", "bad", "taste"} {
		if !space.Contains(token) {
			t.Errorf("expected %q in vocabulary", token)
		}
	}
	for _, token := range []string{"smell", "nice", "awful"} {
		if space.Contains(token) {
			t.Errorf("did not expect %q in vocabulary", token)
		}
	}
}

func TestTrainEmptyVocabulary(t *testing.T) {
	_, err := Train(testDocuments(), smallConfig(100))
	if err == nil {
		t.Fatal("expected error for unreachable frequency threshold")
	}
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("error should wrap ErrEmptyVocabulary, got %v", err)
	}
}

func TestTrainVocabularyDeterminism(t *testing.T) {
	first, err := Train(testDocuments(), smallConfig(1))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Train(testDocuments(), smallConfig(1))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.VocabularySize() != second.VocabularySize() {
		t.Fatalf("vocabulary sizes differ: %d vs %d",
			first.VocabularySize(), second.VocabularySize())
	}
	for token := range first.Vocabulary() {
		if !second.Contains(token) {
			t.Errorf("token %q missing from second run's vocabulary", token)
		}
	}
}

func TestTrainSingleWorkerVectorDeterminism(t *testing.T) {
	first, err := Train(testDocuments(), smallConfig(1))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Train(testDocuments(), smallConfig(1))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for token := range first.Vocabulary() {
		firstVector, _ := first.Vector(token)
		secondVector, _ := second.Vector(token)
		for d := range firstVector {
			if firstVector[d] != secondVector[d] {
				t.Fatalf("vectors for %q differ at dimension %d with a fixed seed and one worker", token, d)
			}
		}
	}
}

func TestTrainSingleTokenVocabulary(t *testing.T) {
	documents := [][]string{{"only", "only", "only"}, {"only", "only"}}
	space, err := Train(documents, smallConfig(2))
	if err != nil {
		t.Fatalf("Train returned error: %v", err)
	}
	if space.VocabularySize() != 1 {
		t.Fatalf("VocabularySize() = %d, want 1", space.VocabularySize())
	}
}

func TestBuildVocabularyOrdering(t *testing.T) {
	vocabulary, index := buildVocabulary(testDocuments(), 1)
	if len(vocabulary) != 7 {
		t.Fatalf("expected 7 tokens, got %d", len(vocabulary))
	}
	if vocabulary[0].token != "product" {
		t.Errorf("most frequent token should sort first, got %q", vocabulary[0].token)
	}
	for i := 1; i < len(vocabulary); i++ {
		prev, cur := vocabulary[i-1], vocabulary[i]
		if cur.count > prev.count {
			t.Errorf("vocabulary not sorted by count at %d", i)
		}
		if cur.count == prev.count && cur.token < prev.token {
			t.Errorf("count ties not broken lexicographically at %d", i)
		}
	}
	for i, entry := range vocabulary {
		if index[entry.token] != i {
			t.Errorf("index mismatch for %q", entry.token)
		}
	}
}

func TestHuffmanCodesComplete(t *testing.T) {
	vocabulary, _ := buildVocabulary(testDocuments(), 1)
	buildHuffmanTree(vocabulary)

	seen := make(map[string]bool)
	for _, entry := range vocabulary {
		if len(entry.code) == 0 || len(entry.code) != len(entry.nodes) {
			t.Fatalf("entry %q has code length %d and path length %d",
				entry.token, len(entry.code), len(entry.nodes))
		}
		key := fmt.Sprint(entry.code)
		if seen[key] {
			t.Errorf("duplicate Huffman code for %q", entry.token)
		}
		seen[key] = true

		for _, node := range entry.nodes {
			if node < 0 || node >= len(vocabulary)-1 {
				t.Errorf("node index %d out of range for %q", node, entry.token)
			}
		}
	}
}
