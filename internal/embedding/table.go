// Package embedding loads and serves the pretrained GloVe-style word-vector
// table. The table is read once at startup and never mutated, so lookups are
// safe for concurrent use without locking.
package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadError is a fatal table-load failure: the process cannot serve without a
// well-formed table. Line is 1-based; 0 when the failure is not tied to a line.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load embedding table %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load embedding table %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Table is a fixed vocabulary→vector mapping. Keys are case-sensitive; every
// vector has the same length.
type Table struct {
	dimensions int
	vectors    map[string][]float64
}

// LoadTable reads a table file: one entry per line, first token the word,
// remaining whitespace-separated tokens the vector. The first line fixes the
// dimensionality; any malformed line or length mismatch fails the whole load.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t := &Table{vectors: make(map[string][]float64)}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &LoadError{Path: path, Line: line, Err: fmt.Errorf("entry has no vector values")}
		}
		word := fields[0]
		if _, exists := t.vectors[word]; exists {
			return nil, &LoadError{Path: path, Line: line, Err: fmt.Errorf("duplicate word %q", word)}
		}
		vec := make([]float64, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &LoadError{Path: path, Line: line, Err: fmt.Errorf("value %q is not a float", field)}
			}
			vec[i] = v
		}
		if t.dimensions == 0 {
			t.dimensions = len(vec)
		} else if len(vec) != t.dimensions {
			return nil, &LoadError{Path: path, Line: line,
				Err: fmt.Errorf("vector has %d values, expected %d", len(vec), t.dimensions)}
		}
		t.vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: path, Line: line, Err: err}
	}
	if len(t.vectors) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("table is empty")}
	}
	return t, nil
}

// NewTable builds a table from an in-memory mapping. Intended for tests and
// embedded fixtures; all vectors must share one length.
func NewTable(vectors map[string][]float64) (*Table, error) {
	t := &Table{vectors: make(map[string][]float64, len(vectors))}
	for word, vec := range vectors {
		if len(vec) == 0 {
			return nil, fmt.Errorf("word %q has an empty vector", word)
		}
		if t.dimensions == 0 {
			t.dimensions = len(vec)
		} else if len(vec) != t.dimensions {
			return nil, fmt.Errorf("word %q has %d values, expected %d", word, len(vec), t.dimensions)
		}
		cp := make([]float64, len(vec))
		copy(cp, vec)
		t.vectors[word] = cp
	}
	if len(t.vectors) == 0 {
		return nil, fmt.Errorf("table is empty")
	}
	return t, nil
}

// Dimensions returns the vector length shared by every entry.
func (t *Table) Dimensions() int { return t.dimensions }

// Size returns the vocabulary size.
func (t *Table) Size() int { return len(t.vectors) }

// Lookup returns a copy of the vector for word. Matching is case-sensitive
// and exact: no stemming, no fuzzy match, no fallback vector.
func (t *Table) Lookup(word string) ([]float64, bool) {
	vec, ok := t.vectors[word]
	if !ok {
		return nil, false
	}
	cp := make([]float64, len(vec))
	copy(cp, vec)
	return cp, true
}

// LookupMany resolves words in order, silently omitting words not in the
// table. The returned keys are exactly the subset of words present.
func (t *Table) LookupMany(words []string) map[string][]float64 {
	found := make(map[string][]float64)
	for _, word := range words {
		if vec, ok := t.Lookup(word); ok {
			found[word] = vec
		}
	}
	return found
}
