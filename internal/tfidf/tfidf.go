// Package tfidf computes TF-IDF vectors for a document collection.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hyperjump/kotoba/pkg/utils"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Tokenize lowercases text and splits it on non-alphanumeric boundaries,
// dropping empty tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// FitTransform builds the feature vocabulary and TF-IDF matrix for the
// ordered document collection. The vocabulary is the lexicographically sorted
// set of all distinct tokens; each returned row corresponds to the document
// at the same index and has one column per feature.
//
// Cell weights are raw term count × smoothed IDF, ln((1+N)/(1+df)) + 1, and
// every non-zero row is L2-normalized to unit length. An empty collection (or
// one with no tokens at all) yields an empty vocabulary and zero-column rows;
// that is a valid degenerate result, not an error.
func FitTransform(documents []string) ([]string, [][]float64) {
	tokenized := make([][]string, len(documents))
	df := make(map[string]int)
	for i, doc := range documents {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	features := make([]string, 0, len(df))
	for term := range df {
		features = append(features, term)
	}
	sort.Strings(features)

	index := make(map[string]int, len(features))
	idf := make([]float64, len(features))
	n := float64(len(documents))
	for i, term := range features {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	matrix := make([][]float64, len(documents))
	for i, tokens := range tokenized {
		row := make([]float64, len(features))
		for _, tok := range tokens {
			row[index[tok]]++
		}
		for j := range row {
			row[j] *= idf[j]
		}
		utils.NormalizeL2(row)
		matrix[i] = row
	}
	return features, matrix
}
