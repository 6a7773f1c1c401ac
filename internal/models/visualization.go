// Package models defines core data structures for embeddings, TF-IDF results,
// and visualizations.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Method identifies a dimensionality reduction method.
type Method string

const (
	// MethodPCA is deterministic linear projection via principal components.
	MethodPCA Method = "pca"
	// MethodTSNE is seeded stochastic nonlinear embedding.
	MethodTSNE Method = "tsne"
)

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(s)) {
	case MethodPCA:
		return MethodPCA, nil
	case MethodTSNE:
		return MethodTSNE, nil
	default:
		return "", &ValidationError{Msg: fmt.Sprintf("unknown method %q (supported: pca, tsne)", s)}
	}
}

// Visualization is a completed, immutable visualization owned by the cache.
// Coordinates and Colors are keyed by word; every key appears in Words.
type Visualization struct {
	ID          string            `json:"visualization_id"`
	Method      Method            `json:"method"`
	Dims        int               `json:"dims"`
	Words       []string          `json:"words"`
	Coordinates map[string]Point  `json:"coordinates"`
	Colors      map[string]string `json:"colors"`
	CreatedAt   time.Time         `json:"created_at"`
}
