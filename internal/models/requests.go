package models

import "fmt"

// EmbeddingsRequest asks for the vectors of an ordered word list.
type EmbeddingsRequest struct {
	Words []string `json:"words"`
}

// EmbeddingsResponse maps each found word to its vector. Words absent from
// the table are omitted, never replaced by a zero vector.
type EmbeddingsResponse struct {
	Embeddings map[string][]float64 `json:"embeddings"`
}

// TfidfRequest asks for TF-IDF vectors over an ordered document collection.
// Document identity is positional.
type TfidfRequest struct {
	Documents []string `json:"documents"`
}

// TfidfResponse holds the ordered feature vocabulary and one row per input
// document, each row the same length as FeatureNames.
type TfidfResponse struct {
	FeatureNames []string    `json:"feature_names"`
	TfidfVectors [][]float64 `json:"tfidf_vectors"`
}

// VisualizationRequest asks for a reduced, colored projection of a word list.
type VisualizationRequest struct {
	Words  []string `json:"words"`
	Method string   `json:"method"`
	// Perplexity applies to t-SNE only; 0 means the configured default.
	Perplexity int `json:"perplexity,omitempty"`
	// Dims is the target dimensionality, 2 or 3; 0 means the configured default.
	Dims int `json:"n_components,omitempty"`
}

// Validate checks the request shape and applies defaults for unset fields.
// It returns a *ValidationError before any downstream component is touched.
func (r *VisualizationRequest) Validate(defaultPerplexity, defaultDims int) (Method, error) {
	if len(r.Words) == 0 {
		return "", &ValidationError{Msg: "words cannot be empty"}
	}
	if len(r.Words) < 2 {
		return "", &ValidationError{Msg: "at least 2 words are required for visualization"}
	}
	method, err := ParseMethod(r.Method)
	if err != nil {
		return "", err
	}
	if r.Perplexity == 0 {
		r.Perplexity = defaultPerplexity
	}
	if r.Perplexity < 0 {
		return "", &ValidationError{Msg: "perplexity must be positive"}
	}
	if r.Dims == 0 {
		r.Dims = defaultDims
	}
	if r.Dims != 2 && r.Dims != 3 {
		return "", &ValidationError{Msg: fmt.Sprintf("n_components must be 2 or 3, got %d", r.Dims)}
	}
	return method, nil
}

// CleanupRequest bounds the visualization cache to the most recent MaxItems.
type CleanupRequest struct {
	MaxItems int `json:"max_items,omitempty"`
}

// CleanupResponse reports the cache size after trimming.
type CleanupResponse struct {
	Status         string `json:"status"`
	RemainingItems int    `json:"remaining_items"`
}
