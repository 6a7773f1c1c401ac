// Package cli provides output formatting for the kotoba CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hyperjump/kotoba/internal/models"
	"github.com/hyperjump/kotoba/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteEmbeddings writes an embeddings response to w in the given format.
// Text output shows at most the first 5 vector values per word.
func WriteEmbeddings(w io.Writer, resp *models.EmbeddingsResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, resp)
	}
	words := make([]string, 0, len(resp.Embeddings))
	for word := range resp.Embeddings {
		words = append(words, word)
	}
	sort.Strings(words)
	for _, word := range words {
		vec := resp.Embeddings[word]
		shown := vec
		suffix := ""
		if len(shown) > 5 {
			shown = shown[:5]
			suffix = " ..."
		}
		fmt.Fprintf(w, "%s: %v%s (%d dims)\n", word, shown, suffix, len(vec))
	}
	if len(words) == 0 {
		fmt.Fprintln(w, "no words found in the vocabulary")
	}
	return nil
}

// WriteVisualization writes a visualization to w in the given format.
func WriteVisualization(w io.Writer, viz *models.Visualization, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, viz)
	}
	fmt.Fprintf(w, "id:     %s\n", viz.ID)
	fmt.Fprintf(w, "method: %s (%d-D)\n", viz.Method, viz.Dims)
	fmt.Fprintf(w, "words:  %d\n\n", len(viz.Words))
	for _, word := range viz.Words {
		p := viz.Coordinates[word]
		label := utils.Truncate(word, 16)
		if p.Dims() == 3 {
			fmt.Fprintf(w, "%-16s %s  (%9.4f, %9.4f, %9.4f)\n", label, viz.Colors[word], p.X(), p.Y(), p.Z())
		} else {
			fmt.Fprintf(w, "%-16s %s  (%9.4f, %9.4f)\n", label, viz.Colors[word], p.X(), p.Y())
		}
	}
	return nil
}

func writeJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
