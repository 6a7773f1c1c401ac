// Package service orchestrates embedding lookups, TF-IDF, projection,
// coloring, and the visualization cache. It validates every request before
// touching any downstream component.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/embedding"
	"github.com/hyperjump/kotoba/internal/models"
	"github.com/hyperjump/kotoba/internal/palette"
	"github.com/hyperjump/kotoba/internal/projection"
	"github.com/hyperjump/kotoba/internal/tfidf"
	"github.com/hyperjump/kotoba/internal/vizstore"
)

// Service is the request orchestrator.
type Service struct {
	table  *embedding.Table
	store  *vizstore.Store
	cfg    *config.VisualizationConfig
	logger *zap.Logger
}

// New creates a service over the loaded table and an empty cache.
func New(table *embedding.Table, store *vizstore.Store, cfg *config.VisualizationConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{table: table, store: store, cfg: cfg, logger: logger}
}

// Embeddings resolves words to vectors; words absent from the table are
// omitted from the result, never zero-filled.
func (s *Service) Embeddings(words []string) (map[string][]float64, error) {
	if len(words) == 0 {
		return nil, &models.ValidationError{Msg: "words cannot be empty"}
	}
	found := s.table.LookupMany(words)
	s.logger.Debug("embeddings resolved",
		zap.Int("requested", len(words)), zap.Int("found", len(found)))
	return found, nil
}

// Tfidf computes TF-IDF vectors for the ordered document collection. An
// empty collection is a valid degenerate input and yields an empty
// vocabulary, matching the engine contract.
func (s *Service) Tfidf(documents []string) (*models.TfidfResponse, error) {
	features, matrix := tfidf.FitTransform(documents)
	return &models.TfidfResponse{FeatureNames: features, TfidfVectors: matrix}, nil
}

// Visualize resolves the requested words, projects them with the requested
// method, colors them, caches the result, and returns it with its id set.
// Words absent from the table are dropped; if fewer than 2 remain the request
// fails with ErrInsufficientPoints.
func (s *Service) Visualize(req *models.VisualizationRequest) (*models.Visualization, error) {
	method, err := req.Validate(s.cfg.DefaultPerplexity, s.cfg.DefaultDims)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(req.Words))
	vectors := make([][]float64, 0, len(req.Words))
	for _, word := range req.Words {
		if vec, ok := s.table.Lookup(word); ok {
			words = append(words, word)
			vectors = append(vectors, vec)
		}
	}
	if len(words) < 2 {
		return nil, models.ErrInsufficientPoints
	}

	tsneCfg := projection.DefaultTSNEConfig()
	tsneCfg.Seed = s.cfg.TSNESeed
	// Clamp to the largest valid perplexity for this point count so small
	// word lists still visualize; the reducer enforces the strict bound.
	tsneCfg.Perplexity = float64(req.Perplexity)
	if limit := float64(len(words) - 1); tsneCfg.Perplexity > limit {
		tsneCfg.Perplexity = limit
	}

	points, err := projection.Reduce(vectors, method, req.Dims, tsneCfg)
	if err != nil {
		return nil, err
	}

	coordinates := make(map[string]models.Point, len(words))
	for i, word := range words {
		coordinates[word] = points[i]
	}

	viz := &models.Visualization{
		Method:      method,
		Dims:        req.Dims,
		Words:       words,
		Coordinates: coordinates,
		Colors:      palette.Assign(words),
		CreatedAt:   time.Now().UTC(),
	}
	id := s.store.Store(viz)
	if s.cfg.MaxStored > 0 {
		s.store.Trim(s.cfg.MaxStored)
	}
	s.logger.Info("visualization created",
		zap.String("id", id),
		zap.String("method", string(method)),
		zap.Int("dims", req.Dims),
		zap.Int("words", len(words)),
		zap.Int("dropped", len(req.Words)-len(words)))
	return viz, nil
}

// Visualization retrieves a cached visualization, or ErrNotFound.
func (s *Service) Visualization(id string) (*models.Visualization, error) {
	viz, ok := s.store.Get(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	return viz, nil
}

// VisualizationIDs lists all cached visualization ids, oldest first.
func (s *Service) VisualizationIDs() []string {
	return s.store.IDs()
}

// Cleanup evicts all but the most recent maxItems visualizations and returns
// the remaining count. maxItems <= 0 uses the default of 20.
func (s *Service) Cleanup(maxItems int) int {
	if maxItems <= 0 {
		maxItems = 20
	}
	remaining := s.store.Trim(maxItems)
	s.logger.Debug("visualization cache trimmed",
		zap.Int("max_items", maxItems), zap.Int("remaining", remaining))
	return remaining
}

// TableSize returns the loaded vocabulary size.
func (s *Service) TableSize() int { return s.table.Size() }

// TableDimensions returns the loaded vector length.
func (s *Service) TableDimensions() int { return s.table.Dimensions() }

// CacheSize returns the number of cached visualizations.
func (s *Service) CacheSize() int { return s.store.Size() }
