package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Embeddings.TablePath == "" {
		cfg.Embeddings.TablePath = "/usr/local/var/kotoba/data/glove.6B.100d.txt"
	}
	if cfg.Visualization.DefaultPerplexity == 0 {
		cfg.Visualization.DefaultPerplexity = 30
	}
	if cfg.Visualization.DefaultDims == 0 {
		cfg.Visualization.DefaultDims = 2
	}
	if cfg.Visualization.TSNESeed == 0 {
		cfg.Visualization.TSNESeed = 42
	}
	// MaxStored defaults to 0 (unbounded); trimming is opt-in.
}
