// Package main is the kotoba CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/cli"
	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/embedding"
	"github.com/hyperjump/kotoba/internal/models"
	"github.com/hyperjump/kotoba/internal/server"
	"github.com/hyperjump/kotoba/internal/service"
	"github.com/hyperjump/kotoba/internal/vizstore"
	"github.com/hyperjump/kotoba/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotoba/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "kotoba server" from the project dir uses the project's config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "lookup":
		runLookup()
	case "visualize":
		runVisualize()
	case "get":
		runGet()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kotoba version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-request detail)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	// The table load is the one startup cost; the process cannot serve
	// without it, so a malformed table is fatal here.
	table, err := embedding.LoadTable(cfg.Embeddings.TablePath)
	if err != nil {
		logger.Fatal("Failed to load embedding table", zap.Error(err))
	}
	logger.Info("embedding table loaded",
		zap.String("path", cfg.Embeddings.TablePath),
		zap.Int("words", table.Size()),
		zap.Int("dimensions", table.Dimensions()),
	)

	svc := service.New(table, vizstore.New(), &cfg.Visualization, logger)
	srv := server.NewServer(svc, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runLookup() {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotoba lookup [flags] <word> [word...]")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var resp models.EmbeddingsResponse
	err = postViaHTTP(*serverURL+"/api/v1/embeddings",
		&models.EmbeddingsRequest{Words: fs.Args()}, &resp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lookup failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteEmbeddings(os.Stdout, &resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// visualizeArgsReorder moves any flags (and their values) that appear after the
// word list to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "kotoba visualize king queen
// -method tsne" would otherwise leave -method unparsed.
func visualizeArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runVisualize() {
	fs := flag.NewFlagSet("visualize", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	method := fs.String("method", "pca", "reduction method: pca or tsne")
	perplexity := fs.Int("perplexity", 0, "t-SNE perplexity (0 = server default)")
	dims := fs.Int("dims", 0, "target dimensionality, 2 or 3 (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(visualizeArgsReorder(os.Args[2:]))

	if fs.NArg() < 2 {
		fmt.Println("Usage: kotoba visualize [flags] <word> <word> [word...]")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var viz models.Visualization
	err = postViaHTTP(*serverURL+"/api/v1/visualizations", &models.VisualizationRequest{
		Words:      fs.Args(),
		Method:     *method,
		Perplexity: *perplexity,
		Dims:       *dims,
	}, &viz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Visualize failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteVisualization(os.Stdout, &viz, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runGet() {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kotoba get [flags] <visualization-id>")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var viz models.Visualization
	err = getViaHTTP(*serverURL+"/api/v1/visualizations/"+fs.Arg(0), &viz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Get failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteVisualization(os.Stdout, &viz, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server URL")
	_ = fs.Parse(os.Args[2:])

	var status struct {
		VocabularySize       int `json:"vocabulary_size"`
		EmbeddingDimensions  int `json:"embedding_dimensions"`
		CachedVisualizations int `json:"cached_visualizations"`
	}
	if err := getViaHTTP(*serverURL+"/api/v1/status", &status); err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("vocabulary_size:        %d\n", status.VocabularySize)
	fmt.Printf("embedding_dimensions:   %d\n", status.EmbeddingDimensions)
	fmt.Printf("cached_visualizations:  %d\n", status.CachedVisualizations)
}

func postViaHTTP(url string, request, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func getViaHTTP(url string, response interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Println(`kotoba - Word embedding and visualization service

Usage:
  kotoba server [flags]                 Start the HTTP server
  kotoba lookup [flags] <words...>      Look up embedding vectors
  kotoba visualize [flags] <words...>   Project words to 2-D/3-D coordinates
  kotoba get [flags] <id>               Retrieve a stored visualization
  kotoba status [flags]                 Show table and cache status
  kotoba version                        Show version
  kotoba help                           Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/kotoba/config.yaml)
  --debug            Enable debug logging

Visualize Flags:
  --server string    Server URL (default: http://localhost:8000)
  --method string    Reduction method: pca or tsne (default: pca)
  --perplexity int   t-SNE perplexity (0 = server default of 30)
  --dims int         Target dimensionality, 2 or 3 (0 = server default of 2)
  --output string    Output format: text or json (default: text)

Examples:
  kotoba server
  kotoba lookup king queen
  kotoba visualize king queen man woman
  kotoba visualize --method tsne --perplexity 10 king queen man woman child
  kotoba visualize --output json king queen   # structured JSON for other apps
  kotoba get 5f0c3a1e-...
  kotoba status`)
}
