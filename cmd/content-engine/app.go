// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/brief"
	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/pipeline"
	"github.com/pdiddy/content-engine/internal/provider"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/internal/webtext"
	"github.com/pdiddy/content-engine/pkg/types"
)

// app holds the components shared by the stage subcommands.
type app struct {
	cfg      types.Config
	log      zerolog.Logger
	pipeline *pipeline.Orchestrator
}

// newApp loads configuration and wires the pipeline.
func newApp() (*app, error) {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log, os.Stderr)

	client := httputil.NewClient(cfg.HTTP.Timeout)
	gw := provider.FromConfig(cfg.Providers, client, cfg.HTTP.UserAgent, log)
	if _, err := gw.Resolve(""); err != nil {
		return nil, fmt.Errorf("default provider: %w", err)
	}

	opts := []pipeline.Option{
		pipeline.WithFetcher(webtext.NewFetcher(cfg.Fetch, log)),
	}
	if sp, err := search.NewGoogleProvider(cfg.Search, log); err == nil {
		opts = append(opts, pipeline.WithSearch(sp))
	} else {
		log.Debug().Err(err).Msg("competitor search disabled")
	}

	return &app{
		cfg:      cfg,
		log:      log,
		pipeline: pipeline.New(gw, cfg.Generation, log, opts...),
	}, nil
}

// loadBrief reads the brief file named by path. An empty path is an error.
func loadBrief(path string) (*types.Brief, error) {
	if path == "" {
		return nil, fmt.Errorf("--brief is required")
	}
	return brief.Load(path)
}

// readText returns the contents of path, or of stdin when path is "-".
func readText(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", nil
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
