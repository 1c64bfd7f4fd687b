package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"scumguard/internal/config"
	"scumguard/internal/logging"
)

// setup resolves the workspace, loads its optional .env, and builds the
// stderr logger. Variables already set in the environment win over .env.
func setup() (config.Layout, *logrus.Logger, error) {
	layout, err := config.ResolveLayout(homeDir)
	if err != nil {
		return config.Layout{}, nil, err
	}

	if _, err := os.Stat(layout.EnvFile()); err == nil {
		if err := godotenv.Load(layout.EnvFile()); err != nil {
			return config.Layout{}, nil, fmt.Errorf("loading %s: %w", layout.EnvFile(), err)
		}
	}

	// .env may have set the home variable; honour it when no flag was given.
	if homeDir == "" {
		if layout, err = config.ResolveLayout(""); err != nil {
			return config.Layout{}, nil, err
		}
	}

	return layout, logging.New(os.Stderr), nil
}
