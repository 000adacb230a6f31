package main

import (
	"io"
	"os"
	"time"

	styleguide "github.com/kylamedina/styleguide.js"
	"github.com/kylamedina/styleguide.js/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader styleguide.AssetLoader // nil = bundled assets plus --asset-path
	FindConfig  func() string          // default config lookup; nil disables it
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		FindConfig: config.FindDefault,
	}
}
