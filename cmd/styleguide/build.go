package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	styleguide "github.com/kylamedina/styleguide.js"
	"github.com/kylamedina/styleguide.js/internal/config"
	"github.com/kylamedina/styleguide.js/internal/dateutil"
	"github.com/kylamedina/styleguide.js/internal/hints"
)

// ErrNoInput is returned when neither arguments nor config name a source.
var ErrNoInput = errors.New("no input specified")

// runBuild renders the stylesheets named by args and config into one document.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	quiet := flags.common.quiet
	if !quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	logger := newLogger(env.Stderr, quiet, flags.common.verbose)

	envCfg := loadEnvConfig()
	cfg, err := loadBuildConfig(flags.common.config, envCfg.ConfigPath, env.FindConfig, logger)
	if err != nil {
		return withHint(err, cfg)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if len(positional) > 0 {
		cfg.Sources = positional
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sources := expandSources(cfg.Sources, logger)
	if len(sources) == 0 {
		return fmt.Errorf("%w: pass stylesheet files or set sources in a config file", ErrNoInput)
	}

	date, err := dateutil.Resolve(cfg.Render.Date, env.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", styleguide.ErrInvalidDate, err)
	}

	guideOpts := []styleguide.Option{
		styleguide.WithLogger(logger),
		styleguide.WithWorkers(cfg.Render.Workers),
		styleguide.WithAssetPath(cfg.Assets.BasePath),
	}
	if env.AssetLoader != nil {
		guideOpts = append(guideOpts, styleguide.WithAssetLoader(env.AssetLoader))
	}
	guide, err := styleguide.New(guideOpts...)
	if err != nil {
		return withHint(err, cfg)
	}
	for _, src := range sources {
		if err := guide.AddFile(src); err != nil {
			return err
		}
	}

	result, err := guide.Render(ctx, buildOptions(cfg, date))
	if err != nil {
		return withHint(err, cfg)
	}
	if !quiet {
		reportDiagnostics(env.Stderr, result)
	}

	if cfg.Output.File == "" {
		_, err := io.WriteString(env.Stdout, result.Document)
		return err
	}
	if err := result.Wait(); err != nil {
		return withHint(err, cfg)
	}
	if !quiet {
		fmt.Fprintf(env.Stderr, "wrote %s (%d groups, %d records)\n",
			cfg.Output.File, len(result.Groups), len(result.Records()))
	}
	return nil
}

// loadBuildConfig picks the config named by the flag, then the environment,
// then the default lookup. An explicit name that cannot be loaded is an error;
// a missing default is not.
func loadBuildConfig(flagName, envName string, find func() string, logger *slog.Logger) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" && find != nil {
		name = find()
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "name", name)
	return cfg, nil
}

// mergeFlags applies set CLI flags over config values.
// Extra assets given as flags are appended to the configured ones.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&cfg.Output.File, f.output)
	if f.workers > 0 {
		cfg.Render.Workers = f.workers
	}

	r := f.render
	setIf(&cfg.Render.Title, r.title)
	setIf(&cfg.Render.GroupBy, r.groupBy)
	setIf(&cfg.Render.Engine, r.engine)
	setIf(&cfg.Render.ExampleEngine, r.exampleEngine)
	setIf(&cfg.Render.IncludeKey, r.includeKey)
	setIf(&cfg.Render.HighlightStyle, r.highlightStyle)
	setIf(&cfg.Render.Date, r.date)
	switch {
	case r.noSort:
		cfg.Render.SortBy = []string{}
	case len(r.sortBy) > 0:
		cfg.Render.SortBy = r.sortBy
	}

	a := f.assets
	setIf(&cfg.Template.File, a.template)
	setIf(&cfg.Template.CSS, a.templateCSS)
	setIf(&cfg.Template.JS, a.templateJS)
	setIf(&cfg.Assets.BasePath, a.assetPath)
	setIf(&cfg.Fragments.Dir, a.fragments)
	cfg.Extra.CSS = append(cfg.Extra.CSS, a.extraCSS...)
	cfg.Extra.JS = append(cfg.Extra.JS, a.extraJS...)
}

// buildOptions maps a merged config onto render options.
func buildOptions(cfg *config.Config, date string) styleguide.Options {
	return styleguide.Options{
		GroupBy:        cfg.Render.GroupBy,
		SortBy:         cfg.Render.SortBy,
		Engine:         cfg.Render.Engine,
		ExampleEngine:  cfg.Render.ExampleEngine,
		ExtraJS:        cfg.Extra.JS,
		ExtraCSS:       cfg.Extra.CSS,
		OutputFile:     cfg.Output.File,
		Template:       cfg.Template.File,
		TemplateCSS:    cfg.Template.CSS,
		TemplateJS:     cfg.Template.JS,
		Title:          cfg.Render.Title,
		Fragments:      cfg.Fragments.Inline,
		FragmentDir:    cfg.Fragments.Dir,
		IncludeKey:     cfg.Render.IncludeKey,
		HighlightStyle: cfg.Render.HighlightStyle,
		Date:           date,
		Workers:        cfg.Render.Workers,
	}
}

// expandSources expands glob patterns and drops duplicates, keeping the
// first occurrence. Plain paths are kept even when missing so reading
// them reports the error.
func expandSources(patterns []string, logger *slog.Logger) []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			add(pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			logger.Warn("bad source pattern", "pattern", pattern, "error", err)
			continue
		}
		if len(matches) == 0 {
			logger.Warn("source pattern matched no files", "pattern", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths
}

// reportDiagnostics prints recoverable problems as warnings.
func reportDiagnostics(w io.Writer, result *styleguide.Result) {
	for _, d := range result.Diagnostics {
		hint := ""
		if d.Stage == styleguide.StageInclude {
			hint = hints.ForUnresolvedInclude()
		}
		fmt.Fprintf(w, "warning: %s%s\n", d, hint)
	}
	if len(result.Records()) == 0 {
		fmt.Fprintf(w, "warning: no documentation blocks found%s\n", hints.ForNoRecords())
	}
}

// withHint appends an actionable hint to known errors.
// cfg may be nil when loading the config failed.
func withHint(err error, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(nil)
	case errors.Is(err, styleguide.ErrUnknownExample):
		hint = hints.ForUnknownEngine("--example-engine", flagCompletionMeta["example-engine"].Values)
	case errors.Is(err, styleguide.ErrUnknownTemplate):
		hint = hints.ForUnknownEngine("--engine", flagCompletionMeta["engine"].Values)
	case errors.Is(err, styleguide.ErrInvalidAssetPath):
		hint = hints.ForInvalidAssetPath()
	case errors.Is(err, styleguide.ErrExampleCompile):
		hint = hints.ForExampleCompile(cfg.Render.ExampleEngine)
	case errors.Is(err, styleguide.ErrTemplateNotFound),
		errors.Is(err, styleguide.ErrStyleNotFound),
		errors.Is(err, styleguide.ErrScriptNotFound):
		hint = hints.ForAssetNotFound(cfg.Assets.BasePath)
	case errors.Is(err, styleguide.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
