package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	styleguide "github.com/kylamedina/styleguide.js"
	"github.com/kylamedina/styleguide.js/internal/config"
	"github.com/kylamedina/styleguide.js/internal/fileutil"
	"github.com/kylamedina/styleguide.js/internal/yamlutil"
)

// ErrInitExists is returned when init would overwrite a config file.
var ErrInitExists = errors.New("config file already exists")

const initHeader = `# styleguide configuration.
# Flags override these values; run 'styleguide help build' for details.
`

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	force  bool
}

// runInit writes a starter config file.
func runInit(args []string, env *Environment) error {
	f := &initFlags{}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", config.DefaultName+".yaml", "config file to write")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	fs.SetOutput(env.Stdout)
	fs.Usage = func() { printInitUsage(env.Stdout) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	if fileutil.FileExists(f.output) && !f.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrInitExists, f.output)
	}

	data, err := yamlutil.Marshal(starterConfig())
	if err != nil {
		return err
	}
	if err := fileutil.WriteText(f.output, initHeader+string(data)); err != nil {
		return fmt.Errorf("%w: %v", styleguide.ErrWriteOutput, err)
	}

	fmt.Fprintf(env.Stdout, "wrote %s\n", f.output)
	return nil
}

// starterConfig spells out the defaults so they are easy to edit.
func starterConfig() *config.Config {
	return &config.Config{
		Sources: []string{"css/*.css"},
		Output:  config.OutputConfig{File: "styleguide/index.html"},
		Render: config.RenderConfig{
			Title:          styleguide.DefaultTitle,
			GroupBy:        styleguide.DefaultGroupBy,
			SortBy:         styleguide.DefaultSortBy,
			Engine:         styleguide.DefaultEngine,
			ExampleEngine:  styleguide.DefaultExampleEngine,
			IncludeKey:     styleguide.DefaultIncludeKey,
			HighlightStyle: styleguide.DefaultHighlightStyle,
			Date:           "auto",
		},
		Template: config.TemplateConfig{
			File: styleguide.DefaultAsset,
			CSS:  styleguide.DefaultAsset,
			JS:   styleguide.DefaultAsset,
		},
		Extra:     config.ExtraConfig{CSS: []string{}, JS: []string{}},
		Fragments: config.FragmentsConfig{Inline: map[string]string{}},
	}
}
