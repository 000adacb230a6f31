// Package styleguide builds a static style-guide document from documentation
// blocks embedded in stylesheet comments.
//
// # Quick Start
//
// Add stylesheets, render, and wait for the output file:
//
//	guide, err := styleguide.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := guide.AddFile("css/buttons.css"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := guide.Render(ctx, styleguide.Options{
//	    OutputFile: "public/styleguide.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.Wait(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Documentation Blocks
//
// A documentation block is a comment opened with "/***". Its body is YAML
// metadata followed by a "---" line and the example markup:
//
//	/***
//	section: Buttons
//	title: Primary
//	---
//	a.btn.btn-primary Click me
//	*/
//
// Without a separator, the example goes under the "example" key, as a string
// or a list of fragments. Ordinary "/* */" comments are ignored.
//
// # Rendering Pipeline
//
//  1. Extraction of blocks into Records, in source order
//  2. Example rendering with the example engine (amber, markdown or html)
//  3. Include resolution: <include html="NAME"> and data-include-html markers
//  4. Normalization: HTML beautification and example highlighting (chroma)
//  5. Stable multi-key sort, then grouping
//  6. Document assembly through the template engine (amber or html)
//
// Example rendering and normalization run concurrently per record; results
// keep source order. Malformed blocks and unresolved includes are reported in
// Result.Diagnostics. Compile, template and I/O failures abort the render.
//
// # Custom Assets
//
// Override the bundled template, stylesheet and script with WithAssetPath:
//
//	guide, err := styleguide.New(styleguide.WithAssetPath("./theme"))
//
// Asset directory structure:
//
//	theme/
//	├── templates/
//	│   ├── default.amber
//	│   └── default.html
//	├── styles/
//	│   └── default.css
//	└── scripts/
//	    └── default.js
//
// Options.Template, Options.TemplateCSS and Options.TemplateJS accept either
// an asset name or a file path.
package styleguide
