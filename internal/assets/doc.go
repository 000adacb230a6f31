// Package assets serves the bundled document templates, stylesheet and script,
// and lets a directory on disk override any of them by name.
//
// A custom directory mirrors the bundled layout:
//
//	{basePath}/
//	├── templates/{name}.amber   amber document template
//	├── templates/{name}.html    html/template document template
//	├── styles/{name}.css        template stylesheet
//	└── scripts/{name}.js        template script
//
// AssetResolver reads the custom directory first and falls back to the
// bundled copy for names it lacks. Names are plain identifiers, and files are
// read through an os.Root so symlinks cannot leave basePath.
package assets
