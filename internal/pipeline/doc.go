// Package pipeline implements the stages that turn stylesheet comments into
// a style-guide document:
//   - Extraction of "/*** ... */" documentation blocks into Records
//   - Example rendering (amber, Markdown or plain HTML)
//   - Include resolution of named HTML fragments
//   - Normalization: HTML beautification and example highlighting
//   - Grouping and stable multi-key sorting
//   - Document assembly through a template engine
//
// Stages take Record values and return new ones. Orchestration, worker
// fan-out and file output live in the root styleguide package.
package pipeline
