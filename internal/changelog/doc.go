// Package changelog turns conventional commits into release notes.
//
// This package implements:
//   - Parsing of pipe-delimited commit records
//   - Classification of commits by their conventional-commit type, with
//     breaking-change notes fanned out into their own section
//   - Grouping into sections in a fixed display order
//   - Rendering as Markdown, plain text, or Slack markup
//   - YAML export of the grouped changelog
//
// Classification and rendering are pure functions of their input and are
// safe for concurrent use.
package changelog
