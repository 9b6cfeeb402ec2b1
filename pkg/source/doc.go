// Package source loads word-cloud tokens from files.
//
// # Formats
//
// Three input formats are supported, selected by file extension:
//
//   - .json: a tech-bits array. Object entries {"text": "...", "size": "xl"}
//     are split on whitespace into one token per word, every word inheriting
//     the entry's size. Plain string entries become single tokens of size base.
//     Both kinds may be mixed.
//   - .toml: [[token]] tables with text and size keys, plus an optional words
//     array of base-sized tokens.
//   - .cloud: a small line-insensitive DSL. Bare words are base-sized tokens;
//     a size followed by braces groups words of that size. Quoted strings keep
//     their spaces and # starts a comment.
//
// A .cloud file looks like this:
//
//	# languages
//	5xl { Go Rust }
//	xl  { "Visual Studio" Postgres }
//	Redis
//
// Unknown size names in JSON and TOML resolve to base. In the DSL they are a
// parse error, reported with the offending position.
//
// # Output
//
// [WriteJSON] writes tokens back out in the tech-bits format, so any input can
// be normalized to JSON.
package source
