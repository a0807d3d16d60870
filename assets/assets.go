// Package assets holds the files bundled into every binary.
package assets

import _ "embed"

// Words is the default card dataset: one card per line, the word to guess
// followed by its taboo words, comma separated.
//
//go:embed words.csv
var Words []byte
