// Package data embeds the default word lists. The files are plain YAML
// and can be replaced at load time through config.Loader.
package data

import _ "embed"

// Lexicon holds the closed-class word lists, special cases and context lists.
//
//go:embed lexicon.yaml
var Lexicon []byte

// Verbs holds the irregular verb tables, the regular verb list and the
// prefix sets.
//
//go:embed verbs.yaml
var Verbs []byte

// Adjectives holds the adjective lemma table and color tables.
//
//go:embed adjectives.yaml
var Adjectives []byte

// Phrases holds the fixed multi-word expressions.
//
//go:embed phrases.yaml
var Phrases []byte
