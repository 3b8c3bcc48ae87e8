// Package data embeds the curated vocabulary catalog and the example
// sentences fed to the morphological analyzer.
//
// Usage:
//
//	catalog.Load(data.Catalog, data.CatalogDir)
package data

import "embed"

// CatalogDir is the directory inside Catalog holding the *.json word files.
const CatalogDir = "catalog"

// Catalog holds one or more JSON arrays of {word, reading, meaning} objects.
//
//go:embed catalog/*.json
var Catalog embed.FS

// Sentences holds the analyzer input, one sentence per line.
//
//go:embed sentences.txt
var Sentences string
