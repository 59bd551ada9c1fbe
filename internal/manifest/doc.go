// Package manifest reads, patches, and writes package.json files.
//
// A Document keeps the top-level keys in file order so a patch only changes
// the fields it touches. PackageJSON is the typed view used for decisions.
// Manifests that come from outside the project (archives, local paths) are
// validated against an embedded JSON schema before use.
package manifest
