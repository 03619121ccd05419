// Package htmldoc is a minimal model of the exported HTML shell.
//
// The shell is held as an ordered list of regions produced by the
// golang.org/x/net/html tokenizer. Concatenating the regions reproduces the
// input byte for byte, so edits touch only the regions they insert or
// remove. Insertion points are named anchors (the closing head tag, the
// canvas element) resolved against the region list and checked with Require
// before a stage mutates anything.
package htmldoc
