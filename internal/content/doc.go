// Package content injects markup authored in graph nodes into the HTML shell.
//
// Each Strategy owns one node type and renders the matching operators into a
// fragment. The Injector places every fragment immediately before the canvas
// element, skips fragments whose trimmed markup already occurs in the shell,
// and marks the operators behind placed fragments as exported.
//
// The presence check of the Wrapped strategy is reliable because each block
// carries its operator id. Raw and Markdown fragments carry no marker, so a
// fragment that happens to occur elsewhere in the shell is reported as
// present and one that differs only in surrounding whitespace is inserted
// again.
package content
