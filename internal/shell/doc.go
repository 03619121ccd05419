// Package shell holds the export stages that operate on the HTML shell
// alone: the backup guard, the restore step, script hoisting and the
// stylesheet link.
package shell
