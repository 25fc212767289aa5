// Package render formats evaluation batches as BitBar plugin output:
// a single title line for the menu bar, then a dropdown with one row
// per watched target.
package render
