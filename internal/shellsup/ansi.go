package shellsup

import "github.com/charmbracelet/x/ansi"

// stripANSI is the default Stripper, wiring the injectable ANSI-removal
// collaborator spec.md §9 calls for to a real implementation instead of a
// hand-rolled regex.
func stripANSI(s string) string {
	return ansi.Strip(s)
}
