package runtime

import "github.com/mattn/go-runewidth"

// displayWidth reports s's terminal display width, accounting for
// double-width CJK and zero-width combining runes, backing the `.width()`
// string method.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
