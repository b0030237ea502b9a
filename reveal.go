package asof

import "iter"

// Reveal returns the prefixes of text from the empty string up to the full
// text, one rune longer each step. The sequence is finite and can be ranged
// over any number of times.
func Reveal(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield("") {
			return
		}
		for i := range text {
			if i == 0 {
				continue
			}
			if !yield(text[:i]) {
				return
			}
		}
		if text != "" {
			yield(text)
		}
	}
}
