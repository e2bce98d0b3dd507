package stanza

import (
	"iter"
	"strings"
)

// Line is a single source line of a stanza.
type Line struct {
	// Number is the 1-based position of the line in the input text.
	Number int
	Text   string
}

// Stanza is a contiguous block of non-blank lines.
type Stanza struct {
	// Index is the 0-based position of the stanza among the stanzas of the input.
	Index int
	Lines []Line
}

// Split returns the stanzas of text, in order.
//
// Stanzas are separated by one or more blank lines (empty or whitespace only).
// Leading and trailing blank lines never produce a stanza. Both "\n" and
// "\r\n" line endings are accepted.
func Split(text string) iter.Seq[Stanza] {
	return func(yield func(Stanza) bool) {
		var cur Stanza
		n := 0
		for line := range strings.Lines(text) {
			n++
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) != "" {
				cur.Lines = append(cur.Lines, Line{Number: n, Text: line})
				continue
			}
			if len(cur.Lines) == 0 {
				continue
			}
			if !yield(cur) {
				return
			}
			cur = Stanza{Index: cur.Index + 1}
		}
		if len(cur.Lines) > 0 {
			yield(cur)
		}
	}
}
