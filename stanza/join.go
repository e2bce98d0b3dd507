package stanza

import "strings"

// Field is a field of a stanza after continuation lines have been folded in.
type Field struct {
	// Name is the field name as written in the source, e.g. "Installed-Size".
	Name string
	// Key is the canonical form of Name, e.g. "installed_size".
	Key string
	// Value is the trimmed value. Continuation lines are appended after a "\n".
	Value string
	// Line is the source line where the field starts.
	Line int
}

// Join folds the lines of s into fields.
//
// A line "Name: value" starts a field. A line starting with a space or a tab
// continues the previous field: its trimmed content is appended after a
// newline, except that a lone "." stands for an empty line. Any other line,
// including a continuation with no field to extend, is skipped and reported
// as a [MalformedLine] warning.
func Join(s Stanza) ([]Field, []Warning) {
	var (
		fields   []Field
		warnings []Warning
		// folded is false until the last field got its first continuation.
		folded bool
	)
	for _, l := range s.Lines {
		if isContinuation(l.Text) {
			if len(fields) == 0 {
				warnings = append(warnings, Warning{
					Kind:    MalformedLine,
					Stanza:  s.Index,
					Line:    l.Number,
					Message: "continuation line without a field to extend",
				})
				continue
			}
			f := &fields[len(fields)-1]
			f.Value = fold(f.Value, l.Text, !folded)
			folded = true
			continue
		}

		name, value, ok := splitFieldLine(l.Text)
		if !ok {
			warnings = append(warnings, Warning{
				Kind:    MalformedLine,
				Stanza:  s.Index,
				Line:    l.Number,
				Message: "line is neither a field nor a continuation: " + l.Text,
			})
			continue
		}
		fields = append(fields, Field{
			Name:  name,
			Key:   Canonical(name),
			Value: value,
			Line:  l.Number,
		})
		folded = false
	}
	return fields, warnings
}

// fold appends a continuation line to value. A field whose first line is
// empty ("Conffiles:") takes the first continuation as its first line.
func fold(value, line string, first bool) string {
	cont := strings.TrimSpace(line)
	if cont == "." {
		cont = ""
	}
	if first && value == "" {
		return cont
	}
	return value + "\n" + cont
}

func isContinuation(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// splitFieldLine splits "Name: value". The name must be non-empty and free of
// whitespace.
func splitFieldLine(line string) (name, value string, ok bool) {
	name, value, found := strings.Cut(line, ":")
	if !found || name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
