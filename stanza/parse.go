package stanza

import (
	"fmt"
	"strconv"
)

// Info describes a file family handled by the engine.
type Info struct {
	// Name identifies the format, e.g. "pkg-index-deb".
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Version     string   `json:"version" yaml:"version"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	AuthorEmail string   `json:"author_email,omitempty" yaml:"author_email,omitempty"`
	Details     string   `json:"details,omitempty" yaml:"details,omitempty"`
	Compatible  []string `json:"compatible,omitempty" yaml:"compatible,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Options select how records are built. They are fixed for a whole parse.
type Options struct {
	// Raw keeps every value as the joined string found in the source.
	Raw bool
	// Quiet drops the warnings. It never changes the records.
	Quiet bool
}

// WarningKind is the category of a recoverable parse condition.
type WarningKind int

const (
	// MalformedLine is a line that is neither a field nor a continuation.
	MalformedLine WarningKind = iota + 1
	// IntegerCoercion is an integer field whose value is not a number.
	IntegerCoercion
	// DuplicateField is a field repeated within a stanza. The last value wins.
	DuplicateField
)

func (k WarningKind) String() string {
	switch k {
	case MalformedLine:
		return "malformed-line"
	case IntegerCoercion:
		return "integer-coercion"
	case DuplicateField:
		return "duplicate-field"
	}
	return "WarningKind(" + strconv.Itoa(int(k)) + ")"
}

// Warning reports a condition the parser recovered from.
type Warning struct {
	Kind WarningKind
	// Stanza is the 0-based index of the stanza in the input. Stanzas that
	// build no record are counted too.
	Stanza int
	// Record is the index of the stanza's record in Result.Records, or -1
	// when the stanza built no record.
	Record int
	// Line is the 1-based line number in the input.
	Line int
	// Key is the canonical field involved, if any.
	Key     string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
}

// Result is the outcome of Parse.
type Result struct {
	// Info is the metadata of the format the text was parsed as.
	Info Info
	// Records holds one record per non-empty stanza, in source order.
	Records []Record
	// Warnings is nil when parsing with Options.Quiet.
	Warnings []Warning
}

// Build assembles the record of a stanza from its fields.
//
// In raw mode every value is the joined string. Otherwise list fields are
// split with SplitList and integer fields are converted with ParseInt; an
// integer field that does not parse keeps its string and yields an
// IntegerCoercion warning. A repeated field overwrites the earlier value but
// keeps its position.
func Build(fields []Field, raw bool) (Record, []Warning) {
	var warnings []Warning
	rec := make(Record, 0, len(fields))
	for _, f := range fields {
		var v any = f.Value
		if !raw {
			switch Classify(f.Key) {
			case List:
				v = SplitList(f.Value)
			case Integer:
				if n, ok := ParseInt(f.Value); ok {
					v = n
				} else {
					warnings = append(warnings, Warning{
						Kind:    IntegerCoercion,
						Line:    f.Line,
						Key:     f.Key,
						Message: fmt.Sprintf("%s: %q is not an integer, keeping the string", f.Name, f.Value),
					})
				}
			}
		}
		if rec.Set(f.Key, v) {
			warnings = append(warnings, Warning{
				Kind:    DuplicateField,
				Line:    f.Line,
				Key:     f.Key,
				Message: fmt.Sprintf("%s repeated, overwriting the previous value", f.Name),
			})
		}
	}
	return rec, warnings
}

// Parse converts text into records.
//
// Parse never fails: it always returns the records it could build, possibly
// none. The result carries info unchanged so callers can tell which format
// produced it.
func Parse(text string, info Info, opts Options) Result {
	res := Result{Info: info, Records: []Record{}}
	for s := range Split(text) {
		fields, warnings := Join(s)
		index := -1
		if len(fields) > 0 {
			index = len(res.Records)
		}
		for i := range warnings {
			warnings[i].Record = index
		}
		res.Warnings = append(res.Warnings, warnings...)
		if len(fields) == 0 {
			continue
		}
		rec, warnings := Build(fields, opts.Raw)
		for i := range warnings {
			warnings[i].Stanza = s.Index
			warnings[i].Record = index
		}
		res.Warnings = append(res.Warnings, warnings...)
		res.Records = append(res.Records, rec)
	}
	if opts.Quiet {
		res.Warnings = nil
	}
	return res
}
