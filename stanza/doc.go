// Package stanza converts RFC822-like stanza files into ordered records.
//
// Debian package indices (Packages), the dpkg status database and .deb
// control files all share the same syntax: a file is a sequence of stanzas
// separated by blank lines, each stanza a sequence of "Field: value" lines,
// and a line starting with whitespace continues the value of the previous
// field.
//
// # Pipeline
//
// The engine works in four steps, each exposed on its own:
//
//   - [Split] walks the text once and yields stanzas.
//   - [Join] folds continuation lines into the field they extend.
//   - [Classify] tells whether a canonical field is a [Scalar], a [List] or an [Integer].
//   - [Build] assembles one [Record] per stanza, in raw or processed mode.
//
// [Parse] chains them and returns a [Result]: the records in source order and
// the warnings collected on the way. Parsing never fails: malformed lines are
// skipped and fields that cannot be coerced keep their string value, each
// leaving a [Warning] behind.
//
// Format metadata ([Info]) is an argument of [Parse], so several formats can
// share the engine concurrently.
package stanza
