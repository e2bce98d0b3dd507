package stanza

import (
	"strconv"
	"strings"
)

// Kind classifies a canonical field and decides how its value is processed.
type Kind int

const (
	// Scalar values are kept as strings.
	Scalar Kind = iota
	// List values are comma separated and become a []string.
	List
	// Integer values are base-10 numbers and become an int.
	Integer
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Integer:
		return "integer"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// classification is the contract between the engine and the output schema.
// Fields that are not listed are scalars.
var classification = map[string]Kind{
	"installed_size": Integer,
	"size":           Integer,
	"depends":        List,
	"conflicts":      List,
	"replaces":       List,
}

// Canonical returns the output key for a field name: lower case, with "-"
// replaced by "_". "Installed-Size" becomes "installed_size".
func Canonical(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// Classify returns the Kind of a canonical field name.
func Classify(key string) Kind {
	return classification[key]
}

// SplitList splits a comma separated value, trims each element and drops the
// empty ones. The result is never nil: an empty value yields an empty list.
func SplitList(value string) []string {
	res := []string{}
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

// ParseInt parses a trimmed base-10 integer.
func ParseInt(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}
