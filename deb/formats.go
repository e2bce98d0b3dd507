package deb

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/pkgindex/stanza"
)

// ErrUnknownFormat is returned by Lookup for a name no Parser answers to.
var ErrUnknownFormat = errors.New("unknown format")

// Parser parses one file family with the shared stanza engine.
type Parser struct {
	Info stanza.Info
}

// Parse parses text as the Parser's format.
//
// raw keeps every value as a string, quiet drops the warnings. The result is
// the one of stanza.Parse with a copy of the Parser's Info: changing it does
// not change the Parser.
func (p Parser) Parse(text string, raw, quiet bool) stanza.Result {
	return stanza.Parse(text, cloneInfo(p.Info), stanza.Options{Raw: raw, Quiet: quiet})
}

func cloneInfo(i stanza.Info) stanza.Info {
	i.Compatible = slices.Clone(i.Compatible)
	i.Tags = slices.Clone(i.Tags)
	return i
}

var (
	// PackageIndex parses the Packages index of an APT repository.
	PackageIndex = Parser{Info: stanza.Info{
		Name:        "pkg-index-deb",
		Description: "Debian Package Index file parser",
		Version:     "1.2",
		Author:      "Kelly Brazil",
		AuthorEmail: "kellyjonbrazil@gmail.com",
		Details:     "Using the shared stanza engine",
		Compatible:  []string{"linux", "darwin", "cygwin", "win32", "aix", "freebsd"},
		Tags:        []string{"file"},
	}}

	// Status parses the dpkg status database.
	Status = Parser{Info: stanza.Info{
		Name:        "dpkg-status",
		Description: "dpkg status database parser",
		Version:     "1.0",
		Author:      "Kelly Brazil",
		AuthorEmail: "kellyjonbrazil@gmail.com",
		Details:     "Using the shared stanza engine",
		Compatible:  []string{"linux", "darwin", "cygwin", "win32", "aix", "freebsd"},
		Tags:        []string{"file"},
	}}
)

// ParsePackageIndex parses the content of a Packages index file.
func ParsePackageIndex(text string, raw, quiet bool) stanza.Result {
	return PackageIndex.Parse(text, raw, quiet)
}

// ParseStatus parses the content of a dpkg status file.
func ParseStatus(text string, raw, quiet bool) stanza.Result {
	return Status.Parse(text, raw, quiet)
}

// Formats returns a copy of the metadata of every known Parser.
func Formats() []stanza.Info {
	return []stanza.Info{cloneInfo(PackageIndex.Info), cloneInfo(Status.Info)}
}

// Lookup returns the Parser for a format name. Names are case insensitive
// and "_" is accepted for "-", so "pkg_index_deb" finds pkg-index-deb.
func Lookup(name string) (Parser, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, p := range []Parser{PackageIndex, Status} {
		if p.Info.Name == n {
			return Parser{Info: cloneInfo(p.Info)}, nil
		}
	}
	return Parser{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
