package deb

import "github.com/etnz/pkgindex/stanza"

// ControlField represents a standard field in a Debian control file or index stanza.
type ControlField string

const (
	FieldPackage       ControlField = "Package"
	FieldVersion       ControlField = "Version"
	FieldArchitecture  ControlField = "Architecture"
	FieldInstalledSize ControlField = "Installed-Size"
	FieldDepends       ControlField = "Depends"
	FieldConflicts     ControlField = "Conflicts"
	FieldReplaces      ControlField = "Replaces"

	// Field added by the repository to each stanza of a Packages index.
	FieldSize ControlField = "Size"

	// Field of the dpkg status database.
	FieldStatus ControlField = "Status"
)

// Key returns the record key of the field, e.g. "installed_size" for Installed-Size.
func (f ControlField) Key() string { return stanza.Canonical(string(f)) }

// Kind returns how the field is processed when parsed.
func (f ControlField) Kind() stanza.Kind { return stanza.Classify(f.Key()) }

// ControlFile represents a standard file found in the control.tar archive.
type ControlFile string

const (
	FileControl ControlFile = "control"
)

// PackageFile represents a standard file found in the .deb archive (ar format).
type PackageFile string

const (
	PkgDebianBinary  PackageFile = "debian-binary"
	PkgControlTar    PackageFile = "control.tar"
	PkgControlTarGz  PackageFile = "control.tar.gz"
	PkgControlTarXz  PackageFile = "control.tar.xz"
	PkgControlTarZst PackageFile = "control.tar.zst"
	PkgDataTarGz     PackageFile = "data.tar.gz"
)
