// Package deb knows the Debian file families that use the stanza syntax.
//
// Each family is a [Parser]: a thin shim that hands its own metadata to the
// shared engine of package stanza and returns what the engine returns. All
// families therefore produce records with the same schema, and a change to
// the field classification applies to all of them.
//
// # Formats
//
//   - pkg-index-deb: the Packages index of an APT repository.
//   - dpkg-status: the dpkg status database (/var/lib/dpkg/status).
//
// The package also extracts the control stanza of a .deb archive with
// [ReadControl], so a package file can be parsed like an index of one entry.
package deb
