package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/pkgindex/deb"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const packages = `Package: dotnet-host
Version: 3.1.16-1
Installed-Size: 146
Maintainer: .NET Core Team <dotnetpackages@dotnetfoundation.org>
Depends: libgcc1, libstdc++6

Package: foo
`

// observed returns an app whose logs are recorded.
func observed() (*app, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	a := newApp()
	a.buildLogger = func(bool) (*zap.Logger, error) { return zap.New(core), nil }
	return a, logs
}

// run executes the command line with stdin and returns what was printed.
func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := a.command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	if len(args) > 0 && !hasConfig(args) {
		// keep the tests away from a pkgindex.yaml in the working directory
		args = append(args[:1:1], append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args[1:]...)...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func hasConfig(args []string) bool {
	for _, a := range args {
		if a == "--config" {
			return true
		}
	}
	return false
}

func TestParseStdin(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, packages, "parse", "-")
	require.NoError(t, err)

	want := `[{"package":"dotnet-host","version":"3.1.16-1","installed_size":146,` +
		`"maintainer":".NET Core Team <dotnetpackages@dotnetfoundation.org>","depends":["libgcc1","libstdc++6"]},` +
		`{"package":"foo"}]` + "\n"
	assert.Equal(t, want, out)
}

func TestParseDefaultsToStdin(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, packages, "parse")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 2)
}

func TestParseRawYAML(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, packages, "parse", "-r", "-o", "yaml", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "- package: dotnet-host\n")
	assert.Contains(t, out, `installed_size: "146"`)
	assert.Contains(t, out, "depends: libgcc1, libstdc++6\n")
	assert.Less(t, strings.Index(out, "version:"), strings.Index(out, "installed_size:"), "key order must follow the source")
}

func TestParsePretty(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, "Package: foo\n", "parse", "--pretty", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "\n    \"package\": \"foo\"")
}

func TestParseKeepsMaintainerEmail(t *testing.T) {
	for _, args := range [][]string{{"parse", "-"}, {"parse", "--pretty", "-"}} {
		a, _ := observed()
		out, err := run(t, a, packages, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "<dotnetpackages@dotnetfoundation.org>", "args %v", args)
		assert.NotContains(t, out, `\u003c`, "args %v", args)
	}
}

func TestParseFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "Packages.gz")
	require.NoError(t, os.WriteFile(first, []byte("Package: b\n\nPackage: a\n"), 0644))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte("Package: c\n"))
	gw.Close()
	require.NoError(t, os.WriteFile(second, gz.Bytes(), 0644))

	a, _ := observed()
	out, err := run(t, a, "", "parse", first, second)
	require.NoError(t, err)
	assert.Equal(t, `[{"package":"b"},{"package":"a"},{"package":"c"}]`+"\n", out)
}

func TestParseWarnings(t *testing.T) {
	text := "Package: foo\nInstalled-Size: unknown\nnot a field\n"

	a, logs := observed()
	out, err := run(t, a, text, "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"installed_size":"unknown"`)

	warnings := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warnings, 2)
	fields := warnings[1].ContextMap()
	assert.Equal(t, "installed_size", fields["key"])
	assert.Equal(t, int64(2), fields["line"])
	assert.Equal(t, "integer-coercion", fields["kind"])
	assert.Equal(t, int64(0), fields["record"])

	a, logs = observed()
	quietOut, err := run(t, a, text, "parse", "-q", "-")
	require.NoError(t, err)
	assert.Equal(t, out, quietOut, "quiet must not change the output")
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestParseDebugLogsPackages(t *testing.T) {
	a, logs := observed()
	_, err := run(t, a, packages, "parse", "-v", "-")
	require.NoError(t, err)

	entries := logs.FilterMessage("parsed record").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "dotnet-host", entries[0].ContextMap()["package"])
	fields := entries[0].ContextMap()
	assert.Equal(t, "3.1.16-1", fields["version"])
	assert.Equal(t, int64(146), fields["installed_size"])
	assert.Equal(t, []any{"libgcc1", "libstdc++6"}, fields["depends"])
}

func TestParseStatusFormat(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, "Package: foo\nStatus: install ok installed\n", "parse", "--format", "dpkg_status", "-")
	require.NoError(t, err)
	assert.Equal(t, `[{"package":"foo","status":"install ok installed"}]`+"\n", out)
}

func TestParseUnknownFormat(t *testing.T) {
	a, _ := observed()
	_, err := run(t, a, packages, "parse", "--format", "rpm-qi", "-")
	assert.ErrorIs(t, err, deb.ErrUnknownFormat)
}

func TestParseMissingFile(t *testing.T) {
	a, _ := observed()
	_, err := run(t, a, "", "parse", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestParseRepo(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte(packages))
	gw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dists/stable/main/binary-amd64/Packages.gz" {
			http.NotFound(w, r)
			return
		}
		w.Write(gz.Bytes())
	}))
	defer srv.Close()

	a, _ := observed()
	out, err := run(t, a, "", "parse", "--repo", srv.URL, "--suite", "stable", "--arch", "amd64")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "dotnet-host", records[0]["package"])
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("raw: true\noutput: yaml\n"), 0644))

	a, _ := observed()
	out, err := run(t, a, packages, "parse", "--config", path, "-")
	require.NoError(t, err)
	assert.Contains(t, out, `installed_size: "146"`)

	// flags win over the file
	a, _ = observed()
	out, err = run(t, a, packages, "parse", "--config", path, "--raw=false", "--output", "json", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"installed_size":146`)
}

func TestFormats(t *testing.T) {
	a, _ := observed()
	out, err := run(t, a, "", "formats", "--pretty=false")
	require.NoError(t, err)

	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "pkg-index-deb", infos[0]["name"])
	assert.Equal(t, "Debian Package Index file parser", infos[0]["description"])
	assert.Equal(t, "dpkg-status", infos[1]["name"])
}
