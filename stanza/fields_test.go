package stanza

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"Package":        "package",
		"Installed-Size": "installed_size",
		"Vcs-Git":        "vcs_git",
		"SHA256":         "sha256",
		"MD5sum":         "md5sum",
		"pre-depends":    "pre_depends",
	}
	for in, want := range tests {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{"installed_size", Integer},
		{"size", Integer},
		{"depends", List},
		{"conflicts", List},
		{"replaces", List},
		{"package", Scalar},
		{"description", Scalar},
		{"pre_depends", Scalar},
		{"Depends", Scalar}, // keys are canonical
	}
	for _, tt := range tests {
		if got := Classify(tt.key); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"libc6", []string{"libc6"}},
		{"libgcc1, libstdc++6,  libc6", []string{"libgcc1", "libstdc++6", "libc6"}},
		{" a , , b ,", []string{"a", "b"}},
		{"libc6 (>= 2.14), dotnet-runtime-2.1 (>= 2.1.22)", []string{"libc6 (>= 2.14)", "dotnet-runtime-2.1 (>= 2.1.22)"}},
		{"a | b, c", []string{"a | b", "c"}},
	}

	for _, tt := range tests {
		got := SplitList(tt.input)
		if got == nil {
			t.Errorf("SplitList(%q) returned nil", tt.input)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"146", 146, true},
		{" 32594 ", 32594, true},
		{"0", 0, true},
		{"unknown", 0, false},
		{"12kB", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInt(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseInt(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if Scalar.String() != "scalar" || List.String() != "list" || Integer.String() != "integer" {
		t.Errorf("unexpected names: %s %s %s", Scalar, List, Integer)
	}
	if got := Kind(7).String(); got != "Kind(7)" {
		t.Errorf("unexpected name for unknown kind: %s", got)
	}
}
