package version

import (
	"testing"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name     string
		version  Version
		expected string
	}{
		{
			name:     "basic version",
			version:  Version{Major: 1, Minor: 2, Patch: 3},
			expected: "1.2.3",
		},
		{
			name:     "with revision",
			version:  Version{Major: 1, Minor: 0, Patch: 0, Revision: 7},
			expected: "1.0.0.7",
		},
		{
			name:     "zero version",
			version:  Version{},
			expected: "0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.expected {
				t.Errorf("Version.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    Version
		wantErr bool
	}{
		{
			name: "valid tag with v prefix",
			tag:  "v1.2.3",
			want: Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name: "valid tag without v prefix",
			tag:  "1.2.3",
			want: Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name: "two parts",
			tag:  "v2.1",
			want: Version{Major: 2, Minor: 1},
		},
		{
			name: "four parts",
			tag:  "v1.2.3.4",
			want: Version{Major: 1, Minor: 2, Patch: 3, Revision: 4},
		},
		{
			name: "large numbers",
			tag:  "v10.20.30",
			want: Version{Major: 10, Minor: 20, Patch: 30},
		},
		{
			name:    "single part",
			tag:     "v1",
			wantErr: true,
		},
		{
			name:    "too many parts",
			tag:     "v1.2.3.4.5",
			wantErr: true,
		},
		{
			name:    "non-numeric minor",
			tag:     "v1.Y.3",
			wantErr: true,
		},
		{
			name:    "negative part",
			tag:     "v1.-2.3",
			wantErr: true,
		},
		{
			name:    "empty string",
			tag:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() should panic on a malformed version")
		}
	}()
	MustParse("nope")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		parts int
		want  int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", parts: 3, want: 0},
		{name: "older major", a: "1.9.9", b: "2.0.0", parts: 3, want: -1},
		{name: "newer minor", a: "1.3.0", b: "1.2.9", parts: 3, want: 1},
		{name: "older patch", a: "1.2.3", b: "1.2.4", parts: 3, want: -1},
		{name: "revision ignored at three parts", a: "1.2.3.9", b: "1.2.3", parts: 3, want: 0},
		{name: "revision counted at four parts", a: "1.2.3.9", b: "1.2.3", parts: 4, want: 1},
		{name: "missing patch equals zero", a: "1.2", b: "1.2.0", parts: 3, want: 0},
		{name: "patch ignored at two parts", a: "1.2.0", b: "1.2.5", parts: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.a).Compare(MustParse(tt.b), tt.parts)
			if got != tt.want {
				t.Errorf("%s.Compare(%s, %d) = %d, want %d", tt.a, tt.b, tt.parts, got, tt.want)
			}
		})
	}
}
