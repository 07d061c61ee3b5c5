package aptcache

import (
	"reflect"
	"testing"
)

func TestParseDepends(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "depends and predepends",
			out: "bash\n" +
				"  Depends: base-files\n" +
				"  PreDepends: libc6\n" +
				"  Suggests: bash-doc\n",
			want: []string{"base-files", "libc6"},
		},
		{
			name: "virtual package markers stripped",
			out: "postfix\n" +
				"  Depends: <mail-transport-agent>\n" +
				"    exim4\n",
			want: []string{"mail-transport-agent"},
		},
		{
			name: "version constraint after name ignored",
			out: "foo\n" +
				"  Depends: libbar2 (>= 1.2.3)\n",
			want: []string{"libbar2"},
		},
		{
			name: "duplicates preserved in provider order",
			out: "foo\n" +
				"  Depends: libc6\n" +
				"  Depends: zlib1g\n" +
				"  Depends: libc6\n",
			want: []string{"libc6", "zlib1g", "libc6"},
		},
		{
			name: "marker with no token skipped",
			out: "foo\n" +
				"  Depends:\n" +
				"  Depends: libc6\n",
			want: []string{"libc6"},
		},
		{
			name: "no dependencies",
			out:  "base-files\n",
			want: []string{},
		},
		{
			name: "empty output",
			out:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDepends([]byte(tt.out))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseDepends() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRDepends(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "preamble skipped and tree prefix filtered",
			out: "libc6\n" +
				"Reverse Depends:\n" +
				"  bash\n" +
				" |coreutils\n" +
				"  dash\n",
			want: []string{"bash", "dash"},
		},
		{
			name: "blank lines skipped",
			out: "libc6\n" +
				"Reverse Depends:\n" +
				"\n" +
				"  bash\n" +
				"\n",
			want: []string{"bash"},
		},
		{
			name: "duplicates preserved verbatim",
			out: "libssl3\n" +
				"Reverse Depends:\n" +
				"  curl\n" +
				"  curl\n",
			want: []string{"curl", "curl"},
		},
		{
			name: "only preamble",
			out:  "libfoo\nReverse Depends:\n",
			want: []string{},
		},
		{
			name: "empty output",
			out:  "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRDepends([]byte(tt.out))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRDepends() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimVirtual(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<virtual-pkg>", "virtual-pkg"},
		{"plain-pkg", "plain-pkg"},
		{"<>", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TrimVirtual(tt.in); got != tt.want {
			t.Errorf("TrimVirtual(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
