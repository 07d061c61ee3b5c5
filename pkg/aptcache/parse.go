package aptcache

import "strings"

// parseDepends extracts dependency names from `apt-cache depends` output.
//
// Only lines carrying a "Depends:" or "PreDepends:" marker contribute; the
// dependency name is the first whitespace-delimited token after the colon.
// Virtual-package markers (<name>) are stripped. Lines that match a marker
// but carry no token are skipped rather than aborting the parse.
//
// Sample input:
//
//	bash
//	  Depends: base-files
//	  PreDepends: libc6
//	  Depends: <awk>
//	    mawk
//	  Suggests: bash-doc
func parseDepends(out []byte) []string {
	deps := []string{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)

		var rest string
		switch {
		case strings.HasPrefix(line, "Depends:"):
			rest = line[len("Depends:"):]
		case strings.HasPrefix(line, "PreDepends:"):
			rest = line[len("PreDepends:"):]
		default:
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		deps = append(deps, TrimVirtual(fields[0]))
	}
	return deps
}

// parseRDepends extracts dependent names from `apt-cache rdepends` output.
//
// The first two lines are a fixed preamble (the package name and the
// "Reverse Depends:" header). Every remaining non-empty line that does not
// start with the tree-drawing "|" prefix is a dependent name, verbatim.
//
// Sample input:
//
//	libc6
//	Reverse Depends:
//	  bash
//	 |coreutils
//	  dash
func parseRDepends(out []byte) []string {
	rdeps := []string{}
	lines := strings.Split(string(out), "\n")
	if len(lines) <= 2 {
		return rdeps
	}
	for _, line := range lines[2:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "|") {
			continue
		}
		rdeps = append(rdeps, line)
	}
	return rdeps
}

// TrimVirtual strips the angle-bracket markers apt-cache uses for virtual
// packages: "<mail-transport-agent>" becomes "mail-transport-agent".
// Names without markers pass through unchanged.
func TrimVirtual(name string) string {
	return strings.Trim(name, "<>")
}
