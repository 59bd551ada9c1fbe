// Package naming validates npm package names. A project name becomes the
// name field of its package.json, so it must satisfy the registry's rules
// for new packages.
package naming

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const maxLength = 214

var (
	scopedPackagePattern = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)
	specialCharacters    = regexp.MustCompile(`[~'!()*]`)
)

// blacklist names are rejected outright.
var blacklist = []string{"node_modules", "favicon.ico"}

// coreModules shadow Node.js built-ins and are only warned about, since old
// packages with these names exist.
var coreModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// Result holds the problems found with a name. Errors make a name invalid
// everywhere; warnings only forbid it for new packages.
type Result struct {
	Errors   []string
	Warnings []string
}

// ValidForNewPackages reports whether the name may be published today.
func (r Result) ValidForNewPackages() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// Problems returns errors followed by warnings.
func (r Result) Problems() []string {
	return append(append([]string(nil), r.Errors...), r.Warnings...)
}

// Validate checks name against the npm naming rules.
func Validate(name string) Result {
	var r Result

	if name == "" {
		r.Errors = append(r.Errors, "name length must be greater than zero")
		return r
	}
	if strings.HasPrefix(name, ".") {
		r.Errors = append(r.Errors, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		r.Errors = append(r.Errors, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		r.Errors = append(r.Errors, "name cannot contain leading or trailing spaces")
	}
	for _, b := range blacklist {
		if strings.ToLower(name) == b {
			r.Errors = append(r.Errors, fmt.Sprintf("%s is a blacklisted name", b))
		}
	}

	if coreModules[strings.ToLower(name)] {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxLength {
		r.Warnings = append(r.Warnings, fmt.Sprintf("name can no longer contain more than %d characters", maxLength))
	}
	if strings.ToLower(name) != name {
		r.Warnings = append(r.Warnings, "name can no longer contain capital letters")
	}
	segments := strings.Split(name, "/")
	if specialCharacters.MatchString(segments[len(segments)-1]) {
		r.Warnings = append(r.Warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !urlSafe(name) {
		m := scopedPackagePattern.FindStringSubmatch(name)
		if m == nil || !urlSafe(m[1]) || !urlSafe(m[2]) {
			r.Errors = append(r.Errors, "name can only contain URL-friendly characters")
		}
	}

	return r
}

// Reserved reports whether name collides with one of the dependencies the
// project will install, and returns the sorted list of such names.
func Reserved(name string, dependencies []string) (bool, []string) {
	sorted := append([]string(nil), dependencies...)
	sort.Strings(sorted)
	for _, dep := range sorted {
		if dep == name {
			return true, sorted
		}
	}
	return false, sorted
}

// urlSafe reports whether s survives URI component encoding unchanged.
func urlSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
