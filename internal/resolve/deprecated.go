package resolve

import "strings"

// Deprecation describes a scripts package that is no longer maintained.
type Deprecation struct {
	Prefix      string
	Replacement string
}

var deprecations = []Deprecation{
	{Prefix: "react-scripts-ts", Replacement: "--template typescript"},
}

// Deprecated returns the deprecation matching a resolved reference.
func Deprecated(ref string) (Deprecation, bool) {
	for _, d := range deprecations {
		if strings.HasPrefix(ref, d.Prefix) {
			return d, true
		}
	}
	return Deprecation{}, false
}

// Message is the confirmation question shown before continuing anyway.
func (d Deprecation) Message() string {
	return "The " + d.Prefix + " package is deprecated. You can use the " + d.Replacement +
		" option instead when generating your app. Would you like to continue using " + d.Prefix + "?"
}
