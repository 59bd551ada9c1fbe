package resolve

import (
	"regexp"
	"strings"

	"github.com/cra-labs/create-react-app/internal/branding"
)

// Rule is one row of a resolver table.
type Rule struct {
	Name  string
	Match func(raw string) bool
	Apply func(raw, originalDir string) string
}

// Resolve runs raw through rules and returns the first match's result.
// raw is returned unchanged when nothing matches.
func Resolve(rules []Rule, raw, originalDir string) string {
	for _, r := range rules {
		if r.Match(raw) {
			return r.Apply(raw, originalDir)
		}
	}
	return raw
}

var templatePattern = regexp.MustCompile(`^(@[^/]+/)?([^@]+)?(@.+)?$`)

func isEmpty(raw string) bool { return raw == "" }
func always(string) bool      { return true }

func unchanged(raw, _ string) string { return raw }

// ScriptsRules resolves the --scripts-version option.
func ScriptsRules() []Rule {
	def := branding.DefaultPackage()
	return []Rule{
		{"default", isEmpty, func(string, string) string { return def }},
		{"local path", IsLocal, absoluteFileRef},
		{"url or archive", func(raw string) bool { return IsURL(raw) || IsArchive(raw) }, unchanged},
		{"dist tag", isDistTag, func(raw, _ string) string { return def + raw }},
		{"exact version", isExactSemver, func(raw, _ string) string { return def + "@" + canonicalVersion(raw) }},
		{"passthrough", always, unchanged},
	}
}

// TemplateRules resolves the --template option.
func TemplateRules() []Rule {
	def := branding.DefaultTemplate()
	return []Rule{
		{"default", isEmpty, func(string, string) string { return def }},
		{"local path", IsLocal, absoluteFileRef},
		{"url or archive", func(raw string) bool { return IsURL(raw) || IsArchive(raw) }, unchanged},
		{"template name", always, func(raw, _ string) string { return templateName(raw, def) }},
	}
}

// templateName expands a shorthand template name so it carries the
// "<def>-" prefix. Scope and @version suffix are kept verbatim. A bare
// "@tag" becomes "@tag/<def>".
func templateName(raw, def string) string {
	m := templatePattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	scope, name, suffix := m[1], m[2], m[3]

	switch {
	case name == def || strings.HasPrefix(name, def+"-"):
		return scope + name + suffix
	case scope == "" && name == "" && suffix != "":
		return suffix + "/" + def
	default:
		return scope + def + "-" + name + suffix
	}
}

// Scripts resolves the scripts package reference.
func Scripts(raw, originalDir string) string {
	return Resolve(ScriptsRules(), raw, originalDir)
}

// Template resolves the template package reference.
func Template(raw, originalDir string) string {
	return Resolve(TemplateRules(), raw, originalDir)
}
