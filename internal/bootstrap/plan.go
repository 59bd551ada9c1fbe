package bootstrap

import (
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/pkginfo"
)

// templatesMinimum is the first scripts release that understands templates.
var templatesMinimum = semver.MustParse("3.3.0")

// InstallPlan is the negotiated set of packages to install.
type InstallPlan struct {
	// Dependencies are install references: runtime dependencies, the
	// scripts package, then the template when supported.
	Dependencies []string
	// Package is the identity of the scripts package.
	Package pkginfo.Info
	// Template is the identity of the template package.
	Template pkginfo.Info
	// TemplateSupported is false when the scripts package predates
	// templates; the template is then left out of Dependencies.
	TemplateSupported bool
}

// TemplateName is what the init script receives, empty when the scripts
// package cannot take a template.
func (p InstallPlan) TemplateName() string {
	if !p.TemplateSupported {
		return ""
	}
	return p.Template.Name
}

// NewInstallPlan negotiates template support from the scripts package's
// version and assembles the dependency list.
func NewInstallPlan(scriptsRef, templateRef string, pkg, template pkginfo.Info) InstallPlan {
	plan := InstallPlan{
		Dependencies:      append(branding.RuntimeDependencies(), scriptsRef),
		Package:           pkg,
		Template:          template,
		TemplateSupported: SupportsTemplates(pkg.Version),
	}
	if plan.TemplateSupported {
		plan.Dependencies = append(plan.Dependencies, templateRef)
	}
	return plan
}

// SupportsTemplates reports whether a scripts package at version accepts a
// template. The version is coerced first, so "4.0", "v3.3.0-beta" and
// "0.9.x" are all read. A missing or unreadable version is assumed recent
// enough.
func SupportsTemplates(version string) bool {
	v, ok := coerce(version)
	if !ok {
		return true
	}
	return !v.LessThan(templatesMinimum)
}

var coercePattern = regexp.MustCompile(`(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// coerce reads the first major[.minor[.patch]] run in s, dropping any
// prerelease or build suffix.
func coerce(s string) (*semver.Version, bool) {
	m := coercePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	parts := [3]uint64{}
	for i, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.ParseUint(g, 10, 64)
		if err != nil {
			return nil, false
		}
		parts[i] = n
	}
	return semver.New(parts[0], parts[1], parts[2], "", ""), true
}
