package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// EngineMismatch reports that the host runtime does not satisfy a
// package's declared engines.node range.
type EngineMismatch struct {
	Package  string
	Required string
	Actual   string
}

func (e *EngineMismatch) Error() string {
	return fmt.Sprintf("%s requires Node %s but Node %s is installed", e.Package, e.Required, e.Actual)
}

// CheckNodeEngine verifies nodeVersion against the engines.node range of the
// package whose manifest is at path. A package without the field, or with a
// range that cannot be parsed, is accepted.
func CheckNodeEngine(path, nodeVersion string) error {
	pkg, err := ReadPackage(path)
	if err != nil {
		return err
	}
	required := pkg.Engines["node"]
	if required == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return nil
	}
	actual, err := semver.NewVersion(nodeVersion)
	if err != nil {
		return fmt.Errorf("parsing node version %q: %w", nodeVersion, err)
	}
	if !constraint.Check(actual) {
		return &EngineMismatch{Package: pkg.Name, Required: required, Actual: nodeVersion}
	}
	return nil
}
