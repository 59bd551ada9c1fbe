package manifest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrNoDependencies is returned when package.json has no dependencies block.
var ErrNoDependencies = errors.New("missing dependencies in package.json")

// CaretRange converts an exact version into a caret range, e.g. "17.0.2" to
// "^17.0.2". If the result would not be a valid range, version is returned
// unchanged with ok false.
func CaretRange(version string) (string, bool) {
	patched := "^" + version
	if _, err := semver.NewConstraint(patched); err != nil {
		return version, false
	}
	return patched, true
}

// Unpatched describes a dependency left pinned because its version cannot
// carry a caret.
type Unpatched struct {
	Name    string
	Version string
}

func (u Unpatched) String() string {
	return fmt.Sprintf("Unable to patch %s dependency version because version %s will become invalid ^%s", u.Name, u.Version, u.Version)
}

// SetCaretRanges rewrites dependencies[name] to a caret range for each of
// names, preserving the order of the dependencies block. Every name must be
// present.
func SetCaretRanges(doc *Document, names ...string) ([]Unpatched, error) {
	var rawDeps json.RawMessage
	ok, err := doc.Decode("dependencies", &rawDeps)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDependencies
	}
	deps, err := ParseDocument(rawDeps)
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}

	var unpatched []Unpatched
	for _, name := range names {
		var version string
		found, err := deps.Decode(name, &version)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("missing %s dependency in package.json", name)
		}
		patched, ok := CaretRange(version)
		if !ok {
			unpatched = append(unpatched, Unpatched{Name: name, Version: version})
		}
		if err := deps.Set(name, patched); err != nil {
			return nil, err
		}
	}

	if err := doc.Set("dependencies", deps); err != nil {
		return nil, err
	}
	return unpatched, nil
}
