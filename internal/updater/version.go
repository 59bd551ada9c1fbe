package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version string of a binary built without ldflags.
const DevVersion = "dev"

// IsBehind reports whether current is older than latest. A leading "v" is
// tolerated on either side.
func IsBehind(current, latest string) (bool, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.LessThan(lv), nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
