package updater

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/httputil"
	"github.com/cra-labs/create-react-app/internal/issue"
)

type distTags struct {
	Latest string `json:"latest"`
}

// Latest returns the version published under the "latest" dist-tag. If the
// registry cannot be reached, npm is asked instead. When both fail the error
// is of kind issue.KindNetwork.
func (u *Updater) Latest(ctx context.Context) (string, error) {
	latest, err := u.fetchDistTag(ctx)
	if err == nil {
		return latest, nil
	}
	u.logger.Debug("dist-tags lookup failed", "err", err)

	if u.runner == nil {
		return "", issue.Wrap(issue.KindNetwork, err, "looking up the latest release")
	}
	out, npmErr := u.runner.Output(ctx, "", "npm", "view", branding.CLIName(), "version")
	if npmErr != nil || out == "" {
		if npmErr == nil {
			npmErr = errors.New("npm printed no version")
		}
		return "", issue.Wrap(issue.KindNetwork, errors.Join(err, npmErr), "looking up the latest release")
	}
	return out, nil
}

func (u *Updater) fetchDistTag(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/-/package/%s/dist-tags", u.registry, branding.CLIName())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching dist-tags: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return "", err
	}

	var tags distTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return "", fmt.Errorf("parsing dist-tags: %w", err)
	}
	if tags.Latest == "" {
		return "", errors.New("dist-tags has no latest entry")
	}
	return tags.Latest, nil
}
