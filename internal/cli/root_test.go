package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_MissingDirectory(t *testing.T) {
	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, issue.ExitCode(err))
	assert.Contains(t, stderr.String(), "Please specify the project directory:")
	assert.Contains(t, stderr.String(), "my-react-app")
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"one", "two"})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"verbose", "scripts-version", "template", "use-npm", "use-pnp"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"cancelled is silent", issue.ErrCancelled, ""},
		{"reported exit is silent", issue.Exit(1, errors.New("already shown")), ""},
		{
			"actionable shows suggestions",
			issue.NewActionable("run create-react-app", errors.New("outdated"), "npm uninstall -g create-react-app"),
			"npm uninstall -g create-react-app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handleError(&buf, fang.Styles{}, tt.err)
			if tt.wantText == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantText)
		})
	}
}

func TestVersionString(t *testing.T) {
	old := buildVersion
	t.Cleanup(func() { buildVersion = old })

	buildVersion = "dev"
	assert.Equal(t, "dev (built from source)", versionString())

	buildVersion, buildCommit, buildDate = "5.0.1", "abc123", "2024-01-01"
	assert.Equal(t, "5.0.1 (commit: abc123, built: 2024-01-01)", versionString())
}
