package issue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := New(KindPreflight, "directory %s has conflicts", "my-app")
	wrapped := fmt.Errorf("creating app: %w", base)

	assert.Equal(t, KindPreflight, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindPreflight))
	assert.False(t, Is(wrapped, KindInstall))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(KindInstall, cause, "npm install failed")

	assert.Equal(t, "npm install failed: exit status 1", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestActionableError_Format(t *testing.T) {
	err := NewActionable("create project", errors.New("outdated"),
		"npm uninstall -g create-react-app",
		"yarn global remove create-react-app")

	assert.Equal(t, "failed to create project: outdated", err.Error())
	assert.Equal(t,
		"failed to create project: outdated\n\n  • npm uninstall -g create-react-app\n  • yarn global remove create-react-app",
		err.Format())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"cancelled", fmt.Errorf("prompt: %w", ErrCancelled), 0},
		{"explicit code", Exit(3, errors.New("boom")), 3},
		{"wrapped exit", fmt.Errorf("outer: %w", Exit(1, nil)), 1},
		{"plain", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
