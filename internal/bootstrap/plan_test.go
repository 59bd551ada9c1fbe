package bootstrap

import (
	"testing"

	"github.com/cra-labs/create-react-app/internal/pkginfo"
	"github.com/stretchr/testify/assert"
)

func TestSupportsTemplates(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"5.0.1", true},
		{"3.3.0", true},
		{"3.3.0-next.62", true},
		{"3.2.0", false},
		{"1.1.5", false},
		{"0.9.x", false},
		{"4.0", true},
		{"v3.4.1", true},
		{"", true},
		{"latest", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportsTemplates(tt.version))
		})
	}
}

func TestNewInstallPlan(t *testing.T) {
	t.Run("template supported", func(t *testing.T) {
		plan := NewInstallPlan("react-scripts", "cra-template-typescript",
			pkginfo.Info{Name: "react-scripts"}, pkginfo.Info{Name: "cra-template-typescript"})
		assert.True(t, plan.TemplateSupported)
		assert.Equal(t, []string{"react", "react-dom", "react-scripts", "cra-template-typescript"}, plan.Dependencies)
		assert.Equal(t, "cra-template-typescript", plan.TemplateName())
	})

	t.Run("old scripts drop the template", func(t *testing.T) {
		plan := NewInstallPlan("react-scripts@3.2.0", "cra-template",
			pkginfo.Info{Name: "react-scripts", Version: "3.2.0"}, pkginfo.Info{Name: "cra-template"})
		assert.False(t, plan.TemplateSupported)
		assert.Equal(t, []string{"react", "react-dom", "react-scripts@3.2.0"}, plan.Dependencies)
		assert.Empty(t, plan.TemplateName())
	})
}

func TestWorkingContext(t *testing.T) {
	wc := NewWorkingContext("/work", "apps/my-app")
	assert.Equal(t, "/work", wc.OriginalDir)
	assert.Equal(t, "/work/apps/my-app", wc.RootDir)
	assert.Equal(t, "my-app", wc.AppName())
	assert.Equal(t, "/work/apps", wc.Parent())
	assert.Equal(t, "/work/apps/my-app/package.json", wc.Path("package.json"))

	abs := NewWorkingContext("/work", "/srv/site/")
	assert.Equal(t, "/srv/site", abs.RootDir)
	assert.Equal(t, "site", abs.AppName())
}

func TestParseAnswer(t *testing.T) {
	for _, yes := range []string{"y\n", "Y", "yes", " YES \r\n"} {
		assert.True(t, parseAnswer(yes), yes)
	}
	for _, no := range []string{"", "\n", "n", "no", "sure"} {
		assert.False(t, parseAnswer(no), no)
	}
}
