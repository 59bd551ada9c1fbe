package updater

import "testing"

func TestIsBehind(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{"older patch", "5.0.0", "5.0.1", true, false},
		{"older major", "4.0.3", "5.0.1", true, false},
		{"equal", "5.0.1", "5.0.1", false, false},
		{"ahead", "5.1.0", "5.0.1", false, false},
		{"v prefix", "v5.0.0", "5.0.1", true, false},
		{"prerelease behind release", "5.0.1-next.0", "5.0.1", true, false},
		{"invalid current", "notaversion", "5.0.1", false, true},
		{"invalid latest", "5.0.1", "notaversion", false, true},
		{"dev build", "dev", "5.0.1", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsBehind(tt.current, tt.latest)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsBehind(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}
