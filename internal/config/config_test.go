package config

import (
	"testing"
)

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/photos", "/media/photos"},
		{"single trailing slash", "/media/photos/", "/media/photos"},
		{"multiple trailing slashes", "/media/photos///", "/media/photos"},
		{"root path", "/", "/"},
		{"relative path", "photos", "photos"},
		{"relative with slash", "photos/", "photos"},
		{"remote path", "gdrive:Photos/2024/", "gdrive:Photos/2024"},
		{"bare remote root", "gdrive:", "gdrive:"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTarget(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeTarget(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip path requirement
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = false
	cfg.TargetPath = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when target is empty and CheckOnly is false")
	}

	cfg.TargetPath = "/media/photos"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_CheckOnlySkipsTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.TargetPath = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass with empty target when CheckOnly is true, got: %v", err)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Recursive {
		t.Error("default Recursive should be true")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
	if cfg.Verbose {
		t.Error("default Verbose should be false")
	}
}
