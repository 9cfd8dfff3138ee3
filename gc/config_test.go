package gc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		wantOK bool
	}{
		{"defaults", *DefaultConfig(), true},
		{"zero min delay", Config{MinSweepDelay: 0, MaxSweepDelay: 4, StatementInterval: 1}, false},
		{"max below min", Config{MinSweepDelay: 4, MaxSweepDelay: 1.5, StatementInterval: 1}, false},
		{"zero interval", Config{MinSweepDelay: 1.5, MaxSweepDelay: 4, StatementInterval: 0}, false},
		{"equal min max", Config{MinSweepDelay: 2, MaxSweepDelay: 2, StatementInterval: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "javamem.yaml")
	data := "min_sweep_delay: 0.5\nmax_sweep_delay: 1.0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if config.MinSweepDelay != 0.5 || config.MaxSweepDelay != 1.0 {
		t.Errorf("unexpected delays: %+v", config)
	}
	// Unset fields keep their defaults.
	if config.StatementInterval != 1.0 {
		t.Errorf("StatementInterval = %v, want default 1.0", config.StatementInterval)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "javamem.json")
	data := `{"min_sweep_delay": 2.0, "max_sweep_delay": 3.0}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if config.MinSweepDelay != 2.0 || config.MaxSweepDelay != 3.0 {
		t.Errorf("unexpected delays: %+v", config)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "javamem.yaml")
	if err := os.WriteFile(path, []byte("min_sweep_delay: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() = nil error, want validation error")
	}
}

func TestClone(t *testing.T) {
	orig := DefaultConfig()
	clone := orig.Clone()
	clone.MinSweepDelay = 9

	if orig.MinSweepDelay == 9 {
		t.Error("Clone() shares state with the original")
	}
}
