package main

import (
	"bytes"
	"os"
	"testing"
)

func TestLoadConfigWithOverrides(t *testing.T) {
	tests := []struct {
		name      string
		failOn    string
		expectErr bool
	}{
		{name: "empty uses config default", failOn: ""},
		{name: "error", failOn: "error"},
		{name: "warning", failOn: "warning"},
		{name: "never", failOn: "never"},
		{name: "invalid value", failOn: "sometimes", expectErr: true},
		{name: "case sensitive", failOn: "Error", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfigWithOverrides(tt.failOn)
			if tt.expectErr {
				if err == nil {
					t.Errorf("loadConfigWithOverrides(%q) expected error", tt.failOn)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfigWithOverrides(%q) unexpected error: %v", tt.failOn, err)
			}
			if tt.failOn != "" && cfg.FailOn != tt.failOn {
				t.Errorf("FailOn = %q, want %q", cfg.FailOn, tt.failOn)
			}
		})
	}
}

func TestCommandStructure(t *testing.T) {
	if rootCmd.Use == "" || rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("root command metadata should be populated")
	}

	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range []string{"check", "version"} {
		if !cmdMap[expected] {
			t.Errorf("missing expected command %q", expected)
		}
	}

	flag := rootCmd.PersistentFlags().Lookup("verbose")
	if flag == nil {
		t.Fatal("verbose flag should be configured")
	}
	if flag.DefValue != "false" {
		t.Error("verbose flag should default to false")
	}
}

func TestCheckCommandFlags(t *testing.T) {
	if checkCmd.Flags().Lookup("watch") == nil {
		t.Error("check command should have a --watch flag")
	}
	if checkCmd.Flags().Lookup("fail-on") == nil {
		t.Error("check command should have a --fail-on flag")
	}
}

func TestRootCommandHelp(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	rootCmd.SetArgs([]string{"--help"})
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	if err != nil {
		t.Errorf("root command help failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("root command help should produce output")
	}

	rootCmd.SetArgs([]string{})
}
