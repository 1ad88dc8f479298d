package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and exercises it the way a user would.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName = "bigcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; the module root is
	// two levels up.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	build.Dir = "../.."
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to build bigcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Basic Expression",
			args:     []string{"2 + 3"},
			wantOut:  "= 5",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-quiet", "2**10"},
			wantOut:  "1024",
			wantCode: 0,
		},
		{
			name:     "Hex Output",
			args:     []string{"-quiet", "-hex", "255"},
			wantOut:  "FF",
			wantCode: 0,
		},
		{
			name:     "Batch",
			args:     []string{"-quiet", "1 + 1", "7 * 6"},
			wantOut:  "42",
			wantCode: 0,
		},
		{
			name:     "Underscore Separators",
			args:     []string{"-quiet", "1_000_000 + 1"},
			wantOut:  "1000001",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "bigcalc",
			wantCode: 0,
		},
		{
			name:     "Completion",
			args:     []string{"-completion", "bash"},
			wantOut:  "complete",
			wantCode: 0,
		},
		{
			name:     "Division By Zero",
			args:     []string{"-quiet", "1 / 0"},
			wantOut:  "division by zero",
			wantCode: 3,
		},
		{
			name:     "Syntax Error",
			args:     []string{"-quiet", "1 + * 2"},
			wantOut:  "",
			wantCode: 3,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--no-such-flag"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "No Expressions",
			args:     []string{"-quiet"},
			wantOut:  "no expressions",
			wantCode: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
