package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dawang/internal/config"
	"dawang/internal/stubserver"
)

// setupCLI points the globals at a fresh stub server and returns a command
// whose output is captured.
func setupCLI(t *testing.T) (*cobra.Command, *bytes.Buffer, *stubserver.Server) {
	t.Helper()
	logger = zap.NewNop()

	stub := stubserver.New(logger)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	cfg = config.DefaultConfig()
	cfg.Service.BaseURL = srv.URL
	t.Cleanup(func() { cfg = nil })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	return cmd, &out, stub
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"  "}, ""},
		{[]string{"졸업요건이", "어떻게", "되나요?"}, "졸업요건이 어떻게 되나요?"},
		{[]string{" 신청 자격 "}, "신청 자격"},
	}
	for _, tt := range tests {
		if got := joinArgs(tt.args); got != tt.want {
			t.Errorf("joinArgs(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestAskCmd(t *testing.T) {
	cmd, out, stub := setupCLI(t)
	askDepartment, askProgram, askType = "경영학부", "위기관리", "융합전공"
	defer func() { askDepartment, askProgram, askType = "", "", "" }()

	if err := runAsk(cmd, []string{"졸업요건이", "어떻게", "되나요?"}); err != nil {
		t.Fatalf("runAsk failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "[label: 융합전공_졸업요건]") {
		t.Errorf("output missing label: %q", got)
	}
	if !strings.Contains(got, "[mood: proud]") {
		t.Errorf("output missing mood: %q", got)
	}
	if stub.Asked() != 1 {
		t.Errorf("stub asked %d times, want 1", stub.Asked())
	}
}

func TestAskCmdServiceFailure(t *testing.T) {
	cmd, out, stub := setupCLI(t)
	stub.SetFailing(true)

	err := runAsk(cmd, []string{"신청 자격이 뭐예요?"})
	if err == nil {
		t.Fatal("expected an error when the service fails")
	}
	if !strings.Contains(out.String(), "[mood: embarrassed]") {
		t.Errorf("output missing embarrassed mood: %q", out.String())
	}
}

func TestProgramsCmd(t *testing.T) {
	cmd, out, _ := setupCLI(t)
	programsDepartment = "국제경영학과"
	defer func() { programsDepartment = "" }()

	if err := runPrograms(cmd, nil); err != nil {
		t.Fatalf("runPrograms failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d programs, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "벤처비즈니스") || !strings.HasPrefix(lines[1], "지식재산 스마트융합") {
		t.Errorf("unexpected programs:\n%s", out.String())
	}
}

func TestProgramsCmdAll(t *testing.T) {
	cmd, out, _ := setupCLI(t)
	programsAll = true
	defer func() { programsAll = false }()

	if err := runPrograms(cmd, nil); err != nil {
		t.Fatalf("runPrograms --all failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "== available ==") || !strings.Contains(got, "== catalog ==") {
		t.Errorf("missing listing headers:\n%s", got)
	}
}

func TestProgramsCmdFailure(t *testing.T) {
	cmd, _, stub := setupCLI(t)
	stub.SetFailing(true)

	if err := runPrograms(cmd, nil); err == nil {
		t.Error("expected an error when the catalog cannot be loaded")
	}
}

func TestRouteCmd(t *testing.T) {
	cmd, out, _ := setupCLI(t)

	if err := runRoute(cmd, []string{"오늘", "날씨", "어때?"}); err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
	if got := out.String(); got != "Unmatched (matched=false)\n" {
		t.Errorf("runRoute output = %q", got)
	}
}

func TestHealthCmd(t *testing.T) {
	cmd, out, _ := setupCLI(t)

	if err := runHealth(cmd, nil); err != nil {
		t.Fatalf("runHealth failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), ": ok\n") {
		t.Errorf("runHealth output = %q", out.String())
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	configPath = t.TempDir() + "/missing.yaml"
	apiURL = "http://advisor.test:9000"
	defer func() { configPath, apiURL = "", "" }()

	c, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.Service.BaseURL != apiURL {
		t.Errorf("BaseURL = %q, want %q", c.Service.BaseURL, apiURL)
	}
}

func TestLoadConfigRejectsBadURL(t *testing.T) {
	configPath = t.TempDir() + "/missing.yaml"
	apiURL = "not a url"
	defer func() { configPath, apiURL = "", "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected a validation error")
	}
}

func TestConfigInitCmd(t *testing.T) {
	t.Setenv("DAWANG_API_URL", "")
	cmd, out, _ := setupCLI(t)
	configPath = filepath.Join(t.TempDir(), "nested", "config.yaml")
	defer func() { configPath, configForce = "", false }()

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit failed: %v", err)
	}
	if !strings.Contains(out.String(), configPath) {
		t.Errorf("output should name the file: %q", out.String())
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Service.BaseURL != cfg.Service.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.Service.BaseURL, cfg.Service.BaseURL)
	}

	if err := runConfigInit(cmd, nil); err == nil {
		t.Error("expected refusal to overwrite without --force")
	}
	configForce = true
	if err := runConfigInit(cmd, nil); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("config file missing: %v", err)
	}
}
