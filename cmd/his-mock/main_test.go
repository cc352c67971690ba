package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/his-mockup-api/internal/config"
	"github.com/tbourn/his-mockup-api/internal/repo"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	t.Setenv("DB_PATH", fmt.Sprintf("file:his_main_%s?mode=memory&cache=shared", uuid.NewString()))
	t.Setenv("LOG_LEVEL", "error")
}

func TestFixturesCommand_PrintsSeededTables(t *testing.T) {
	setTestEnv(t)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fixtures"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fixtures: %v", err)
	}

	var snap repo.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatalf("json: %v\n%s", err, out.String())
	}
	if len(snap.Patients) != 4 || len(snap.Locations) != 3 || len(snap.Doctors) == 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Patients[2].HN != "00-00-00003" || snap.Patients[2].HasAppointment {
		t.Fatalf("third patient should start without appointment: %+v", snap.Patients[2])
	}
}

func TestFixturesCommand_BadConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	cmd := rootCmd()
	cmd.SetArgs([]string{"fixtures"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestRootCommand_ReportsErrorsOnStderr(t *testing.T) {
	setTestEnv(t)
	t.Setenv("READ_TIMEOUT", "-1s")

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"fixtures"})

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		t.Fatalf("expected config error")
	}
	if !strings.Contains(stderr.String(), "Error: load config: timeouts must be positive durations") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("usage printed on runtime error: %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestOpenFixtures_IdempotentSeed(t *testing.T) {
	setTestEnv(t)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	// keep one connection open so the shared in-memory db survives
	first, closeFirst, err := openFixtures(ctx, cfg)
	if err != nil {
		t.Fatalf("open #1: %v", err)
	}
	defer closeFirst()

	second, closeSecond, err := openFixtures(ctx, cfg)
	if err != nil {
		t.Fatalf("open #2: %v", err)
	}
	defer closeSecond()

	if len(first.Patients()) != len(second.Patients()) {
		t.Fatalf("seed ran twice: %d vs %d patients", len(first.Patients()), len(second.Patients()))
	}
}

func TestNewServer_WiresConfigAndRoutes(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.GinMode = "test"
	cfg.Port = "9099"
	cfg.ReadTimeout = 3 * time.Second

	srv := newServer(cfg, repo.DefaultFixtureStore())
	if srv.Addr != ":9099" || srv.ReadTimeout != 3*time.Second || srv.MaxHeaderBytes != cfg.MaxHeaderBytes {
		t.Fatalf("server not configured from cfg: %+v", srv)
	}

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/getPatient?id=00-00-00004", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/getPatient = %d %s", w.Code, w.Body.String())
	}
}
