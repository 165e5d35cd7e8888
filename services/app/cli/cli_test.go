package cli

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"taskboard/services/app/core"
	"taskboard/services/server/adapters/memory"
	serverrest "taskboard/services/server/adapters/rest"
	"taskboard/services/server/adapters/rest/handlers"
	servercore "taskboard/services/server/core"
)

// setupBackend starts the mock backend and points the CLI at it through the
// environment.
func setupBackend(t *testing.T) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := servercore.NewService(memory.New(log))
	mux := http.NewServeMux()
	handlers.Register(mux, log, handlers.Deps{Storage: svc, Users: svc, Tasks: svc}, time.Second)

	srv := httptest.NewServer(serverrest.Instrument(mux))
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "storage.json"))
	t.Setenv("LOG_LEVEL", "ERROR")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", ""}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("taskboard %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestCLI_SessionAndTasks(t *testing.T) {
	setupBackend(t)

	if _, err := runCLI(t, "whoami"); err != errNotLoggedIn {
		t.Fatalf("expected errNotLoggedIn, got %v", err)
	}

	out := mustRun(t, "register", "--name", "Ana", "--email", "ana@b.com", "--password", "secret", "--confirm-password", "secret")
	if !strings.Contains(out, "Olá, Ana (ana@b.com)") {
		t.Fatalf("unexpected register output: %q", out)
	}

	var me core.User
	if err := yaml.Unmarshal([]byte(mustRun(t, "whoami", "-o", "yaml")), &me); err != nil {
		t.Fatalf("decode whoami: %v", err)
	}
	if me.Email != "ana@b.com" || me.ID != "1" {
		t.Fatalf("unexpected user: %+v", me)
	}

	var created core.Task
	out = mustRun(t, "tasks", "create", "-o", "yaml", "--title", " Relatório ", "--description", "Q1", "--category", "Trabalho", "--priority", "alta")
	if err := yaml.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode created task: %v", err)
	}
	if created.ID == "" || created.Title != "Relatório" || created.Priority != core.PriorityHigh || created.Status != core.StatusPending {
		t.Fatalf("unexpected task: %+v", created)
	}
	mustRun(t, "tasks", "create", "--title", "Mercado", "--description", "pão", "--new-category", "Casa")

	out = mustRun(t, "tasks", "list", "--category", "Trabalho")
	if !strings.Contains(out, "Relatório") || strings.Contains(out, "Mercado") {
		t.Fatalf("unexpected filtered list:\n%s", out)
	}

	mustRun(t, "tasks", "update", created.ID.String(), "--status", "done")

	var stats core.TaskStats
	if err := yaml.Unmarshal([]byte(mustRun(t, "stats", "-o", "yaml")), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if out := mustRun(t, "categories"); out != "Casa\nTrabalho\n" {
		t.Fatalf("unexpected categories: %q", out)
	}

	mustRun(t, "tasks", "delete", created.ID.String())
	if out := mustRun(t, "tasks", "list"); strings.Contains(out, "Relatório") {
		t.Fatalf("deleted task still listed:\n%s", out)
	}

	mustRun(t, "logout")
	if _, err := runCLI(t, "tasks", "list"); err != errNotLoggedIn {
		t.Fatalf("expected errNotLoggedIn after logout, got %v", err)
	}
}

func TestCLI_LoginErrors(t *testing.T) {
	setupBackend(t)

	mustRun(t, "register", "--name", "Ana", "--email", "ana@b.com", "--password", "secret", "--confirm-password", "secret")
	mustRun(t, "logout")

	if _, err := runCLI(t, "login", "--email", "ana@b.com", "--password", "wrong12"); err == nil || err.Error() != "Senha incorreta" {
		t.Fatalf("expected Senha incorreta, got %v", err)
	}
	if _, err := runCLI(t, "login", "--email", "bia@b.com", "--password", "secret"); err == nil || err.Error() != "Email não encontrado" {
		t.Fatalf("expected Email não encontrado, got %v", err)
	}
	if _, err := runCLI(t, "login", "--email", "bad", "--password", "1"); err == nil || !strings.Contains(err.Error(), "Email inválido") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := runCLI(t, "register", "--name", "Ana", "--email", "ana@b.com", "--password", "secret", "--confirm-password", "secret"); err == nil || err.Error() != "Email já está em uso" {
		t.Fatalf("expected Email já está em uso, got %v", err)
	}

	out := mustRun(t, "login", "--email", "ana@b.com", "--password", "secret")
	if !strings.Contains(out, "Olá, Ana") {
		t.Fatalf("unexpected login output: %q", out)
	}
}

func TestCLI_StatusAndBackendDown(t *testing.T) {
	setupBackend(t)

	if out := mustRun(t, "status"); !strings.Contains(out, ": ok") {
		t.Fatalf("unexpected status output: %q", out)
	}

	t.Setenv("API_BASE_URL", "http://127.0.0.1:1")
	if _, err := runCLI(t, "status"); err == nil {
		t.Fatalf("expected status to fail")
	}
	if _, err := runCLI(t, "login", "--email", "ana@b.com", "--password", "secret"); err == nil || err.Error() != "Erro de conexão com o servidor" {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestCLI_ConfigShowMasksPassword(t *testing.T) {
	setupBackend(t)
	t.Setenv("REDIS_PASSWORD", "hunter2")

	out := mustRun(t, "config", "show")
	if strings.Contains(out, "hunter2") || !strings.Contains(out, "********") {
		t.Fatalf("password not masked:\n%s", out)
	}
}

func TestEnumFlagRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	var s core.TaskStatus
	v := newEnumValue(&s, core.Statuses, core.ParseTaskStatus)
	if err := v.Set("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if err := v.Set("em progresso"); err != nil || s != core.StatusInProgress {
		t.Fatalf("unexpected value %q err=%v", s, err)
	}
}
