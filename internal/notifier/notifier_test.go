package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/mooded/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func setupTrayMocks(t *testing.T, executable string) (string, func()) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	oldFindProcessFunc := findProcessFunc
	userConfigDirFunc = func() (string, error) { return tempDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}

	return tempDir, func() {
		userConfigDirFunc = oldUserConfigDirFunc
		findProcessFunc = oldFindProcessFunc
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir, cleanup := setupTrayMocks(t, "")
	defer cleanup()

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/tray/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	tests := []struct {
		name       string
		lockfile   string
		executable string
		wantErr    string
	}{
		{name: "missing lockfile", executable: "mooded-tray", wantErr: "not running"},
		{name: "two part lockfile", lockfile: "8080|12345", executable: "mooded-tray", wantErr: "malformed"},
		{name: "garbage", lockfile: "invalid", executable: "mooded-tray", wantErr: "malformed"},
		{name: "empty secret", lockfile: "8080|12345|", executable: "mooded-tray", wantErr: "secret"},
		{name: "empty port", lockfile: "|12345|s3cret", executable: "mooded-tray", wantErr: "port"},
		{name: "port out of range", lockfile: "99999|12345|s3cret", executable: "mooded-tray", wantErr: "range"},
		{name: "bad pid", lockfile: "8080|abc|s3cret", executable: "mooded-tray", wantErr: "process ID"},
		{name: "process gone", lockfile: "8080|12345|s3cret", executable: "", wantErr: "not running"},
		{name: "wrong executable", lockfile: "8080|12345|s3cret", executable: "other-app", wantErr: "is not"},
		{name: "valid", lockfile: "8080|12345|s3cret", executable: "mooded-tray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTrayMocks(t, tt.executable)
			defer cleanup()

			lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
			if tt.lockfile != "" {
				if err := os.WriteFile(lockfilePath, []byte(tt.lockfile), 0644); err != nil {
					t.Fatal(err)
				}
			}

			port, secret, err := findAndValidateTrayProcess(lockfilePath)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if port != "8080" || secret != "s3cret" {
				t.Errorf("got port %s secret %s", port, secret)
			}
		})
	}
}

func newTrayServer(t *testing.T, received *[]string) (*httptest.Server, string) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Mooded-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}

		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if received != nil {
			*received = append(*received, payload.Text)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	return server, parts[len(parts)-1]
}

func TestSend(t *testing.T) {
	_, port := newTrayServer(t, nil)
	n := New()
	ctx := context.Background()

	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := n.send(ctx, port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}
	if err := n.send(ctx, port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestNotify(t *testing.T) {
	var received []string
	_, port := newTrayServer(t, &received)

	tempDir, cleanup := setupTrayMocks(t, "mooded-tray")
	defer cleanup()

	trayDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lockfile := fmt.Sprintf("%s|4242|test-secret", port)
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lockfile), 0644); err != nil {
		t.Fatal(err)
	}

	n := New()
	if !n.RequestAuthorization() {
		t.Error("RequestAuthorization should succeed when the tray app is running")
	}
	if err := n.Notify(context.Background(), constants.MoodReminderTitle, constants.MoodReminderBody); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	want := "Mood Check: How are you feeling right now?"
	if len(received) != 1 || received[0] != want {
		t.Errorf("received %v, want [%q]", received, want)
	}
}

func TestNotifyWithoutTray(t *testing.T) {
	_, cleanup := setupTrayMocks(t, "mooded-tray")
	defer cleanup()

	n := New()
	if n.RequestAuthorization() {
		t.Error("RequestAuthorization should report false without a lockfile")
	}
	if err := n.Notify(context.Background(), "t", "b"); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("expected ErrTrayNotRunning, got %v", err)
	}
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		title, body, want string
	}{
		{"Habit Reminder", "Walk", "Habit Reminder: Walk"},
		{"", "Walk", "Walk"},
		{"Mood Check", "", "Mood Check"},
	}
	for _, tt := range tests {
		if got := formatText(tt.title, tt.body); got != tt.want {
			t.Errorf("formatText(%q, %q) = %q, want %q", tt.title, tt.body, got, tt.want)
		}
	}
}
