// Package notifier delivers desktop notifications through the tray
// companion app. The tray app writes "port|pid|secret" to a lockfile and
// listens on a local webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
)

// ErrTrayNotRunning is returned when no live tray app owns the lockfile.
var ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// SecretHeader authenticates webhook requests.
const SecretHeader = "X-Streakly-Secret"

type WebhookPayload struct {
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
	Sound      bool   `json:"sound"`
}

// endpoint is a validated tray webhook
type endpoint struct {
	port   int
	secret string
}

type Notifier struct {
	client  *http.Client
	retries int
	delay   time.Duration
}

func New() *Notifier {
	return &Notifier{
		client:  &http.Client{Timeout: 5 * time.Second},
		retries: constants.NotifyMaxRetries,
		delay:   constants.NotifyRetryDelay,
	}
}

// Notify locates the tray app and posts payload to it. A missing tray app is
// reported as ErrTrayNotRunning and is not retried.
func (n *Notifier) Notify(ctx context.Context, payload WebhookPayload) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	ep, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	if payload.DurationMs == 0 {
		payload.DurationMs = constants.NotificationDurationMs
	}
	return n.send(ctx, ep, payload)
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray app may move it through "lockfile_dir" in its settings.json.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if d := store.Settings.LockfileDir; d != nil && *d != "" {
		return *d, nil
	}
	return trayConfigDir, nil
}

func parseLockfile(content string) (endpoint, int, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return endpoint{}, 0, errors.New("lockfile is malformed")
	}
	if strings.TrimSpace(parts[0]) == "" {
		return endpoint{}, 0, errors.New("port in lockfile is empty")
	}
	port, err := strconv.Atoi(parts[0])
	if err != nil {
		return endpoint{}, 0, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return endpoint{}, 0, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return endpoint{}, 0, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, 0, errors.New("secret in lockfile is empty")
	}
	return endpoint{port: port, secret: secret}, pid, nil
}

func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}
	ep, pid, err := parseLockfile(string(content))
	if err != nil {
		return endpoint{}, err
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return endpoint{}, fmt.Errorf("%w: no process %d", ErrTrayNotRunning, pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppExecutable, process.Executable())
	}
	return ep, nil
}

// send posts payload, retrying transport failures and 5xx answers.
func (n *Notifier) send(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= n.retries; attempt++ {
		retry, err := n.post(ctx, ep, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt == n.retries {
			break
		}
		logger.Debug("Notification attempt failed", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.delay):
		}
	}
	return lastErr
}

func (n *Notifier) post(ctx context.Context, ep endpoint, body []byte) (bool, error) {
	url := fmt.Sprintf("http://127.0.0.1:%d", ep.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return false, nil
	}
	msg, _ := io.ReadAll(res.Body)
	return res.StatusCode >= 500, fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}
