// Package browser owns the process-wide Playwright browser and hands
// out isolated per-request sessions.
//
// The browser process is launched once at service start and shared by
// every in-flight request as a context factory. Each request gets its
// own BrowserContext, so concurrent lookups never observe each other's
// cookies or navigation state. Sessions are closed unconditionally when
// the request finishes; only Shutdown closes the browser itself.
package browser

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ErrNotReady is returned by Acquire when the shared browser has not
// been initialized or has been shut down. Callers surface this as a
// distinct "try again later" condition, never as a navigation failure.
var ErrNotReady = errors.New("browser not ready")

// Manager owns the Playwright driver and the single shared browser
// process.
type Manager struct {
	mu      sync.RWMutex
	pw      *playwright.Playwright
	browser playwright.Browser
	ready   bool
	log     *zap.Logger
}

// NewManager creates a manager in the not-ready state. Start must be
// called before any session can be acquired.
func NewManager(log *zap.Logger) *Manager {
	return &Manager{log: log.Named("browser")}
}

// Start installs the Chromium driver if needed, starts Playwright and
// launches the shared headless browser. Calling Start on a ready
// manager is a no-op.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready {
		return nil
	}

	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	m.pw = pw
	m.browser = b
	m.ready = true
	m.log.Info("browser started")
	return nil
}

// Ready reports whether the shared browser is available for sessions.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Acquire creates a fresh isolated session from the shared browser.
// It fails with ErrNotReady when the browser is not initialized. The
// caller must Close the returned session on every exit path.
func (m *Manager) Acquire() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.ready {
		return nil, ErrNotReady
	}

	context, err := m.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	id := uuid.New().String()
	return &Session{
		ID:      id,
		Context: context,
		Page:    page,
		log:     m.log.With(zap.String("session", id)),
	}, nil
}

// Shutdown closes the shared browser and stops Playwright. The manager
// goes back to the not-ready state; subsequent Acquire calls fail with
// ErrNotReady.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return nil
	}
	m.ready = false

	var errs []error
	if err := m.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := m.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	m.browser = nil
	m.pw = nil

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	m.log.Info("browser stopped")
	return nil
}
