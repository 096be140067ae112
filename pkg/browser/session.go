package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Session is an isolated browser context owned by exactly one in-flight
// request. It is never shared and never reused; the request that
// acquired it must Close it before responding.
type Session struct {
	// ID identifies the session in logs.
	ID string

	// Context is the isolated browser context backing this session.
	Context playwright.BrowserContext

	// Page is the session's single page.
	Page playwright.Page

	log *zap.Logger
}

// Navigate loads the given URL and waits for the DOM to be ready.
func (s *Session) Navigate(url string) error {
	_, err := s.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Fill waits for the element matching the selector and fills it with
// the given value.
func (s *Session) Fill(selector, value string) error {
	if _, err := s.Page.WaitForSelector(selector); err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	if err := s.Page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %q failed: %w", selector, err)
	}
	return nil
}

// Click waits for the element matching the selector and clicks it.
func (s *Session) Click(selector string) error {
	if _, err := s.Page.WaitForSelector(selector); err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	if err := s.Page.Click(selector); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}
	return nil
}

// SelectOption selects the option with the given value in the select
// element matching the selector.
func (s *Session) SelectOption(selector, value string) error {
	_, err := s.Page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("select option %q on %q failed: %w", value, selector, err)
	}
	return nil
}

// WaitForSelector waits up to timeout milliseconds for an element
// matching the selector to appear.
func (s *Session) WaitForSelector(selector string, timeoutMillis float64) error {
	_, err := s.Page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(timeoutMillis),
	})
	if err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	return nil
}

// WaitForNavigation waits for the page to settle after an action that
// triggers a navigation, such as submitting the login form.
func (s *Session) WaitForNavigation() error {
	if err := s.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("wait for navigation failed: %w", err)
	}
	return nil
}

// Close releases the session's context. It never fails: close errors
// are logged and swallowed so that releasing a session on an error path
// cannot mask the original error.
func (s *Session) Close() {
	if err := s.Page.Close(); err != nil {
		s.log.Warn("page close failed", zap.Error(err))
	}
	if err := s.Context.Close(); err != nil {
		s.log.Warn("context close failed", zap.Error(err))
	}
}
