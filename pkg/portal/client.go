// Package portal drives the SSOtica web portal through a browser
// session: the login and search navigation phases, extraction of the
// receivables listing, and the settle ("baixa") action on a specific
// installment.
//
// Each navigation phase either completes or fails with a PhaseError
// tagging the phase; no phase is retried. The settle action is
// fire-and-forget: after clicking the control the client waits a fixed
// interval for the portal's own UI update and reports success without
// re-reading portal state. That unverified success is a known
// limitation inherited from the portal's behavior.
package portal

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/installment"
)

// DefaultSettleDelay is how long the client waits after clicking a
// settle control before reporting success.
const DefaultSettleDelay = 2 * time.Second

// Options configures a portal client.
type Options struct {
	// BaseURL is the portal root, which is also the login page.
	BaseURL string

	// ReceivablesPath is appended to BaseURL to reach the
	// "Contas a Receber" listing.
	ReceivablesPath string

	// SearchTypeValue is selected in the search-type dropdown before
	// searching (search by name/nickname).
	SearchTypeValue string

	// ResultsTimeout bounds the wait for result elements to appear
	// after a search is issued.
	ResultsTimeout time.Duration

	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration
}

// Client implements the navigation protocol against one portal
// deployment. It is stateless across requests; all per-request state
// lives in the browser session passed to each call.
type Client struct {
	opts Options
	log  *zap.Logger
}

// NewClient creates a portal client.
func NewClient(opts Options, log *zap.Logger) *Client {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	return &Client{opts: opts, log: log.Named("portal")}
}

// Login performs the login phase: open the portal root, fill the
// credential fields, submit, and wait for the post-login navigation to
// settle. Any failure is classified as a login-phase failure.
func (c *Client) Login(s *browser.Session, email, password string) error {
	if err := s.Navigate(c.opts.BaseURL); err != nil {
		return &PhaseError{Phase: PhaseLogin, Err: err}
	}
	if err := s.Fill(selectorLoginEmail, email); err != nil {
		return &PhaseError{Phase: PhaseLogin, Err: err}
	}
	if err := s.Fill(selectorLoginPassword, password); err != nil {
		return &PhaseError{Phase: PhaseLogin, Err: err}
	}
	if err := s.Click(selectorLoginSubmit); err != nil {
		return &PhaseError{Phase: PhaseLogin, Err: err}
	}
	if err := s.WaitForNavigation(); err != nil {
		return &PhaseError{Phase: PhaseLogin, Err: err}
	}
	return nil
}

// search navigates to the receivables listing and issues a search for
// the client name. It reports whether the bounded wait for result
// elements ran out, which the two flows interpret differently: the read
// flow treats it as "zero results" while the write-off flow treats it
// as terminal.
func (c *Client) search(s *browser.Session, name string) (timedOut bool, err error) {
	listURL := c.opts.BaseURL + c.opts.ReceivablesPath
	if err := s.Navigate(listURL); err != nil {
		return false, &PhaseError{Phase: PhaseSearch, Err: err}
	}
	if err := s.Fill(selectorSearchInput, name); err != nil {
		return false, &PhaseError{Phase: PhaseSearch, Err: err}
	}
	if err := s.SelectOption(selectorSearchType, c.opts.SearchTypeValue); err != nil {
		return false, &PhaseError{Phase: PhaseSearch, Err: err}
	}
	if err := s.Click(selectorSearchSubmit); err != nil {
		return false, &PhaseError{Phase: PhaseSearch, Err: err}
	}

	timeoutMillis := float64(c.opts.ResultsTimeout.Milliseconds())
	if err := s.WaitForSelector(selectorResultItem, timeoutMillis); err != nil {
		// Result items never appearing is a legitimate outcome for a
		// client with no installments, not a navigation failure.
		c.log.Debug("no result items before timeout",
			zap.String("client", name), zap.Error(err))
		return true, nil
	}
	return false, nil
}

// SearchInstallments runs the search phase and extracts one record per
// result element. A search that produces no result elements yields an
// empty slice, not an error.
func (c *Client) SearchInstallments(s *browser.Session, name string) ([]installment.Installment, error) {
	if _, err := c.search(s, name); err != nil {
		return nil, err
	}

	items, err := s.Page.Locator(selectorResultItem).All()
	if err != nil {
		return nil, &PhaseError{Phase: PhaseSearch, Err: fmt.Errorf("listing result items: %w", err)}
	}

	parcelas := make([]installment.Installment, 0, len(items))
	for _, item := range items {
		raw, err := item.InnerHTML()
		if err != nil {
			return nil, &PhaseError{Phase: PhaseSearch, Err: fmt.Errorf("reading result item: %w", err)}
		}
		parcelas = append(parcelas, installment.FromHTML(raw))
	}
	return parcelas, nil
}
