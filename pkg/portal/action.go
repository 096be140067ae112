package portal

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/installment"
)

// SettleInstallment runs the locate-and-act flow: search for the
// client, scan the result elements in order for the one whose
// (sale id, due date) key equals the target exactly, and invoke its
// settle control. The first matching element wins; duplicate keys are
// not disambiguated further.
//
// Unlike the read flow, a search that produces no result elements is
// terminal here (ErrNoResultsForClient): the caller already knows which
// installment to target, so an empty listing means it cannot exist.
func (c *Client) SettleInstallment(s *browser.Session, name, venda, vencimento string) error {
	timedOut, err := c.search(s, name)
	if err != nil {
		return err
	}
	if timedOut {
		return ErrNoResultsForClient
	}

	items, err := s.Page.Locator(selectorResultItem).All()
	if err != nil {
		return &PhaseError{Phase: PhaseSearch, Err: fmt.Errorf("listing result items: %w", err)}
	}
	if len(items) == 0 {
		return ErrNoResultsForClient
	}

	for _, item := range items {
		text, err := item.InnerText()
		if err != nil {
			return &PhaseError{Phase: PhaseAction, Err: fmt.Errorf("reading result item: %w", err)}
		}

		itemVenda, itemVencimento := installment.KeyFromText(text)
		if itemVenda != venda || itemVencimento != vencimento {
			continue
		}

		c.log.Info("settle target located",
			zap.String("venda", venda), zap.String("vencimento", vencimento))
		return c.invokeSettleControl(item)
	}

	return ErrRecordNotFound
}

// invokeSettleControl finds a settle-capable control inside the matched
// result element and clicks it, then waits the settle interval for the
// portal's asynchronous UI update. It does not verify that the
// write-off took effect.
func (c *Client) invokeSettleControl(item playwright.Locator) error {
	for _, sel := range settleControlSelectors {
		control := item.Locator(sel)
		count, err := control.Count()
		if err != nil || count == 0 {
			continue
		}

		if err := control.First().Click(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvocationFailed, err)
		}
		time.Sleep(c.opts.SettleDelay)
		return nil
	}
	return ErrControlNotFound
}
