package portal

import (
	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/config"
	"github.com/owornex/ssotica-api/pkg/installment"
)

// Service ties the pieces together for one request: acquire an isolated
// session, run the navigation protocol, apply the selection policy or
// execute the settle action, and release the session on every exit
// path.
type Service struct {
	browsers *browser.Manager
	client   *Client
	cfg      config.Config
	log      *zap.Logger
}

// NewService creates the request orchestrator.
func NewService(browsers *browser.Manager, client *Client, cfg config.Config, log *zap.Logger) *Service {
	return &Service{
		browsers: browsers,
		client:   client,
		cfg:      cfg,
		log:      log.Named("service"),
	}
}

// Ready reports whether the shared browser can serve requests.
func (s *Service) Ready() bool {
	return s.browsers.Ready()
}

// CurrentInstallment returns the client's nearest-due eligible
// installment. It fails with browser.ErrNotReady before any navigation
// when the browser is unavailable, with ErrNoRecords when the search
// finds nothing, and with ErrNoEligibleRecords when nothing open or
// overdue remains after filtering.
func (s *Service) CurrentInstallment(name string) (installment.Installment, error) {
	sess, err := s.browsers.Acquire()
	if err != nil {
		return installment.Installment{}, err
	}
	defer sess.Close()

	if err := s.client.Login(sess, s.cfg.Email, s.cfg.Password); err != nil {
		return installment.Installment{}, err
	}

	parcelas, err := s.client.SearchInstallments(sess, name)
	if err != nil {
		return installment.Installment{}, err
	}
	if len(parcelas) == 0 {
		return installment.Installment{}, ErrNoRecords
	}

	eligiveis := installment.Filter(parcelas, s.cfg.StatusAberto, s.cfg.StatusAtraso)
	if len(eligiveis) == 0 {
		return installment.Installment{}, ErrNoEligibleRecords
	}

	return installment.OrderByUrgency(eligiveis)[0], nil
}

// Settle triggers the write-off action on the installment identified by
// the (sale id, due date) composite key.
func (s *Service) Settle(name, venda, vencimento string) error {
	sess, err := s.browsers.Acquire()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := s.client.Login(sess, s.cfg.Email, s.cfg.Password); err != nil {
		return err
	}

	return s.client.SettleInstallment(sess, name, venda, vencimento)
}
