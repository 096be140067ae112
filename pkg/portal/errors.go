package portal

import (
	"errors"
	"fmt"
)

// Phase identifies which step of the navigation protocol failed.
// Failures are classified at the phase boundary where they occur; the
// HTTP layer maps each phase to its fixed external message and never
// exposes the underlying error text.
type Phase string

const (
	// PhaseLogin covers everything from opening the portal root to the
	// post-submit navigation settling.
	PhaseLogin Phase = "login"

	// PhaseSearch covers navigating to the receivables listing,
	// issuing the search and reading the result elements.
	PhaseSearch Phase = "search"

	// PhaseAction covers scanning located results and invoking the
	// settle control.
	PhaseAction Phase = "action"
)

// PhaseError tags an automation failure with the phase it occurred in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// FailedPhase extracts the phase tag from an error chain.
func FailedPhase(err error) (Phase, bool) {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Phase, true
	}
	return "", false
}

// Business outcomes and write-off failures. These are not automation
// errors: they describe legitimate states of the portal data.
var (
	// ErrNoRecords: the search returned no installments at all.
	ErrNoRecords = errors.New("nenhuma parcela encontrada")

	// ErrNoEligibleRecords: installments exist but none is open or
	// overdue with a well-formed due date.
	ErrNoEligibleRecords = errors.New("nenhuma parcela elegível encontrada")

	// ErrNoResultsForClient: the write-off search produced no result
	// elements for the client, so the target cannot exist.
	ErrNoResultsForClient = errors.New("nenhum resultado para o cliente")

	// ErrRecordNotFound: results exist but none matches the requested
	// (sale id, due date) composite key.
	ErrRecordNotFound = errors.New("parcela não encontrada")

	// ErrControlNotFound: the matching result element has no
	// settle-capable control.
	ErrControlNotFound = errors.New("controle de baixa não encontrado")

	// ErrInvocationFailed: a settle control was found but clicking it
	// failed.
	ErrInvocationFailed = errors.New("falha ao acionar o controle de baixa")
)
