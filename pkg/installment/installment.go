// Package installment models the receivable records scraped from the
// SSOtica "Contas a Receber" listing and implements the selection policy
// applied to them: keep open/overdue records with a well-formed due date,
// then order them from nearest to furthest due date.
//
// Everything in this package is pure. Extraction never touches the
// browser (it parses raw item markup) and the policy functions never
// mutate their input.
package installment

import (
	"regexp"
	"time"
)

// dueDateLayout is the portal's display format for due dates.
const dueDateLayout = "02/01/2006"

// dueDatePattern is the syntactic shape a due date must have to be
// considered at all. Calendar validity is checked separately during
// ordering.
var dueDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Installment is one receivable record as displayed by the portal.
// Amounts are kept as display strings; nothing downstream does
// arithmetic on them.
type Installment struct {
	// Descricao is the free-text description, possibly empty.
	Descricao string `json:"descricao"`

	// Venda is the numeric sale identifier extracted from the item
	// text ("Venda nº 12345"), empty when absent.
	Venda string `json:"venda"`

	// Valor is the currency-formatted amount (e.g. "R$ 100,00").
	Valor string `json:"valor"`

	// Vencimento is the due date in DD/MM/YYYY form. It may arrive
	// malformed from the portal.
	Vencimento string `json:"vencimento"`

	// Status is the portal's status label (e.g. "EM ABERTO").
	Status string `json:"status"`
}

// HasValidDueDateFormat reports whether the due date has the exact
// two-digit/two-digit/four-digit shape.
func (p Installment) HasValidDueDateFormat() bool {
	return dueDatePattern.MatchString(p.Vencimento)
}

// parseDueDate parses a DD/MM/YYYY string into a calendar instant.
// It reports false for anything that does not denote a real date,
// including syntactically valid strings like "30/02/2024": the parsed
// value is formatted back and compared against the original so that no
// silent day/month rollover can slip through.
func parseDueDate(s string) (time.Time, bool) {
	if !dueDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(dueDateLayout) != s {
		return time.Time{}, false
	}
	return t, true
}
