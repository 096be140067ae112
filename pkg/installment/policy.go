package installment

import (
	"sort"
	"strings"
)

// Eligible reports whether an installment should be considered by the
// selection policy: its status must contain the open or overdue keyword
// (case-insensitively) and its due date must have the DD/MM/YYYY shape.
// Only status and due date participate; amount and description are
// never inspected.
func Eligible(p Installment, openKeyword, overdueKeyword string) bool {
	status := strings.ToLower(p.Status)
	if !strings.Contains(status, openKeyword) && !strings.Contains(status, overdueKeyword) {
		return false
	}
	return p.HasValidDueDateFormat()
}

// Filter returns the eligible installments in their original order.
// A nil input yields an empty slice. Records with a missing status or
// due date are simply ineligible; nothing here ever fails.
func Filter(parcelas []Installment, openKeyword, overdueKeyword string) []Installment {
	out := make([]Installment, 0, len(parcelas))
	for _, p := range parcelas {
		if Eligible(p, openKeyword, overdueKeyword) {
			out = append(out, p)
		}
	}
	return out
}

// OrderByUrgency returns the installments sorted by due date, nearest
// first. Records whose due date does not denote a real calendar date
// (including pattern-valid impossibilities like 30/02) are placed after
// all valid ones. The sort is stable: ties and equally-invalid records
// keep their original relative order. The input slice is not mutated.
func OrderByUrgency(parcelas []Installment) []Installment {
	type entry struct {
		p     Installment
		when  int64
		valid bool
	}
	entries := make([]entry, len(parcelas))
	for i, p := range parcelas {
		entries[i] = entry{p: p}
		if t, ok := parseDueDate(p.Vencimento); ok {
			entries[i].when = t.Unix()
			entries[i].valid = true
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.valid && b.valid:
			return a.when < b.when
		case a.valid:
			return true
		default:
			return false
		}
	})

	out := make([]Installment, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}
