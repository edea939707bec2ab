package backend

import (
	"fmt"
	"strings"
)

// Placeholder styles of the two SQL dialects in use.
func Dollar(i int) string { return fmt.Sprintf("$%d", i) }

func Question(int) string { return "?" }

// WhereOrders renders p as a WHERE clause over the orders table,
// numbering placeholders from 1 via ph. Callers with earlier statement
// arguments (e.g. the SET list of an update) pass a shifted ph. An
// unconstrained predicate renders to the empty string.
func WhereOrders(p Predicate, ph func(int) string) (string, []any) {
	var conds []string
	var args []any

	if p.UserID != 0 {
		conds = append(conds, "user_id = "+ph(len(args)+1))
		args = append(args, p.UserID)
	}
	if p.MinAmount != 0 {
		conds = append(conds, "amount > "+ph(len(args)+1))
		args = append(args, p.MinAmount)
	}
	if p.Status != "" {
		conds = append(conds, "status = "+ph(len(args)+1))
		args = append(args, string(p.Status))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " where " + strings.Join(conds, " and "), args
}
