package editioningredient

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-editions/internal/db"
)

// Strategy decides what happens when an ingredient is already on an edition's ledger.
type Strategy int

const (
	// StrategySum adds the new quantity and subtotal to the existing entry.
	StrategySum Strategy = iota + 1
	// StrategyReplace overwrites the existing entry.
	StrategyReplace
	// StrategyReject keeps the existing entry and reports a conflict.
	StrategyReject
)

func (s Strategy) String() string {
	switch s {
	case StrategySum:
		return "sum"
	case StrategyReplace:
		return "replace"
	case StrategyReject:
		return "reject"
	}
	return "unknown"
}

// ParseStrategy accepts sum, replace and reject. "nothing" is kept as an alias of reject.
func ParseStrategy(raw string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sum":
		return StrategySum, true
	case "replace":
		return StrategyReplace, true
	case "reject", "nothing":
		return StrategyReject, true
	}
	return 0, false
}

// Mode names how a reconciliation relates to the caller's transaction.
type Mode string

const (
	ModeIndependent Mode = "independent"
	ModeJoined      Mode = "joined"
)

// ParseMode accepts independent and joined.
func ParseMode(raw string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeIndependent, ModeJoined:
		return m, true
	}
	return "", false
}

// TxScope tells the reconciler where to open its transaction.
type TxScope struct {
	outer db.Beginner
}

// Independent runs the reconciliation in its own transaction on the reconciler's pool.
func Independent() TxScope {
	return TxScope{}
}

// Joined runs the reconciliation on the caller's handle. A pgx.Tx yields a savepoint and the
// caller keeps ownership of the outer commit; a pooled connection yields a fresh transaction.
func Joined(b db.Beginner) TxScope {
	return TxScope{outer: b}
}

// IsJoined reports whether the scope reuses a caller handle.
func (s TxScope) IsJoined() bool {
	return s.outer != nil
}

var errNoBeginner = errors.New("reconciler has no transaction source")

func (s TxScope) begin(ctx context.Context, pool db.Beginner) (pgx.Tx, error) {
	b := pool
	if s.outer != nil {
		b = s.outer
	}
	if b == nil {
		return nil, errNoBeginner
	}
	return b.Begin(ctx)
}
