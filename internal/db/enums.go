package db

import (
	"strings"

	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
)

// ParsePaymentStatus accepts a payment status in any letter case.
func ParsePaymentStatus(raw string) (dbgen.PaymentStatus, bool) {
	switch s := dbgen.PaymentStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case dbgen.PaymentStatusPENDING, dbgen.PaymentStatusPAID, dbgen.PaymentStatusCANCELLED,
		dbgen.PaymentStatusREFUNDED, dbgen.PaymentStatusFAILED:
		return s, true
	}
	return "", false
}

// ParseEditionStatus accepts an edition status in any letter case.
func ParseEditionStatus(raw string) (dbgen.EditionStatus, bool) {
	switch s := dbgen.EditionStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case dbgen.EditionStatusPENDING, dbgen.EditionStatusACTIVE, dbgen.EditionStatusFINISHED,
		dbgen.EditionStatusCANCELLED:
		return s, true
	}
	return "", false
}

// ReferencedEntity guesses which parent row a foreign key violation points at,
// based on the default "<table>_<column>_fkey" constraint naming.
func ReferencedEntity(err error) string {
	name := ConstraintName(err)
	for _, entity := range []string{"edition", "ingredient", "customer", "purchase"} {
		if strings.Contains(name, "_"+entity+"_id_") {
			return entity
		}
	}
	return ""
}
