package edition

import (
	"time"

	"github.com/noah-isme/backend-editions/internal/db"
	dbgen "github.com/noah-isme/backend-editions/internal/db/gen"
	"github.com/noah-isme/backend-editions/internal/pricing"
)

// Edition is an edition together with its derived ledger figures.
// Revenue and NetProfits are nil while the edition has no portion price.
type Edition struct {
	ID               int64               `json:"id"`
	Date             string              `json:"date"`
	Name             string              `json:"name"`
	PortionPrice     *float64            `json:"portion_price"`
	Notes            *string             `json:"notes"`
	Status           dbgen.EditionStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	SalesCount       int64               `json:"sales_count"`
	Revenue          *float64            `json:"revenue"`
	EditionCosts     float64             `json:"edition_costs"`
	PurchaseExpenses float64             `json:"purchase_expenses"`
	NetProfits       *float64            `json:"net_profits"`
}

// ledgerRow is the projection shared by the single and list ledger queries.
type ledgerRow struct {
	Edition          dbgen.Edition
	SalesCount       int64
	EditionCosts     float64
	PurchaseExpenses float64
}

func ledgerFromRow(row ledgerRow) Edition {
	price := db.Float8Ptr(row.Edition.PortionPrice)
	costs := pricing.Round2(row.EditionCosts)
	return Edition{
		ID:               row.Edition.ID,
		Date:             db.DateString(row.Edition.Date),
		Name:             row.Edition.Name,
		PortionPrice:     price,
		Notes:            db.TextPtr(row.Edition.Notes),
		Status:           row.Edition.Status,
		CreatedAt:        db.Time(row.Edition.CreatedAt),
		SalesCount:       row.SalesCount,
		Revenue:          pricing.Revenue(row.SalesCount, price),
		EditionCosts:     costs,
		PurchaseExpenses: pricing.Round2(row.PurchaseExpenses),
		NetProfits:       pricing.NetProfit(row.SalesCount, price, costs),
	}
}
