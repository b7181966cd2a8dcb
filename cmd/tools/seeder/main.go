package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/noah-isme/backend-editions/internal/pricing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	customers := seedCustomers(db)
	ingredients := seedIngredients(db)
	editionID, price := seedEdition(db)
	if editionID == 0 {
		log.Fatal("No edition available, aborting")
	}
	seedLedger(db, editionID, ingredients)
	seedSales(db, editionID, price, customers)

	log.Println("Seeding completed successfully!")
}

func seedCustomers(db *sql.DB) []int64 {
	customers := []struct {
		Name  string
		Email string
		Phone string
	}{
		{"Budi Santoso", "budi@example.com", "+62811000001"},
		{"Siti Aminah", "siti@example.com", "+62811000002"},
		{"Andi Pratama", "andi@example.com", "+62811000003"},
		{"Dewi Lestari", "dewi@example.com", "+62811000004"},
		{"Eko Kurniawan", "eko@example.com", "+62811000005"},
	}

	fmt.Println("Seeding Customers...")
	ids := make([]int64, 0, len(customers))
	for _, c := range customers {
		var id int64
		err := db.QueryRow(`
			INSERT INTO customers (name, email, phone)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id;
		`, c.Name, c.Email, c.Phone).Scan(&id)
		if err != nil {
			log.Printf("Failed to seed customer %s: %v", c.Email, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

type seededIngredient struct {
	ID        int64
	UnitPrice float64
	Quantity  float64
}

func seedIngredients(db *sql.DB) []seededIngredient {
	ingredients := []struct {
		Name     string
		Unit     string
		Category string
		Price    float64
		Quantity float64
	}{
		{"Beef brisket", "kg", "MEAT", 11.9, 4.5},
		{"Chorizo", "kg", "SAUSAGES", 8.4, 2},
		{"Chickpeas", "kg", "LEGUMES", 2.35, 3},
		{"Onion", "kg", "VEGETABLES", 1.2, 2.5},
		{"Olive oil", "l", "STORE", 6.8, 1},
		{"Takeaway boxes", "unit", "DISPOSABLE", 0.15, 60},
	}

	fmt.Println("Seeding Ingredients...")
	out := make([]seededIngredient, 0, len(ingredients))
	for _, in := range ingredients {
		var id int64
		err := db.QueryRow(`
			INSERT INTO ingredients (name, unit, category, unit_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET unit_price = EXCLUDED.unit_price, updated_at = now()
			RETURNING id;
		`, in.Name, in.Unit, in.Category, in.Price).Scan(&id)
		if err != nil {
			log.Printf("Failed to seed ingredient %s: %v", in.Name, err)
			continue
		}
		out = append(out, seededIngredient{ID: id, UnitPrice: in.Price, Quantity: in.Quantity})
	}
	return out
}

func seedEdition(db *sql.DB) (int64, float64) {
	const name = "Seed edition"
	price := 9.5

	fmt.Println("Seeding Edition...")
	var id int64
	err := db.QueryRow("SELECT id FROM editions WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, price
	}
	if err != sql.ErrNoRows {
		log.Printf("Failed to look up edition: %v", err)
		return 0, 0
	}
	err = db.QueryRow(`
		INSERT INTO editions (date, name, portion_price, status)
		VALUES (CURRENT_DATE, $1, $2, 'ACTIVE')
		RETURNING id;
	`, name, price).Scan(&id)
	if err != nil {
		log.Printf("Failed to seed edition: %v", err)
		return 0, 0
	}
	return id, price
}

// seedLedger records one purchase per ingredient and links it to the edition ledger.
func seedLedger(db *sql.DB, editionID int64, ingredients []seededIngredient) {
	fmt.Println("Seeding Edition Ingredients...")
	for _, in := range ingredients {
		subtotal := pricing.Subtotal(in.Quantity, in.UnitPrice)

		tx, err := db.Begin()
		if err != nil {
			log.Printf("Failed to begin transaction: %v", err)
			return
		}
		var purchaseID int64
		err = tx.QueryRow(`
			INSERT INTO purchases (ingredient_id, edition_id, quantity, unit_price, total_amount, notes)
			VALUES ($1, $2, $3, $4, $5, 'seed')
			RETURNING id;
		`, in.ID, editionID, in.Quantity, in.UnitPrice, subtotal).Scan(&purchaseID)
		if err == nil {
			_, err = tx.Exec(`
				INSERT INTO edition_ingredients (edition_id, ingredient_id, purchase_id, quantity, unit_price, subtotal)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (edition_id, ingredient_id) DO NOTHING;
			`, editionID, in.ID, purchaseID, in.Quantity, in.UnitPrice, subtotal)
		}
		if err != nil {
			_ = tx.Rollback()
			log.Printf("Failed to seed ledger entry for ingredient %d: %v", in.ID, err)
			continue
		}
		if err := tx.Commit(); err != nil {
			log.Printf("Failed to commit ledger entry for ingredient %d: %v", in.ID, err)
		}
	}
}

func seedSales(db *sql.DB, editionID int64, price float64, customers []int64) {
	fmt.Println("Seeding Sales...")
	for i, customerID := range customers {
		portions := int64(i + 1)
		var discount *float64
		if portions > 3 {
			d := 2.0
			discount = &d
		}
		total, err := pricing.SaleTotal(pricing.SaleInput{
			Portions:     portions,
			PortionPrice: &price,
			Discount:     discount,
		})
		if err != nil {
			log.Printf("Failed to price sale for customer %d: %v", customerID, err)
			continue
		}
		_, err = db.Exec(`
			INSERT INTO sales (edition_id, customer_id, total_portions, total_amount, discount_price)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (edition_id, customer_id) DO NOTHING;
		`, editionID, customerID, portions, total, discount)
		if err != nil {
			log.Printf("Failed to seed sale for customer %d: %v", customerID, err)
		}
	}
}
