package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the local owner and a few sample expenses for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		ownerID := cfg.Ledger.Owner()

		if clearData {
			if _, err := db.Exec(db.Rebind("DELETE FROM expenses WHERE user_id = ?"), ownerID); err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			fmt.Println("cleared existing expenses")
		}

		if _, err := db.Exec(db.Rebind(
			"INSERT INTO users (id, email) VALUES (?, ?) ON CONFLICT (id) DO NOTHING"),
			ownerID, "local@expense.ledger"); err != nil {
			log.Fatalf("failed to seed owner: %v", err)
		}

		// base-currency samples, so base_amount equals original_amount
		samples := []struct {
			date        string
			amount      string
			category    string
			subcategory string
		}{
			{"2025-08-01", "450.00", "food", "groceries"},
			{"2025-08-03", "1200.00", "transport", "fuel"},
			{"2025-08-10", "15000.00", "housing", "rent"},
		}

		for _, s := range samples {
			if _, err := db.Exec(db.Rebind(
				`INSERT INTO expenses (user_id, expense_date, original_amount, currency, base_amount, category, subcategory)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`),
				ownerID, s.date, s.amount, cfg.Currency.BaseCurrency, s.amount, s.category, s.subcategory); err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}

		fmt.Printf("seeded owner %s and %d sample expenses\n", ownerID, len(samples))
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
