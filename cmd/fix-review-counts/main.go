package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"photo-review-api/config"
	"photo-review-api/services"
)

// Recomputes every photo's reviews_received and average_score from its
// approved review rows. Run after a crash or bad deploy leaves the stored
// aggregates out of sync.
func main() {
	verbose := flag.Bool("v", false, "print every corrected photo")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	fixes, err := services.NewReconcileService(config.DB).FixReviewCounts()
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	if *verbose {
		for _, fix := range fixes {
			fmt.Printf("photo %d: reviews %d -> %d\n", fix.PhotoID, fix.ReviewsBefore, fix.ReviewsAfter)
		}
	}
	fmt.Printf("Reconciled %d photo(s)\n", len(fixes))
}
