// ABOUTME: Basic example of using the Contractes library
// ABOUTME: Searches recent contracts and prints the top awarded companies

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	contractes "contractes-api/contractes-lib"
)

func main() {
	client, err := contractes.NewClient(
		contractes.WithQuietMode(),
		contractes.WithTimeout(30*time.Second),
		contractes.WithAppToken(os.Getenv("SOCRATA_APP_TOKEN")),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	query := "neteja"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	result, err := client.Search(ctx, query)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	fmt.Printf("%d contracts match %q, %.2f EUR in total\n", result.Count, query, result.Total)
	for i, c := range result.Contracts {
		if i == 5 {
			break
		}
		fmt.Printf("  %-40.40s %12.2f  %s\n", c.Company, c.Amount, c.Title)
	}

	top, err := client.TopCompanies(ctx, 10)
	if err != nil {
		log.Fatalf("Ranking failed: %v", err)
	}
	fmt.Println("\nTop companies:")
	for i, row := range top {
		fmt.Printf("%2d. %-50s %14.2f (%d)\n", i+1, row.Company, row.Total, row.Count)
	}
}
