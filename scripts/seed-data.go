//go:build ignore
// +build ignore

// Seeds demo data through the HTTP API. The backend must be running with
// SKIP_AUTH=true (or USE_MEMORY_STORE=true); the X-Debug-Impersonate-User
// header selects the target user.
//
//	go run scripts/seed-data.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "local-dev-user"
	}

	log.Printf("Seeding data for user %s at %s", userID, apiURL)

	c := &seedClient{base: apiURL, userID: userID}

	now := time.Now().UTC()
	for m := 0; m < 5; m++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)

		c.post("/api/v1/incomes", map[string]any{
			"amount": "5000.00", "category": "Job", "date": monthStart.AddDate(0, 0, 0),
		})
		c.post("/api/v1/incomes", map[string]any{
			"amount": "850.00", "category": "Rental income", "date": monthStart.AddDate(0, 0, 2),
		})

		c.post("/api/v1/transactions", map[string]any{
			"amount": "1800.00", "category": "Housing", "date": monthStart.AddDate(0, 0, 1),
		})
		c.post("/api/v1/transactions", map[string]any{
			"amount": fmt.Sprintf("%d.50", 500+30*m), "category": "Food", "date": monthStart.AddDate(0, 0, 8),
		})
		c.post("/api/v1/transactions", map[string]any{
			"amount": "220.00", "category": "Utilities", "date": monthStart.AddDate(0, 0, 12),
		})
		c.post("/api/v1/transactions", map[string]any{
			"amount": "140.00", "category": "Entertainment", "date": monthStart.AddDate(0, 0, 18),
		})
	}

	c.post("/api/v1/categories", map[string]any{"name": "Food", "limit": "700.00"})
	c.post("/api/v1/categories", map[string]any{"name": "Entertainment", "limit": "200.00"})

	c.post("/api/v1/recurring-payments", map[string]any{
		"name": "Streaming", "amount": "15.99", "start_date": now.AddDate(0, 0, 3),
	})
	c.post("/api/v1/recurring-payments", map[string]any{
		"name": "Gym", "amount": "45.00", "start_date": now.AddDate(0, 0, 7),
	})

	c.post("/api/v1/goals", map[string]any{
		"name": "Emergency fund", "target_amount": "10000.00", "end_date": now.AddDate(1, 0, 0),
	})
	c.post("/api/v1/goals", map[string]any{
		"name": "Holiday", "description": "Two weeks away", "target_amount": "3000.00", "end_date": now.AddDate(0, 8, 0),
	})

	if c.failed {
		log.Fatal("Seeding finished with errors")
	}
	log.Println("Successfully seeded demo data")
}

type seedClient struct {
	base   string
	userID string
	failed bool
}

func (c *seedClient) post(path string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("marshal %s: %v", path, err)
		c.failed = true
		return
	}

	req, err := http.NewRequest(http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		log.Printf("request %s: %v", path, err)
		c.failed = true
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-Impersonate-User", c.userID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("POST %s: %v", path, err)
		c.failed = true
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("POST %s: unexpected status %s", path, resp.Status)
		c.failed = true
	}
}
