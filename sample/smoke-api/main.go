// Manual smoke test against a running API instance. Creates one lead, then
// patches its status using the returned version token.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	base := os.Getenv("API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	lead := map[string]any{
		"fullName":     "Priya Sharma",
		"email":        "priya.sharma@email.com",
		"phone":        "9876543210",
		"city":         "Mohali",
		"propertyType": "Apartment",
		"bhk":          "2",
		"purpose":      "Buy",
		"budgetMin":    5000000,
		"budgetMax":    8000000,
		"timeline":     "0-3m",
		"source":       "Website",
		"tags":         []string{"smoke-test"},
	}

	created := post(base+"/buyers", lead)
	fmt.Printf("created buyer %s (updatedAt %s)\n", created["id"], created["updatedAt"])

	patched := patch(fmt.Sprintf("%s/buyers/%s", base, created["id"]), map[string]any{
		"status":    "Qualified",
		"updatedAt": created["updatedAt"],
	})
	fmt.Printf("moved buyer %s to status %s\n", patched["id"], patched["status"])
}

func post(url string, body map[string]any) map[string]any {
	return send(http.MethodPost, url, body, http.StatusCreated)
}

func patch(url string, body map[string]any) map[string]any {
	return send(http.MethodPatch, url, body, http.StatusOK)
}

func send(method, url string, body map[string]any, wantStatus int) map[string]any {
	raw, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("marshaling request: %v", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "smoke-test")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decoding response: %v", err)
	}
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: got %d, want %d (%v)", method, url, resp.StatusCode, wantStatus, out)
	}
	return out
}
