package entity

import (
	"errors"
	"time"
)

// Fixed value domains for the enumerated buyer fields. Matching is exact and
// case-sensitive everywhere (forms, JSON API and CSV import).
var (
	Cities        = []string{"Chandigarh", "Mohali", "Zirakpur", "Panchkula", "Other"}
	PropertyTypes = []string{"Apartment", "Villa", "Plot", "Office", "Retail"}
	BHKValues     = []string{"1", "2", "3", "4", "Studio"}
	Purposes      = []string{"Buy", "Rent"}
	Timelines     = []string{"0-3m", "3-6m", ">6m", "Exploring"}
	Sources       = []string{"Website", "Referral", "Walk-in", "Call", "Other"}
	Statuses      = []string{"New", "Qualified", "Contacted", "Visited", "Negotiation", "Converted", "Dropped"}
)

// StatusNew is the default status assigned on creation.
const StatusNew = "New"

var (
	ErrNotFound = errors.New("buyer not found")
	// ErrConflict means the caller's version token no longer matches the
	// stored record (someone else updated it first).
	ErrConflict = errors.New("buyer was modified by another request")
)

type Buyer struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	BHK          string    `json:"bhk,omitempty"` // required for Apartment/Villa, absent otherwise
	Purpose      string    `json:"purpose"`
	BudgetMin    int       `json:"budgetMin"`
	BudgetMax    int       `json:"budgetMax"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	Tags         []string  `json:"tags"`
	OwnerID      string    `json:"ownerId"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VersionToken is the opaque optimistic-concurrency token handed to clients.
// The store compares it against the current updated_at before accepting an update.
func (b *Buyer) VersionToken() string {
	return b.UpdatedAt.UTC().Format(time.RFC3339Nano)
}
