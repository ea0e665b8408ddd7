// backend-go/internal/domain/models.go
package domain

import (
	"strings"
	"time"
)

// Coordinates is a lat/lng pair attached to a pharmacy profile.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PharmacyIdentity is the pharmacy-role user record from the identity store.
type PharmacyIdentity struct {
	ID              string `json:"id" db:"id"`
	Email           string `json:"email" db:"email"`
	Phone           string `json:"phone" db:"phone"`
	FirstName       string `json:"first_name" db:"first_name"`
	LastName        string `json:"last_name" db:"last_name"`
	PharmacyName    string `json:"pharmacy_name" db:"pharmacy_name"`
	PharmacyType    string `json:"pharmacy_type" db:"pharmacy_type"`
	PharmacyLicense string `json:"pharmacy_license" db:"pharmacy_license"`
	Street          string `json:"street" db:"street"`
	City            string `json:"city" db:"city"`
	State           string `json:"state" db:"state"`
	Country         string `json:"country" db:"country"`
}

// PharmacyProfile is the self-maintained business profile, joined to the
// identity record by email.
type PharmacyProfile struct {
	Email            string   `json:"email" db:"email"`
	BusinessName     string   `json:"business_name" db:"business_name"`
	Phone            string   `json:"phone" db:"phone"`
	City             string   `json:"city" db:"city"`
	State            string   `json:"state" db:"state"`
	Country          string   `json:"country" db:"country"`
	Address          string   `json:"address" db:"address"`
	Latitude         *float64 `json:"latitude" db:"latitude"`
	Longitude        *float64 `json:"longitude" db:"longitude"`
	PharmacyType     string   `json:"pharmacy_type" db:"pharmacy_type"`
	LicenseNumber    string   `json:"license_number" db:"license_number"`
	EmergencyContact string   `json:"emergency_contact" db:"emergency_contact"`
}

// PharmacyContext is the normalized join of identity and profile used as the
// grouping anchor for all regional aggregation. City and state are never
// empty; unresolved values read "Unknown" so every context can serve as a
// region key.
type PharmacyContext struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	BusinessName     string       `json:"businessName"`
	Type             string       `json:"type"`
	LicenseNumber    string       `json:"licenseNumber"`
	Address          string       `json:"address"`
	City             string       `json:"city"`
	State            string       `json:"state"`
	Country          string       `json:"country"`
	Coordinates      *Coordinates `json:"coordinates"`
	EmergencyContact string       `json:"emergencyContact"`
}

// RegionKey returns the composite city|state key that disambiguates
// same-named cities across states.
func (p PharmacyContext) RegionKey() string {
	return p.City + "|" + p.State
}

// InventoryRecord is one stocked item at one pharmacy.
type InventoryRecord struct {
	ID         string `json:"id" db:"id"`
	PharmacyID string `json:"pharmacyId" db:"pharmacy_id"`
	Name       string `json:"name" db:"name"`
	Generic    string `json:"generic" db:"generic"`
	Category   string `json:"category" db:"category"`
	Dosage     string `json:"dosage" db:"dosage"`
	Form       string `json:"form" db:"form"`
	Stock      int    `json:"stock" db:"stock"`
	Threshold  int    `json:"threshold" db:"threshold"`
}

// LowStock reports whether the item sits at or below its reorder threshold.
func (r InventoryRecord) LowStock() bool {
	return r.Stock <= r.Threshold
}

// OrderItem is a single line of a patient order. PharmacyID may be empty
// when the line relies on the referenced inventory record for attribution.
type OrderItem struct {
	MedicineID   string  `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int     `json:"quantity"`
	PackSize     int     `json:"packSize"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
	PharmacyID   string  `json:"pharmacy"`
}

// Order is a patient order with its line items.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	PlacedAt  *time.Time  `json:"placedAt"`
	UpdatedAt *time.Time  `json:"updatedAt"`
	Items     []OrderItem `json:"items"`
}

// EffectiveDate is the timestamp used for day bucketing: creation time when
// set, otherwise placement then update time, then now.
func (o Order) EffectiveDate(now time.Time) time.Time {
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt
	}
	if o.PlacedAt != nil && !o.PlacedAt.IsZero() {
		return *o.PlacedAt
	}
	if o.UpdatedAt != nil && !o.UpdatedAt.IsZero() {
		return *o.UpdatedAt
	}
	return now
}

// DayKey formats a timestamp as the calendar-date bucket key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NormalizeCategory maps empty catalog categories to the literal fallback.
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return "General"
	}
	return category
}
