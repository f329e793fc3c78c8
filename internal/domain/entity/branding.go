package entity

import (
	"fmt"
	"strings"
	"time"
)

// Address is the postal address printed under the temple name
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Lines returns the non-empty address lines for a document header
func (a Address) Lines() []string {
	var lines []string
	if s := strings.TrimSpace(a.Street); s != "" {
		lines = append(lines, s)
	}
	var locality []string
	for _, part := range []string{a.City, a.State} {
		if p := strings.TrimSpace(part); p != "" {
			locality = append(locality, p)
		}
	}
	line := strings.Join(locality, ", ")
	if pc := strings.TrimSpace(a.PostalCode); pc != "" {
		line = strings.TrimSpace(pc + " " + line)
	}
	if line != "" {
		lines = append(lines, line)
	}
	if c := strings.TrimSpace(a.Country); c != "" {
		lines = append(lines, c)
	}
	return lines
}

// TempleBranding is the header printed on every receipt and report
type TempleBranding struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email,omitempty"`
	LogoURL string  `json:"logo_url,omitempty"`
}

// BrandingSource tells where an effective branding value came from
type BrandingSource string

const (
	BrandingSourceLive     BrandingSource = "live"
	BrandingSourceCache    BrandingSource = "cache"
	BrandingSourceSnapshot BrandingSource = "snapshot"
	BrandingSourceDefault  BrandingSource = "default"
)

// BrandingFromSettings maps SYSTEM settings values to branding.
// temple_pincode is accepted as an alias of temple_postal_code.
func BrandingFromSettings(values map[string]any) TempleBranding {
	postal := settingString(values, "temple_postal_code")
	if postal == "" {
		postal = settingString(values, "temple_pincode")
	}
	return TempleBranding{
		Name: settingString(values, "temple_name"),
		Address: Address{
			Street:     settingString(values, "temple_address"),
			City:       settingString(values, "temple_city"),
			State:      settingString(values, "temple_state"),
			PostalCode: postal,
			Country:    settingString(values, "temple_country"),
		},
		Phone:   settingString(values, "temple_phone"),
		Email:   settingString(values, "temple_email"),
		LogoURL: settingString(values, "temple_logo"),
	}
}

func settingString(values map[string]any, key string) string {
	v, ok := values[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%.0f", s))
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// BrandingSnapshotKey is the single row the snapshot table holds
const BrandingSnapshotKey = "system"

// BrandingSnapshot persists the last successfully fetched branding so a
// restart still prints the right header while the backend is down.
type BrandingSnapshot struct {
	Key        string    `gorm:"primaryKey;size:32" json:"-"`
	Name       string    `gorm:"size:255" json:"name"`
	Street     string    `gorm:"type:text" json:"street"`
	City       string    `gorm:"size:120" json:"city"`
	State      string    `gorm:"size:120" json:"state"`
	PostalCode string    `gorm:"size:32" json:"postal_code"`
	Country    string    `gorm:"size:120" json:"country"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Email      string    `gorm:"size:255" json:"email"`
	LogoURL    string    `gorm:"type:text" json:"logo_url"`
	FetchedAt  time.Time `gorm:"not null" json:"fetched_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for BrandingSnapshot
func (BrandingSnapshot) TableName() string {
	return "branding_snapshots"
}

// NewBrandingSnapshot captures b as fetched at the given time
func NewBrandingSnapshot(b TempleBranding, fetchedAt time.Time) *BrandingSnapshot {
	return &BrandingSnapshot{
		Key:        BrandingSnapshotKey,
		Name:       b.Name,
		Street:     b.Address.Street,
		City:       b.Address.City,
		State:      b.Address.State,
		PostalCode: b.Address.PostalCode,
		Country:    b.Address.Country,
		Phone:      b.Phone,
		Email:      b.Email,
		LogoURL:    b.LogoURL,
		FetchedAt:  fetchedAt,
	}
}

// Branding converts the snapshot back to branding
func (s *BrandingSnapshot) Branding() TempleBranding {
	return TempleBranding{
		Name: s.Name,
		Address: Address{
			Street:     s.Street,
			City:       s.City,
			State:      s.State,
			PostalCode: s.PostalCode,
			Country:    s.Country,
		},
		Phone:   s.Phone,
		Email:   s.Email,
		LogoURL: s.LogoURL,
	}
}
