package models

import "time"

// VendorRecord is one catalog entry: a vendor company's declared
// capabilities. Immutable within a scoring run.
type VendorRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industries  []string  `json:"industries"`
	Specialties []string  `json:"specialties"`
	PriceMin    int64     `json:"price_min"`
	PriceMax    int64     `json:"price_max"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServesIndustry reports whether the vendor lists the industry code.
func (v *VendorRecord) ServesIndustry(code string) bool {
	for _, ind := range v.Industries {
		if ind == code {
			return true
		}
	}
	return false
}

// HasSpecialty reports whether the vendor lists the specialty code.
func (v *VendorRecord) HasSpecialty(code string) bool {
	for _, s := range v.Specialties {
		if s == code {
			return true
		}
	}
	return false
}

// SessionRecord tracks a requirements-wizard session's identity and
// lifecycle timestamps. Answer contents live in the session store.
type SessionRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
