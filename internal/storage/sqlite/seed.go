package sqlite

import "github.com/ai-bridge/backend/internal/storage/models"

// SeedCatalog is the built-in vendor fixture used when the catalog table is
// empty. Prices share the currency unit of the rate table.
func SeedCatalog() []models.VendorRecord {
	return []models.VendorRecord{
		{
			ID:          "v-aurora",
			Name:        "Aurora Intelligence",
			Industries:  []string{"manufacturing", "logistics"},
			Specialties: []string{"quality_inspection", "image_recognition", "predictive_maintenance"},
			PriceMin:    3_000_000,
			PriceMax:    20_000_000,
			Rating:      4.7,
			ReviewCount: 86,
			Description: "Computer vision specialists for factory floors",
		},
		{
			ID:          "v-beacon",
			Name:        "Beacon Analytics",
			Industries:  []string{"retail", "finance"},
			Specialties: []string{"demand_forecast", "sales_analytics", "dynamic_pricing"},
			PriceMin:    1_500_000,
			PriceMax:    12_000_000,
			Rating:      4.4,
			ReviewCount: 61,
			Description: "Forecasting and pricing models for commerce",
		},
		{
			ID:          "v-cascade",
			Name:        "Cascade Systems",
			Industries:  []string{"other"},
			Specialties: []string{"chatbot", "faq_support", "document_automation"},
			PriceMin:    500_000,
			PriceMax:    5_000_000,
			Rating:      4.1,
			ReviewCount: 142,
			Description: "Conversational AI and back-office automation for any industry",
		},
		{
			ID:          "v-daikoku",
			Name:        "Daikoku Robotics",
			Industries:  []string{"manufacturing"},
			Specialties: []string{"predictive_maintenance", "realtime_monitoring", "supply_chain_optimization"},
			PriceMin:    5_000_000,
			PriceMax:    30_000_000,
			Rating:      4.8,
			ReviewCount: 38,
			Description: "Plant-wide optimization and monitoring",
		},
		{
			ID:          "v-ember",
			Name:        "Ember Health AI",
			Industries:  []string{"healthcare"},
			Specialties: []string{"image_recognition", "document_automation"},
			PriceMin:    4_000_000,
			PriceMax:    25_000_000,
			Rating:      4.6,
			ReviewCount: 29,
			Description: "Medical imaging and records automation",
		},
		{
			ID:          "v-fathom",
			Name:        "Fathom Finance Labs",
			Industries:  []string{"finance"},
			Specialties: []string{"sales_analytics", "realtime_monitoring", "dynamic_pricing"},
			PriceMin:    6_000_000,
			PriceMax:    40_000_000,
			Rating:      4.5,
			ReviewCount: 54,
			Description: "Risk and revenue analytics for financial institutions",
		},
		{
			ID:          "v-grove",
			Name:        "Grove Digital",
			Industries:  []string{"retail", "other"},
			Specialties: []string{"chatbot", "sales_analytics"},
			PriceMin:    800_000,
			PriceMax:    6_000_000,
			Rating:      3.9,
			ReviewCount: 97,
			Description: "Customer engagement tooling for storefronts",
		},
		{
			ID:          "v-harbor",
			Name:        "Harbor Logistics AI",
			Industries:  []string{"logistics"},
			Specialties: []string{"supply_chain_optimization", "demand_forecast", "realtime_monitoring"},
			PriceMin:    3_500_000,
			PriceMax:    22_000_000,
			Rating:      4.3,
			ReviewCount: 45,
			Description: "Routing and warehouse optimization",
		},
		{
			ID:          "v-ivory",
			Name:        "Ivory Works",
			Industries:  []string{"other"},
			Specialties: []string{"document_automation", "faq_support"},
			PriceMin:    300_000,
			PriceMax:    3_000_000,
			Rating:      3.6,
			ReviewCount: 203,
			Description: "Small-team automation projects at entry prices",
		},
		{
			ID:          "v-kestrel",
			Name:        "Kestrel Vision",
			Industries:  []string{"manufacturing", "healthcare"},
			Specialties: []string{"quality_inspection", "image_recognition", "realtime_monitoring"},
			PriceMin:    4_500_000,
			PriceMax:    28_000_000,
			Rating:      4.7,
			ReviewCount: 22,
			Description: "High-accuracy visual inspection systems",
		},
	}
}
