package models

// BrandConfig is the tenant branding served to both front ends.
type BrandConfig struct {
	RestaurantName string `json:"restaurant_name,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	FontFamily     string `json:"font_family,omitempty"`
}

// DefaultBrandConfig mirrors the upstream fallback palette used when a
// tenant has no branding configured yet.
func DefaultBrandConfig() BrandConfig {
	return BrandConfig{
		PrimaryColor:   "#1976d2",
		SecondaryColor: "#dc004e",
		FontFamily:     "Roboto",
	}
}
