package models

// Team is a read-only display record for a club.
type Team struct {
	Name    string `json:"name"`
	Abbr    string `json:"abbr"`
	LogoURL string `json:"logo_url"`
}
