package entities

import "time"

// Client is a customer seen on earlier certificates, offered for reuse on new ones.
type Client struct {
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	SiteAddress  string    `json:"site_address"`
	SitePostcode string    `json:"site_postcode"`
	LastUsedAt   time.Time `json:"last_used_at"`
}
