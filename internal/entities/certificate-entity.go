package entities

import (
	"encoding/json"
	"time"

	"certificate-system/pkg/types"

	"github.com/google/uuid"
)

const (
	CertificateStatusDraft  = "draft"
	CertificateStatusIssued = "issued"
)

type Certificate struct {
	ID           uuid.UUID       `json:"id"`
	Kind         string          `json:"kind"`
	Reference    string          `json:"reference"`
	Status       string          `json:"status"`
	ClientName   string          `json:"client_name"`
	ClientEmail  *string         `json:"client_email,omitempty"`
	ClientPhone  *string         `json:"client_phone,omitempty"`
	SiteAddress  string          `json:"site_address"`
	SitePostcode string          `json:"site_postcode"`
	InstallerID  string          `json:"installer_id"`
	FormData     json.RawMessage `json:"form_data"`
	IssuedAt     *time.Time      `json:"issued_at,omitempty"`

	types.BaseEntity
	types.SoftDelete
}
