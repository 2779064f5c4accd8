package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"certificate-system/internal/certificates"
)

type CreateCertificateDTO struct {
	Kind         string  `json:"kind" validate:"required,certificate_kind"`
	ClientName   string  `json:"client_name" validate:"required,max=255"`
	ClientEmail  *string `json:"client_email" validate:"omitempty,email,max=255"`
	ClientPhone  *string `json:"client_phone" validate:"omitempty,max=32"`
	SiteAddress  string  `json:"site_address" validate:"required"`
	SitePostcode string  `json:"site_postcode" validate:"required,uk_postcode"`
}

// UpdateCertificateDTO changes only the fields that are present and not null.
type UpdateCertificateDTO struct {
	ClientName   null.String `json:"client_name" validate:"omitempty,max=255"`
	ClientEmail  null.String `json:"client_email" validate:"omitempty,email,max=255"`
	ClientPhone  null.String `json:"client_phone" validate:"omitempty,max=32"`
	SiteAddress  null.String `json:"site_address"`
	SitePostcode null.String `json:"site_postcode" validate:"omitempty,uk_postcode"`
	Status       null.String `json:"status" validate:"omitempty,oneof=draft issued"`
}

type PatchFormDTO struct {
	Changes certificates.Patch `json:"changes" validate:"required,min=1,dive"`
}

// SelectEquipmentDTO picks a record by id or by "Manufacturer Model" label. An empty
// selection clears the current one.
type SelectEquipmentDTO struct {
	Catalog   string `json:"catalog" validate:"required,catalog_kind"`
	Selection string `json:"selection"`
}

type CertificateDTO struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Reference    string            `json:"reference"`
	Status       string            `json:"status"`
	ClientName   string            `json:"client_name"`
	ClientEmail  *string           `json:"client_email,omitempty"`
	ClientPhone  *string           `json:"client_phone,omitempty"`
	SiteAddress  string            `json:"site_address"`
	SitePostcode string            `json:"site_postcode"`
	InstallerID  string            `json:"installer_id"`
	Form         certificates.Form `json:"form"`
	IssuedAt     *time.Time        `json:"issued_at,omitempty"`
	CreatedAt    *time.Time        `json:"created_at,omitempty"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

type SelectionResultDTO struct {
	Catalog  string             `json:"catalog"`
	State    string             `json:"state"`
	Selected *CatalogItemDTO    `json:"selected,omitempty"`
	Applied  certificates.Patch `json:"applied"`
	Form     certificates.Form  `json:"form"`
}
