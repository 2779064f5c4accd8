package dto

import "certificate-system/internal/certificates"

// CatalogItemDTO wraps a catalog record with its display label.
type CatalogItemDTO struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	IsNew  bool   `json:"is_new"`
	Record any    `json:"record"`
}

type ManufacturerGroupDTO struct {
	Manufacturer string           `json:"manufacturer"`
	Items        []CatalogItemDTO `json:"items"`
}

// CatalogListDTO is either a filtered list (Filtered) or the grouped browse view.
type CatalogListDTO struct {
	Catalog  string                 `json:"catalog"`
	Query    string                 `json:"query,omitempty"`
	Filtered bool                   `json:"filtered"`
	Count    int                    `json:"count"`
	Items    []CatalogItemDTO       `json:"items"`
	Groups   []ManufacturerGroupDTO `json:"groups,omitempty"`
}

type CatalogDetailDTO struct {
	CatalogItemDTO
	Defaults certificates.Patch `json:"defaults"`
}
