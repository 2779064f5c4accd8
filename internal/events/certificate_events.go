package events

import "github.com/google/uuid"

const (
	SelectionChangedName   = "catalog.selection_changed"
	CertificateCreatedName = "certificate.created"
	CertificateDeletedName = "certificate.deleted"
	CertificateIssuedName  = "certificate.issued"
)

// SelectionChangedEvent is published after an equipment selection has been saved.
type SelectionChangedEvent struct {
	CertificateID uuid.UUID
	InstallerID   string
	Catalog       string
	State         string
	RecordID      string
	PreviousID    string
	AppliedFields []string
}

func (e SelectionChangedEvent) Name() string { return SelectionChangedName }

type CertificateCreatedEvent struct {
	CertificateID uuid.UUID
	Kind          string
	Reference     string
	InstallerID   string
}

func (e CertificateCreatedEvent) Name() string { return CertificateCreatedName }

type CertificateDeletedEvent struct {
	CertificateID uuid.UUID
	Kind          string
	InstallerID   string
}

func (e CertificateDeletedEvent) Name() string { return CertificateDeletedName }

type CertificateIssuedEvent struct {
	CertificateID uuid.UUID
	Kind          string
	Reference     string
	InstallerID   string
}

func (e CertificateIssuedEvent) Name() string { return CertificateIssuedName }
