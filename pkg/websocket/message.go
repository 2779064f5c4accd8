package websocket

import "time"

// Envelope wraps every message pushed to a client. Type tells the frontend how to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// CertificatePayload tells other devices of the same installer that a certificate changed.
type CertificatePayload struct {
	CertificateID string   `json:"certificateId"`
	Reference     string   `json:"reference,omitempty"`
	Catalog       string   `json:"catalog,omitempty"`
	State         string   `json:"state,omitempty"`
	RecordID      string   `json:"recordId,omitempty"`
	ChangedFields []string `json:"changedFields,omitempty"`
}
