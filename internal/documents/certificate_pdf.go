package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
)

const dateLayout = "02/01/2006"

// BuildCertificatePDF renders the certificate header and every completed form field.
func BuildCertificatePDF(cert *entities.Certificate, form certificates.Form) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(cert.Reference, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 13)
	pdf.MultiCell(0, 7, tr(certificates.Title(form.Kind())), "", "L", false)
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(value), "", "L", false)
	}
	line("Reference", cert.Reference)
	line("Status", cert.Status)
	line("Client", cert.ClientName)
	if cert.ClientEmail != nil {
		line("Email", *cert.ClientEmail)
	}
	if cert.ClientPhone != nil {
		line("Phone", *cert.ClientPhone)
	}
	line("Site", fmt.Sprintf("%s, %s", cert.SiteAddress, cert.SitePostcode))
	line("Installer", cert.InstallerID)
	if cert.IssuedAt != nil {
		line("Issued", cert.IssuedAt.Format(dateLayout))
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Value", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	entries := certificates.Entries(form)
	if len(entries) == 0 {
		pdf.CellFormat(0, 6, "No details recorded", "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	for _, e := range entries {
		pdf.CellFormat(80, 6, tr(e.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(e.Value), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().UTC().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
