package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"certificate-system/internal/catalog"
	"certificate-system/internal/certificates"
	"certificate-system/internal/entities"
)

// true: refresh the form of an existing demo certificate. false: leave it untouched.
const updateIfExistsCertificates = false

func seedCertificates(ctx context.Context, db *pgxpool.Pool, catalogs *catalog.Catalogs, installerID string) error {
	log.Println("  - seeding table 'certificates'...")

	query := `INSERT INTO certificates (id, kind, reference, status, client_name, client_email, site_address, site_postcode, installer_id, form_data)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
			  ON CONFLICT (reference) DO NOTHING;`
	if updateIfExistsCertificates {
		query = `INSERT INTO certificates (id, kind, reference, status, client_name, client_email, site_address, site_postcode, installer_id, form_data)
				 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
				 ON CONFLICT (reference) DO UPDATE SET form_data = EXCLUDED.form_data, updated_at = now();`
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range demoCertificatesData {
		form, err := demoForm(catalogs, c)
		if err != nil {
			return fmt.Errorf("build form for %s: %w", c.Reference, err)
		}
		raw, err := certificates.EncodeForm(form)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query,
			uuid.New(), string(c.Kind), c.Reference, entities.CertificateStatusDraft,
			c.ClientName, c.ClientEmail, c.SiteAddress, c.SitePostcode, installerID, raw,
		); err != nil {
			log.Printf("failed to insert certificate %s: %v", c.Reference, err)
			return err
		}
	}
	return tx.Commit(ctx)
}

// demoForm fills the form the same way an installer picking the equipment would.
func demoForm(catalogs *catalog.Catalogs, c demoCertificate) (certificates.Form, error) {
	form, err := certificates.NewForm(c.Kind)
	if err != nil {
		return nil, err
	}
	emitter := certificates.NewFormEmitter(form)

	if c.EquipmentID != "" {
		switch c.Kind {
		case certificates.KindFireAlarm:
			selectForDemo(catalogs.FirePanels, catalog.ResolveFireAlarmPanel, emitter, c.EquipmentID,
				certificates.FieldPanelID, certificates.FieldPanelMakeModel)
		case certificates.KindSolarPV:
			selectForDemo(catalogs.SolarPanels, catalog.ResolveSolarPanel, emitter, c.EquipmentID,
				certificates.FieldPanelID, certificates.FieldPanelMakeModel)
		}
	}
	emitter.Emit(c.Extra)
	return form, emitter.Err
}

func selectForDemo[T catalog.Record](store *catalog.Store[T], resolve catalog.Resolver[T], emitter *certificates.FormEmitter, id, idField, labelField string) {
	ctrl := catalog.NewController(store, resolve, emitter)
	rec, ok := ctrl.Select(id)
	if !ok {
		log.Printf("    - catalog record %q not found, equipment left blank", id)
		return
	}
	emitter.Emit(certificates.Patch{
		{Field: idField, Value: rec.RecordID()},
		{Field: labelField, Value: catalog.Label(rec)},
	})
}
