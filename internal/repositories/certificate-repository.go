package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"certificate-system/internal/entities"
	db "certificate-system/internal/infrastructure/bd"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/types"
)

const certificateTable = "certificates"

// json field -> column, used for both filtering and sorting
var certificateMap = map[string]string{
	"id":            "c.id",
	"kind":          "c.kind",
	"reference":     "c.reference",
	"status":        "c.status",
	"client_name":   "c.client_name",
	"site_postcode": "c.site_postcode",
	"installer_id":  "c.installer_id",
	"issued_at":     "c.issued_at",
	"created_at":    "c.created_at",
	"updated_at":    "c.updated_at",
}

var certificateColumns = []string{
	"c.id", "c.kind", "c.reference", "c.status",
	"c.client_name", "c.client_email", "c.client_phone",
	"c.site_address", "c.site_postcode", "c.installer_id",
	"c.form_data", "c.issued_at", "c.created_at", "c.updated_at",
}

type CertificateRepositoryInterface interface {
	GetCertificates(ctx context.Context, filter types.Filter) ([]entities.Certificate, uint64, error)
	FindCertificate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Certificate, error)
	CreateCertificate(ctx context.Context, cert entities.Certificate) error
	UpdateCertificate(ctx context.Context, tx pgx.Tx, cert entities.Certificate) error
	UpdateFormData(ctx context.Context, tx pgx.Tx, id uuid.UUID, formData json.RawMessage) error
	DeleteCertificate(ctx context.Context, id uuid.UUID) error
}

type CertificateRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCertificateRepository(storage *pgxpool.Pool, logger *zap.Logger) CertificateRepositoryInterface {
	return &CertificateRepository{storage: storage, logger: logger}
}

func scanCertificate(row pgx.Row) (*entities.Certificate, error) {
	var c entities.Certificate
	err := row.Scan(
		&c.ID, &c.Kind, &c.Reference, &c.Status,
		&c.ClientName, &c.ClientEmail, &c.ClientPhone,
		&c.SiteAddress, &c.SitePostcode, &c.InstallerID,
		&c.FormData, &c.IssuedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan certificate: %w", err)
	}
	return &c, nil
}

func applyCertificateSearch(b sq.SelectBuilder, search string) sq.SelectBuilder {
	if search == "" {
		return b
	}
	pat := "%" + search + "%"
	return b.Where(sq.Or{
		sq.ILike{"c.reference": pat},
		sq.ILike{"c.client_name": pat},
		sq.ILike{"c.site_address": pat},
		sq.ILike{"c.site_postcode": pat},
	})
}

// certificateListQueries builds the count and page queries for a list request.
func certificateListQueries(filter types.Filter) (count, page sq.SelectBuilder) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	count = psql.Select("COUNT(c.id)").From(certificateTable + " AS c").Where(sq.Eq{"c.deleted_at": nil})
	count = applyCertificateSearch(count, filter.Search)
	count = db.ApplyListParams(count, countFilter, certificateMap)

	page = psql.Select(certificateColumns...).From(certificateTable + " AS c").Where(sq.Eq{"c.deleted_at": nil})
	page = applyCertificateSearch(page, filter.Search)
	page = db.ApplyListParams(page, filter, certificateMap)
	if len(filter.Sort) == 0 {
		page = page.OrderBy("c.created_at DESC")
	}
	return count, page
}

func (r *CertificateRepository) GetCertificates(ctx context.Context, filter types.Filter) ([]entities.Certificate, uint64, error) {
	countBuilder, pageBuilder := certificateListQueries(filter)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		r.logger.Error("count certificates", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Certificate{}, 0, nil
	}

	query, args, err := pageBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("list certificates", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	certs := make([]entities.Certificate, 0, filter.Limit)
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, 0, err
		}
		certs = append(certs, *cert)
	}
	return certs, total, rows.Err()
}

// FindCertificate loads a live certificate. Inside a transaction the row is locked.
func (r *CertificateRepository) FindCertificate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Certificate, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(certificateColumns...).
		From(certificateTable + " AS c").
		Where(sq.Eq{"c.id": id, "c.deleted_at": nil})
	if tx != nil {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanCertificate(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *CertificateRepository) CreateCertificate(ctx context.Context, cert entities.Certificate) error {
	query := `
		INSERT INTO certificates (id, kind, reference, status, client_name, client_email, client_phone,
		                          site_address, site_postcode, installer_id, form_data, issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.storage.Exec(ctx, query,
		cert.ID, cert.Kind, cert.Reference, cert.Status, cert.ClientName, cert.ClientEmail, cert.ClientPhone,
		cert.SiteAddress, cert.SitePostcode, cert.InstallerID, cert.FormData, cert.IssuedAt,
	)
	if err != nil {
		r.logger.Error("insert certificate", zap.String("reference", cert.Reference), zap.Error(err))
	}
	return err
}

func (r *CertificateRepository) UpdateCertificate(ctx context.Context, tx pgx.Tx, cert entities.Certificate) error {
	query := `
		UPDATE certificates
		SET status = $1, client_name = $2, client_email = $3, client_phone = $4,
		    site_address = $5, site_postcode = $6, issued_at = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`
	result, err := pick(r.storage, tx).Exec(ctx, query,
		cert.Status, cert.ClientName, cert.ClientEmail, cert.ClientPhone,
		cert.SiteAddress, cert.SitePostcode, cert.IssuedAt, cert.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CertificateRepository) UpdateFormData(ctx context.Context, tx pgx.Tx, id uuid.UUID, formData json.RawMessage) error {
	query := `UPDATE certificates SET form_data = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	result, err := pick(r.storage, tx).Exec(ctx, query, formData, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CertificateRepository) DeleteCertificate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE certificates SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
