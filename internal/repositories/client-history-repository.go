package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"certificate-system/internal/entities"
)

type ClientHistoryRepositoryInterface interface {
	RecentClients(ctx context.Context, kind string, limit int) ([]entities.Client, error)
}

type ClientHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewClientHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) ClientHistoryRepositoryInterface {
	return &ClientHistoryRepository{storage: storage, logger: logger}
}

// recentClientsQuery groups live certificates of one kind by client and site,
// newest first.
func recentClientsQuery(kind string, limit int) sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("client_name", "client_email", "client_phone", "site_address", "site_postcode", "MAX(created_at) AS last_used_at").
		From(certificateTable).
		Where(sq.Eq{"kind": kind, "deleted_at": nil}).
		GroupBy("client_name", "client_email", "client_phone", "site_address", "site_postcode").
		OrderBy("last_used_at DESC").
		Limit(uint64(limit))
}

func (r *ClientHistoryRepository) RecentClients(ctx context.Context, kind string, limit int) ([]entities.Client, error) {
	query, args, err := recentClientsQuery(kind, limit).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("recent clients", zap.String("kind", kind), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	clients := make([]entities.Client, 0, limit)
	for rows.Next() {
		var c entities.Client
		if err := rows.Scan(&c.Name, &c.Email, &c.Phone, &c.SiteAddress, &c.SitePostcode, &c.LastUsedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
