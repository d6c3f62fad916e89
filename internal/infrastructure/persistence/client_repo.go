package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository создаёт новый экземпляр репозитория.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByID возвращает клиента по идентификатору.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	query := `SELECT id, email, company_id, face_type, created_at FROM clients WHERE id = $1`

	var schema clientSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "client not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get client")
	}

	return schema.toDomain(), nil
}

// GetCompany возвращает компанию клиента.
func (r *ClientRepository) GetCompany(ctx context.Context, companyID int64) (*entity.Company, error) {
	query := `
		SELECT id, name, address, inn, vat, is_vat_active, created_at
		FROM companies
		WHERE id = $1`

	var schema companySchema
	if err := r.db.GetContext(ctx, &schema, query, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "company not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get company")
	}

	return schema.toDomain(), nil
}
