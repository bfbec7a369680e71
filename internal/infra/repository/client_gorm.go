package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/models"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ClientGormRepository) FindByField(
	ctx context.Context,
	field domain.Field,
	value string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: string(field)}, Value: value}).
		First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *ClientGormRepository) FindByAnyOf(
	ctx context.Context,
	conds ...domain.Condition,
) (*models.Client, error) {

	if len(conds) == 0 {
		return nil, domain.ErrClientNotFound
	}

	exprs := make([]clause.Expression, 0, len(conds))
	for _, c := range conds {
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: string(c.Field)}, Value: c.Value})
	}

	var client models.Client
	if err := r.db.WithContext(ctx).
		Clauses(clause.Where{Exprs: []clause.Expression{clause.Or(exprs...)}}).
		Order("id ASC").
		First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *ClientGormRepository) FindByCPFWithRentals(
	ctx context.Context,
	cpf string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Preload("Rentals").
		Where("cpf = ?", cpf).
		First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *ClientGormRepository) ListAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *ClientGormRepository) Insert(ctx context.Context, client *models.Client) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error)
}

// Update applies the patch and reloads the row in one transaction. A row
// that vanished since the caller read it yields ErrClientNotFound.
func (r *ClientGormRepository) Update(
	ctx context.Context,
	cpf string,
	patch domain.Patch,
) (*models.Client, error) {

	var updated models.Client

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := patch.Columns()
		cols["updated_at"] = time.Now()

		res := tx.Model(&models.Client{}).
			Where("cpf = ?", cpf).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrClientNotFound
		}

		current := cpf
		if patch.CPF != nil {
			current = *patch.CPF
		}
		return tx.Where("cpf = ?", current).First(&updated).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &updated, nil
}

func (r *ClientGormRepository) Delete(ctx context.Context, cpf string) error {
	res := r.db.WithContext(ctx).
		Where("cpf = ?", cpf).
		Delete(&models.Client{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// translate maps driver errors onto the domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrClientNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateClient
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrClientHasRentals
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrDuplicateClient
		case pgForeignKeyViolation:
			return domain.ErrClientHasRentals
		}
	}

	return err
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
