package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ClientGormRepository) GetClientByID(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("client_not_found")
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) GetClientAggregate(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Preload("BillingInfo").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, created_at DESC")
		}).
		Where("id = ?", id).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("client_not_found")
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) ListClients(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) CreateClient(
	ctx context.Context,
	c *models.Client,
) error {

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Client{}).
			Where("email = ?", c.Email).
			Count(&count).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		if count > 0 {
			return httperr.ErrConflict("email_already_exists")
		}

		if err := tx.Create(c).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func (r *ClientGormRepository) UpdateClient(
	ctx context.Context,
	c *models.Client,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Client
		if err := tx.Where("id = ?", c.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("client_not_found")
			}
			return httperr.ErrTransaction(err)
		}

		var count int64
		if err := tx.Model(&models.Client{}).
			Where("email = ? AND id <> ?", c.Email, c.ID).
			Count(&count).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		if count > 0 {
			return httperr.ErrConflict("email_already_exists")
		}

		if err := tx.Save(c).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

// DeleteClientCascade apaga filhos antes do pai para respeitar as FKs.
// Os handles de avatar são coletados pelo chamador ANTES da transação;
// os objetos no asset store só são apagados depois do commit.
func (r *ClientGormRepository) DeleteClientCascade(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.Where("id = ?", id).First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("client_not_found")
			}
			return httperr.ErrTransaction(err)
		}

		if err := tx.Where("client_id = ?", id).
			Delete(&models.Contact{}).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		if err := tx.Where("client_id = ?", id).
			Delete(&models.BillingInfo{}).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		if err := tx.Delete(&client).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		return nil
	})
}

// --------------------------------------------------
// BillingInfo
// --------------------------------------------------

func (r *ClientGormRepository) GetBillingInfoByID(
	ctx context.Context,
	id string,
) (*models.BillingInfo, error) {

	var billing models.BillingInfo
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&billing).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("billing_info_not_found")
		}
		return nil, err
	}
	return &billing, nil
}

func (r *ClientGormRepository) GetBillingInfoByClient(
	ctx context.Context,
	clientID string,
) (*models.BillingInfo, error) {

	var billing models.BillingInfo
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&billing).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("billing_info_not_found")
		}
		return nil, err
	}
	return &billing, nil
}

func (r *ClientGormRepository) CreateBillingInfo(
	ctx context.Context,
	b *models.BillingInfo,
) error {

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertClientExists(tx, b.ClientID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.BillingInfo{}).
			Where("client_id = ?", b.ClientID).
			Count(&count).Error; err != nil {
			return httperr.ErrTransaction(err)
		}
		if count > 0 {
			return httperr.ErrConflict("billing_info_already_exists")
		}

		if err := tx.Create(b).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func (r *ClientGormRepository) UpdateBillingInfo(
	ctx context.Context,
	b *models.BillingInfo,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.BillingInfo
		if err := tx.Where("id = ?", b.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("billing_info_not_found")
			}
			return httperr.ErrTransaction(err)
		}

		if b.ClientID != current.ClientID {
			if err := assertClientExists(tx, b.ClientID); err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.BillingInfo{}).
				Where("client_id = ? AND id <> ?", b.ClientID, b.ID).
				Count(&count).Error; err != nil {
				return httperr.ErrTransaction(err)
			}
			if count > 0 {
				return httperr.ErrConflict("billing_info_already_exists")
			}
		}

		if err := tx.Save(b).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func (r *ClientGormRepository) DeleteBillingInfo(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.BillingInfo{})
		if res.Error != nil {
			return httperr.ErrTransaction(res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("billing_info_not_found")
		}
		return nil
	})
}

// --------------------------------------------------
// Contact
// --------------------------------------------------

func (r *ClientGormRepository) GetContactByID(
	ctx context.Context,
	id string,
) (*models.Contact, error) {

	var contact models.Contact
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&contact).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("contact_not_found")
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ClientGormRepository) ListContacts(
	ctx context.Context,
	clientID string,
) ([]models.Contact, error) {

	var contacts []models.Contact
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("is_primary DESC, created_at DESC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ClientGormRepository) CreateContact(
	ctx context.Context,
	c *models.Contact,
) error {

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertClientExists(tx, c.ClientID); err != nil {
			return err
		}

		if c.IsPrimary {
			if err := clearPrimarySiblings(tx, c.ClientID, ""); err != nil {
				return err
			}
		}

		if err := tx.Create(c).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func (r *ClientGormRepository) UpdateContact(
	ctx context.Context,
	c *models.Contact,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Contact
		if err := tx.Where("id = ?", c.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("contact_not_found")
			}
			return httperr.ErrTransaction(err)
		}

		if c.ClientID != current.ClientID {
			if err := assertClientExists(tx, c.ClientID); err != nil {
				return err
			}
		}

		// A invariante vale no escopo do cliente de DESTINO.
		if c.IsPrimary {
			if err := clearPrimarySiblings(tx, c.ClientID, c.ID); err != nil {
				return err
			}
		}

		if err := tx.Save(c).Error; err != nil {
			return classifyWrite(err)
		}
		return nil
	})
}

func (r *ClientGormRepository) DeleteContact(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Contact{})
		if res.Error != nil {
			return httperr.ErrTransaction(res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("contact_not_found")
		}
		return nil
	})
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// assertClientExists checa a FK explicitamente: o erro volta classificado
// como NotFound em vez de depender do código de erro do driver.
func assertClientExists(tx *gorm.DB, clientID string) error {
	var count int64
	if err := tx.Model(&models.Client{}).
		Where("id = ?", clientID).
		Count(&count).Error; err != nil {
		return httperr.ErrTransaction(err)
	}
	if count == 0 {
		return httperr.ErrNotFound("client_not_found")
	}
	return nil
}

// classifyWrite traduz erros de escrita do banco para a taxonomia de negócio.
// Corrida de inserção concorrente em coluna única chega aqui como 23505.
func classifyWrite(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrConflict("unique_violation")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrConflict("unique_violation")
	}
	return httperr.ErrTransaction(err)
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
