package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

// Repository é o repositório do agregado Client + BillingInfo + Contacts.
// Toda mutação multi-linha roda dentro de uma única transação; o chamador
// nunca observa estado parcialmente aplicado. Checagens de existência e
// unicidade retornam erros de negócio classificados (httperr).
type Repository interface {
	// -------- Client --------
	GetClientByID(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	// GetClientAggregate carrega o cliente com BillingInfo e Contacts.
	GetClientAggregate(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	ListClients(
		ctx context.Context,
		query string,
	) ([]models.Client, error)

	CreateClient(
		ctx context.Context,
		c *models.Client,
	) error

	UpdateClient(
		ctx context.Context,
		c *models.Client,
	) error

	// DeleteClientCascade remove Contacts, BillingInfo e o Client
	// (filhos antes do pai) em uma transação.
	DeleteClientCascade(
		ctx context.Context,
		id string,
	) error

	// -------- BillingInfo --------
	GetBillingInfoByID(
		ctx context.Context,
		id string,
	) (*models.BillingInfo, error)

	GetBillingInfoByClient(
		ctx context.Context,
		clientID string,
	) (*models.BillingInfo, error)

	// CreateBillingInfo falha com Conflict se o cliente já possui um.
	CreateBillingInfo(
		ctx context.Context,
		b *models.BillingInfo,
	) error

	UpdateBillingInfo(
		ctx context.Context,
		b *models.BillingInfo,
	) error

	DeleteBillingInfo(
		ctx context.Context,
		id string,
	) error

	// -------- Contact --------
	GetContactByID(
		ctx context.Context,
		id string,
	) (*models.Contact, error)

	ListContacts(
		ctx context.Context,
		clientID string,
	) ([]models.Contact, error)

	// CreateContact / UpdateContact limpam is_primary dos irmãos na mesma
	// transação quando o contato gravado é primário (última escrita vence).
	CreateContact(
		ctx context.Context,
		c *models.Contact,
	) error

	UpdateContact(
		ctx context.Context,
		c *models.Contact,
	) error

	DeleteContact(
		ctx context.Context,
		id string,
	) error
}
