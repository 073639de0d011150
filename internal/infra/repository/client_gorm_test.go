package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Banco em memória único por teste para evitar colisão entre testes.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.BillingInfo{},
		&models.Contact{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, repo *ClientGormRepository, email string) *models.Client {
	t.Helper()
	c := &models.Client{Name: "Acme", Email: email, Status: "active"}
	if err := repo.CreateClient(context.Background(), c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func TestCreateClientGeneratesID(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))

	c := seedClient(t, repo, "a@acme.com")
	if c.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetClientByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "a@acme.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
}

func TestCreateClientDuplicateEmailConflict(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	seedClient(t, repo, "dup@acme.com")

	err := repo.CreateClient(context.Background(), &models.Client{
		Name:  "Other",
		Email: "dup@acme.com",
	})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetClientNotFound(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))

	_, err := repo.GetClientByID(context.Background(), "missing")
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("expected client_not_found, got %v", err)
	}
}

func TestCreateBillingInfoConflict(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "b@acme.com")
	ctx := context.Background()

	first := &models.BillingInfo{ClientID: c.ID, CompanyName: "Acme SA", PaymentMethod: "bank_transfer"}
	if err := repo.CreateBillingInfo(ctx, first); err != nil {
		t.Fatalf("first billing: %v", err)
	}

	second := &models.BillingInfo{ClientID: c.ID, CompanyName: "Acme 2", PaymentMethod: "paypal"}
	err := repo.CreateBillingInfo(ctx, second)
	if !httperr.IsBusiness(err, "billing_info_already_exists") {
		t.Fatalf("expected billing_info_already_exists, got %v", err)
	}

	// Exatamente uma linha sobrevive.
	var count int64
	repo.db.Model(&models.BillingInfo{}).Where("client_id = ?", c.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 billing row, got %d", count)
	}
}

func TestCreateBillingInfoClientNotFound(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))

	err := repo.CreateBillingInfo(context.Background(), &models.BillingInfo{
		ClientID: "missing",
	})
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("expected client_not_found, got %v", err)
	}
}

func TestPrimaryContactInvariantOnCreate(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "c@acme.com")
	ctx := context.Background()

	first := &models.Contact{
		ClientID: c.ID, FirstName: "Ana", LastName: "Silva",
		Email: "ana@acme.com", IsPrimary: true,
	}
	if err := repo.CreateContact(ctx, first); err != nil {
		t.Fatalf("first contact: %v", err)
	}

	second := &models.Contact{
		ClientID: c.ID, FirstName: "Bruno", LastName: "Souza",
		Email: "bruno@acme.com", IsPrimary: true,
	}
	if err := repo.CreateContact(ctx, second); err != nil {
		t.Fatalf("second contact: %v", err)
	}

	// Última escrita vence: só o segundo é primário.
	var primaries []models.Contact
	repo.db.Where("client_id = ? AND is_primary = ?", c.ID, true).Find(&primaries)
	if len(primaries) != 1 {
		t.Fatalf("expected exactly 1 primary, got %d", len(primaries))
	}
	if primaries[0].ID != second.ID {
		t.Fatalf("expected %s to be primary, got %s", second.ID, primaries[0].ID)
	}
}

func TestPrimaryContactInvariantOnUpdate(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "d@acme.com")
	ctx := context.Background()

	a := &models.Contact{ClientID: c.ID, FirstName: "A", LastName: "A", Email: "a@x.com", IsPrimary: true}
	b := &models.Contact{ClientID: c.ID, FirstName: "B", LastName: "B", Email: "b@x.com"}
	if err := repo.CreateContact(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateContact(ctx, b); err != nil {
		t.Fatal(err)
	}

	b.IsPrimary = true
	if err := repo.UpdateContact(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}

	var primaries []models.Contact
	repo.db.Where("client_id = ? AND is_primary = ?", c.ID, true).Find(&primaries)
	if len(primaries) != 1 || primaries[0].ID != b.ID {
		t.Fatalf("expected only %s primary, got %+v", b.ID, primaries)
	}
}

func TestUpdateContactKeepsPrimaryWithoutDemotion(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "e@acme.com")
	ctx := context.Background()

	a := &models.Contact{ClientID: c.ID, FirstName: "A", LastName: "A", Email: "a@x.com", IsPrimary: true}
	if err := repo.CreateContact(ctx, a); err != nil {
		t.Fatal(err)
	}

	// Atualizar o próprio primário não pode desmarcá-lo.
	a.Phone = "123"
	if err := repo.UpdateContact(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetContactByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsPrimary {
		t.Fatal("expected contact to remain primary")
	}
}

func TestDeleteClientCascade(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "f@acme.com")
	ctx := context.Background()

	if err := repo.CreateBillingInfo(ctx, &models.BillingInfo{ClientID: c.ID}); err != nil {
		t.Fatal(err)
	}
	contact := &models.Contact{ClientID: c.ID, FirstName: "X", LastName: "Y", Email: "x@y.com"}
	if err := repo.CreateContact(ctx, contact); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteClientCascade(ctx, c.ID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if _, err := repo.GetClientByID(ctx, c.ID); !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("expected client gone, got %v", err)
	}
	if _, err := repo.GetBillingInfoByClient(ctx, c.ID); !httperr.IsBusiness(err, "billing_info_not_found") {
		t.Fatalf("expected billing gone, got %v", err)
	}
	if _, err := repo.GetContactByID(ctx, contact.ID); !httperr.IsBusiness(err, "contact_not_found") {
		t.Fatalf("expected contact gone, got %v", err)
	}
}

func TestDeleteContactNotFound(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))

	err := repo.DeleteContact(context.Background(), "missing")
	if !httperr.IsBusiness(err, "contact_not_found") {
		t.Fatalf("expected contact_not_found, got %v", err)
	}
}

func TestGetClientAggregatePreloads(t *testing.T) {
	repo := NewClientGormRepository(setupTestDB(t))
	c := seedClient(t, repo, "g@acme.com")
	ctx := context.Background()

	if err := repo.CreateBillingInfo(ctx, &models.BillingInfo{ClientID: c.ID, CompanyName: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateContact(ctx, &models.Contact{
		ClientID: c.ID, FirstName: "P", LastName: "Q", Email: "p@q.com", IsPrimary: true,
	}); err != nil {
		t.Fatal(err)
	}

	agg, err := repo.GetClientAggregate(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if agg.BillingInfo == nil || agg.BillingInfo.CompanyName != "Acme" {
		t.Fatalf("expected billing preloaded, got %+v", agg.BillingInfo)
	}
	if len(agg.Contacts) != 1 || !agg.Contacts[0].IsPrimary {
		t.Fatalf("expected primary contact preloaded, got %+v", agg.Contacts)
	}
}
