package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	infraRepo "github.com/BruksfildServices01/crm-dashboard/internal/infra/repository"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

// ======================================================
// FIXTURES
// ======================================================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Client{},
		&models.BillingInfo{},
		&models.Contact{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T) *AvatarUpload {
	return &AvatarUpload{Data: pngBytes(t, 8, 8), ContentType: "image/png"}
}

// memStore é um asset store em memória com injeção de falha.
type memStore struct {
	mu        sync.Mutex
	seq       int
	objects   map[string][]byte
	failWrite bool
	failDel   bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Write(ctx context.Context, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return "", errors.New("storage down")
	}
	s.seq++
	handle := fmt.Sprintf("avatars/%d.webp", s.seq)
	s.objects[handle] = data
	return handle, nil
}

func (s *memStore) Delete(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel {
		return errors.New("storage down")
	}
	delete(s.objects, handle)
	return nil
}

func (s *memStore) has(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[handle]
	return ok
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// failingRepo deixa a transação de update falhar sob demanda.
type failingRepo struct {
	domain.Repository
	failUpdateClient bool
}

func (r *failingRepo) UpdateClient(ctx context.Context, c *models.Client) error {
	if r.failUpdateClient {
		return httperr.ErrTransaction(errors.New("commit failed"))
	}
	return r.Repository.UpdateClient(ctx, c)
}

// ======================================================
// SCENARIO A — create com avatar
// ======================================================

func TestCreateClientWithAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	uc := NewCreateClient(repo, store, nil, newDispatcher(db))

	client, err := uc.Execute(context.Background(), CreateClientInput{
		Name:    "Acme",
		Email:   "a@acme.com",
		Avatar:  upload(t),
		ActorID: "admin-1",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if client.AvatarRef == "" {
		t.Fatal("expected non-empty avatar ref")
	}
	if !store.has(client.AvatarRef) {
		t.Fatalf("store has no object at %s", client.AvatarRef)
	}
	if store.count() != 1 {
		t.Fatalf("expected exactly 1 object, got %d", store.count())
	}
	if client.Status != "prospect" {
		t.Fatalf("expected default status prospect, got %s", client.Status)
	}
	if client.CreatedBy != "admin-1" || client.UpdatedBy != "admin-1" {
		t.Fatalf("audit fields not set: %+v", client)
	}
}

func TestCreateClientStorageFailureNoRow(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	store.failWrite = true
	uc := NewCreateClient(repo, store, nil, newDispatcher(db))

	_, err := uc.Execute(context.Background(), CreateClientInput{
		Name:    "Acme",
		Email:   "a@acme.com",
		Avatar:  upload(t),
		ActorID: "admin-1",
	})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindStorageUnavailable {
		t.Fatalf("expected storage_unavailable, got %v", err)
	}

	// Nenhuma mutação no banco aconteceu.
	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no client rows, got %d", count)
	}
}

// ======================================================
// SCENARIO B — update troca o avatar
// ======================================================

func TestUpdateClientReplacesAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)

	created, err := NewCreateClient(repo, store, nil, disp).Execute(context.Background(), CreateClientInput{
		Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	oldRef := created.AvatarRef

	updated, err := NewUpdateClient(repo, store, nil, disp).Execute(context.Background(), UpdateClientInput{
		ID: created.ID, Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-2",
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.AvatarRef == "" || updated.AvatarRef == oldRef {
		t.Fatalf("expected new handle, old=%s new=%s", oldRef, updated.AvatarRef)
	}
	if store.has(oldRef) {
		t.Fatal("expected superseded handle to be deleted")
	}
	if !store.has(updated.AvatarRef) {
		t.Fatal("expected new handle to exist")
	}
	if updated.CreatedBy != "admin-1" || updated.UpdatedBy != "admin-2" {
		t.Fatalf("audit fields wrong: %+v", updated)
	}
}

func TestUpdateClientWithoutAvatarKeepsHandle(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)

	created, err := NewCreateClient(repo, store, nil, disp).Execute(context.Background(), CreateClientInput{
		Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := NewUpdateClient(repo, store, nil, disp).Execute(context.Background(), UpdateClientInput{
		ID: created.ID, Name: "Acme Renamed", Email: "a@acme.com", ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.AvatarRef != created.AvatarRef {
		t.Fatalf("handle must not change without upload: %s != %s", updated.AvatarRef, created.AvatarRef)
	}
	if !store.has(created.AvatarRef) {
		t.Fatal("object must still exist")
	}
}

// ======================================================
// SCENARIO D — transação falha, asset staged é revertido
// ======================================================

func TestUpdateClientTxFailureRevertsStagedAvatar(t *testing.T) {
	db := setupTestDB(t)
	realRepo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)

	created, err := NewCreateClient(realRepo, store, nil, disp).Execute(context.Background(), CreateClientInput{
		Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	repo := &failingRepo{Repository: realRepo, failUpdateClient: true}
	_, err = NewUpdateClient(repo, store, nil, disp).Execute(context.Background(), UpdateClientInput{
		ID: created.ID, Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindTransactionFailed {
		t.Fatalf("expected transaction_failed, got %v", err)
	}

	// O objeto recém-escrito foi apagado; só o antigo sobrevive.
	if store.count() != 1 {
		t.Fatalf("expected 1 object after revert, got %d", store.count())
	}
	if !store.has(created.AvatarRef) {
		t.Fatal("original handle must survive")
	}

	// A linha não mudou.
	current, err := realRepo.GetClientByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if current.AvatarRef != created.AvatarRef {
		t.Fatalf("avatar ref changed on failed tx: %s", current.AvatarRef)
	}
}

// ======================================================
// CASCADE — delete do cliente limpa todos os assets
// ======================================================

func TestDeleteClientRemovesAllAssets(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)
	ctx := context.Background()

	created, err := NewCreateClient(repo, store, nil, disp).Execute(ctx, CreateClientInput{
		Name: "Acme", Email: "a@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	contact, err := NewCreateContact(repo, store, nil, disp).Execute(ctx, ContactInput{
		ClientID: created.ID, FirstName: "Ana", LastName: "Silva",
		Email: "ana@acme.com", IsPrimary: true, Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewCreateBillingInfo(repo, nil, disp).Execute(ctx, BillingInfoInput{
		ClientID: created.ID, CompanyName: "Acme SA", ActorID: "admin-1",
	}); err != nil {
		t.Fatal(err)
	}

	if err := NewDeleteClient(repo, store, nil, disp).Execute(ctx, created.ID, "admin-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if store.count() != 0 {
		t.Fatalf("expected all assets deleted, %d remain", store.count())
	}
	if _, err := repo.GetBillingInfoByClient(ctx, created.ID); !httperr.IsBusiness(err, "billing_info_not_found") {
		t.Fatalf("expected billing gone, got %v", err)
	}
	if _, err := repo.GetContactByID(ctx, contact.ID); !httperr.IsBusiness(err, "contact_not_found") {
		t.Fatalf("expected contact gone, got %v", err)
	}
}

func TestDeleteClientNotFoundTouchesNoAsset(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()

	err := NewDeleteClient(repo, store, nil, newDispatcher(db)).Execute(context.Background(), "missing", "admin-1")
	if kind, _ := httperr.KindOf(err); kind != httperr.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

// ======================================================
// SCENARIO C — dois creates primários, o segundo vence
// ======================================================

func TestSecondPrimaryContactWins(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)
	ctx := context.Background()

	created, err := NewCreateClient(repo, store, nil, disp).Execute(ctx, CreateClientInput{
		Name: "Acme", Email: "a@acme.com", ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	uc := NewCreateContact(repo, store, nil, disp)

	first, err := uc.Execute(ctx, ContactInput{
		ClientID: created.ID, FirstName: "A", LastName: "A",
		Email: "a@x.com", IsPrimary: true, ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Execute(ctx, ContactInput{
		ClientID: created.ID, FirstName: "B", LastName: "B",
		Email: "b@x.com", IsPrimary: true, ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	contacts, err := repo.ListContacts(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	var primaries []string
	for _, ct := range contacts {
		if ct.IsPrimary {
			primaries = append(primaries, ct.ID)
		}
	}
	if len(primaries) != 1 || primaries[0] != second.ID {
		t.Fatalf("expected only %s primary (first was %s), got %v", second.ID, first.ID, primaries)
	}
}

// ======================================================
// CONTACT — avatar segue o mesmo ciclo de vida
// ======================================================

func TestUpdateContactReplacesAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)
	ctx := context.Background()

	created, err := NewCreateClient(repo, store, nil, disp).Execute(ctx, CreateClientInput{
		Name: "Acme", Email: "a@acme.com", ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	contact, err := NewCreateContact(repo, store, nil, disp).Execute(ctx, ContactInput{
		ClientID: created.ID, FirstName: "Ana", LastName: "Silva",
		Email: "ana@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	oldRef := contact.AvatarRef

	updated, err := NewUpdateContact(repo, store, nil, disp).Execute(ctx, contact.ID, ContactInput{
		ClientID: created.ID, FirstName: "Ana", LastName: "Silva",
		Email: "ana@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.AvatarRef == oldRef || store.has(oldRef) {
		t.Fatalf("expected old handle replaced and deleted (old=%s new=%s)", oldRef, updated.AvatarRef)
	}
}

func TestDeleteContactRemovesAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	store := newMemStore()
	disp := newDispatcher(db)
	ctx := context.Background()

	created, err := NewCreateClient(repo, store, nil, disp).Execute(ctx, CreateClientInput{
		Name: "Acme", Email: "a@acme.com", ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	contact, err := NewCreateContact(repo, store, nil, disp).Execute(ctx, ContactInput{
		ClientID: created.ID, FirstName: "Ana", LastName: "Silva",
		Email: "ana@acme.com", Avatar: upload(t), ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := NewDeleteContact(repo, store, nil, disp).Execute(ctx, contact.ID, "admin-1"); err != nil {
		t.Fatal(err)
	}
	if store.has(contact.AvatarRef) {
		t.Fatal("expected contact avatar deleted")
	}
}

// ======================================================
// BILLING — conflito e validação
// ======================================================

func TestCreateBillingInfoTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)
	disp := newDispatcher(db)
	ctx := context.Background()

	created, err := NewCreateClient(repo, newMemStore(), nil, disp).Execute(ctx, CreateClientInput{
		Name: "Acme", Email: "a@acme.com", ActorID: "admin-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	uc := NewCreateBillingInfo(repo, nil, disp)
	if _, err := uc.Execute(ctx, BillingInfoInput{ClientID: created.ID, ActorID: "admin-1"}); err != nil {
		t.Fatal(err)
	}
	_, err = uc.Execute(ctx, BillingInfoInput{ClientID: created.ID, ActorID: "admin-1"})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBillingInfoInvalidPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)

	_, err := NewCreateBillingInfo(repo, nil, newDispatcher(db)).Execute(context.Background(), BillingInfoInput{
		ClientID:      "irrelevant",
		PaymentMethod: "barter",
	})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindValidation {
		t.Fatalf("expected validation_failed, got %v", err)
	}
}

func TestCreateClientInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewClientGormRepository(db)

	_, err := NewCreateClient(repo, newMemStore(), nil, newDispatcher(db)).Execute(context.Background(), CreateClientInput{
		Name: "Acme", Email: "a@acme.com", Status: "archived",
	})
	if kind, _ := httperr.KindOf(err); kind != httperr.KindValidation {
		t.Fatalf("expected validation_failed, got %v", err)
	}
}
