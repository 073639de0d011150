package models

import "time"

// Client é a raiz do agregado: dono do BillingInfo (1:1) e dos Contacts (1:N).
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`

	Status  string `gorm:"size:20;default:'prospect'" json:"status"`
	Notes   string `gorm:"type:text" json:"notes"`
	Website string `gorm:"size:255" json:"website"`

	// Handle opaco no asset store; só muda junto com um commit bem-sucedido.
	AvatarRef string `gorm:"size:255" json:"avatar_ref"`

	BillingInfo *BillingInfo `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"billing_info,omitempty"`
	Contacts    []Contact    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contacts,omitempty"`

	CreatedBy string `gorm:"type:uuid" json:"created_by"`
	UpdatedBy string `gorm:"type:uuid" json:"updated_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
