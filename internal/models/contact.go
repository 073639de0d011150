package models

import "time"

// Contact — N:1 com Client. No máximo um contato primário por cliente
// (invariante aplicada pelo repositório dentro da transação, não por constraint).
type Contact struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	Position   string `gorm:"size:100" json:"position"`
	Department string `gorm:"size:100" json:"department"`
	IsPrimary  bool   `gorm:"default:false" json:"is_primary"`

	Notes string `gorm:"type:text" json:"notes"`

	AvatarRef string `gorm:"size:255" json:"avatar_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
