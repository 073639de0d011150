package dto

import "time"

type ClientListDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	AvatarRef string    `json:"avatar_ref"`
	CreatedAt time.Time `json:"created_at"`
}
