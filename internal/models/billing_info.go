package models

import "time"

// BillingInfo é 1:1 com Client — uniqueIndex em client_id garante no máximo um por cliente.
type BillingInfo struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`

	CompanyName string `gorm:"size:100" json:"company_name"`
	VatNumber   string `gorm:"size:50" json:"vat_number"`

	FiscalAddress    string `gorm:"size:255" json:"fiscal_address"`
	FiscalCity       string `gorm:"size:100" json:"fiscal_city"`
	FiscalPostalCode string `gorm:"size:20" json:"fiscal_postal_code"`
	FiscalCountry    string `gorm:"size:100" json:"fiscal_country"`

	PaymentMethod string `gorm:"size:20;default:'bank_transfer'" json:"payment_method"`
	BankAccount   string `gorm:"size:50" json:"bank_account"`
	BankName      string `gorm:"size:100" json:"bank_name"`
	SwiftBic      string `gorm:"size:20" json:"swift_bic"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
