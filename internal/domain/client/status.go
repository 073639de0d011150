package client

import "github.com/BruksfildServices01/crm-dashboard/internal/httperr"

// ===============================
// Client Status
// ===============================

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusProspect Status = "prospect"
)

func DefaultStatus() Status {
	return StatusProspect
}

// ValidateStatus aceita vazio (assume o default no create).
func ValidateStatus(s string) error {
	switch Status(s) {
	case "", StatusActive, StatusInactive, StatusProspect:
		return nil
	}
	return httperr.ErrValidation("invalid_status")
}

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentOther        PaymentMethod = "other"
)

func DefaultPaymentMethod() PaymentMethod {
	return PaymentBankTransfer
}

func ValidatePaymentMethod(m string) error {
	switch PaymentMethod(m) {
	case "", PaymentBankTransfer, PaymentCreditCard, PaymentPaypal, PaymentOther:
		return nil
	}
	return httperr.ErrValidation("invalid_payment_method")
}
