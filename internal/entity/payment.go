package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Payment struct {
	Id        uuid.UUID                  `json:"id" db:"id"`
	InvoiceId uuid.UUID                  `json:"invoiceId" db:"invoice_id"`
	Status    common.PaymentRecordStatus `json:"status" db:"status"`
	Amount    decimal.Decimal            `json:"amount" db:"amount"`
	PaidAt    *time.Time                 `json:"paidAt" db:"paid_at"`
	Notes     string                     `json:"notes" db:"notes"`
	CreatedAt string                     `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreatePaymentInput struct {
	InvoiceId uuid.UUID
	Amount    decimal.Decimal // copied from the invoice
	Notes     string
	Status    common.PaymentRecordStatus // should be set: PENDING
	// Id UUID sets automatically
}

// controller model
type PaymentOutputModel struct {
	Id        string     `json:"id"`
	InvoiceId string     `json:"invoiceId"`
	Status    string     `json:"status"`
	Amount    string     `json:"amount"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	Notes     string     `json:"notes"`
	CreatedAt string     `json:"createdAt"`
}
