package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Invoice struct {
	Id          uuid.UUID            `json:"id" db:"id"`
	ContractId  uuid.UUID            `json:"contractId" db:"contract_id"`
	MilestoneId *uuid.UUID           `json:"milestoneId" db:"milestone_id"`
	PaymentId   *uuid.UUID           `json:"paymentId" db:"payment_id"`
	Status      common.InvoiceStatus `json:"status" db:"status"`
	Amount      decimal.Decimal      `json:"amount" db:"amount"`
	IssuedAt    time.Time            `json:"issuedAt" db:"issued_at"`
	DueDate     time.Time            `json:"dueDate" db:"due_date"`
	CreatedAt   string               `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateInvoiceInput struct {
	ContractId  string
	MilestoneId string // optional; empty means the invoice bills the whole contract
	Amount      decimal.Decimal
	IssuedAt    time.Time
	DueDate     time.Time
	Status      common.InvoiceStatus // should be set: PENDING
	// Id UUID sets automatically
}

// partial update; ClearPayment detaches an existing payment reference
type InvoicePatch struct {
	Status       *common.InvoiceStatus
	PaymentId    *uuid.UUID
	DueDate      *time.Time
	ClearPayment bool
}

// controller model
type InvoiceOutputModel struct {
	Id          string    `json:"id"`
	ContractId  string    `json:"contractId"`
	MilestoneId string    `json:"milestoneId,omitempty"`
	PaymentId   string    `json:"paymentId,omitempty"`
	Status      string    `json:"status"`
	Amount      string    `json:"amount"`
	IssuedAt    time.Time `json:"issuedAt"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   string    `json:"createdAt"`
}
