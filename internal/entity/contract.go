package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Contract struct {
	Id               uuid.UUID             `json:"id" db:"id"`
	ProjectId        uuid.UUID             `json:"projectId" db:"project_id"`
	ProposalId       uuid.UUID             `json:"proposalId" db:"proposal_id"`
	CustomerId       uuid.UUID             `json:"customerId" db:"customer_id"`
	FreelancerId     uuid.UUID             `json:"freelancerId" db:"freelancer_id"`
	Status           common.ContractStatus `json:"status" db:"status"`
	Amount           decimal.Decimal       `json:"amount" db:"amount"`
	TotalPaid        decimal.Decimal       `json:"totalPaid" db:"total_paid"`
	RemainingBalance decimal.Decimal       `json:"remainingBalance" db:"remaining_balance"`
	PaymentStatus    common.PaymentStatus  `json:"paymentStatus" db:"payment_status"`
	PaymentType      common.PaymentType    `json:"paymentType" db:"payment_type"`
	StartDate        time.Time             `json:"startDate" db:"start_date"`
	EndDate          time.Time             `json:"endDate" db:"end_date"`
	CompletedAt      *time.Time            `json:"completedAt" db:"completed_at"`
	TerminatedAt     *time.Time            `json:"terminatedAt" db:"terminated_at"`
	CreatedAt        string                `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateContractInput struct {
	ProjectId    uuid.UUID
	ProposalId   uuid.UUID
	CustomerId   uuid.UUID
	FreelancerId uuid.UUID
	Amount       decimal.Decimal
	PaymentType  common.PaymentType
	StartDate    time.Time
	EndDate      time.Time
	Status       common.ContractStatus // should be set: ACTIVE
	// Id UUID sets automatically
	// TotalPaid starts at zero, RemainingBalance at Amount
}

// partial update; nil fields stay untouched
type ContractPatch struct {
	Status           *common.ContractStatus
	InvoiceId        *uuid.UUID
	PaymentId        *uuid.UUID
	TotalPaid        *decimal.Decimal
	PaymentStatus    *common.PaymentStatus
	CompletedAt      *time.Time
	TerminatedAt     *time.Time
	ClearCompletedAt bool
}

type ContractFilter struct {
	CustomerName   string
	FreelancerName string
	Status         string
	SearchTerm     string
}

// controller model
type ContractOutputModel struct {
	Id               string     `json:"id"`
	ProjectId        string     `json:"projectId"`
	ProposalId       string     `json:"proposalId"`
	CustomerId       string     `json:"customerId"`
	FreelancerId     string     `json:"freelancerId"`
	Status           string     `json:"status"`
	Amount           string     `json:"amount"`
	TotalPaid        string     `json:"totalPaid"`
	RemainingBalance string     `json:"remainingBalance"`
	PaymentStatus    string     `json:"paymentStatus"`
	PaymentType      string     `json:"paymentType"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	TerminatedAt     *time.Time `json:"terminatedAt,omitempty"`
	CreatedAt        string     `json:"createdAt"`
}
