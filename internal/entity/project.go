package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Project struct {
	Id                 uuid.UUID            `json:"id" db:"id"`
	CustomerId         uuid.UUID            `json:"customerId" db:"customer_id"`
	Title              string               `json:"title" db:"title"`
	Description        string               `json:"description" db:"description"`
	Status             common.ProjectStatus `json:"status" db:"status"`
	Budget             decimal.Decimal      `json:"budget" db:"budget"`
	PaymentType        common.PaymentType   `json:"paymentType" db:"payment_type"`
	Deadline           *time.Time           `json:"deadline" db:"deadline"`
	FreelancerId       *uuid.UUID           `json:"freelancerId" db:"freelancer_id"`
	AcceptedProposalId *uuid.UUID           `json:"acceptedProposalId" db:"accepted_proposal_id"`
	ContractId         *uuid.UUID           `json:"contractId" db:"contract_id"`
	CreatedAt          string               `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateProjectInput struct {
	CustomerId  string
	Title       string
	Description string
	Budget      decimal.Decimal
	PaymentType common.PaymentType
	Deadline    *time.Time
	Status      common.ProjectStatus // should be set: OPEN
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// partial update applied by workflow cascades; nil fields stay untouched
type ProjectPatch struct {
	Status             *common.ProjectStatus
	FreelancerId       *uuid.UUID
	AcceptedProposalId *uuid.UUID
	ContractId         *uuid.UUID
	ClearFreelancer    bool
	ClearProposal      bool
	ClearContract      bool
}

type ProjectFilter struct {
	CustomerId string
	Status     string
	SearchTerm string
}

// controller model
type ProjectOutputModel struct {
	Id                 string     `json:"id"`
	CustomerId         string     `json:"customerId"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	Budget             string     `json:"budget"`
	PaymentType        string     `json:"paymentType"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	FreelancerId       string     `json:"freelancerId,omitempty"`
	AcceptedProposalId string     `json:"acceptedProposalId,omitempty"`
	ContractId         string     `json:"contractId,omitempty"`
	CreatedAt          string     `json:"createdAt"`
}
