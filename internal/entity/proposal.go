package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Proposal struct {
	Id                    uuid.UUID             `json:"id" db:"id"`
	ProjectId             uuid.UUID             `json:"projectId" db:"project_id"`
	FreelancerId          uuid.UUID             `json:"freelancerId" db:"freelancer_id"`
	Status                common.ProposalStatus `json:"status" db:"status"`
	Amount                decimal.Decimal       `json:"amount" db:"amount"`
	CoverLetter           string                `json:"coverLetter" db:"cover_letter"`
	PlannedStartDate      time.Time             `json:"plannedStartDate" db:"planned_start_date"`
	PlannedEndDate        time.Time             `json:"plannedEndDate" db:"planned_end_date"`
	ActualStartDate       *time.Time            `json:"actualStartDate" db:"actual_start_date"`
	ActualEndDate         *time.Time            `json:"actualEndDate" db:"actual_end_date"`
	EstimatedDurationDays int                   `json:"estimatedDurationDays" db:"estimated_duration_days"`
	CreatedAt             string                `json:"createdAt" db:"created_at"`
}

// milestone terms a freelancer may attach to a bid; copied onto the
// contract when the proposal is accepted
type ProposalMilestone struct {
	Id               uuid.UUID       `json:"id" db:"id"`
	ProposalId       uuid.UUID       `json:"proposalId" db:"proposal_id"`
	Title            string          `json:"title" db:"title"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	PlannedStartDate time.Time       `json:"plannedStartDate" db:"planned_start_date"`
	PlannedEndDate   time.Time       `json:"plannedEndDate" db:"planned_end_date"`
}

// service + repo input model
type CreateProposalInput struct {
	ProjectId             string
	FreelancerId          string
	Amount                decimal.Decimal
	CoverLetter           string
	PlannedStartDate      time.Time
	PlannedEndDate        time.Time
	EstimatedDurationDays int
	Milestones            []ProposalMilestoneInput
	Status                common.ProposalStatus // should be set: PENDING
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

type ProposalMilestoneInput struct {
	Title            string
	Amount           decimal.Decimal
	PlannedStartDate time.Time
	PlannedEndDate   time.Time
}

// editable while the proposal is still PENDING
type ProposalPatch struct {
	Amount           *decimal.Decimal
	CoverLetter      *string
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
}

// controller model
type ProposalOutputModel struct {
	Id               string    `json:"id"`
	ProjectId        string    `json:"projectId"`
	FreelancerId     string    `json:"freelancerId"`
	Status           string    `json:"status"`
	Amount           string    `json:"amount"`
	CoverLetter      string    `json:"coverLetter"`
	PlannedStartDate time.Time `json:"plannedStartDate"`
	PlannedEndDate   time.Time `json:"plannedEndDate"`
	CreatedAt        string    `json:"createdAt"`
}
