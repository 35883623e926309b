package entity

import (
	"time"

	"freelance-market-api/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Milestone struct {
	Id               uuid.UUID              `json:"id" db:"id"`
	ContractId       uuid.UUID              `json:"contractId" db:"contract_id"`
	Title            string                 `json:"title" db:"title"`
	Status           common.MilestoneStatus `json:"status" db:"status"`
	PaymentStatus    common.PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Amount           decimal.Decimal        `json:"amount" db:"amount"`
	PenaltyAmount    decimal.Decimal        `json:"penaltyAmount" db:"penalty_amount"`
	BonusAmount      decimal.Decimal        `json:"bonusAmount" db:"bonus_amount"`
	PlannedStartDate time.Time              `json:"plannedStartDate" db:"planned_start_date"`
	PlannedEndDate   time.Time              `json:"plannedEndDate" db:"planned_end_date"`
	ActualStartDate  *time.Time             `json:"actualStartDate" db:"actual_start_date"`
	ActualEndDate    *time.Time             `json:"actualEndDate" db:"actual_end_date"`
	CreatedAt        string                 `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateMilestoneInput struct {
	ContractId       string
	Title            string
	Amount           decimal.Decimal
	PenaltyAmount    decimal.Decimal
	BonusAmount      decimal.Decimal
	PlannedStartDate time.Time
	PlannedEndDate   time.Time
	Status           common.MilestoneStatus // should be set: PENDING
	// Id UUID sets automatically
}

// partial update; nil fields stay untouched
type MilestonePatch struct {
	Title            *string
	Amount           *decimal.Decimal
	PenaltyAmount    *decimal.Decimal
	BonusAmount      *decimal.Decimal
	PlannedStartDate *time.Time
	PlannedEndDate   *time.Time
	ActualStartDate  *time.Time
	ActualEndDate    *time.Time
}

// controller model
type MilestoneOutputModel struct {
	Id               string     `json:"id"`
	ContractId       string     `json:"contractId"`
	Title            string     `json:"title"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"paymentStatus"`
	Amount           string     `json:"amount"`
	PenaltyAmount    string     `json:"penaltyAmount"`
	BonusAmount      string     `json:"bonusAmount"`
	PlannedStartDate time.Time  `json:"plannedStartDate"`
	PlannedEndDate   time.Time  `json:"plannedEndDate"`
	ActualStartDate  *time.Time `json:"actualStartDate,omitempty"`
	ActualEndDate    *time.Time `json:"actualEndDate,omitempty"`
	CreatedAt        string     `json:"createdAt"`
}
