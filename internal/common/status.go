package common

type ProjectStatus string

const (
	ProjectNone              ProjectStatus = "NONE"
	ProjectOpen              ProjectStatus = "OPEN"
	ProjectProposalsReceived ProjectStatus = "PROPOSALS_RECEIVED"
	ProjectInProgress        ProjectStatus = "IN_PROGRESS"
	ProjectOnHold            ProjectStatus = "ON_HOLD"
	ProjectCompleted         ProjectStatus = "COMPLETED"
	ProjectCancelled         ProjectStatus = "CANCELLED"
	ProjectTerminated        ProjectStatus = "TERMINATED"
)

type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "PENDING"
	ProposalAccepted  ProposalStatus = "ACCEPTED"
	ProposalRejected  ProposalStatus = "REJECTED"
	ProposalWithdrawn ProposalStatus = "WITHDRAWN"
)

type ContractStatus string

const (
	ContractActive     ContractStatus = "ACTIVE"
	ContractOnHold     ContractStatus = "ON_HOLD"
	ContractCompleted  ContractStatus = "COMPLETED"
	ContractCancelled  ContractStatus = "CANCELLED"
	ContractTerminated ContractStatus = "TERMINATED"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "PENDING"
	MilestoneInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneCompleted  MilestoneStatus = "COMPLETED"
	MilestonePaid       MilestoneStatus = "PAID"
	MilestoneCancelled  MilestoneStatus = "CANCELLED"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

type PaymentRecordStatus string

const (
	PaymentRecordPending PaymentRecordStatus = "PENDING"
	PaymentRecordPaid    PaymentRecordStatus = "PAID"
)

// PaymentStatus is the derived payment progress carried by contracts and milestones.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
)

type PaymentType string

const (
	PaymentTypeUponCompletion PaymentType = "UPON_COMPLETION"
	PaymentTypeMilestone      PaymentType = "MILESTONE"
)

type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleFreelancer UserRole = "FREELANCER"
)

// ProjectStatusForContract maps a contract status to the project status it implies.
func ProjectStatusForContract(s ContractStatus) ProjectStatus {
	switch s {
	case ContractActive:
		return ProjectInProgress
	case ContractOnHold:
		return ProjectOnHold
	case ContractCompleted:
		return ProjectCompleted
	case ContractCancelled:
		return ProjectCancelled
	case ContractTerminated:
		return ProjectTerminated
	}

	return ProjectInProgress
}

// ProjectClosed reports whether the project no longer admits proposal changes.
func ProjectClosed(s ProjectStatus) bool {
	return s == ProjectCompleted || s == ProjectCancelled || s == ProjectNone
}

// ProjectAcceptingProposals reports whether new bids or acceptances are possible.
func ProjectAcceptingProposals(s ProjectStatus) bool {
	return s == ProjectOpen || s == ProjectProposalsReceived
}

// MilestoneSettled reports whether the milestone no longer blocks contract completion.
func MilestoneSettled(s MilestoneStatus) bool {
	return s == MilestoneCompleted || s == MilestoneCancelled || s == MilestonePaid
}
