package service

import (
	"freelance-market-api/internal/common"
)

// The status machines of the workflow are encoded as one lookup table:
// (entity kind, current status, requested status) -> rule. Every UpdateStatus
// entry point consults the table before touching the database, so the full
// set of legal transitions and the cascade each one triggers can be tested
// as a unit instead of being buried in per-service conditionals.

type EntityKind string

const (
	KindProject   EntityKind = "project"
	KindProposal  EntityKind = "proposal"
	KindContract  EntityKind = "contract"
	KindMilestone EntityKind = "milestone"
	KindInvoice   EntityKind = "invoice"
	KindPayment   EntityKind = "payment"
)

// cascadeAction identifies the side effect a transition triggers on related
// entities. The actions themselves are service methods; the table only names
// them.
type cascadeAction int

const (
	cascadeNone cascadeAction = iota

	// proposal
	cascadeAcceptProposal   // build contract, reject siblings, flip project
	cascadeWithdrawProposal // clear project freelancer, project back to PROPOSALS_RECEIVED

	// contract
	cascadeContractToProject // mirror contract status onto the project

	// milestone
	cascadeMilestoneReopened   // milestone active again, contract forced ACTIVE
	cascadeMilestoneSettled    // aggregate check over siblings, maybe contract COMPLETED

	// invoice
	cascadeInvoicePaid     // mark milestone/contract paid, bump totals
	cascadeInvoiceReverted // undo the paid cascade, recompute payment status

	// payment
	cascadePaymentPaid // drive the owning invoice to PAID
)

type transitionKey struct {
	kind EntityKind
	from string
	to   string
}

func key(kind EntityKind, from, to string) transitionKey {
	return transitionKey{kind: kind, from: from, to: to}
}

var transitions = buildTransitionTable()

func buildTransitionTable() map[transitionKey]cascadeAction {
	t := make(map[transitionKey]cascadeAction)

	// Project: user-initiated moves only. Cascade-driven project writes go
	// through the contract mapping and bypass this table.
	project := func(from, to common.ProjectStatus, c cascadeAction) {
		t[key(KindProject, string(from), string(to))] = c
	}
	project(common.ProjectNone, common.ProjectOpen, cascadeNone)
	project(common.ProjectOpen, common.ProjectProposalsReceived, cascadeNone)
	project(common.ProjectOpen, common.ProjectCancelled, cascadeNone)
	project(common.ProjectOpen, common.ProjectOnHold, cascadeNone)
	project(common.ProjectProposalsReceived, common.ProjectCancelled, cascadeNone)
	project(common.ProjectProposalsReceived, common.ProjectOnHold, cascadeNone)
	project(common.ProjectOnHold, common.ProjectOpen, cascadeNone)
	project(common.ProjectOnHold, common.ProjectProposalsReceived, cascadeNone)

	proposal := func(from, to common.ProposalStatus, c cascadeAction) {
		t[key(KindProposal, string(from), string(to))] = c
	}
	proposal(common.ProposalPending, common.ProposalAccepted, cascadeAcceptProposal)
	proposal(common.ProposalPending, common.ProposalRejected, cascadeNone)
	proposal(common.ProposalPending, common.ProposalWithdrawn, cascadeWithdrawProposal)
	proposal(common.ProposalRejected, common.ProposalPending, cascadeNone)
	proposal(common.ProposalWithdrawn, common.ProposalPending, cascadeNone)
	proposal(common.ProposalAccepted, common.ProposalWithdrawn, cascadeWithdrawProposal)
	proposal(common.ProposalAccepted, common.ProposalRejected, cascadeNone)

	contract := func(from, to common.ContractStatus, c cascadeAction) {
		t[key(KindContract, string(from), string(to))] = c
	}
	contract(common.ContractActive, common.ContractOnHold, cascadeContractToProject)
	contract(common.ContractActive, common.ContractCompleted, cascadeContractToProject)
	contract(common.ContractActive, common.ContractCancelled, cascadeContractToProject)
	contract(common.ContractActive, common.ContractTerminated, cascadeContractToProject)
	contract(common.ContractOnHold, common.ContractActive, cascadeContractToProject)
	contract(common.ContractOnHold, common.ContractCompleted, cascadeContractToProject)
	contract(common.ContractOnHold, common.ContractCancelled, cascadeContractToProject)
	contract(common.ContractOnHold, common.ContractTerminated, cascadeContractToProject)
	// a completed contract reopens when a milestone or invoice is reverted
	contract(common.ContractCompleted, common.ContractActive, cascadeContractToProject)

	milestone := func(from, to common.MilestoneStatus, c cascadeAction) {
		t[key(KindMilestone, string(from), string(to))] = c
	}
	milestone(common.MilestonePending, common.MilestoneInProgress, cascadeMilestoneReopened)
	milestone(common.MilestonePending, common.MilestoneCompleted, cascadeMilestoneSettled)
	milestone(common.MilestonePending, common.MilestoneCancelled, cascadeMilestoneReopened)
	milestone(common.MilestoneInProgress, common.MilestonePending, cascadeMilestoneReopened)
	milestone(common.MilestoneInProgress, common.MilestoneCompleted, cascadeMilestoneSettled)
	milestone(common.MilestoneInProgress, common.MilestoneCancelled, cascadeMilestoneReopened)
	milestone(common.MilestoneCompleted, common.MilestonePaid, cascadeMilestoneSettled)
	milestone(common.MilestoneCompleted, common.MilestoneInProgress, cascadeMilestoneReopened)
	milestone(common.MilestoneCompleted, common.MilestonePending, cascadeMilestoneReopened)
	milestone(common.MilestonePaid, common.MilestonePending, cascadeMilestoneReopened)
	milestone(common.MilestoneCancelled, common.MilestonePending, cascadeMilestoneReopened)

	invoice := func(from, to common.InvoiceStatus, c cascadeAction) {
		t[key(KindInvoice, string(from), string(to))] = c
	}
	invoice(common.InvoicePending, common.InvoicePaid, cascadeInvoicePaid)
	invoice(common.InvoicePending, common.InvoiceCancelled, cascadeInvoiceReverted)
	invoice(common.InvoicePaid, common.InvoicePending, cascadeInvoiceReverted)
	invoice(common.InvoicePaid, common.InvoiceCancelled, cascadeInvoiceReverted)
	invoice(common.InvoiceCancelled, common.InvoicePending, cascadeInvoiceReverted)

	payment := func(from, to common.PaymentRecordStatus, c cascadeAction) {
		t[key(KindPayment, string(from), string(to))] = c
	}
	payment(common.PaymentRecordPending, common.PaymentRecordPaid, cascadePaymentPaid)

	return t
}

// lookupTransition returns the cascade for a requested transition, or
// ErrIllegalTransition when the pair is not in the table. A same-status
// request is a no-op, signalled by ok=false with a nil error.
func lookupTransition(kind EntityKind, from, to string) (cascadeAction, bool, error) {
	if from == to {
		return cascadeNone, false, nil
	}

	action, ok := transitions[key(kind, from, to)]
	if !ok {
		return cascadeNone, false, ErrIllegalTransition
	}

	return action, true, nil
}
