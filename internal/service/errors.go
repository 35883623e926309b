package service

import (
	"errors"
	"fmt"
)

// The four base errors form the taxonomy every business failure belongs to.
// Controllers map them to HTTP codes with errors.Is; the concrete errors
// below each wrap exactly one base.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	ErrProjectNotFound   = fmt.Errorf("%w: project", ErrNotFound)
	ErrProposalNotFound  = fmt.Errorf("%w: proposal", ErrNotFound)
	ErrContractNotFound  = fmt.Errorf("%w: contract", ErrNotFound)
	ErrMilestoneNotFound = fmt.Errorf("%w: milestone", ErrNotFound)
	ErrInvoiceNotFound   = fmt.Errorf("%w: invoice", ErrNotFound)
	ErrPaymentNotFound   = fmt.Errorf("%w: payment", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
)

var (
	ErrProjectNotBiddable  = fmt.Errorf("%w: project is not open for proposals", ErrInvalidState)
	ErrProjectClosed       = fmt.Errorf("%w: project is completed or cancelled", ErrInvalidState)
	ErrContractClosed      = fmt.Errorf("%w: contract is completed or cancelled", ErrInvalidState)
	ErrProposalNotPending  = fmt.Errorf("%w: proposal can only be edited while pending", ErrInvalidState)
	ErrInvoiceAlreadyPaid  = fmt.Errorf("%w: invoice is already paid", ErrInvalidState)
	ErrIllegalTransition   = fmt.Errorf("%w: transition not allowed", ErrInvalidState)
	ErrProjectHasContract  = fmt.Errorf("%w: project has an active contract", ErrInvalidState)
	ErrProposalHasContract = fmt.Errorf("%w: a contract references this proposal", ErrInvalidState)
)

var (
	ErrDuplicateProposal     = fmt.Errorf("%w: freelancer already has a proposal for this project", ErrConflict)
	ErrProjectNotAccepting   = fmt.Errorf("%w: project is no longer open for acceptance", ErrConflict)
	ErrContractHasInvoices   = fmt.Errorf("%w: contract has invoices", ErrConflict)
	ErrContractHasMilestones = fmt.Errorf("%w: contract has milestones", ErrConflict)
	ErrInvoiceHasPayment     = fmt.Errorf("%w: invoice already has a payment", ErrConflict)
)

var (
	ErrMilestoneNotOnContract = fmt.Errorf("%w: milestone does not belong to the contract", ErrInvalidArgument)
	ErrInvoiceNotOnContract   = fmt.Errorf("%w: invoice does not belong to the contract", ErrInvalidArgument)
)
