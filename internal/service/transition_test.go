package service

import (
	"errors"
	"testing"

	"freelance-market-api/internal/common"
)

func TestLookupTransitionSameStatusIsNoOp(t *testing.T) {
	kinds := []struct {
		kind   EntityKind
		status string
	}{
		{KindProject, string(common.ProjectOpen)},
		{KindProposal, string(common.ProposalPending)},
		{KindContract, string(common.ContractActive)},
		{KindMilestone, string(common.MilestoneCompleted)},
		{KindInvoice, string(common.InvoicePaid)},
		{KindPayment, string(common.PaymentRecordPending)},
	}

	for _, tc := range kinds {
		action, changed, err := lookupTransition(tc.kind, tc.status, tc.status)
		if err != nil {
			t.Fatalf("%s %s->%s: unexpected error %v", tc.kind, tc.status, tc.status, err)
		}
		if changed {
			t.Fatalf("%s %s->%s: same-status request should be a no-op", tc.kind, tc.status, tc.status)
		}
		if action != cascadeNone {
			t.Fatalf("%s %s->%s: no-op must carry no cascade", tc.kind, tc.status, tc.status)
		}
	}
}

func TestLookupTransitionLegalMoves(t *testing.T) {
	cases := []struct {
		kind   EntityKind
		from   string
		to     string
		action cascadeAction
	}{
		{KindProject, "NONE", "OPEN", cascadeNone},
		{KindProject, "OPEN", "CANCELLED", cascadeNone},
		{KindProject, "ON_HOLD", "OPEN", cascadeNone},
		{KindProposal, "PENDING", "ACCEPTED", cascadeAcceptProposal},
		{KindProposal, "PENDING", "WITHDRAWN", cascadeWithdrawProposal},
		{KindProposal, "ACCEPTED", "WITHDRAWN", cascadeWithdrawProposal},
		{KindProposal, "REJECTED", "PENDING", cascadeNone},
		{KindContract, "ACTIVE", "ON_HOLD", cascadeContractToProject},
		{KindContract, "ON_HOLD", "ACTIVE", cascadeContractToProject},
		{KindContract, "ACTIVE", "TERMINATED", cascadeContractToProject},
		{KindContract, "COMPLETED", "ACTIVE", cascadeContractToProject},
		{KindMilestone, "PENDING", "IN_PROGRESS", cascadeMilestoneReopened},
		{KindMilestone, "IN_PROGRESS", "COMPLETED", cascadeMilestoneSettled},
		{KindMilestone, "COMPLETED", "PAID", cascadeMilestoneSettled},
		{KindMilestone, "PAID", "PENDING", cascadeMilestoneReopened},
		{KindInvoice, "PENDING", "PAID", cascadeInvoicePaid},
		{KindInvoice, "PAID", "PENDING", cascadeInvoiceReverted},
		{KindInvoice, "PAID", "CANCELLED", cascadeInvoiceReverted},
		{KindPayment, "PENDING", "PAID", cascadePaymentPaid},
	}

	for _, tc := range cases {
		action, changed, err := lookupTransition(tc.kind, tc.from, tc.to)
		if err != nil {
			t.Fatalf("%s %s->%s: unexpected error %v", tc.kind, tc.from, tc.to, err)
		}
		if !changed {
			t.Fatalf("%s %s->%s: expected a real transition", tc.kind, tc.from, tc.to)
		}
		if action != tc.action {
			t.Fatalf("%s %s->%s: got cascade %d, want %d", tc.kind, tc.from, tc.to, action, tc.action)
		}
	}
}

func TestLookupTransitionIllegalMoves(t *testing.T) {
	cases := []struct {
		kind EntityKind
		from string
		to   string
	}{
		{KindProject, "OPEN", "COMPLETED"},
		{KindProject, "COMPLETED", "OPEN"},
		{KindProject, "CANCELLED", "OPEN"},
		{KindProposal, "REJECTED", "ACCEPTED"},
		{KindProposal, "WITHDRAWN", "ACCEPTED"},
		{KindContract, "CANCELLED", "ACTIVE"},
		{KindContract, "TERMINATED", "ACTIVE"},
		{KindMilestone, "PENDING", "PAID"},
		{KindMilestone, "CANCELLED", "COMPLETED"},
		{KindInvoice, "CANCELLED", "PAID"},
		{KindPayment, "PAID", "PENDING"},
	}

	for _, tc := range cases {
		_, _, err := lookupTransition(tc.kind, tc.from, tc.to)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("%s %s->%s: expected ErrIllegalTransition, got %v", tc.kind, tc.from, tc.to, err)
		}
	}
}
