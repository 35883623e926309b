package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type testEnv struct {
	store        *memRepo
	svc          *Services
	customerId   uuid.UUID
	freelancerId uuid.UUID
	projectId    string
}

func newTestEnv(t *testing.T, paymentType common.PaymentType) *testEnv {
	t.Helper()

	store := newMemRepo()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewServices(store.repositories(), store, log)

	customerId := store.addUser(common.RoleCustomer)
	freelancerId := store.addUser(common.RoleFreelancer)

	project, err := svc.Project.CreateProject(context.Background(), &entity.CreateProjectInput{
		CustomerId:  customerId.String(),
		Title:       "build a data pipeline",
		Description: "ingest and transform",
		Budget:      decimal.NewFromInt(1000),
		PaymentType: paymentType,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Status != string(common.ProjectOpen) {
		t.Fatalf("new project should be OPEN, got %s", project.Status)
	}

	return &testEnv{
		store:        store,
		svc:          svc,
		customerId:   customerId,
		freelancerId: freelancerId,
		projectId:    project.Id,
	}
}

func (e *testEnv) submitProposal(t *testing.T, freelancerId uuid.UUID, amount int64, milestoneAmounts ...int64) *entity.ProposalOutputModel {
	t.Helper()

	input := &entity.CreateProposalInput{
		ProjectId:        e.projectId,
		FreelancerId:     freelancerId.String(),
		Amount:           decimal.NewFromInt(amount),
		CoverLetter:      "I can do this",
		PlannedStartDate: time.Now(),
		PlannedEndDate:   time.Now().AddDate(0, 1, 0),
	}
	for i, a := range milestoneAmounts {
		input.Milestones = append(input.Milestones, entity.ProposalMilestoneInput{
			Title:            "phase " + string(rune('A'+i)),
			Amount:           decimal.NewFromInt(a),
			PlannedStartDate: time.Now(),
			PlannedEndDate:   time.Now().AddDate(0, 1, 0),
		})
	}

	proposal, err := e.svc.Proposal.SubmitProposal(context.Background(), input)
	if err != nil {
		t.Fatalf("submit proposal: %v", err)
	}

	return proposal
}

func (e *testEnv) acceptProposal(t *testing.T, proposalId string) *entity.ContractOutputModel {
	t.Helper()

	_, err := e.svc.Proposal.UpdateProposalStatusById(context.Background(), proposalId, common.ProposalAccepted)
	if err != nil {
		t.Fatalf("accept proposal: %v", err)
	}

	contract, err := e.svc.Contract.GetContractByProjectId(context.Background(), e.projectId)
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}

	return contract
}

func (e *testEnv) project(t *testing.T) *entity.Project {
	t.Helper()

	p, err := e.store.GetProjectById(context.Background(), e.projectId)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}

	return p
}

func (e *testEnv) contract(t *testing.T, id string) *entity.Contract {
	t.Helper()

	c, err := e.store.GetContractById(context.Background(), id)
	if err != nil {
		t.Fatalf("get contract: %v", err)
	}

	return c
}

func (e *testEnv) payInvoice(t *testing.T, invoiceId string) *entity.PaymentOutputModel {
	t.Helper()

	payment, err := e.svc.Payment.CreatePayment(context.Background(), invoiceId, "wire transfer")
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	payment, err = e.svc.Payment.UpdatePaymentStatusById(context.Background(), payment.Id, common.PaymentRecordPaid)
	if err != nil {
		t.Fatalf("settle payment: %v", err)
	}

	return payment
}

func TestSubmitProposalMovesProjectToProposalsReceived(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	env.submitProposal(t, env.freelancerId, 800)

	if got := env.project(t).Status; got != common.ProjectProposalsReceived {
		t.Fatalf("project status = %s, want PROPOSALS_RECEIVED", got)
	}
}

func TestSubmitProposalDuplicateRejected(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	env.submitProposal(t, env.freelancerId, 800)

	_, err := env.svc.Proposal.SubmitProposal(context.Background(), &entity.CreateProposalInput{
		ProjectId:        env.projectId,
		FreelancerId:     env.freelancerId.String(),
		Amount:           decimal.NewFromInt(700),
		PlannedStartDate: time.Now(),
		PlannedEndDate:   time.Now().AddDate(0, 1, 0),
	})
	if !errors.Is(err, ErrDuplicateProposal) {
		t.Fatalf("expected ErrDuplicateProposal, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatal("duplicate proposal should belong to the conflict class")
	}
}

func TestAcceptProposalAwardsProject(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeMilestone)
	other := env.store.addUser(common.RoleFreelancer)

	winner := env.submitProposal(t, env.freelancerId, 1000, 500, 500)
	loser := env.submitProposal(t, other, 900)

	contract := env.acceptProposal(t, winner.Id)

	if contract.Status != string(common.ContractActive) {
		t.Fatalf("contract status = %s, want ACTIVE", contract.Status)
	}
	if contract.Amount != "1000" {
		t.Fatalf("contract amount = %s, want 1000", contract.Amount)
	}

	project := env.project(t)
	if project.Status != common.ProjectInProgress {
		t.Fatalf("project status = %s, want IN_PROGRESS", project.Status)
	}
	if project.FreelancerId == nil || *project.FreelancerId != env.freelancerId {
		t.Fatal("project should reference the winning freelancer")
	}
	if project.AcceptedProposalId == nil || project.AcceptedProposalId.String() != winner.Id {
		t.Fatal("project should reference the accepted proposal")
	}
	if project.ContractId == nil || project.ContractId.String() != contract.Id {
		t.Fatal("project should reference the contract")
	}

	loserAfter, err := env.svc.Proposal.GetProposalById(context.Background(), loser.Id)
	if err != nil {
		t.Fatalf("get losing proposal: %v", err)
	}
	if loserAfter.Status != string(common.ProposalRejected) {
		t.Fatalf("losing proposal status = %s, want REJECTED", loserAfter.Status)
	}

	milestones, err := env.svc.Milestone.GetMilestonesByContractId(context.Background(), contract.Id)
	if err != nil {
		t.Fatalf("get milestones: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("bid milestones should be copied to the contract, got %d", len(milestones))
	}
	for _, m := range milestones {
		if m.Status != string(common.MilestonePending) {
			t.Fatalf("copied milestone status = %s, want PENDING", m.Status)
		}
	}
}

func TestAcceptProposalIsIdempotent(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	env.acceptProposal(t, winner.Id)

	// replaying the acceptance is a no-op, not a second award
	if _, err := env.svc.Proposal.UpdateProposalStatusById(context.Background(), winner.Id, common.ProposalAccepted); err != nil {
		t.Fatalf("replayed acceptance: %v", err)
	}
	if len(env.store.contracts) != 1 {
		t.Fatalf("expected exactly one contract, got %d", len(env.store.contracts))
	}
}

func TestAcceptSecondProposalAfterAwardConflicts(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)
	other := env.store.addUser(common.RoleFreelancer)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	loser := env.submitProposal(t, other, 900)
	env.acceptProposal(t, winner.Id)

	// resurrect the rejected bid, then try to accept it
	if _, err := env.svc.Proposal.UpdateProposalStatusById(context.Background(), loser.Id, common.ProposalPending); err != nil {
		t.Fatalf("reset losing proposal: %v", err)
	}
	_, err := env.svc.Proposal.UpdateProposalStatusById(context.Background(), loser.Id, common.ProposalAccepted)
	if !errors.Is(err, ErrProjectNotAccepting) {
		t.Fatalf("expected ErrProjectNotAccepting, got %v", err)
	}
}

func TestWithdrawAcceptedProposalReleasesProject(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	env.acceptProposal(t, winner.Id)

	if _, err := env.svc.Proposal.UpdateProposalStatusById(context.Background(), winner.Id, common.ProposalWithdrawn); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	project := env.project(t)
	if project.Status != common.ProjectProposalsReceived {
		t.Fatalf("project status = %s, want PROPOSALS_RECEIVED", project.Status)
	}
	// freelancer and accepted proposal are only ever both set or both null
	if project.FreelancerId != nil || project.AcceptedProposalId != nil {
		t.Fatal("withdrawing the assigned freelancer should clear both assignment fields")
	}
}

func TestMilestonePaymentFlow(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeMilestone)

	winner := env.submitProposal(t, env.freelancerId, 1000, 500, 500)
	contract := env.acceptProposal(t, winner.Id)

	milestones, err := env.svc.Milestone.GetMilestonesByContractId(context.Background(), contract.Id)
	if err != nil {
		t.Fatalf("get milestones: %v", err)
	}
	m1, m2 := milestones[0], milestones[1]

	if _, err := env.svc.Milestone.UpdateMilestoneStatusById(context.Background(), m1.Id, common.MilestoneInProgress); err != nil {
		t.Fatalf("start milestone: %v", err)
	}
	if _, err := env.svc.Milestone.UpdateMilestoneStatusById(context.Background(), m1.Id, common.MilestoneCompleted); err != nil {
		t.Fatalf("complete milestone: %v", err)
	}

	invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, m1.Id)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if invoice.Amount != "500" {
		t.Fatalf("milestone invoice amount = %s, want 500", invoice.Amount)
	}

	env.payInvoice(t, invoice.Id)

	m1After, err := env.store.GetMilestoneById(context.Background(), m1.Id)
	if err != nil {
		t.Fatalf("get milestone: %v", err)
	}
	if m1After.Status != common.MilestonePaid || m1After.PaymentStatus != common.PaymentPaid {
		t.Fatalf("paid milestone = %s/%s, want PAID/PAID", m1After.Status, m1After.PaymentStatus)
	}

	cAfter := env.contract(t, contract.Id)
	if cAfter.Status != common.ContractActive {
		t.Fatalf("contract status = %s, want ACTIVE while a milestone is open", cAfter.Status)
	}
	if cAfter.PaymentStatus != common.PaymentPartiallyPaid {
		t.Fatalf("contract payment status = %s, want PARTIALLY_PAID", cAfter.PaymentStatus)
	}
	if !cAfter.TotalPaid.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("contract totalPaid = %s, want 500", cAfter.TotalPaid)
	}
	if !cAfter.RemainingBalance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("contract remainingBalance = %s, want 500", cAfter.RemainingBalance)
	}

	// settle the second milestone the same way
	if _, err := env.svc.Milestone.UpdateMilestoneStatusById(context.Background(), m2.Id, common.MilestoneCompleted); err != nil {
		t.Fatalf("complete second milestone: %v", err)
	}
	invoice2, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, m2.Id)
	if err != nil {
		t.Fatalf("create second invoice: %v", err)
	}
	env.payInvoice(t, invoice2.Id)

	cFinal := env.contract(t, contract.Id)
	if cFinal.Status != common.ContractCompleted {
		t.Fatalf("contract status = %s, want COMPLETED after every milestone settled", cFinal.Status)
	}
	if cFinal.PaymentStatus != common.PaymentPaid {
		t.Fatalf("contract payment status = %s, want PAID", cFinal.PaymentStatus)
	}
	if !cFinal.TotalPaid.Equal(decimal.NewFromInt(1000)) || !cFinal.RemainingBalance.IsZero() {
		t.Fatalf("contract totals = %s paid / %s remaining, want 1000 / 0", cFinal.TotalPaid, cFinal.RemainingBalance)
	}
	if cFinal.CompletedAt == nil {
		t.Fatal("completed contract should carry completedAt")
	}

	if got := env.project(t).Status; got != common.ProjectCompleted {
		t.Fatalf("project status = %s, want COMPLETED", got)
	}
}

func TestUponCompletionPaymentFlow(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	contract := env.acceptProposal(t, winner.Id)

	invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, "")
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if invoice.Amount != "1000" {
		t.Fatalf("contract invoice amount = %s, want 1000", invoice.Amount)
	}

	env.payInvoice(t, invoice.Id)

	cAfter := env.contract(t, contract.Id)
	if cAfter.Status != common.ContractCompleted {
		t.Fatalf("contract status = %s, want COMPLETED", cAfter.Status)
	}
	if cAfter.PaymentStatus != common.PaymentPaid {
		t.Fatalf("contract payment status = %s, want PAID", cAfter.PaymentStatus)
	}
	if !cAfter.TotalPaid.Equal(decimal.NewFromInt(1000)) || !cAfter.RemainingBalance.IsZero() {
		t.Fatalf("contract totals = %s paid / %s remaining, want 1000 / 0", cAfter.TotalPaid, cAfter.RemainingBalance)
	}
	if got := env.project(t).Status; got != common.ProjectCompleted {
		t.Fatalf("project status = %s, want COMPLETED", got)
	}
}

func TestDeletePaymentRevertsSettlement(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	contract := env.acceptProposal(t, winner.Id)

	invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, "")
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	payment := env.payInvoice(t, invoice.Id)

	if err := env.svc.Payment.DeletePaymentById(context.Background(), payment.Id); err != nil {
		t.Fatalf("delete payment: %v", err)
	}

	invAfter, err := env.store.GetInvoiceById(context.Background(), invoice.Id)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if invAfter.Status != common.InvoicePending {
		t.Fatalf("invoice status = %s, want PENDING after payment deletion", invAfter.Status)
	}
	if invAfter.PaymentId != nil {
		t.Fatal("invoice should no longer reference the deleted payment")
	}

	cAfter := env.contract(t, contract.Id)
	if cAfter.Status != common.ContractActive {
		t.Fatalf("contract status = %s, want ACTIVE after revert", cAfter.Status)
	}
	if cAfter.PaymentStatus != common.PaymentPending {
		t.Fatalf("contract payment status = %s, want PENDING after revert", cAfter.PaymentStatus)
	}
	if !cAfter.TotalPaid.IsZero() || !cAfter.RemainingBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("contract totals = %s paid / %s remaining, want 0 / 1000", cAfter.TotalPaid, cAfter.RemainingBalance)
	}
	if got := env.project(t).Status; got != common.ProjectInProgress {
		t.Fatalf("project status = %s, want IN_PROGRESS after revert", got)
	}
}

func TestRevertMilestoneInvoiceReopensContract(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeMilestone)

	winner := env.submitProposal(t, env.freelancerId, 1000, 1000)
	contract := env.acceptProposal(t, winner.Id)

	milestones, err := env.svc.Milestone.GetMilestonesByContractId(context.Background(), contract.Id)
	if err != nil {
		t.Fatalf("get milestones: %v", err)
	}
	m1 := milestones[0]

	if _, err := env.svc.Milestone.UpdateMilestoneStatusById(context.Background(), m1.Id, common.MilestoneCompleted); err != nil {
		t.Fatalf("complete milestone: %v", err)
	}
	invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, m1.Id)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if _, err := env.svc.Invoice.UpdateInvoiceStatusById(context.Background(), invoice.Id, common.InvoicePaid); err != nil {
		t.Fatalf("pay invoice: %v", err)
	}

	// sole milestone paid, so the contract completed
	cDone := env.contract(t, contract.Id)
	if cDone.Status != common.ContractCompleted {
		t.Fatalf("contract status = %s, want COMPLETED", cDone.Status)
	}
	if cDone.CompletedAt == nil {
		t.Fatal("completed contract should carry completedAt")
	}

	if _, err := env.svc.Invoice.UpdateInvoiceStatusById(context.Background(), invoice.Id, common.InvoicePending); err != nil {
		t.Fatalf("revert invoice: %v", err)
	}

	m1After, err := env.store.GetMilestoneById(context.Background(), m1.Id)
	if err != nil {
		t.Fatalf("get milestone: %v", err)
	}
	if m1After.Status != common.MilestonePending || m1After.PaymentStatus != common.PaymentPending {
		t.Fatalf("reverted milestone = %s/%s, want PENDING/PENDING", m1After.Status, m1After.PaymentStatus)
	}

	cAfter := env.contract(t, contract.Id)
	if cAfter.Status != common.ContractActive {
		t.Fatalf("contract status = %s, want ACTIVE after revert", cAfter.Status)
	}
	if !cAfter.TotalPaid.IsZero() {
		t.Fatalf("contract totalPaid = %s, want 0 after revert", cAfter.TotalPaid)
	}
	if cAfter.CompletedAt != nil {
		t.Fatal("reopened contract should not keep completedAt")
	}
	if got := env.project(t).Status; got != common.ProjectInProgress {
		t.Fatalf("project status = %s, want IN_PROGRESS after revert", got)
	}
}

func TestDeleteContractRevertsAward(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	rival := env.store.addUser(common.RoleFreelancer)
	loser := env.submitProposal(t, rival, 900)
	winner := env.submitProposal(t, env.freelancerId, 1000)
	contract := env.acceptProposal(t, winner.Id)

	invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, "")
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	err = env.svc.Contract.DeleteContractById(context.Background(), contract.Id)
	if !errors.Is(err, ErrContractHasInvoices) {
		t.Fatalf("expected ErrContractHasInvoices, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("invoice guard should classify as conflict, got %v", err)
	}

	if err := env.svc.Invoice.DeleteInvoiceById(context.Background(), invoice.Id); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}
	if err := env.svc.Contract.DeleteContractById(context.Background(), contract.Id); err != nil {
		t.Fatalf("delete contract: %v", err)
	}

	if _, err := env.svc.Contract.GetContractById(context.Background(), contract.Id); !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("contract should be gone, got %v", err)
	}

	winnerAfter, err := env.svc.Proposal.GetProposalById(context.Background(), winner.Id)
	if err != nil {
		t.Fatalf("get winner: %v", err)
	}
	if winnerAfter.Status != string(common.ProposalRejected) {
		t.Fatalf("awarded proposal = %s, want REJECTED after contract delete", winnerAfter.Status)
	}
	loserAfter, err := env.svc.Proposal.GetProposalById(context.Background(), loser.Id)
	if err != nil {
		t.Fatalf("get rival proposal: %v", err)
	}
	if loserAfter.Status != string(common.ProposalPending) {
		t.Fatalf("rival proposal = %s, want PENDING after contract delete", loserAfter.Status)
	}

	project := env.project(t)
	if project.Status != common.ProjectProposalsReceived {
		t.Fatalf("project status = %s, want PROPOSALS_RECEIVED after contract delete", project.Status)
	}
	if project.FreelancerId != nil || project.AcceptedProposalId != nil || project.ContractId != nil {
		t.Fatal("project should drop freelancer, proposal and contract refs")
	}
}

func TestContractStatusCascadesToProject(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeUponCompletion)

	winner := env.submitProposal(t, env.freelancerId, 1000)
	contract := env.acceptProposal(t, winner.Id)

	if _, err := env.svc.Contract.UpdateContractStatusById(context.Background(), contract.Id, common.ContractOnHold); err != nil {
		t.Fatalf("pause contract: %v", err)
	}
	if got := env.project(t).Status; got != common.ProjectOnHold {
		t.Fatalf("project status = %s, want ON_HOLD", got)
	}

	if _, err := env.svc.Contract.UpdateContractStatusById(context.Background(), contract.Id, common.ContractTerminated); err != nil {
		t.Fatalf("terminate contract: %v", err)
	}
	project := env.project(t)
	if project.Status != common.ProjectTerminated {
		t.Fatalf("project status = %s, want TERMINATED", project.Status)
	}
	if env.contract(t, contract.Id).TerminatedAt == nil {
		t.Fatal("terminated contract should carry terminatedAt")
	}
}

func TestGuards(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeMilestone)

	winner := env.submitProposal(t, env.freelancerId, 1000, 500, 500)
	contract := env.acceptProposal(t, winner.Id)

	t.Run("illegal project transition", func(t *testing.T) {
		other := newTestEnv(t, common.PaymentTypeUponCompletion)
		_, err := other.svc.Project.UpdateProjectStatusById(context.Background(), other.projectId, common.ProjectCompleted)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("delete project with contract", func(t *testing.T) {
		err := env.svc.Project.DeleteProjectById(context.Background(), env.projectId)
		if !errors.Is(err, ErrProjectHasContract) {
			t.Fatalf("expected ErrProjectHasContract, got %v", err)
		}
	})

	t.Run("delete contract with milestones", func(t *testing.T) {
		err := env.svc.Contract.DeleteContractById(context.Background(), contract.Id)
		if !errors.Is(err, ErrContractHasMilestones) {
			t.Fatalf("expected ErrContractHasMilestones, got %v", err)
		}
	})

	t.Run("delete proposal with contract", func(t *testing.T) {
		err := env.svc.Proposal.DeleteProposalById(context.Background(), winner.Id)
		if !errors.Is(err, ErrProposalHasContract) {
			t.Fatalf("expected ErrProposalHasContract, got %v", err)
		}
	})

	t.Run("edit non-pending proposal", func(t *testing.T) {
		amount := decimal.NewFromInt(1)
		_, err := env.svc.Proposal.UpdateProposalById(context.Background(), winner.Id, &entity.ProposalPatch{Amount: &amount})
		if !errors.Is(err, ErrProposalNotPending) {
			t.Fatalf("expected ErrProposalNotPending, got %v", err)
		}
	})

	t.Run("invoice for foreign milestone", func(t *testing.T) {
		foreign := newTestEnv(t, common.PaymentTypeMilestone)
		fWinner := foreign.submitProposal(t, foreign.freelancerId, 400, 400)
		fContract := foreign.acceptProposal(t, fWinner.Id)
		fMilestones, err := foreign.svc.Milestone.GetMilestonesByContractId(context.Background(), fContract.Id)
		if err != nil {
			t.Fatalf("get milestones: %v", err)
		}

		// a milestone id from another store does not resolve here at all
		_, err = env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, fMilestones[0].Id)
		if !errors.Is(err, ErrMilestoneNotFound) {
			t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
		}
	})

	t.Run("second payment on invoice", func(t *testing.T) {
		invoice, err := env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, "")
		if err != nil {
			t.Fatalf("create invoice: %v", err)
		}
		if _, err := env.svc.Payment.CreatePayment(context.Background(), invoice.Id, ""); err != nil {
			t.Fatalf("first payment: %v", err)
		}
		_, err = env.svc.Payment.CreatePayment(context.Background(), invoice.Id, "")
		if !errors.Is(err, ErrInvoiceHasPayment) {
			t.Fatalf("expected ErrInvoiceHasPayment, got %v", err)
		}
	})

	t.Run("milestone on closed contract", func(t *testing.T) {
		closed := newTestEnv(t, common.PaymentTypeUponCompletion)
		cWinner := closed.submitProposal(t, closed.freelancerId, 100)
		cContract := closed.acceptProposal(t, cWinner.Id)
		if _, err := closed.svc.Contract.UpdateContractStatusById(context.Background(), cContract.Id, common.ContractCancelled); err != nil {
			t.Fatalf("cancel contract: %v", err)
		}

		_, err := closed.svc.Milestone.CreateMilestone(context.Background(), &entity.CreateMilestoneInput{
			ContractId:       cContract.Id,
			Title:            "late addition",
			Amount:           decimal.NewFromInt(10),
			PlannedStartDate: time.Now(),
			PlannedEndDate:   time.Now().AddDate(0, 1, 0),
		})
		if !errors.Is(err, ErrContractClosed) {
			t.Fatalf("expected ErrContractClosed, got %v", err)
		}
	})
}

func TestMilestoneNotOnContract(t *testing.T) {
	env := newTestEnv(t, common.PaymentTypeMilestone)
	other := env.store.addUser(common.RoleCustomer)

	winner := env.submitProposal(t, env.freelancerId, 1000, 1000)
	contract := env.acceptProposal(t, winner.Id)

	// second project in the same store with its own contract and milestone
	project2, err := env.svc.Project.CreateProject(context.Background(), &entity.CreateProjectInput{
		CustomerId:  other.String(),
		Title:       "second project",
		Budget:      decimal.NewFromInt(300),
		PaymentType: common.PaymentTypeMilestone,
	})
	if err != nil {
		t.Fatalf("create second project: %v", err)
	}
	env2 := &testEnv{store: env.store, svc: env.svc, customerId: other, freelancerId: env.store.addUser(common.RoleFreelancer), projectId: project2.Id}
	winner2 := env2.submitProposal(t, env2.freelancerId, 300, 300)
	contract2 := env2.acceptProposal(t, winner2.Id)

	milestones2, err := env.svc.Milestone.GetMilestonesByContractId(context.Background(), contract2.Id)
	if err != nil {
		t.Fatalf("get milestones: %v", err)
	}

	_, err = env.svc.Invoice.CreateInvoice(context.Background(), contract.Id, milestones2[0].Id)
	if !errors.Is(err, ErrMilestoneNotOnContract) {
		t.Fatalf("expected ErrMilestoneNotOnContract, got %v", err)
	}
}
