package service

import (
	"context"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// memRepo is an in-memory stand-in for the postgres repositories. It mirrors
// the patch semantics of the pgdb layer (Clear* flags, remaining balance
// recomputation) so the workflow services can be exercised end to end.
type memRepo struct {
	users              map[uuid.UUID]entity.User
	projects           map[uuid.UUID]entity.Project
	proposals          map[uuid.UUID]entity.Proposal
	proposalMilestones map[uuid.UUID][]entity.ProposalMilestone
	contracts          map[uuid.UUID]entity.Contract
	milestones         map[uuid.UUID]entity.Milestone
	invoices           map[uuid.UUID]entity.Invoice
	payments           map[uuid.UUID]entity.Payment
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:              make(map[uuid.UUID]entity.User),
		projects:           make(map[uuid.UUID]entity.Project),
		proposals:          make(map[uuid.UUID]entity.Proposal),
		proposalMilestones: make(map[uuid.UUID][]entity.ProposalMilestone),
		contracts:          make(map[uuid.UUID]entity.Contract),
		milestones:         make(map[uuid.UUID]entity.Milestone),
		invoices:           make(map[uuid.UUID]entity.Invoice),
		payments:           make(map[uuid.UUID]entity.Payment),
	}
}

func (m *memRepo) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: m,
		User:        m,
		Project:     m,
		Proposal:    m,
		Contract:    m,
		Milestone:   m,
		Invoice:     m,
		Payment:     m,
	}
}

func (m *memRepo) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memRepo) Ping() error {
	return nil
}

func (m *memRepo) addUser(role common.UserRole) uuid.UUID {
	id := uuid.New()
	m.users[id] = entity.User{Id: id, Name: "user-" + id.String()[:8], Email: id.String()[:8] + "@example.com", Role: role}

	return id
}

func (m *memRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &u, nil
}

func (m *memRepo) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error) {
	customerId, err := uuid.Parse(input.CustomerId)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	m.projects[id] = entity.Project{
		Id:          id,
		CustomerId:  customerId,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Budget:      input.Budget,
		PaymentType: input.PaymentType,
		Deadline:    input.Deadline,
	}

	return id, nil
}

func (m *memRepo) GetProjectById(ctx context.Context, id string) (*entity.Project, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	p, ok := m.projects[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &p, nil
}

func (m *memRepo) GetProjects(ctx context.Context, filter *entity.ProjectFilter, pg *entity.PaginationInput) ([]entity.Project, error) {
	projects := make([]entity.Project, 0)
	for _, p := range m.projects {
		if filter != nil && filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func (m *memRepo) UpdateProject(ctx context.Context, id uuid.UUID, patch *entity.ProjectPatch) error {
	p, ok := m.projects[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.FreelancerId != nil {
		p.FreelancerId = patch.FreelancerId
	} else if patch.ClearFreelancer {
		p.FreelancerId = nil
	}
	if patch.AcceptedProposalId != nil {
		p.AcceptedProposalId = patch.AcceptedProposalId
	} else if patch.ClearProposal {
		p.AcceptedProposalId = nil
	}
	if patch.ContractId != nil {
		p.ContractId = patch.ContractId
	} else if patch.ClearContract {
		p.ContractId = nil
	}

	m.projects[id] = p

	return nil
}

func (m *memRepo) DeleteProjectById(ctx context.Context, id uuid.UUID) error {
	delete(m.projects, id)

	return nil
}

func (m *memRepo) CreateProposal(ctx context.Context, input *entity.CreateProposalInput) (uuid.UUID, error) {
	projectId, err := uuid.Parse(input.ProjectId)
	if err != nil {
		return uuid.Nil, err
	}
	freelancerId, err := uuid.Parse(input.FreelancerId)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	m.proposals[id] = entity.Proposal{
		Id:                    id,
		ProjectId:             projectId,
		FreelancerId:          freelancerId,
		Status:                input.Status,
		Amount:                input.Amount,
		CoverLetter:           input.CoverLetter,
		PlannedStartDate:      input.PlannedStartDate,
		PlannedEndDate:        input.PlannedEndDate,
		EstimatedDurationDays: input.EstimatedDurationDays,
	}
	for _, pm := range input.Milestones {
		m.proposalMilestones[id] = append(m.proposalMilestones[id], entity.ProposalMilestone{
			Id:               uuid.New(),
			ProposalId:       id,
			Title:            pm.Title,
			Amount:           pm.Amount,
			PlannedStartDate: pm.PlannedStartDate,
			PlannedEndDate:   pm.PlannedEndDate,
		})
	}

	return id, nil
}

func (m *memRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	p, ok := m.proposals[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &p, nil
}

func (m *memRepo) GetProposalsByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	uid, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	proposals := make([]entity.Proposal, 0)
	for _, p := range m.proposals {
		if p.ProjectId == uid {
			proposals = append(proposals, p)
		}
	}

	return proposals, nil
}

func (m *memRepo) GetProposalsByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	uid, err := uuid.Parse(freelancerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	proposals := make([]entity.Proposal, 0)
	for _, p := range m.proposals {
		if p.FreelancerId == uid {
			proposals = append(proposals, p)
		}
	}

	return proposals, nil
}

func (m *memRepo) GetProposalMilestones(ctx context.Context, proposalId uuid.UUID) ([]entity.ProposalMilestone, error) {
	return m.proposalMilestones[proposalId], nil
}

func (m *memRepo) ExistsProposalForProjectAndFreelancer(ctx context.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error) {
	for _, p := range m.proposals {
		if p.ProjectId == projectId && p.FreelancerId == freelancerId {
			return true, nil
		}
	}

	return false, nil
}

func (m *memRepo) UpdateProposalStatusById(ctx context.Context, id uuid.UUID, newStatus common.ProposalStatus) error {
	p, ok := m.proposals[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	p.Status = newStatus
	m.proposals[id] = p

	return nil
}

func (m *memRepo) UpdateProposal(ctx context.Context, id uuid.UUID, patch *entity.ProposalPatch) error {
	p, ok := m.proposals[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.CoverLetter != nil {
		p.CoverLetter = *patch.CoverLetter
	}
	if patch.PlannedStartDate != nil {
		p.PlannedStartDate = *patch.PlannedStartDate
	}
	if patch.PlannedEndDate != nil {
		p.PlannedEndDate = *patch.PlannedEndDate
	}

	m.proposals[id] = p

	return nil
}

func (m *memRepo) RejectPendingProposalsByProjectId(ctx context.Context, projectId uuid.UUID, exceptId uuid.UUID) error {
	for id, p := range m.proposals {
		if p.ProjectId == projectId && p.Status == common.ProposalPending && id != exceptId {
			p.Status = common.ProposalRejected
			m.proposals[id] = p
		}
	}

	return nil
}

func (m *memRepo) ResetProposalsByProjectId(ctx context.Context, projectId uuid.UUID, rejectedId uuid.UUID) error {
	for id, p := range m.proposals {
		if p.ProjectId != projectId {
			continue
		}
		if id == rejectedId {
			p.Status = common.ProposalRejected
		} else {
			p.Status = common.ProposalPending
		}
		m.proposals[id] = p
	}

	return nil
}

func (m *memRepo) DeleteProposalById(ctx context.Context, id uuid.UUID) error {
	delete(m.proposals, id)
	delete(m.proposalMilestones, id)

	return nil
}

func (m *memRepo) CreateContract(ctx context.Context, input *entity.CreateContractInput) (uuid.UUID, error) {
	id := uuid.New()
	m.contracts[id] = entity.Contract{
		Id:               id,
		ProjectId:        input.ProjectId,
		ProposalId:       input.ProposalId,
		CustomerId:       input.CustomerId,
		FreelancerId:     input.FreelancerId,
		Status:           input.Status,
		Amount:           input.Amount,
		RemainingBalance: input.Amount,
		PaymentStatus:    common.PaymentPending,
		PaymentType:      input.PaymentType,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}

	return id, nil
}

func (m *memRepo) GetContractById(ctx context.Context, id string) (*entity.Contract, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	c, ok := m.contracts[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &c, nil
}

func (m *memRepo) GetContractByProjectId(ctx context.Context, projectId string) (*entity.Contract, error) {
	uid, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	for _, c := range m.contracts {
		if c.ProjectId == uid {
			return &c, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) GetContractByProposalId(ctx context.Context, proposalId uuid.UUID) (*entity.Contract, error) {
	for _, c := range m.contracts {
		if c.ProposalId == proposalId {
			return &c, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) GetContracts(ctx context.Context, filter *entity.ContractFilter, pg *entity.PaginationInput) ([]entity.Contract, error) {
	contracts := make([]entity.Contract, 0)
	for _, c := range m.contracts {
		if filter != nil && filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		contracts = append(contracts, c)
	}

	return contracts, nil
}

func (m *memRepo) UpdateContract(ctx context.Context, id uuid.UUID, patch *entity.ContractPatch) error {
	c, ok := m.contracts[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.TotalPaid != nil {
		c.TotalPaid = *patch.TotalPaid
		c.RemainingBalance = c.Amount.Sub(*patch.TotalPaid)
	}
	if patch.PaymentStatus != nil {
		c.PaymentStatus = *patch.PaymentStatus
	}
	if patch.CompletedAt != nil {
		c.CompletedAt = patch.CompletedAt
	} else if patch.ClearCompletedAt {
		c.CompletedAt = nil
	}
	if patch.TerminatedAt != nil {
		c.TerminatedAt = patch.TerminatedAt
	}

	m.contracts[id] = c

	return nil
}

func (m *memRepo) DeleteContractById(ctx context.Context, id uuid.UUID) error {
	delete(m.contracts, id)

	return nil
}

func (m *memRepo) CreateMilestone(ctx context.Context, input *entity.CreateMilestoneInput) (uuid.UUID, error) {
	contractId, err := uuid.Parse(input.ContractId)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	m.milestones[id] = entity.Milestone{
		Id:               id,
		ContractId:       contractId,
		Title:            input.Title,
		Status:           input.Status,
		PaymentStatus:    common.PaymentPending,
		Amount:           input.Amount,
		PenaltyAmount:    input.PenaltyAmount,
		BonusAmount:      input.BonusAmount,
		PlannedStartDate: input.PlannedStartDate,
		PlannedEndDate:   input.PlannedEndDate,
	}

	return id, nil
}

func (m *memRepo) GetMilestoneById(ctx context.Context, id string) (*entity.Milestone, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	ms, ok := m.milestones[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &ms, nil
}

func (m *memRepo) GetMilestonesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Milestone, error) {
	milestones := make([]entity.Milestone, 0)
	for _, ms := range m.milestones {
		if ms.ContractId == contractId {
			milestones = append(milestones, ms)
		}
	}

	return milestones, nil
}

func (m *memRepo) UpdateMilestoneStatusById(ctx context.Context, id uuid.UUID, newStatus common.MilestoneStatus, paymentStatus *common.PaymentStatus) error {
	ms, ok := m.milestones[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	ms.Status = newStatus
	if paymentStatus != nil {
		ms.PaymentStatus = *paymentStatus
	}
	m.milestones[id] = ms

	return nil
}

func (m *memRepo) UpdateMilestone(ctx context.Context, id uuid.UUID, patch *entity.MilestonePatch) error {
	ms, ok := m.milestones[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Title != nil {
		ms.Title = *patch.Title
	}
	if patch.Amount != nil {
		ms.Amount = *patch.Amount
	}
	if patch.PenaltyAmount != nil {
		ms.PenaltyAmount = *patch.PenaltyAmount
	}
	if patch.BonusAmount != nil {
		ms.BonusAmount = *patch.BonusAmount
	}
	if patch.PlannedStartDate != nil {
		ms.PlannedStartDate = *patch.PlannedStartDate
	}
	if patch.PlannedEndDate != nil {
		ms.PlannedEndDate = *patch.PlannedEndDate
	}
	if patch.ActualStartDate != nil {
		ms.ActualStartDate = patch.ActualStartDate
	}
	if patch.ActualEndDate != nil {
		ms.ActualEndDate = patch.ActualEndDate
	}

	m.milestones[id] = ms

	return nil
}

func (m *memRepo) DeleteMilestoneById(ctx context.Context, id uuid.UUID) error {
	delete(m.milestones, id)

	return nil
}

func (m *memRepo) CreateInvoice(ctx context.Context, input *entity.CreateInvoiceInput) (uuid.UUID, error) {
	contractId, err := uuid.Parse(input.ContractId)
	if err != nil {
		return uuid.Nil, err
	}

	var milestoneId *uuid.UUID
	if input.MilestoneId != "" {
		mid, err := uuid.Parse(input.MilestoneId)
		if err != nil {
			return uuid.Nil, err
		}
		milestoneId = &mid
	}

	id := uuid.New()
	m.invoices[id] = entity.Invoice{
		Id:          id,
		ContractId:  contractId,
		MilestoneId: milestoneId,
		Status:      input.Status,
		Amount:      input.Amount,
		IssuedAt:    input.IssuedAt,
		DueDate:     input.DueDate,
	}

	return id, nil
}

func (m *memRepo) GetInvoiceById(ctx context.Context, id string) (*entity.Invoice, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	inv, ok := m.invoices[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &inv, nil
}

func (m *memRepo) GetInvoicesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Invoice, error) {
	invoices := make([]entity.Invoice, 0)
	for _, inv := range m.invoices {
		if inv.ContractId == contractId {
			invoices = append(invoices, inv)
		}
	}

	return invoices, nil
}

func (m *memRepo) GetInvoicesByCustomerId(ctx context.Context, customerId string, pg *entity.PaginationInput) ([]entity.Invoice, error) {
	uid, err := uuid.Parse(customerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	invoices := make([]entity.Invoice, 0)
	for _, inv := range m.invoices {
		if c, ok := m.contracts[inv.ContractId]; ok && c.CustomerId == uid {
			invoices = append(invoices, inv)
		}
	}

	return invoices, nil
}

func (m *memRepo) GetInvoicesByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Invoice, error) {
	uid, err := uuid.Parse(freelancerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	invoices := make([]entity.Invoice, 0)
	for _, inv := range m.invoices {
		if c, ok := m.contracts[inv.ContractId]; ok && c.FreelancerId == uid {
			invoices = append(invoices, inv)
		}
	}

	return invoices, nil
}

func (m *memRepo) UpdateInvoiceStatusById(ctx context.Context, id uuid.UUID, newStatus common.InvoiceStatus) error {
	inv, ok := m.invoices[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	inv.Status = newStatus
	m.invoices[id] = inv

	return nil
}

func (m *memRepo) UpdateInvoice(ctx context.Context, id uuid.UUID, patch *entity.InvoicePatch) error {
	inv, ok := m.invoices[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Status != nil {
		inv.Status = *patch.Status
	}
	if patch.PaymentId != nil {
		inv.PaymentId = patch.PaymentId
	} else if patch.ClearPayment {
		inv.PaymentId = nil
	}
	if patch.DueDate != nil {
		inv.DueDate = *patch.DueDate
	}

	m.invoices[id] = inv

	return nil
}

func (m *memRepo) DeleteInvoiceById(ctx context.Context, id uuid.UUID) error {
	delete(m.invoices, id)

	return nil
}

func (m *memRepo) CreatePayment(ctx context.Context, input *entity.CreatePaymentInput) (uuid.UUID, error) {
	id := uuid.New()
	m.payments[id] = entity.Payment{
		Id:        id,
		InvoiceId: input.InvoiceId,
		Status:    input.Status,
		Amount:    input.Amount,
		Notes:     input.Notes,
	}

	return id, nil
}

func (m *memRepo) GetPaymentById(ctx context.Context, id string) (*entity.Payment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	p, ok := m.payments[uid]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &p, nil
}

func (m *memRepo) GetPaymentByInvoiceId(ctx context.Context, invoiceId string) (*entity.Payment, error) {
	uid, err := uuid.Parse(invoiceId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	for _, p := range m.payments {
		if p.InvoiceId == uid {
			return &p, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) UpdatePaymentStatusById(ctx context.Context, id uuid.UUID, newStatus common.PaymentRecordStatus, paidAt *time.Time) error {
	p, ok := m.payments[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	p.Status = newStatus
	if paidAt != nil {
		p.PaidAt = paidAt
	}
	m.payments[id] = p

	return nil
}

func (m *memRepo) DeletePaymentById(ctx context.Context, id uuid.UUID) error {
	delete(m.payments, id)

	return nil
}
