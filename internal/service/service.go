package service

import (
	"context"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"

	"github.com/sirupsen/logrus"
)

type Diagnostics interface {
	Ping() error
}

type Project interface {
	CreateProject(ctx context.Context, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error)
	GetProjectById(ctx context.Context, projectId string) (*entity.ProjectOutputModel, error)
	GetProjects(ctx context.Context, filter *entity.ProjectFilter, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error)
	UpdateProjectStatusById(ctx context.Context, projectId string, newStatus common.ProjectStatus) (*entity.ProjectOutputModel, error)
	DeleteProjectById(ctx context.Context, projectId string) error
}

type Proposal interface {
	SubmitProposal(ctx context.Context, input *entity.CreateProposalInput) (*entity.ProposalOutputModel, error)
	GetProposalById(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error)
	GetProposalsByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error)
	GetProposalsByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error)
	UpdateProposalStatusById(ctx context.Context, proposalId string, newStatus common.ProposalStatus) (*entity.ProposalOutputModel, error)
	UpdateProposalById(ctx context.Context, proposalId string, patch *entity.ProposalPatch) (*entity.ProposalOutputModel, error)
	DeleteProposalById(ctx context.Context, proposalId string) error
}

type Contract interface {
	GetContractById(ctx context.Context, contractId string) (*entity.ContractOutputModel, error)
	GetContractByProjectId(ctx context.Context, projectId string) (*entity.ContractOutputModel, error)
	GetContracts(ctx context.Context, filter *entity.ContractFilter, pg *entity.PaginationInput) ([]entity.ContractOutputModel, error)
	UpdateContractStatusById(ctx context.Context, contractId string, newStatus common.ContractStatus) (*entity.ContractOutputModel, error)
	UpdateContractById(ctx context.Context, contractId string, patch *entity.ContractPatch) (*entity.ContractOutputModel, error)
	DeleteContractById(ctx context.Context, contractId string) error
}

type Milestone interface {
	CreateMilestone(ctx context.Context, input *entity.CreateMilestoneInput) (*entity.MilestoneOutputModel, error)
	GetMilestonesByContractId(ctx context.Context, contractId string) ([]entity.MilestoneOutputModel, error)
	UpdateMilestoneStatusById(ctx context.Context, milestoneId string, newStatus common.MilestoneStatus) (*entity.MilestoneOutputModel, error)
	UpdateMilestoneById(ctx context.Context, milestoneId string, patch *entity.MilestonePatch) (*entity.MilestoneOutputModel, error)
	DeleteMilestoneById(ctx context.Context, milestoneId string) error
}

type Invoice interface {
	CreateInvoice(ctx context.Context, contractId string, milestoneId string) (*entity.InvoiceOutputModel, error)
	GetInvoiceById(ctx context.Context, invoiceId string) (*entity.InvoiceOutputModel, error)
	GetInvoicesByCustomerId(ctx context.Context, customerId string, pg *entity.PaginationInput) ([]entity.InvoiceOutputModel, error)
	GetInvoicesByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.InvoiceOutputModel, error)
	UpdateInvoiceStatusById(ctx context.Context, invoiceId string, newStatus common.InvoiceStatus) (*entity.InvoiceOutputModel, error)
	UpdateInvoiceById(ctx context.Context, invoiceId string, patch *entity.InvoicePatch) (*entity.InvoiceOutputModel, error)
	DeleteInvoiceById(ctx context.Context, invoiceId string) error
}

type Payment interface {
	CreatePayment(ctx context.Context, invoiceId string, notes string) (*entity.PaymentOutputModel, error)
	GetPaymentByInvoiceId(ctx context.Context, invoiceId string) (*entity.PaymentOutputModel, error)
	UpdatePaymentStatusById(ctx context.Context, paymentId string, newStatus common.PaymentRecordStatus) (*entity.PaymentOutputModel, error)
	DeletePaymentById(ctx context.Context, paymentId string) error
}

type Services struct {
	Diagnostics Diagnostics
	Project     Project
	Proposal    Proposal
	Contract    Contract
	Milestone   Milestone
	Invoice     Invoice
	Payment     Payment
}

// NewServices wires the workflow managers. Construction order follows the
// cascade chain: payments drive invoices, invoices drive milestones,
// milestones drive contracts, contracts drive projects.
func NewServices(repos *repo.Repositories, tm repo.Transactor, log *logrus.Logger) *Services {
	projectService := NewProjectService(repos, tm, log)
	contractService := NewContractService(repos, tm, log)
	milestoneService := NewMilestoneService(repos, tm, contractService, log)
	invoiceService := NewInvoiceService(repos, tm, milestoneService, contractService, log)
	paymentService := NewPaymentService(repos, tm, invoiceService, log)
	proposalService := NewProposalService(repos, tm, log)

	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Project:     projectService,
		Proposal:    proposalService,
		Contract:    contractService,
		Milestone:   milestoneService,
		Invoice:     invoiceService,
		Payment:     paymentService,
	}
}
