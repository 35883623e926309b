package repo

import (
	"context"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/pgdb"
	"freelance-market-api/pkg/postgres"

	"github.com/google/uuid"
)

// Transactor runs fn inside one transaction shared by every repository
// call fn makes. The workflow services wrap each cascade in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Diagnostics interface {
	Ping() error
}

type User interface {
	GetUserById(ctx context.Context, id string) (*entity.User, error)
}

type Project interface {
	CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error)
	GetProjectById(ctx context.Context, id string) (*entity.Project, error)
	GetProjects(ctx context.Context, filter *entity.ProjectFilter, pg *entity.PaginationInput) ([]entity.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, patch *entity.ProjectPatch) error
	DeleteProjectById(ctx context.Context, id uuid.UUID) error
}

type Proposal interface {
	CreateProposal(ctx context.Context, input *entity.CreateProposalInput) (uuid.UUID, error)
	GetProposalById(ctx context.Context, id string) (*entity.Proposal, error)
	GetProposalsByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.Proposal, error)
	GetProposalsByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Proposal, error)
	GetProposalMilestones(ctx context.Context, proposalId uuid.UUID) ([]entity.ProposalMilestone, error)
	ExistsProposalForProjectAndFreelancer(ctx context.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error)
	UpdateProposalStatusById(ctx context.Context, id uuid.UUID, newStatus common.ProposalStatus) error
	UpdateProposal(ctx context.Context, id uuid.UUID, patch *entity.ProposalPatch) error
	RejectPendingProposalsByProjectId(ctx context.Context, projectId uuid.UUID, exceptId uuid.UUID) error
	ResetProposalsByProjectId(ctx context.Context, projectId uuid.UUID, rejectedId uuid.UUID) error
	DeleteProposalById(ctx context.Context, id uuid.UUID) error
}

type Contract interface {
	CreateContract(ctx context.Context, input *entity.CreateContractInput) (uuid.UUID, error)
	GetContractById(ctx context.Context, id string) (*entity.Contract, error)
	GetContractByProjectId(ctx context.Context, projectId string) (*entity.Contract, error)
	GetContractByProposalId(ctx context.Context, proposalId uuid.UUID) (*entity.Contract, error)
	GetContracts(ctx context.Context, filter *entity.ContractFilter, pg *entity.PaginationInput) ([]entity.Contract, error)
	UpdateContract(ctx context.Context, id uuid.UUID, patch *entity.ContractPatch) error
	DeleteContractById(ctx context.Context, id uuid.UUID) error
}

type Milestone interface {
	CreateMilestone(ctx context.Context, input *entity.CreateMilestoneInput) (uuid.UUID, error)
	GetMilestoneById(ctx context.Context, id string) (*entity.Milestone, error)
	GetMilestonesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Milestone, error)
	UpdateMilestoneStatusById(ctx context.Context, id uuid.UUID, newStatus common.MilestoneStatus, paymentStatus *common.PaymentStatus) error
	UpdateMilestone(ctx context.Context, id uuid.UUID, patch *entity.MilestonePatch) error
	DeleteMilestoneById(ctx context.Context, id uuid.UUID) error
}

type Invoice interface {
	CreateInvoice(ctx context.Context, input *entity.CreateInvoiceInput) (uuid.UUID, error)
	GetInvoiceById(ctx context.Context, id string) (*entity.Invoice, error)
	GetInvoicesByContractId(ctx context.Context, contractId uuid.UUID) ([]entity.Invoice, error)
	GetInvoicesByCustomerId(ctx context.Context, customerId string, pg *entity.PaginationInput) ([]entity.Invoice, error)
	GetInvoicesByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Invoice, error)
	UpdateInvoiceStatusById(ctx context.Context, id uuid.UUID, newStatus common.InvoiceStatus) error
	UpdateInvoice(ctx context.Context, id uuid.UUID, patch *entity.InvoicePatch) error
	DeleteInvoiceById(ctx context.Context, id uuid.UUID) error
}

type Payment interface {
	CreatePayment(ctx context.Context, input *entity.CreatePaymentInput) (uuid.UUID, error)
	GetPaymentById(ctx context.Context, id string) (*entity.Payment, error)
	GetPaymentByInvoiceId(ctx context.Context, invoiceId string) (*entity.Payment, error)
	UpdatePaymentStatusById(ctx context.Context, id uuid.UUID, newStatus common.PaymentRecordStatus, paidAt *time.Time) error
	DeletePaymentById(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	Diagnostics
	User
	Project
	Proposal
	Contract
	Milestone
	Invoice
	Payment
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Project:     pgdb.NewProjectRepo(p),
		Proposal:    pgdb.NewProposalRepo(p),
		Contract:    pgdb.NewContractRepo(p),
		Milestone:   pgdb.NewMilestoneRepo(p),
		Invoice:     pgdb.NewInvoiceRepo(p),
		Payment:     pgdb.NewPaymentRepo(p),
	}
}
