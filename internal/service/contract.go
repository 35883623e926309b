package service

import (
	"context"
	"errors"
	"time"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"

	"github.com/sirupsen/logrus"
)

type ContractService struct {
	contractRepo  repo.Contract
	projectRepo   repo.Project
	proposalRepo  repo.Proposal
	milestoneRepo repo.Milestone
	invoiceRepo   repo.Invoice
	tm            repo.Transactor
	log           *logrus.Logger
}

func NewContractService(repos *repo.Repositories, tm repo.Transactor, log *logrus.Logger) *ContractService {
	return &ContractService{
		contractRepo:  repos.Contract,
		projectRepo:   repos.Project,
		proposalRepo:  repos.Proposal,
		milestoneRepo: repos.Milestone,
		invoiceRepo:   repos.Invoice,
		tm:            tm,
		log:           log,
	}
}

func (s *ContractService) GetContractById(ctx context.Context, contractId string) (*entity.ContractOutputModel, error) {
	contract, err := s.contractRepo.GetContractById(ctx, contractId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, err
	}

	return mapContract(contract), nil
}

func (s *ContractService) GetContractByProjectId(ctx context.Context, projectId string) (*entity.ContractOutputModel, error) {
	contract, err := s.contractRepo.GetContractByProjectId(ctx, projectId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, err
	}

	return mapContract(contract), nil
}

func (s *ContractService) GetContracts(ctx context.Context, filter *entity.ContractFilter, pg *entity.PaginationInput) ([]entity.ContractOutputModel, error) {
	contracts, err := s.contractRepo.GetContracts(ctx, filter, pg)
	if err != nil {
		return nil, err
	}

	return mapContracts(contracts), nil
}

// applyContractStatus is the trusted cascade entry: it persists the contract
// status (stamping completedAt/terminatedAt where the status implies one) and
// then mirrors the change onto the parent project. The contract write happens
// first so a failure in the project update never leaves the contract behind
// what was recorded; the enclosing transaction still rolls both back together.
func (s *ContractService) applyContractStatus(ctx context.Context, contract *entity.Contract, newStatus common.ContractStatus) error {
	if contract.Status == newStatus {
		return nil
	}

	patch := &entity.ContractPatch{Status: &newStatus}
	now := time.Now().UTC()
	switch newStatus {
	case common.ContractCompleted:
		patch.CompletedAt = &now
	case common.ContractTerminated:
		patch.TerminatedAt = &now
	}
	// a reopened contract is no longer completed; drop the stale stamp
	if contract.Status == common.ContractCompleted && newStatus != common.ContractCompleted {
		patch.ClearCompletedAt = true
	}

	if err := s.contractRepo.UpdateContract(ctx, contract.Id, patch); err != nil {
		return err
	}

	projectStatus := common.ProjectStatusForContract(newStatus)
	err := s.projectRepo.UpdateProject(ctx, contract.ProjectId, &entity.ProjectPatch{Status: &projectStatus})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"contractId": contract.Id,
		"from":       contract.Status,
		"to":         newStatus,
		"project":    projectStatus,
	}).Debug("contract status cascaded to project")

	contract.Status = newStatus

	return nil
}

func (s *ContractService) UpdateContractStatusById(ctx context.Context, contractId string, newStatus common.ContractStatus) (*entity.ContractOutputModel, error) {
	var out *entity.ContractOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		contract, err := s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrContractNotFound
			}

			return err
		}

		_, changed, err := lookupTransition(KindContract, string(contract.Status), string(newStatus))
		if err != nil {
			return err
		}
		if changed {
			if err := s.applyContractStatus(ctx, contract, newStatus); err != nil {
				return err
			}
		}

		contract, err = s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			return err
		}
		out = mapContract(contract)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateContractById applies a partial update. Attaching an invoice is
// additive: the invoice must exist and already reference this contract; it
// is never moved from another one. Any totalPaid change recomputes
// remainingBalance in the same statement.
func (s *ContractService) UpdateContractById(ctx context.Context, contractId string, patch *entity.ContractPatch) (*entity.ContractOutputModel, error) {
	var out *entity.ContractOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		contract, err := s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrContractNotFound
			}

			return err
		}

		if patch.InvoiceId != nil {
			invoice, err := s.invoiceRepo.GetInvoiceById(ctx, patch.InvoiceId.String())
			if err != nil {
				if errors.Is(err, repo_errors.ErrNotFound) {
					return ErrInvoiceNotFound
				}

				return err
			}
			if invoice.ContractId != contract.Id {
				return ErrInvoiceNotOnContract
			}
		}

		if err := s.contractRepo.UpdateContract(ctx, contract.Id, patch); err != nil {
			return err
		}

		contract, err = s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			return err
		}
		out = mapContract(contract)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteContractById removes a contract that never accrued invoices or
// milestones and reverts the project to the bidding state: every proposal
// back to PENDING except the one this contract was spawned from, which is
// rejected, and the project cleared of freelancer/proposal/contract refs.
func (s *ContractService) DeleteContractById(ctx context.Context, contractId string) error {
	return s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		contract, err := s.contractRepo.GetContractById(ctx, contractId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrContractNotFound
			}

			return err
		}

		invoices, err := s.invoiceRepo.GetInvoicesByContractId(ctx, contract.Id)
		if err != nil {
			return err
		}
		if len(invoices) > 0 {
			return ErrContractHasInvoices
		}

		milestones, err := s.milestoneRepo.GetMilestonesByContractId(ctx, contract.Id)
		if err != nil {
			return err
		}
		if len(milestones) > 0 {
			return ErrContractHasMilestones
		}

		if err := s.proposalRepo.ResetProposalsByProjectId(ctx, contract.ProjectId, contract.ProposalId); err != nil {
			return err
		}

		backToBidding := common.ProjectProposalsReceived
		err = s.projectRepo.UpdateProject(ctx, contract.ProjectId, &entity.ProjectPatch{
			Status:          &backToBidding,
			ClearFreelancer: true,
			ClearProposal:   true,
			ClearContract:   true,
		})
		if err != nil {
			return err
		}

		return s.contractRepo.DeleteContractById(ctx, contract.Id)
	})
}
