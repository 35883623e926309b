package service

import (
	"context"
	"errors"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"

	"github.com/sirupsen/logrus"
)

type ProposalService struct {
	proposalRepo  repo.Proposal
	projectRepo   repo.Project
	contractRepo  repo.Contract
	milestoneRepo repo.Milestone
	userRepo      repo.User
	tm            repo.Transactor
	log           *logrus.Logger
}

func NewProposalService(repos *repo.Repositories, tm repo.Transactor, log *logrus.Logger) *ProposalService {
	return &ProposalService{
		proposalRepo:  repos.Proposal,
		projectRepo:   repos.Project,
		contractRepo:  repos.Contract,
		milestoneRepo: repos.Milestone,
		userRepo:      repos.User,
		tm:            tm,
		log:           log,
	}
}

// SubmitProposal places a bid on a project. One bid per freelancer per
// project; the first bid on an OPEN project moves it to PROPOSALS_RECEIVED.
func (s *ProposalService) SubmitProposal(ctx context.Context, input *entity.CreateProposalInput) (*entity.ProposalOutputModel, error) {
	var out *entity.ProposalOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.GetProjectById(ctx, input.ProjectId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrProjectNotFound
			}

			return err
		}

		if !common.ProjectAcceptingProposals(project.Status) {
			return ErrProjectNotBiddable
		}

		freelancer, err := s.userRepo.GetUserById(ctx, input.FreelancerId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		exists, err := s.proposalRepo.ExistsProposalForProjectAndFreelancer(ctx, project.Id, freelancer.Id)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateProposal
		}

		input.Status = common.ProposalPending

		proposalId, err := s.proposalRepo.CreateProposal(ctx, input)
		if err != nil {
			return err
		}

		if project.Status == common.ProjectOpen {
			received := common.ProjectProposalsReceived
			err = s.projectRepo.UpdateProject(ctx, project.Id, &entity.ProjectPatch{Status: &received})
			if err != nil {
				return err
			}
		}

		proposal, err := s.proposalRepo.GetProposalById(ctx, proposalId.String())
		if err != nil {
			return err
		}
		out = mapProposal(proposal)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *ProposalService) GetProposalById(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error) {
	proposal, err := s.proposalRepo.GetProposalById(ctx, proposalId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProposalNotFound
		}

		return nil, err
	}

	return mapProposal(proposal), nil
}

func (s *ProposalService) GetProposalsByProjectId(ctx context.Context, projectId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error) {
	proposals, err := s.proposalRepo.GetProposalsByProjectId(ctx, projectId, pg)
	if err != nil {
		return nil, err
	}

	return mapProposals(proposals), nil
}

func (s *ProposalService) GetProposalsByFreelancerId(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error) {
	proposals, err := s.proposalRepo.GetProposalsByFreelancerId(ctx, freelancerId, pg)
	if err != nil {
		return nil, err
	}

	return mapProposals(proposals), nil
}

// UpdateProposalStatusById drives the proposal state machine. Accepting runs
// the full award cascade; withdrawing releases the project back to bidding.
// A same-status request is a no-op, so replaying an acceptance never creates
// a second contract.
func (s *ProposalService) UpdateProposalStatusById(ctx context.Context, proposalId string, newStatus common.ProposalStatus) (*entity.ProposalOutputModel, error) {
	var out *entity.ProposalOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		proposal, err := s.proposalRepo.GetProposalById(ctx, proposalId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrProposalNotFound
			}

			return err
		}

		project, err := s.projectRepo.GetProjectById(ctx, proposal.ProjectId.String())
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrProjectNotFound
			}

			return err
		}

		if common.ProjectClosed(project.Status) {
			return ErrProjectClosed
		}

		action, changed, err := lookupTransition(KindProposal, string(proposal.Status), string(newStatus))
		if err != nil {
			return err
		}
		if !changed {
			out = mapProposal(proposal)

			return nil
		}

		switch action {
		case cascadeAcceptProposal:
			if err := s.accept(ctx, proposal, project); err != nil {
				return err
			}
		case cascadeWithdrawProposal:
			if err := s.withdraw(ctx, proposal, project); err != nil {
				return err
			}
		}

		if err := s.proposalRepo.UpdateProposalStatusById(ctx, proposal.Id, newStatus); err != nil {
			return err
		}

		proposal, err = s.proposalRepo.GetProposalById(ctx, proposalId)
		if err != nil {
			return err
		}
		out = mapProposal(proposal)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// accept awards the project: builds the contract from the proposal's terms,
// rejects every other pending bid in one pass and moves the project to
// IN_PROGRESS. The project status is re-read inside the transaction, so the
// second of two racing acceptances fails with a conflict instead of awarding
// twice; a partial unique index on accepted proposals backs this at the
// database level.
func (s *ProposalService) accept(ctx context.Context, proposal *entity.Proposal, project *entity.Project) error {
	if !common.ProjectAcceptingProposals(project.Status) {
		return ErrProjectNotAccepting
	}

	freelancer, err := s.userRepo.GetUserById(ctx, proposal.FreelancerId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	contractId, err := s.contractRepo.CreateContract(ctx, &entity.CreateContractInput{
		ProjectId:    project.Id,
		ProposalId:   proposal.Id,
		CustomerId:   project.CustomerId,
		FreelancerId: freelancer.Id,
		Amount:       proposal.Amount,
		PaymentType:  project.PaymentType,
		StartDate:    proposal.PlannedStartDate,
		EndDate:      proposal.PlannedEndDate,
		Status:       common.ContractActive,
	})
	if err != nil {
		return err
	}

	// milestone terms attached to the bid become the contract's milestones
	if project.PaymentType == common.PaymentTypeMilestone {
		proposed, err := s.proposalRepo.GetProposalMilestones(ctx, proposal.Id)
		if err != nil {
			return err
		}
		for _, m := range proposed {
			_, err := s.milestoneRepo.CreateMilestone(ctx, &entity.CreateMilestoneInput{
				ContractId:       contractId.String(),
				Title:            m.Title,
				Amount:           m.Amount,
				PlannedStartDate: m.PlannedStartDate,
				PlannedEndDate:   m.PlannedEndDate,
				Status:           common.MilestonePending,
			})
			if err != nil {
				return err
			}
		}
	}

	if err := s.proposalRepo.RejectPendingProposalsByProjectId(ctx, project.Id, proposal.Id); err != nil {
		return err
	}

	inProgress := common.ProjectInProgress
	err = s.projectRepo.UpdateProject(ctx, project.Id, &entity.ProjectPatch{
		Status:             &inProgress,
		FreelancerId:       &freelancer.Id,
		AcceptedProposalId: &proposal.Id,
		ContractId:         &contractId,
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"proposalId": proposal.Id,
		"projectId":  project.Id,
		"contractId": contractId,
	}).Info("proposal accepted, contract created")

	return nil
}

// withdraw releases the project if the withdrawing freelancer was the one
// assigned to it. Freelancer and accepted proposal are cleared together;
// they are only ever both set or both null.
func (s *ProposalService) withdraw(ctx context.Context, proposal *entity.Proposal, project *entity.Project) error {
	patch := &entity.ProjectPatch{}
	received := common.ProjectProposalsReceived
	patch.Status = &received

	if project.FreelancerId != nil && *project.FreelancerId == proposal.FreelancerId {
		patch.ClearFreelancer = true
		patch.ClearProposal = true
	}

	return s.projectRepo.UpdateProject(ctx, project.Id, patch)
}

// UpdateProposalById edits the bid's terms; only pending proposals are
// editable.
func (s *ProposalService) UpdateProposalById(ctx context.Context, proposalId string, patch *entity.ProposalPatch) (*entity.ProposalOutputModel, error) {
	var out *entity.ProposalOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		proposal, err := s.proposalRepo.GetProposalById(ctx, proposalId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrProposalNotFound
			}

			return err
		}

		if proposal.Status != common.ProposalPending {
			return ErrProposalNotPending
		}

		if err := s.proposalRepo.UpdateProposal(ctx, proposal.Id, patch); err != nil {
			return err
		}

		proposal, err = s.proposalRepo.GetProposalById(ctx, proposalId)
		if err != nil {
			return err
		}
		out = mapProposal(proposal)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *ProposalService) DeleteProposalById(ctx context.Context, proposalId string) error {
	return s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		proposal, err := s.proposalRepo.GetProposalById(ctx, proposalId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrProposalNotFound
			}

			return err
		}

		_, err = s.contractRepo.GetContractByProposalId(ctx, proposal.Id)
		if err == nil {
			return ErrProposalHasContract
		}
		if !errors.Is(err, repo_errors.ErrNotFound) {
			return err
		}

		return s.proposalRepo.DeleteProposalById(ctx, proposal.Id)
	})
}
