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

type MilestoneService struct {
	milestoneRepo   repo.Milestone
	contractRepo    repo.Contract
	contractService *ContractService
	tm              repo.Transactor
	log             *logrus.Logger
}

func NewMilestoneService(repos *repo.Repositories, tm repo.Transactor, contractService *ContractService, log *logrus.Logger) *MilestoneService {
	return &MilestoneService{
		milestoneRepo:   repos.Milestone,
		contractRepo:    repos.Contract,
		contractService: contractService,
		tm:              tm,
		log:             log,
	}
}

func (s *MilestoneService) CreateMilestone(ctx context.Context, input *entity.CreateMilestoneInput) (*entity.MilestoneOutputModel, error) {
	var out *entity.MilestoneOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		contract, err := s.contractRepo.GetContractById(ctx, input.ContractId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrContractNotFound
			}

			return err
		}

		if contract.Status == common.ContractCompleted || contract.Status == common.ContractCancelled {
			return ErrContractClosed
		}

		input.Status = common.MilestonePending

		id, err := s.milestoneRepo.CreateMilestone(ctx, input)
		if err != nil {
			return err
		}

		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, id.String())
		if err != nil {
			return err
		}
		out = mapMilestone(milestone)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *MilestoneService) GetMilestonesByContractId(ctx context.Context, contractId string) ([]entity.MilestoneOutputModel, error) {
	contract, err := s.contractRepo.GetContractById(ctx, contractId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, err
	}

	milestones, err := s.milestoneRepo.GetMilestonesByContractId(ctx, contract.Id)
	if err != nil {
		return nil, err
	}

	return mapMilestones(milestones), nil
}

// UpdateMilestoneStatusById drives the milestone state machine and the
// derived contract cascade: a milestone becoming active again forces the
// contract ACTIVE, a milestone settling triggers the aggregate completion
// check over its siblings.
func (s *MilestoneService) UpdateMilestoneStatusById(ctx context.Context, milestoneId string, newStatus common.MilestoneStatus) (*entity.MilestoneOutputModel, error) {
	var out *entity.MilestoneOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrMilestoneNotFound
			}

			return err
		}

		_, changed, err := lookupTransition(KindMilestone, string(milestone.Status), string(newStatus))
		if err != nil {
			return err
		}
		if !changed {
			out = mapMilestone(milestone)

			return nil
		}

		if err := s.setStatus(ctx, milestone, newStatus, nil); err != nil {
			return err
		}

		milestone, err = s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
		if err != nil {
			return err
		}
		out = mapMilestone(milestone)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// setStatus persists the milestone transition and runs the contract cascade.
// It is the shared entry for user moves and for the invoice manager, which
// passes an explicit payment status alongside.
func (s *MilestoneService) setStatus(ctx context.Context, milestone *entity.Milestone, newStatus common.MilestoneStatus, paymentStatus *common.PaymentStatus) error {
	if err := s.milestoneRepo.UpdateMilestoneStatusById(ctx, milestone.Id, newStatus, paymentStatus); err != nil {
		return err
	}

	s.stampActualDates(ctx, milestone, newStatus)

	contract, err := s.contractRepo.GetContractById(ctx, milestone.ContractId.String())
	if err != nil {
		return err
	}

	if common.MilestoneSettled(newStatus) && newStatus != common.MilestoneCancelled {
		return s.completionCheck(ctx, contract)
	}

	// an open or cancelled milestone means the contract is being worked on
	return s.contractService.applyContractStatus(ctx, contract, common.ContractActive)
}

// completionCheck re-queries the live milestone set and completes the
// contract only when every sibling is settled. The set is read fresh each
// time because siblings may have changed out of order within the same
// request chain.
func (s *MilestoneService) completionCheck(ctx context.Context, contract *entity.Contract) error {
	milestones, err := s.milestoneRepo.GetMilestonesByContractId(ctx, contract.Id)
	if err != nil {
		return err
	}

	for _, m := range milestones {
		if !common.MilestoneSettled(m.Status) {
			return nil
		}
	}

	return s.contractService.applyContractStatus(ctx, contract, common.ContractCompleted)
}

func (s *MilestoneService) stampActualDates(ctx context.Context, milestone *entity.Milestone, newStatus common.MilestoneStatus) {
	now := time.Now().UTC()
	patch := &entity.MilestonePatch{}

	switch {
	case newStatus == common.MilestoneInProgress && milestone.ActualStartDate == nil:
		patch.ActualStartDate = &now
	case newStatus == common.MilestoneCompleted && milestone.ActualEndDate == nil:
		patch.ActualEndDate = &now
	default:
		return
	}

	if err := s.milestoneRepo.UpdateMilestone(ctx, milestone.Id, patch); err != nil {
		s.log.WithFields(logrus.Fields{
			"milestoneId": milestone.Id,
		}).WithError(err).Warn("failed to stamp milestone actual date")
	}
}

func (s *MilestoneService) UpdateMilestoneById(ctx context.Context, milestoneId string, patch *entity.MilestonePatch) (*entity.MilestoneOutputModel, error) {
	var out *entity.MilestoneOutputModel

	err := s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrMilestoneNotFound
			}

			return err
		}

		if err := s.milestoneRepo.UpdateMilestone(ctx, milestone.Id, patch); err != nil {
			return err
		}

		milestone, err = s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
		if err != nil {
			return err
		}
		out = mapMilestone(milestone)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *MilestoneService) DeleteMilestoneById(ctx context.Context, milestoneId string) error {
	return s.tm.WithinTransaction(ctx, func(ctx context.Context) error {
		milestone, err := s.milestoneRepo.GetMilestoneById(ctx, milestoneId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrMilestoneNotFound
			}

			return err
		}

		return s.milestoneRepo.DeleteMilestoneById(ctx, milestone.Id)
	})
}
