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

type ProjectService struct {
	projectRepo repo.Project
	userRepo    repo.User
	tm          repo.Transactor
	log         *logrus.Logger
}

func NewProjectService(repos *repo.Repositories, tm repo.Transactor, log *logrus.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: repos.Project,
		userRepo:    repos.User,
		tm:          tm,
		log:         log,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error) {
	if _, err := s.userRepo.GetUserById(ctx, input.CustomerId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	input.Status = common.ProjectOpen

	id, err := s.projectRepo.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProjectById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapProject(project), nil
}

func (s *ProjectService) GetProjectById(ctx context.Context, projectId string) (*entity.ProjectOutputModel, error) {
	project, err := s.projectRepo.GetProjectById(ctx, projectId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	return mapProject(project), nil
}

func (s *ProjectService) GetProjects(ctx context.Context, filter *entity.ProjectFilter, pg *entity.PaginationInput) ([]entity.ProjectOutputModel, error) {
	projects, err := s.projectRepo.GetProjects(ctx, filter, pg)
	if err != nil {
		return nil, err
	}

	return mapProjects(projects), nil
}

// UpdateProjectStatusById handles the user-initiated moves (opening,
// cancelling, pausing a project before a contract exists). Once a contract
// exists the project status is derived from it and direct moves are refused
// by the transition table.
func (s *ProjectService) UpdateProjectStatusById(ctx context.Context, projectId string, newStatus common.ProjectStatus) (*entity.ProjectOutputModel, error) {
	project, err := s.projectRepo.GetProjectById(ctx, projectId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	_, changed, err := lookupTransition(KindProject, string(project.Status), string(newStatus))
	if err != nil {
		return nil, err
	}
	if !changed {
		return mapProject(project), nil
	}

	err = s.projectRepo.UpdateProject(ctx, project.Id, &entity.ProjectPatch{Status: &newStatus})
	if err != nil {
		return nil, err
	}

	project, err = s.projectRepo.GetProjectById(ctx, projectId)
	if err != nil {
		return nil, err
	}

	return mapProject(project), nil
}

func (s *ProjectService) DeleteProjectById(ctx context.Context, projectId string) error {
	project, err := s.projectRepo.GetProjectById(ctx, projectId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrProjectNotFound
		}

		return err
	}

	if project.ContractId != nil {
		return ErrProjectHasContract
	}

	return s.projectRepo.DeleteProjectById(ctx, project.Id)
}
