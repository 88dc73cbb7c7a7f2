package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/project"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*project.Project, error)
	GetProject(ctx context.Context, id string) (*project.Project, error)
	ListProjects(ctx context.Context, filter *types.QueryFilter) (*dto.ListProjectsResponse, error)
	UpdateProject(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*project.Project, error)
}

type projectService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[project.Project, *project.Project]
}

func NewProjectService(params ServiceParams, dispatcher *Dispatcher) ProjectService {
	s := &projectService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[project.Project](params, types.EntityTypeProject, params.ProjectRepo, s)
	return s
}

func (s *projectService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*project.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := req.ToProject(ctx)
	if err := s.store.create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*project.Project, error) {
	return s.store.get(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context, filter *types.QueryFilter) (*dto.ListProjectsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *projectService) UpdateProject(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*project.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.store.update(ctx, id, func(ctx context.Context, p *project.Project) error {
		if req.Status != nil && *req.Status != p.Status {
			if err := types.ProjectWorkflow.Check(types.EntityTypeProject, p.Status, *req.Status); err != nil {
				return err
			}
			p.Status = *req.Status
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.ClientName != nil {
			p.ClientName = *req.ClientName
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if req.ManagerID != nil {
			p.ManagerID = req.ManagerID
		}
		if req.StartDate != nil {
			p.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			p.EndDate = req.EndDate
		}
		return dto.ValidateDateRange(p.StartDate, p.EndDate)
	})
}

func (s *projectService) OnTransition(ctx context.Context, p *project.Project, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, p.ID, types.ActivitySeverityInfo, "")
}
