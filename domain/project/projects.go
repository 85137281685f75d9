package project

import (
	"context"
	"errors"
	"sort"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/persistence"

	"github.com/jinzhu/gorm"
)

var (
	QueryProjectsFunc = QueryProjects
	DetailProjectFunc = DetailProject
	CreateProjectFunc = CreateProject
	UpdateProjectFunc = UpdateProject
	DeleteProjectFunc = DeleteProject
)

// QueryProjects lists open projects before completed ones, each group by deadline.
func QueryProjects(ctx context.Context) ([]domain.ProjectSummary, error) {
	var projects []domain.Project
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := domain.HydrateProjects(db).Order("project_id ASC").Find(&projects).Error; err != nil {
		return nil, bizerror.SQL(err)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].IsCompleted != projects[j].IsCompleted {
			return !projects[i].IsCompleted
		}
		return projects[i].Deadline.Before(projects[j].Deadline)
	})

	result := make([]domain.ProjectSummary, 0, len(projects))
	for i := range projects {
		result = append(result, domain.NewProjectSummary(&projects[i]))
	}
	return result, nil
}

func DetailProject(ctx context.Context, id uint) (*domain.ProjectDetail, error) {
	p, err := domain.NewStore(persistence.ActiveDataSourceManager.GormDB(ctx)).FindProject(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, bizerror.NewErrProjectNotFound(id)
	} else if err != nil {
		return nil, bizerror.SQL(err)
	}
	detail := domain.NewProjectDetail(p)
	return &detail, nil
}

func CreateProject(ctx context.Context, c *domain.ProjectCreating) (*domain.Project, error) {
	if errs := domain.ValidateProject(c); len(errs) > 0 {
		return nil, bizerror.NewErrValidation(errs)
	}

	p := c.Build()
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		return domain.NewStore(tx).Save(&p)
	})
	if err != nil {
		return nil, bizerror.SQL(err)
	}
	return &p, nil
}

// UpdateProject overwrites the supplied fields. Concurrent updates are last-write-wins.
func UpdateProject(ctx context.Context, id uint, u *domain.ProjectUpdating) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		var p domain.Project
		if err := tx.Where("project_id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return bizerror.NewErrProjectNotFound(id)
		} else if err != nil {
			return err
		}

		candidate := u.Merge(&p)
		if errs := domain.ValidateProject(&candidate); len(errs) > 0 {
			return bizerror.NewErrValidation(errs)
		}
		updated := candidate.Build()
		updated.ProjectID = p.ProjectID
		return domain.NewStore(tx).Save(&updated)
	})
	return bizerror.SQL(err)
}

// DeleteProject cascades to the project's tasks, subtasks and time records.
func DeleteProject(ctx context.Context, id uint) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		exists, err := s.ProjectExists(id)
		if err != nil {
			return err
		}
		if !exists {
			return bizerror.NewErrProjectNotFound(id)
		}
		return s.DeleteProject(id)
	})
	return bizerror.SQL(err)
}
