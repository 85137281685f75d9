package home

import (
	"context"
	"time"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/persistence"
)

var (
	QueryHomeFunc = QueryHome
)

type ActiveProject struct {
	ProjectID     uint               `json:"projectId"`
	Name          string             `json:"name"`
	Deadline      time.Time          `json:"deadline"`
	TrackedMillis int64              `json:"trackedMillis"`
	IsCompleted   bool               `json:"isCompleted"`
	Tasks         []domain.TaskEntry `json:"tasks"`
}

func openTask(t *domain.Task) bool {
	return !t.Completed()
}

// QueryHome lists the open projects by deadline with their open tasks and open subtasks.
func QueryHome(ctx context.Context) ([]ActiveProject, error) {
	var projects []domain.Project
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := domain.HydrateProjects(db).Where("is_completed = ?", false).
		Order("deadline ASC").Order("project_id ASC").Find(&projects).Error; err != nil {
		return nil, bizerror.SQL(err)
	}

	result := make([]ActiveProject, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		result = append(result, ActiveProject{ProjectID: p.ProjectID, Name: p.Name, Deadline: p.Deadline,
			TrackedMillis: p.TrackedMillis(), IsCompleted: p.IsCompleted,
			Tasks: domain.TopLevelTaskEntries(p, openTask)})
	}
	return result, nil
}
