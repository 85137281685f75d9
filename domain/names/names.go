package names

import (
	"context"

	"timelogger/bizerror"
	"timelogger/persistence"
)

var (
	QueryTaskFormNamesFunc       = QueryTaskFormNames
	QueryTimeRecordFormNamesFunc = QueryTimeRecordFormNames
)

type ProjectName struct {
	ProjectID uint   `json:"projectId"`
	Name      string `json:"name"`
}

type ProjectOfTask struct {
	Name string `json:"name"`
}

type TaskName struct {
	TaskID    uint          `json:"taskId"`
	Name      string        `json:"name"`
	ProjectID uint          `json:"projectId"`
	Project   ProjectOfTask `json:"project"`
}

// TaskFormNames feeds the task form: all projects and the top-level tasks that may become parents.
type TaskFormNames struct {
	Projects []ProjectName `json:"projects"`
	Tasks    []TaskName    `json:"tasks"`
}

type ProjectState struct {
	Name        string `json:"name"`
	IsCompleted bool   `json:"isCompleted"`
}

type TimeRecordFormName struct {
	TaskID  uint         `json:"taskId"`
	Name    string       `json:"name"`
	Project ProjectState `json:"project"`
}

type taskRow struct {
	TaskID             uint
	Name               string
	ProjectID          uint
	ProjectName        string
	ProjectIsCompleted bool
}

func QueryTaskFormNames(ctx context.Context) (*TaskFormNames, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	result := TaskFormNames{Projects: []ProjectName{}, Tasks: []TaskName{}}
	if err := db.Table("projects").Select("project_id, name").Order("project_id ASC").
		Scan(&result.Projects).Error; err != nil {
		return nil, bizerror.SQL(err)
	}

	var rows []taskRow
	if err := db.Table("tasks").
		Select("tasks.task_id, tasks.name, tasks.project_id, projects.name AS project_name").
		Joins("JOIN projects ON projects.project_id = tasks.project_id").
		Where("tasks.parent_task_id IS NULL").Order("tasks.task_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, bizerror.SQL(err)
	}
	for _, r := range rows {
		result.Tasks = append(result.Tasks, TaskName{TaskID: r.TaskID, Name: r.Name, ProjectID: r.ProjectID,
			Project: ProjectOfTask{Name: r.ProjectName}})
	}
	return &result, nil
}

func QueryTimeRecordFormNames(ctx context.Context) ([]TimeRecordFormName, error) {
	var rows []taskRow
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Table("tasks").
		Select("tasks.task_id, tasks.name, projects.name AS project_name, projects.is_completed AS project_is_completed").
		Joins("JOIN projects ON projects.project_id = tasks.project_id").
		Order("tasks.task_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, bizerror.SQL(err)
	}
	result := make([]TimeRecordFormName, 0, len(rows))
	for _, r := range rows {
		result = append(result, TimeRecordFormName{TaskID: r.TaskID, Name: r.Name,
			Project: ProjectState{Name: r.ProjectName, IsCompleted: r.ProjectIsCompleted}})
	}
	return result, nil
}
