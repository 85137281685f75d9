package task

import (
	"context"
	"errors"
	"time"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/persistence"

	"github.com/jinzhu/gorm"
)

var (
	QueryTasksFunc = QueryTasks
	DetailTaskFunc = DetailTask
	CreateTaskFunc = CreateTask
	UpdateTaskFunc = UpdateTask
	DeleteTaskFunc = DeleteTask
)

type SubtaskListEntry struct {
	TaskID           uint   `json:"taskId"`
	Name             string `json:"name"`
	IsCompleted      *bool  `json:"isCompleted"`
	IsParentTask     bool   `json:"isParentTask"`
	OwnTrackedMillis int64  `json:"ownTrackedMillis"`
}

type TaskListEntry struct {
	TaskID           uint               `json:"taskId"`
	Name             string             `json:"name"`
	IsCompleted      *bool              `json:"isCompleted"`
	IsParentTask     bool               `json:"isParentTask"`
	OwnTrackedMillis int64              `json:"ownTrackedMillis"`
	Subtasks         []SubtaskListEntry `json:"subtasks"`
}

type ProjectTasks struct {
	ProjectID uint            `json:"projectId"`
	Name      string          `json:"name"`
	Deadline  time.Time       `json:"deadline"`
	Tasks     []TaskListEntry `json:"tasks"`
}

type TaskRef struct {
	TaskID uint   `json:"taskId"`
	Name   string `json:"name"`
}

type ProjectRef struct {
	ProjectID uint      `json:"projectId"`
	Name      string    `json:"name"`
	Deadline  time.Time `json:"deadline"`
}

type SubtaskDetail struct {
	TaskID        uint   `json:"taskId"`
	Name          string `json:"name"`
	IsCompleted   *bool  `json:"isCompleted"`
	TrackedMillis int64  `json:"trackedMillis"`
}

type TimeRecordEntry struct {
	TimeRecordID  uint      `json:"timeRecordId"`
	TaskID        uint      `json:"taskId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	TrackedMillis int64     `json:"trackedMillis"`
	Note          string    `json:"note"`
}

type TaskDetail struct {
	TaskID        uint              `json:"taskId"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	IsCompleted   *bool             `json:"isCompleted"`
	TrackedMillis int64             `json:"trackedMillis"`
	IsParentTask  bool              `json:"isParentTask"`
	IsSubtask     bool              `json:"isSubtask"`
	ParentTask    *TaskRef          `json:"parentTask"`
	Project       ProjectRef        `json:"project"`
	Subtasks      []SubtaskDetail   `json:"subtasks"`
	TimeRecords   []TimeRecordEntry `json:"timeRecords"`
}

// QueryTasks groups top-level tasks and their subtasks by project, projects by deadline.
func QueryTasks(ctx context.Context) ([]ProjectTasks, error) {
	var projects []domain.Project
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := domain.HydrateProjects(db).Order("deadline ASC").Order("project_id ASC").Find(&projects).Error; err != nil {
		return nil, bizerror.SQL(err)
	}

	result := make([]ProjectTasks, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		entry := ProjectTasks{ProjectID: p.ProjectID, Name: p.Name, Deadline: p.Deadline, Tasks: []TaskListEntry{}}
		for _, t := range p.TopLevelTasks() {
			te := TaskListEntry{TaskID: t.TaskID, Name: t.Name, IsCompleted: t.IsCompleted,
				IsParentTask: t.IsParentTask(), OwnTrackedMillis: t.OwnTrackedMillis(), Subtasks: []SubtaskListEntry{}}
			for j := range t.Subtasks {
				st := &t.Subtasks[j]
				te.Subtasks = append(te.Subtasks, SubtaskListEntry{TaskID: st.TaskID, Name: st.Name,
					IsCompleted: st.IsCompleted, IsParentTask: st.IsParentTask(), OwnTrackedMillis: st.OwnTrackedMillis()})
			}
			entry.Tasks = append(entry.Tasks, te)
		}
		result = append(result, entry)
	}
	return result, nil
}

func DetailTask(ctx context.Context, id uint) (*TaskDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	s := domain.NewStore(db)
	t, err := s.FindTask(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, bizerror.NewErrTaskNotFound(id)
	} else if err != nil {
		return nil, bizerror.SQL(err)
	}

	var p domain.Project
	if err := db.Where("project_id = ?", t.ProjectID).First(&p).Error; err != nil {
		return nil, bizerror.SQL(err)
	}

	detail := TaskDetail{TaskID: t.TaskID, Name: t.Name, Description: t.Description, IsCompleted: t.IsCompleted,
		TrackedMillis: t.TrackedMillis(), IsParentTask: t.IsParentTask(), IsSubtask: t.IsSubtask(),
		Project:     ProjectRef{ProjectID: p.ProjectID, Name: p.Name, Deadline: p.Deadline},
		Subtasks:    []SubtaskDetail{},
		TimeRecords: []TimeRecordEntry{}}

	if t.IsSubtask() {
		var parent domain.Task
		if err := db.Where("task_id = ?", *t.ParentTaskID).First(&parent).Error; err != nil {
			return nil, bizerror.SQL(err)
		}
		detail.ParentTask = &TaskRef{TaskID: parent.TaskID, Name: parent.Name}
	}
	for i := range t.Subtasks {
		st := &t.Subtasks[i]
		detail.Subtasks = append(detail.Subtasks, SubtaskDetail{TaskID: st.TaskID, Name: st.Name,
			IsCompleted: st.IsCompleted, TrackedMillis: st.TrackedMillis()})
	}
	for i := range t.TimeRecords {
		r := &t.TimeRecords[i]
		detail.TimeRecords = append(detail.TimeRecords, TimeRecordEntry{TimeRecordID: r.TimeRecordID, TaskID: r.TaskID,
			StartTime: r.StartTime, EndTime: r.EndTime, TrackedMillis: r.TrackedMillis(), Note: r.Note})
	}
	return &detail, nil
}

func CreateTask(ctx context.Context, c *domain.TaskCreating) (*domain.Task, error) {
	var t domain.Task
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		errs, err := domain.ValidateTask(c, 0, s)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return bizerror.NewErrValidation(errs)
		}
		t = c.Build()
		return s.Save(&t)
	})
	if err != nil {
		return nil, bizerror.SQL(err)
	}
	return &t, nil
}

// UpdateTask overwrites the supplied fields. Concurrent updates are last-write-wins.
func UpdateTask(ctx context.Context, id uint, u *domain.TaskUpdating) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		var t domain.Task
		if err := tx.Where("task_id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return bizerror.NewErrTaskNotFound(id)
		} else if err != nil {
			return err
		}

		s := domain.NewStore(tx)
		candidate := u.Merge(&t)
		errs, err := domain.ValidateTask(&candidate, id, s)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return bizerror.NewErrValidation(errs)
		}
		updated := candidate.Build()
		updated.TaskID = t.TaskID
		if err := s.Save(&updated); err != nil {
			return err
		}
		// subtasks follow their parent when it moves to another project
		if updated.ProjectID != t.ProjectID {
			return tx.Model(&domain.Task{}).Where("parent_task_id = ?", id).
				Update("project_id", updated.ProjectID).Error
		}
		return nil
	})
	return bizerror.SQL(err)
}

// DeleteTask cascades to the task's subtasks and all their time records.
func DeleteTask(ctx context.Context, id uint) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		exists, err := s.TaskExists(id)
		if err != nil {
			return err
		}
		if !exists {
			return bizerror.NewErrTaskNotFound(id)
		}
		return s.DeleteTask(id)
	})
	return bizerror.SQL(err)
}
