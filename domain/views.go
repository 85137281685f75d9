package domain

import (
	"time"
)

// Response projections shared by the listing and detail endpoints.

type SubtaskEntry struct {
	TaskID        uint   `json:"taskId"`
	Name          string `json:"name"`
	IsCompleted   *bool  `json:"isCompleted"`
	IsParentTask  bool   `json:"isParentTask"`
	ParentTaskID  uint   `json:"parentTaskId"`
	IsSubtask     bool   `json:"isSubtask"`
	TrackedMillis int64  `json:"trackedMillis"`
}

// TaskEntry is a top-level task with its subtasks. TrackedMillis holds the task's own time.
type TaskEntry struct {
	TaskID        uint           `json:"taskId"`
	Name          string         `json:"name"`
	IsCompleted   *bool          `json:"isCompleted"`
	TrackedMillis int64          `json:"trackedMillis"`
	IsParentTask  bool           `json:"isParentTask"`
	Subtasks      []SubtaskEntry `json:"subtasks"`
}

func NewTaskEntry(t *Task, keep func(*Task) bool) TaskEntry {
	e := TaskEntry{TaskID: t.TaskID, Name: t.Name, IsCompleted: t.IsCompleted,
		TrackedMillis: t.OwnTrackedMillis(), IsParentTask: t.IsParentTask(), Subtasks: []SubtaskEntry{}}
	for i := range t.Subtasks {
		st := &t.Subtasks[i]
		if keep != nil && !keep(st) {
			continue
		}
		e.Subtasks = append(e.Subtasks, SubtaskEntry{TaskID: st.TaskID, Name: st.Name, IsCompleted: st.IsCompleted,
			IsParentTask: st.IsParentTask(), ParentTaskID: t.TaskID, IsSubtask: true, TrackedMillis: st.OwnTrackedMillis()})
	}
	return e
}

// TopLevelTaskEntries projects the project's top-level tasks that pass keep (nil keeps all);
// subtasks are filtered with the same predicate.
func TopLevelTaskEntries(p *Project, keep func(*Task) bool) []TaskEntry {
	entries := []TaskEntry{}
	for _, t := range p.TopLevelTasks() {
		if keep != nil && !keep(&t) {
			continue
		}
		entries = append(entries, NewTaskEntry(&t, keep))
	}
	return entries
}

type ProjectSummary struct {
	ProjectID     uint      `json:"projectId"`
	Name          string    `json:"name"`
	Deadline      time.Time `json:"deadline"`
	TrackedMillis int64     `json:"trackedMillis"`
	IsCompleted   bool      `json:"isCompleted"`
}

type ProjectDetail struct {
	ProjectID         uint        `json:"projectId"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Deadline          time.Time   `json:"deadline"`
	TrackedMillis     int64       `json:"trackedMillis"`
	IsCompleted       bool        `json:"isCompleted"`
	Tasks             []TaskEntry `json:"tasks"`
	TimeRecordsByDate []DateTotal `json:"timeRecordsByDate"`
}

func NewProjectSummary(p *Project) ProjectSummary {
	return ProjectSummary{ProjectID: p.ProjectID, Name: p.Name, Deadline: p.Deadline,
		TrackedMillis: p.TrackedMillis(), IsCompleted: p.IsCompleted}
}

func NewProjectDetail(p *Project) ProjectDetail {
	return ProjectDetail{ProjectID: p.ProjectID, Name: p.Name, Description: p.Description, Deadline: p.Deadline,
		TrackedMillis: p.TrackedMillis(), IsCompleted: p.IsCompleted,
		Tasks: TopLevelTaskEntries(p, nil), TimeRecordsByDate: TimeByDate(p)}
}
