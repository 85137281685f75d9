package domain

// Task belongs to a project and may be nested exactly one level below another task of the
// same project.
type Task struct {
	TaskID       uint   `json:"taskId" gorm:"primary_key"`
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	IsCompleted  *bool  `json:"isCompleted"`
	ProjectID    uint   `json:"projectId" gorm:"index;not null"`
	ParentTaskID *uint  `json:"parentTaskId" gorm:"index"`

	TimeRecords []TimeRecord `json:"timeRecords,omitempty" gorm:"foreignkey:TaskID;association_foreignkey:TaskID"`
	Subtasks    []Task       `json:"subtasks,omitempty" gorm:"foreignkey:ParentTaskID;association_foreignkey:TaskID"`
}

type TaskCreating struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsCompleted  *bool  `json:"isCompleted"`
	ProjectID    uint   `json:"projectId"`
	ParentTaskID *uint  `json:"parentTaskId"`
}

type TaskUpdating struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	IsCompleted  *bool   `json:"isCompleted"`
	ProjectID    *uint   `json:"projectId"`
	ParentTaskID *uint   `json:"parentTaskId"`

	// DetachParent is set when the request explicitly sent "parentTaskId": null.
	DetachParent bool `json:"-"`
}

func (c *TaskCreating) Build() Task {
	completed := false
	if c.IsCompleted != nil {
		completed = *c.IsCompleted
	}
	t := Task{Name: c.Name, Description: c.Description, IsCompleted: &completed, ProjectID: c.ProjectID}
	if c.ParentTaskID != nil {
		parent := *c.ParentTaskID
		t.ParentTaskID = &parent
	}
	return t
}

func (u *TaskUpdating) Merge(t *Task) TaskCreating {
	c := TaskCreating{Name: t.Name, Description: t.Description, IsCompleted: t.IsCompleted,
		ProjectID: t.ProjectID, ParentTaskID: t.ParentTaskID}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.IsCompleted != nil {
		c.IsCompleted = u.IsCompleted
	}
	if u.ProjectID != nil {
		c.ProjectID = *u.ProjectID
	}
	if u.ParentTaskID != nil {
		c.ParentTaskID = u.ParentTaskID
	} else if u.DetachParent {
		c.ParentTaskID = nil
	}
	return c
}

func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}

func (t *Task) IsParentTask() bool {
	return len(t.Subtasks) > 0
}

// Completed treats an unset completion status as open.
func (t *Task) Completed() bool {
	return t.IsCompleted != nil && *t.IsCompleted
}

// OwnTrackedMillis sums the task's directly attached time records.
func (t *Task) OwnTrackedMillis() int64 {
	var total int64
	for _, r := range t.TimeRecords {
		total += r.TrackedMillis()
	}
	return total
}

// TrackedMillis adds the subtasks' totals to the task's own time. Nesting is at most one
// level deep, so subtasks contribute only their own records.
func (t *Task) TrackedMillis() int64 {
	total := t.OwnTrackedMillis()
	for i := range t.Subtasks {
		total += t.Subtasks[i].TrackedMillis()
	}
	return total
}
