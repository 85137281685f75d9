package domain

import (
	"time"
)

// Project owns tasks. Once completed, no tasks or time records may be added beneath it.
type Project struct {
	ProjectID   uint      `json:"projectId" gorm:"primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	IsCompleted bool      `json:"isCompleted"`

	// every task of the project, subtasks included
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignkey:ProjectID;association_foreignkey:ProjectID"`
}

type ProjectCreating struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	IsCompleted *bool      `json:"isCompleted"`
}

// ProjectUpdating carries the supplied fields only; nil fields keep their stored value.
type ProjectUpdating struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	IsCompleted *bool      `json:"isCompleted"`
}

func (c *ProjectCreating) Build() Project {
	p := Project{Name: c.Name, Description: c.Description}
	if c.Deadline != nil {
		p.Deadline = *c.Deadline
	}
	if c.IsCompleted != nil {
		p.IsCompleted = *c.IsCompleted
	}
	return p
}

// Merge overlays the supplied fields on the stored project and returns the candidate to validate.
func (u *ProjectUpdating) Merge(p *Project) ProjectCreating {
	deadline := p.Deadline
	completed := p.IsCompleted
	c := ProjectCreating{Name: p.Name, Description: p.Description, Deadline: &deadline, IsCompleted: &completed}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Deadline != nil {
		c.Deadline = u.Deadline
	}
	if u.IsCompleted != nil {
		c.IsCompleted = u.IsCompleted
	}
	return c
}

// TopLevelTasks returns the tasks that have no parent, in loaded order.
func (p *Project) TopLevelTasks() []Task {
	var result []Task
	for _, t := range p.Tasks {
		if !t.IsSubtask() {
			result = append(result, t)
		}
	}
	return result
}

// TrackedMillis sums the top-level tasks only; their totals already include subtask time.
func (p *Project) TrackedMillis() int64 {
	var total int64
	for _, t := range p.TopLevelTasks() {
		total += t.TrackedMillis()
	}
	return total
}
