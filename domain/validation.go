package domain

import (
	"errors"

	"timelogger/bizerror"
)

// Lookup is the read access the rules need to check references against persisted rows.
// Find methods return ErrNotFound for absent rows.
type Lookup interface {
	FindProject(id uint) (*Project, error)
	FindTask(id uint) (*Task, error)
	FindTimeRecord(id uint) (*TimeRecord, error)
	ProjectExists(id uint) (bool, error)
	TaskExists(id uint) (bool, error)
}

// ValidateProject reports every failing rule of a project candidate.
func ValidateProject(c *ProjectCreating) bizerror.FieldErrors {
	errs := bizerror.FieldErrors{}
	if c.Name == "" {
		errs.Add("Name", "Projects must have a name.")
	}
	if c.Deadline == nil || c.Deadline.IsZero() {
		errs.Add("Deadline", "Projects must have a deadline.")
	}
	if c.IsCompleted == nil {
		errs.Add("IsCompleted", "Projects must have a completion status.")
	}
	return errs
}

// ValidateTask reports every failing rule of a task candidate. taskID is zero for new tasks.
// A reference that does not resolve replaces the rules depending on it.
func ValidateTask(c *TaskCreating, taskID uint, l Lookup) (bizerror.FieldErrors, error) {
	errs := bizerror.FieldErrors{}
	if c.Name == "" {
		errs.Add("Name", "Tasks must have a name.")
	}

	var project *Project
	if c.ProjectID == 0 {
		errs.Add("ProjectId", "Tasks must be assigned to a project.")
	} else {
		p, err := l.FindProject(c.ProjectID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if p == nil {
			errs.Addf("ProjectId", "Project with ID %d does not exist.", c.ProjectID)
		}
		project = p
	}

	if c.ParentTaskID != nil {
		parentID := *c.ParentTaskID
		parent, err := l.FindTask(parentID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if parent == nil {
			errs.Addf("ParentTaskId", "Task with ID %d does not exist.", parentID)
		} else if taskID != 0 && parentID == taskID {
			errs.Add("ParentTaskId", "Task cannot be its own parent.")
		} else {
			if parent.IsSubtask() {
				errs.Add("ParentTaskId", "Nested subtasks are not supported.")
			} else if taskID != 0 {
				// a parent task moved below another task would nest its own subtasks
				self, err := l.FindTask(taskID)
				if err != nil && !errors.Is(err, ErrNotFound) {
					return nil, err
				}
				if self != nil && self.IsParentTask() {
					errs.Add("ParentTaskId", "Nested subtasks are not supported.")
				}
			}
			if c.ProjectID != 0 && parent.ProjectID != c.ProjectID {
				errs.Add("ProjectId", "Subtasks cannot be assigned to other project than its parent's project.")
			}
		}
	}

	if project != nil && project.IsCompleted {
		if taskID == 0 {
			errs.Add("ProjectId", "Tasks cannot be added to completed projects.")
		} else {
			errs.Add("ProjectId", "Tasks of completed projects cannot be edited.")
		}
	}
	return errs, nil
}

// ValidateTimeRecord reports every failing rule of a time record candidate.
func ValidateTimeRecord(c *TimeRecordCreating, l Lookup) (bizerror.FieldErrors, error) {
	errs := bizerror.FieldErrors{}
	hasStart := c.StartTime != nil && !c.StartTime.IsZero()
	hasEnd := c.EndTime != nil && !c.EndTime.IsZero()
	if !hasStart {
		errs.Add("StartTime", "Start time is required.")
	}
	if !hasEnd {
		errs.Add("EndTime", "End time is required.")
	}
	if hasStart && hasEnd {
		if !c.StartTime.Before(*c.EndTime) {
			errs.Add("Chronology", "Start time must be before end time.")
		} else if c.EndTime.Sub(*c.StartTime) < MinTimeRecordDuration {
			errs.Add("Duration", "Time record must be at least 30 minutes long.")
		}
	}

	if c.TaskID == 0 {
		errs.Add("TaskId", "Time records must be assigned to a task")
		return errs, nil
	}
	task, err := l.FindTask(c.TaskID)
	if errors.Is(err, ErrNotFound) {
		errs.Addf("TaskId", "Task with ID %d does not exist.", c.TaskID)
		return errs, nil
	} else if err != nil {
		return nil, err
	}
	project, err := l.FindProject(task.ProjectID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if project != nil && project.IsCompleted {
		errs.Add("TaskId", "Time records cannot be added to completed projects.")
	}
	return errs, nil
}
