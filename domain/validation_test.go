package domain_test

import (
	"errors"
	"time"

	"timelogger/bizerror"
	"timelogger/domain"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeLookup struct {
	projects map[uint]*domain.Project
	tasks    map[uint]*domain.Task
	err      error
}

func (l *fakeLookup) FindProject(id uint) (*domain.Project, error) {
	if l.err != nil {
		return nil, l.err
	}
	if p, ok := l.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (l *fakeLookup) FindTask(id uint) (*domain.Task, error) {
	if l.err != nil {
		return nil, l.err
	}
	if t, ok := l.tasks[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (l *fakeLookup) FindTimeRecord(id uint) (*domain.TimeRecord, error) {
	return nil, domain.ErrNotFound
}

func (l *fakeLookup) ProjectExists(id uint) (bool, error) {
	_, ok := l.projects[id]
	return ok, l.err
}

func (l *fakeLookup) TaskExists(id uint) (bool, error) {
	_, ok := l.tasks[id]
	return ok, l.err
}

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

var _ = Describe("Validation", func() {
	var lookup *fakeLookup

	BeforeEach(func() {
		// project 1 open, project 2 completed, project 3 open
		// task 10 is a parent of 11, task 12 is a plain task of project 3, task 20 belongs to project 2
		lookup = &fakeLookup{
			projects: map[uint]*domain.Project{
				1: {ProjectID: 1, Name: "open"},
				2: {ProjectID: 2, Name: "done", IsCompleted: true},
				3: {ProjectID: 3, Name: "other"},
			},
			tasks: map[uint]*domain.Task{
				10: {TaskID: 10, ProjectID: 1, Subtasks: []domain.Task{{TaskID: 11, ProjectID: 1, ParentTaskID: uintPtr(10)}}},
				11: {TaskID: 11, ProjectID: 1, ParentTaskID: uintPtr(10)},
				12: {TaskID: 12, ProjectID: 3},
				20: {TaskID: 20, ProjectID: 2},
			},
		}
	})

	Describe("ValidateProject", func() {
		It("should accept a complete project", func() {
			c := domain.ProjectCreating{Name: "p", Deadline: timePtr(at(1, 0, 0)), IsCompleted: boolPtr(false)}
			Expect(domain.ValidateProject(&c)).To(BeEmpty())
		})

		It("should report every missing field at once", func() {
			Expect(domain.ValidateProject(&domain.ProjectCreating{})).To(Equal(bizerror.FieldErrors{
				{Name: "Name", Error: "Projects must have a name."},
				{Name: "Deadline", Error: "Projects must have a deadline."},
				{Name: "IsCompleted", Error: "Projects must have a completion status."},
			}))
		})
	})

	Describe("ValidateTask", func() {
		It("should report exactly name and project for an empty payload", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{
				{Name: "Name", Error: "Tasks must have a name."},
				{Name: "ProjectId", Error: "Tasks must be assigned to a project."},
			}))
		})

		It("should accept a task and a subtask of a top-level task", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 1}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(BeEmpty())

			errs, err = domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 1, ParentTaskID: uintPtr(10)}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(BeEmpty())
		})

		It("should report unknown project", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 99}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ProjectId", Error: "Project with ID 99 does not exist."}}))
		})

		It("should report unknown parent in place of dependent rules", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 3, ParentTaskID: uintPtr(99)}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ParentTaskId", Error: "Task with ID 99 does not exist."}}))
		})

		It("should reject nested subtasks", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 1, ParentTaskID: uintPtr(11)}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ParentTaskId", Error: "Nested subtasks are not supported."}}))
		})

		It("should reject moving a parent task below another task", func() {
			lookup.tasks[13] = &domain.Task{TaskID: 13, ProjectID: 1}
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 1, ParentTaskID: uintPtr(13)}, 10, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ParentTaskId", Error: "Nested subtasks are not supported."}}))
		})

		It("should reject a task as its own parent", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 3, ParentTaskID: uintPtr(12)}, 12, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ParentTaskId", Error: "Task cannot be its own parent."}}))
		})

		It("should reject a subtask in another project than its parent", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 3, ParentTaskID: uintPtr(10)}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{
				{Name: "ProjectId", Error: "Subtasks cannot be assigned to other project than its parent's project."},
			}))
		})

		It("should reject tasks under completed projects", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 2}, 0, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ProjectId", Error: "Tasks cannot be added to completed projects."}}))
		})

		It("should reject edits of tasks under completed projects", func() {
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "renamed", ProjectID: 2}, 20, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "ProjectId", Error: "Tasks of completed projects cannot be edited."}}))
		})

		It("should surface lookup failures", func() {
			lookup.err = errors.New("db down")
			errs, err := domain.ValidateTask(&domain.TaskCreating{Name: "t", ProjectID: 1}, 0, lookup)
			Expect(errs).To(BeNil())
			Expect(err).To(MatchError("db down"))
		})
	})

	Describe("ValidateTimeRecord", func() {
		start := at(7, 8, 0)

		It("should accept a 30 minute record", func() {
			c := domain.TimeRecordCreating{StartTime: timePtr(start), EndTime: timePtr(start.Add(30 * time.Minute)), TaskID: 10}
			errs, err := domain.ValidateTimeRecord(&c, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(BeEmpty())
		})

		It("should reject a 29 minute record with Duration", func() {
			c := domain.TimeRecordCreating{StartTime: timePtr(start), EndTime: timePtr(start.Add(29 * time.Minute)), TaskID: 10}
			errs, err := domain.ValidateTimeRecord(&c, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "Duration", Error: "Time record must be at least 30 minutes long."}}))
		})

		It("should reject reversed and empty intervals with Chronology only", func() {
			for _, end := range []time.Time{start, start.Add(-time.Hour)} {
				c := domain.TimeRecordCreating{StartTime: timePtr(start), EndTime: timePtr(end), TaskID: 10}
				errs, err := domain.ValidateTimeRecord(&c, lookup)
				Expect(err).To(BeNil())
				Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "Chronology", Error: "Start time must be before end time."}}))
			}
		})

		It("should report every missing field at once", func() {
			errs, err := domain.ValidateTimeRecord(&domain.TimeRecordCreating{}, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{
				{Name: "StartTime", Error: "Start time is required."},
				{Name: "EndTime", Error: "End time is required."},
				{Name: "TaskId", Error: "Time records must be assigned to a task"},
			}))
		})

		It("should skip the completed project check for unknown tasks", func() {
			c := domain.TimeRecordCreating{StartTime: timePtr(start), EndTime: timePtr(start.Add(time.Hour)), TaskID: 99}
			errs, err := domain.ValidateTimeRecord(&c, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "TaskId", Error: "Task with ID 99 does not exist."}}))
		})

		It("should reject time on completed projects", func() {
			c := domain.TimeRecordCreating{StartTime: timePtr(start), EndTime: timePtr(start.Add(time.Hour)), TaskID: 20}
			errs, err := domain.ValidateTimeRecord(&c, lookup)
			Expect(err).To(BeNil())
			Expect(errs).To(Equal(bizerror.FieldErrors{{Name: "TaskId", Error: "Time records cannot be added to completed projects."}}))
		})
	})
})
