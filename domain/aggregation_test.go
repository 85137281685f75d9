package domain_test

import (
	"time"

	"timelogger/domain"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func at(d, h, m int) time.Time {
	return time.Date(2022, 11, d, h, m, 0, 0, time.UTC)
}

func record(id, taskID uint, start time.Time, d time.Duration) domain.TimeRecord {
	return domain.TimeRecord{TimeRecordID: id, TaskID: taskID, StartTime: start, EndTime: start.Add(d)}
}

func uintPtr(u uint) *uint {
	return &u
}

var _ = Describe("Aggregation", func() {
	var (
		subtask domain.Task
		parent  domain.Task
		other   domain.Task
		project domain.Project
	)

	BeforeEach(func() {
		subtask = domain.Task{TaskID: 2, ProjectID: 1, ParentTaskID: uintPtr(1), TimeRecords: []domain.TimeRecord{
			record(3, 2, at(8, 9, 0), 30*time.Minute),
		}}
		parent = domain.Task{TaskID: 1, ProjectID: 1, TimeRecords: []domain.TimeRecord{
			record(1, 1, at(7, 13, 4), 6*time.Hour+6*time.Minute),
		}, Subtasks: []domain.Task{subtask}}
		other = domain.Task{TaskID: 3, ProjectID: 1, TimeRecords: []domain.TimeRecord{
			record(2, 3, at(7, 8, 0), time.Hour),
			record(4, 3, at(6, 8, 0), 90*time.Minute),
		}}
		project = domain.Project{ProjectID: 1, Tasks: []domain.Task{parent, subtask, other}}
	})

	Describe("TimeRecord", func() {
		It("should track whole milliseconds", func() {
			r := domain.TimeRecord{StartTime: at(1, 8, 0), EndTime: at(1, 8, 0).Add(30*time.Minute + 1500*time.Microsecond)}
			Expect(r.TrackedMillis()).To(Equal(int64(1800001)))
		})
	})

	Describe("Task", func() {
		It("should sum own time records only for own tracked time", func() {
			Expect(parent.OwnTrackedMillis()).To(Equal(int64(21960000)))
			Expect((&domain.Task{}).OwnTrackedMillis()).To(BeZero())
		})

		It("should fold subtask time into tracked time", func() {
			Expect(parent.TrackedMillis()).To(Equal(int64(23760000)))
			Expect(parent.TrackedMillis()).To(Equal(parent.OwnTrackedMillis() + subtask.TrackedMillis()))
			Expect(subtask.TrackedMillis()).To(Equal(int64(1800000)))
		})

		It("should derive the structural flags", func() {
			Expect(parent.IsParentTask()).To(BeTrue())
			Expect(parent.IsSubtask()).To(BeFalse())
			Expect(subtask.IsSubtask()).To(BeTrue())
			Expect(subtask.IsParentTask()).To(BeFalse())
		})
	})

	Describe("Project", func() {
		It("should sum top-level tasks without counting subtasks twice", func() {
			Expect(project.TopLevelTasks()).To(HaveLen(2))
			Expect(project.TrackedMillis()).To(Equal(parent.TrackedMillis() + other.TrackedMillis()))
			Expect(project.TrackedMillis()).To(Equal(int64(23760000 + 3600000 + 5400000)))
		})

		It("should be idempotent", func() {
			Expect(project.TrackedMillis()).To(Equal(project.TrackedMillis()))
			Expect(domain.TimeByDate(&project)).To(Equal(domain.TimeByDate(&project)))
		})
	})

	Describe("TimeByDate", func() {
		It("should group by start date, most recent first, each record once", func() {
			Expect(domain.ProjectTimeRecords(&project)).To(HaveLen(4))
			Expect(domain.TimeByDate(&project)).To(Equal([]domain.DateTotal{
				{Date: time.Date(2022, 11, 8, 0, 0, 0, 0, time.UTC), Time: 1800000},
				{Date: time.Date(2022, 11, 7, 0, 0, 0, 0, time.UTC), Time: 21960000 + 3600000},
				{Date: time.Date(2022, 11, 6, 0, 0, 0, 0, time.UTC), Time: 5400000},
			}))
		})

		It("should be empty for a project without time", func() {
			Expect(domain.TimeByDate(&domain.Project{})).To(BeEmpty())
		})

		It("should attribute a record crossing midnight to its start date", func() {
			p := domain.Project{Tasks: []domain.Task{{TaskID: 1, TimeRecords: []domain.TimeRecord{
				record(1, 1, at(9, 23, 0), 2*time.Hour),
			}}}}
			Expect(domain.TimeByDate(&p)).To(Equal([]domain.DateTotal{
				{Date: time.Date(2022, 11, 9, 0, 0, 0, 0, time.UTC), Time: 7200000},
			}))
		})

		It("should keep one group per day when rows carry distinct zone values", func() {
			morning := time.Date(2030, 5, 1, 8, 0, 0, 0, time.FixedZone("", 5*3600+1800))
			noon := time.Date(2030, 5, 1, 12, 0, 0, 0, time.FixedZone("", 5*3600+1800))
			p := domain.Project{Tasks: []domain.Task{{TaskID: 1, TimeRecords: []domain.TimeRecord{
				record(1, 1, morning, time.Hour),
				record(2, 1, noon, time.Hour),
			}}}}
			Expect(domain.TimeByDate(&p)).To(Equal([]domain.DateTotal{
				{Date: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), Time: 7200000},
			}))
		})

		It("should use the calendar date in the record's own zone", func() {
			late := time.Date(2030, 5, 1, 1, 0, 0, 0, time.FixedZone("", 5*3600+1800))
			p := domain.Project{Tasks: []domain.Task{{TaskID: 1, TimeRecords: []domain.TimeRecord{
				record(1, 1, late, time.Hour),
			}}}}
			Expect(domain.TimeByDate(&p)).To(Equal([]domain.DateTotal{
				{Date: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), Time: 3600000},
			}))
		})
	})
})
