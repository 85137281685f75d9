package project_test

import (
	"context"
	"testing"
	"time"

	"timelogger/bizerror"
	"timelogger/domain"
	"timelogger/domain/project"
	"timelogger/domain/timerecord"
	"timelogger/persistence"
	"timelogger/testinfra"

	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartTestDatabase("timelogger")
	*testDatabase = db
	Expect(domain.Seed(db.DS.GormDB(context.Background()))).To(Succeed())
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopTestDatabase(testDatabase)
	}
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestQueryProjects(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should list open projects before completed ones, each by deadline", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		r, err := project.QueryProjects(context.Background())
		Expect(err).To(BeNil())
		Expect(len(r)).To(Equal(3))
		Expect(r[0].ProjectID).To(Equal(uint(1)))
		Expect(r[0].TrackedMillis).To(Equal(int64(28560000)))
		Expect(r[1].ProjectID).To(Equal(uint(2)))
		Expect(r[1].TrackedMillis).To(Equal(int64(31200000)))
		Expect(r[2].ProjectID).To(Equal(uint(3)))
		Expect(r[2].IsCompleted).To(BeTrue())
	})
}

func TestDetailProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should hydrate tasks and time by date", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		d, err := project.DetailProject(context.Background(), 1)
		Expect(err).To(BeNil())
		Expect(d.Name).To(Equal("e-conomic Interview"))
		Expect(d.TrackedMillis).To(Equal(int64(28560000)))
		Expect(len(d.Tasks)).To(Equal(2))
		Expect(d.Tasks[1].TaskID).To(Equal(uint(2)))
		Expect(d.Tasks[1].IsParentTask).To(BeTrue())
		Expect(len(d.Tasks[1].Subtasks)).To(Equal(1))
		Expect(d.Tasks[1].Subtasks[0].TrackedMillis).To(Equal(int64(1800000)))
		Expect(len(d.TimeRecordsByDate)).To(Equal(3))
		Expect(d.TimeRecordsByDate[0].Time).To(Equal(int64(21960000)))
		Expect(d.TimeRecordsByDate[2].Time).To(Equal(int64(1800000)))

		again, err := project.DetailProject(context.Background(), 1)
		Expect(err).To(BeNil())
		Expect(again).To(Equal(d))
	})

	t.Run("should group records of one day together whatever their zone", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		zone := time.FixedZone("IST", 5*3600+1800)
		for _, hour := range []int{8, 12} {
			start := time.Date(2030, 5, 1, hour, 0, 0, 0, zone)
			end := start.Add(time.Hour)
			_, err := timerecord.CreateTimeRecord(context.Background(),
				&domain.TimeRecordCreating{StartTime: &start, EndTime: &end, TaskID: 2})
			Expect(err).To(BeNil())
		}

		d, err := project.DetailProject(context.Background(), 1)
		Expect(err).To(BeNil())
		Expect(len(d.TimeRecordsByDate)).To(Equal(4))
		Expect(d.TimeRecordsByDate[0]).To(Equal(domain.DateTotal{Date: time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), Time: 7200000}))
	})

	t.Run("should report unknown project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		d, err := project.DetailProject(context.Background(), 42)
		Expect(d).To(BeNil())
		Expect(err).To(Equal(bizerror.NewErrProjectNotFound(uint(42))))
	})
}

func TestCreateProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should validate before persisting", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		p, err := project.CreateProject(context.Background(), &domain.ProjectCreating{Name: "x"})
		Expect(p).To(BeNil())
		Expect(err).To(Equal(bizerror.NewErrValidation(bizerror.FieldErrors{
			{Name: "Deadline", Error: "Projects must have a deadline."},
			{Name: "IsCompleted", Error: "Projects must have a completion status."},
		})))
	})

	t.Run("should create project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		p, err := project.CreateProject(context.Background(),
			&domain.ProjectCreating{Name: "new", Deadline: &deadline, IsCompleted: boolPtr(false)})
		Expect(err).To(BeNil())
		Expect(p.ProjectID).To(Equal(uint(4)))

		d, err := project.DetailProject(context.Background(), p.ProjectID)
		Expect(err).To(BeNil())
		Expect(d.Name).To(Equal("new"))
		Expect(d.TrackedMillis).To(BeZero())
		Expect(d.Tasks).To(BeEmpty())
	})

	t.Run("should leave nothing behind when cancelled", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		p, err := project.CreateProject(ctx, &domain.ProjectCreating{Name: "new", Deadline: &deadline, IsCompleted: boolPtr(false)})
		Expect(p).To(BeNil())
		Expect(err).To(Equal(context.Canceled))

		var count int
		Expect(persistence.ActiveDataSourceManager.GormDB(context.Background()).
			Model(&domain.Project{}).Count(&count).Error).To(BeNil())
		Expect(count).To(Equal(3))
	})
}

func TestUpdateProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should overwrite supplied fields only", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		deadline := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)
		Expect(project.UpdateProject(context.Background(), 2,
			&domain.ProjectUpdating{Deadline: &deadline, IsCompleted: boolPtr(true)})).To(Succeed())

		d, err := project.DetailProject(context.Background(), 2)
		Expect(err).To(BeNil())
		Expect(d.Name).To(Equal("Project 2"))
		Expect(d.Description).To(Equal("Lorem ipsum dolor sit amet, consectetur adipiscing elit."))
		Expect(d.Deadline.Equal(deadline)).To(BeTrue())
		Expect(d.IsCompleted).To(BeTrue())
		Expect(len(d.Tasks)).To(Equal(1))
	})

	t.Run("should validate the merged project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		err := project.UpdateProject(context.Background(), 1, &domain.ProjectUpdating{Name: strPtr("")})
		Expect(err).To(Equal(bizerror.NewErrValidation(bizerror.FieldErrors{{Name: "Name", Error: "Projects must have a name."}})))
	})

	t.Run("should report unknown project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		err := project.UpdateProject(context.Background(), 9, &domain.ProjectUpdating{Deadline: timePtr(time.Now())})
		Expect(err).To(Equal(bizerror.NewErrProjectNotFound(uint(9))))
	})
}

func TestDeleteProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should cascade and then report unknown project", func(t *testing.T) {
		defer func() { teardown(t, testDatabase) }()
		setup(t, &testDatabase)

		Expect(project.DeleteProject(context.Background(), 1)).To(Succeed())

		db := persistence.ActiveDataSourceManager.GormDB(context.Background())
		var tasks, records int
		Expect(db.Model(&domain.Task{}).Where("project_id = ?", 1).Count(&tasks).Error).To(BeNil())
		Expect(db.Model(&domain.TimeRecord{}).Where("task_id IN (?)", []uint{1, 2, 5}).Count(&records).Error).To(BeNil())
		Expect(tasks).To(BeZero())
		Expect(records).To(BeZero())

		Expect(project.DeleteProject(context.Background(), 1)).To(Equal(bizerror.NewErrProjectNotFound(uint(1))))
	})
}
