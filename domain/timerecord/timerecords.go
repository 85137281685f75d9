package timerecord

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
	QueryTimeRecordsFunc = QueryTimeRecords
	DetailTimeRecordFunc = DetailTimeRecord
	CreateTimeRecordFunc = CreateTimeRecord
	UpdateTimeRecordFunc = UpdateTimeRecord
	DeleteTimeRecordFunc = DeleteTimeRecord
)

type ProjectRef struct {
	ProjectID uint   `json:"projectId"`
	Name      string `json:"name"`
}

type TaskRef struct {
	TaskID  uint       `json:"taskId"`
	Name    string     `json:"name"`
	Project ProjectRef `json:"project"`
}

type TimeRecordEntry struct {
	TimeRecordID uint      `json:"timeRecordId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Duration     int64     `json:"duration"`
	Note         string    `json:"note"`
	Task         TaskRef   `json:"task"`
}

type timeRecordRow struct {
	domain.TimeRecord
	TaskName    string
	ProjectID   uint
	ProjectName string
}

func (row *timeRecordRow) entry() TimeRecordEntry {
	return TimeRecordEntry{TimeRecordID: row.TimeRecordID, StartTime: row.StartTime, EndTime: row.EndTime,
		Duration: row.TrackedMillis(), Note: row.Note,
		Task: TaskRef{TaskID: row.TaskID, Name: row.TaskName,
			Project: ProjectRef{ProjectID: row.ProjectID, Name: row.ProjectName}}}
}

func joinTaskAndProject(db *gorm.DB) *gorm.DB {
	return db.Table("time_records").
		Select("time_records.*, tasks.name AS task_name, projects.project_id AS project_id, projects.name AS project_name").
		Joins("JOIN tasks ON tasks.task_id = time_records.task_id").
		Joins("JOIN projects ON projects.project_id = tasks.project_id")
}

// QueryTimeRecords lists every time record by start time with its task and project names.
func QueryTimeRecords(ctx context.Context) ([]TimeRecordEntry, error) {
	var rows []timeRecordRow
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := joinTaskAndProject(db).Order("time_records.start_time ASC").
		Order("time_records.time_record_id ASC").Scan(&rows).Error; err != nil {
		return nil, bizerror.SQL(err)
	}
	result := make([]TimeRecordEntry, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].entry())
	}
	return result, nil
}

func DetailTimeRecord(ctx context.Context, id uint) (*TimeRecordEntry, error) {
	var rows []timeRecordRow
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := joinTaskAndProject(db).Where("time_records.time_record_id = ?", id).Scan(&rows).Error; err != nil {
		return nil, bizerror.SQL(err)
	}
	if len(rows) == 0 {
		return nil, bizerror.NewErrTimeRecordNotFound(id)
	}
	e := rows[0].entry()
	return &e, nil
}

func CreateTimeRecord(ctx context.Context, c *domain.TimeRecordCreating) (*domain.TimeRecord, error) {
	var r domain.TimeRecord
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		errs, err := domain.ValidateTimeRecord(c, s)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return bizerror.NewErrValidation(errs)
		}
		r = c.Build()
		return s.Save(&r)
	})
	if err != nil {
		return nil, bizerror.SQL(err)
	}
	return &r, nil
}

// UpdateTimeRecord overwrites the supplied fields and validates the merged record.
func UpdateTimeRecord(ctx context.Context, id uint, u *domain.TimeRecordUpdating) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		r, err := s.FindTimeRecord(id)
		if errors.Is(err, domain.ErrNotFound) {
			return bizerror.NewErrTimeRecordNotFound(id)
		} else if err != nil {
			return err
		}

		candidate := u.Merge(r)
		errs, err := domain.ValidateTimeRecord(&candidate, s)
		if err != nil {
			return err
		}
		if len(errs) > 0 {
			return bizerror.NewErrValidation(errs)
		}
		updated := candidate.Build()
		updated.TimeRecordID = r.TimeRecordID
		return s.Save(&updated)
	})
	return bizerror.SQL(err)
}

func DeleteTimeRecord(ctx context.Context, id uint) error {
	err := persistence.Transaction(ctx, func(tx *gorm.DB) error {
		s := domain.NewStore(tx)
		if _, err := s.FindTimeRecord(id); errors.Is(err, domain.ErrNotFound) {
			return bizerror.NewErrTimeRecordNotFound(id)
		} else if err != nil {
			return err
		}
		return s.DeleteTimeRecord(id)
	})
	return bizerror.SQL(err)
}
