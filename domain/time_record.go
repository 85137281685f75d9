package domain

import (
	"time"
)

const MinTimeRecordDuration = 30 * time.Minute

type TimeRecord struct {
	TimeRecordID uint      `json:"timeRecordId" gorm:"primary_key"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Note         string    `json:"note"`
	TaskID       uint      `json:"taskId" gorm:"index;not null"`
}

type TimeRecordCreating struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Note      string     `json:"note"`
	TaskID    uint       `json:"taskId"`
}

type TimeRecordUpdating struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Note      *string    `json:"note"`
	TaskID    *uint      `json:"taskId"`
}

func (c *TimeRecordCreating) Build() TimeRecord {
	r := TimeRecord{Note: c.Note, TaskID: c.TaskID}
	if c.StartTime != nil {
		r.StartTime = *c.StartTime
	}
	if c.EndTime != nil {
		r.EndTime = *c.EndTime
	}
	return r
}

func (u *TimeRecordUpdating) Merge(r *TimeRecord) TimeRecordCreating {
	start, end := r.StartTime, r.EndTime
	c := TimeRecordCreating{StartTime: &start, EndTime: &end, Note: r.Note, TaskID: r.TaskID}
	if u.StartTime != nil {
		c.StartTime = u.StartTime
	}
	if u.EndTime != nil {
		c.EndTime = u.EndTime
	}
	if u.Note != nil {
		c.Note = *u.Note
	}
	if u.TaskID != nil {
		c.TaskID = *u.TaskID
	}
	return c
}

func (r *TimeRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// TrackedMillis truncates the duration to whole milliseconds.
func (r *TimeRecord) TrackedMillis() int64 {
	return r.Duration().Milliseconds()
}
