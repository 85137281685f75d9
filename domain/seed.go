package domain

import (
	"time"

	"github.com/jinzhu/gorm"
)

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

// Seed loads the demo data set. It is a no-op when projects already exist.
func Seed(db *gorm.DB) error {
	var count int
	if err := db.Model(&Project{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	projects := []Project{
		{ProjectID: 1, Name: "e-conomic Interview", Description: "A timelogger project to showcase skills for the position at Visma e-conomic.",
			Deadline: at(2022, 11, 17, 0, 0)},
		{ProjectID: 2, Name: "Project 2", Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
			Deadline: at(2022, 12, 1, 0, 0)},
		{ProjectID: 3, Name: "Project 3", Deadline: at(2022, 11, 1, 0, 0), IsCompleted: true},
	}
	tasks := []Task{
		{TaskID: 1, ProjectID: 1, Name: "Work on this", IsCompleted: boolPtr(false)},
		{TaskID: 2, ProjectID: 1, Name: "Work on that", IsCompleted: boolPtr(false)},
		{TaskID: 3, ProjectID: 3, Name: "Work on another thing", IsCompleted: boolPtr(true)},
		{TaskID: 4, ProjectID: 2, Name: "Work on that other thing", IsCompleted: boolPtr(true)},
		{TaskID: 5, ProjectID: 1, Name: "Some sublevel task", IsCompleted: boolPtr(false), ParentTaskID: uintPtr(2)},
	}
	records := []TimeRecord{
		{TimeRecordID: 1, TaskID: 1, StartTime: at(2022, 11, 6, 11, 0), EndTime: at(2022, 11, 6, 12, 20)},
		{TimeRecordID: 2, TaskID: 1, StartTime: at(2022, 11, 7, 13, 4), EndTime: at(2022, 11, 7, 19, 10)},
		{TimeRecordID: 3, TaskID: 3, StartTime: at(2022, 10, 11, 8, 0), EndTime: at(2022, 10, 11, 16, 40)},
		{TimeRecordID: 4, TaskID: 3, StartTime: at(2022, 10, 12, 8, 5), EndTime: at(2022, 10, 12, 16, 25)},
		{TimeRecordID: 5, TaskID: 4, StartTime: at(2022, 10, 13, 8, 0), EndTime: at(2022, 10, 13, 16, 40)},
		{TimeRecordID: 6, TaskID: 5, StartTime: at(2022, 10, 14, 8, 0), EndTime: at(2022, 10, 14, 8, 30)},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range projects {
			if err := tx.Create(&projects[i]).Error; err != nil {
				return err
			}
		}
		for i := range tasks {
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
		}
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
