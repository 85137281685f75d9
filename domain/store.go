package domain

import (
	"errors"

	"github.com/jinzhu/gorm"
)

// Store answers the persistence contract of the domain rules on top of a gorm session.
// Pass a transaction to keep reads and writes of one request consistent.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// AutoMigrate creates the tables of all entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{}, &Task{}, &TimeRecord{}).Error
}

// HydrateProjects loads the owned graph needed for aggregation: tasks, their subtasks and
// all time records.
func HydrateProjects(db *gorm.DB) *gorm.DB {
	return db.Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("task_id ASC") }).
		Preload("Tasks.TimeRecords", orderTimeRecords).
		Preload("Tasks.Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("task_id ASC") }).
		Preload("Tasks.Subtasks.TimeRecords", orderTimeRecords)
}

// HydrateTasks loads time records and subtasks with their time records.
func HydrateTasks(db *gorm.DB) *gorm.DB {
	return db.Preload("TimeRecords", orderTimeRecords).
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB { return db.Order("task_id ASC") }).
		Preload("Subtasks.TimeRecords", orderTimeRecords)
}

func orderTimeRecords(db *gorm.DB) *gorm.DB {
	return db.Order("start_time ASC").Order("time_record_id ASC")
}

func (s *Store) FindProject(id uint) (*Project, error) {
	var p Project
	if err := HydrateProjects(s.DB).Where("project_id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) FindTask(id uint) (*Task, error) {
	var t Task
	if err := HydrateTasks(s.DB).Where("task_id = ?", id).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (s *Store) FindTimeRecord(id uint) (*TimeRecord, error) {
	var r TimeRecord
	if err := s.DB.Where("time_record_id = ?", id).First(&r).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *Store) ProjectExists(id uint) (bool, error) {
	var count int
	if err := s.DB.Model(&Project{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) TaskExists(id uint) (bool, error) {
	var count int
	if err := s.DB.Model(&Task{}).Where("task_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts the entity when its id is zero, otherwise overwrites the stored row.
// Owned collections are never written through.
func (s *Store) Save(entity interface{}) error {
	return s.DB.Set("gorm:save_associations", false).Save(entity).Error
}

// DeleteProject removes the project, its tasks, their subtasks and every time record below them.
func (s *Store) DeleteProject(id uint) error {
	var taskIDs []uint
	if err := s.DB.Model(&Task{}).Where("project_id = ?", id).Pluck("task_id", &taskIDs).Error; err != nil {
		return err
	}
	if err := s.deleteTasks(taskIDs); err != nil {
		return err
	}
	return s.DB.Delete(&Project{}, "project_id = ?", id).Error
}

// DeleteTask removes the task, its subtasks and all their time records.
func (s *Store) DeleteTask(id uint) error {
	var subtaskIDs []uint
	if err := s.DB.Model(&Task{}).Where("parent_task_id = ?", id).Pluck("task_id", &subtaskIDs).Error; err != nil {
		return err
	}
	return s.deleteTasks(append(subtaskIDs, id))
}

func (s *Store) DeleteTimeRecord(id uint) error {
	return s.DB.Delete(&TimeRecord{}, "time_record_id = ?", id).Error
}

func (s *Store) deleteTasks(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.DB.Delete(&TimeRecord{}, "task_id IN (?)", ids).Error; err != nil {
		return err
	}
	return s.DB.Delete(&Task{}, "task_id IN (?)", ids).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
