package specification

import "gorm.io/gorm"

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByGenerationType struct {
	Type string
}

func (s ByGenerationType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByProviderTaskID struct {
	TaskID string
}

func (s ByProviderTaskID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider_task_id = ?", s.TaskID)
}
