package storage

import (
	"gorm.io/gorm"

	"feedback-board-server/models"
)

// Audits is the collection handle for admin audit entries.
type Audits struct {
	db *gorm.DB
}

func (a *Audits) Insert(entry *models.AuditLog) error {
	if err := a.db.Create(entry).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Recent returns the newest entries first.
func (a *Audits) Recent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	logs := []models.AuditLog{}
	if err := a.db.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, classify(err)
	}
	return logs, nil
}
