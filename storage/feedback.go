package storage

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"feedback-board-server/models"
)

// Feedback is the collection handle for feedback records.
type Feedback struct {
	db *gorm.DB
}

func (f *Feedback) Find(filter map[string]interface{}, sort string, limit int) ([]models.Feedback, error) {
	list := []models.Feedback{}
	q := applyFind(f.db.Model(&models.Feedback{}), filter, sort, limit)
	if err := q.Find(&list).Error; err != nil {
		return nil, classify(err)
	}
	return list, nil
}

func (f *Feedback) Get(id uint) (*models.Feedback, error) {
	var fb models.Feedback
	if err := f.db.First(&fb, id).Error; err != nil {
		return nil, classify(err)
	}
	return &fb, nil
}

func (f *Feedback) Insert(fb *models.Feedback) error {
	if err := validateFeedback(fb); err != nil {
		return err
	}
	if err := f.db.Create(fb).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Update applies a partial update: only the given fields change, everything
// else is left untouched. Unknown ids fail with ErrNotFound.
func (f *Feedback) Update(id uint, fields map[string]interface{}) error {
	if err := validatePartial(fields); err != nil {
		return err
	}
	if err := f.db.Select("id").First(&models.Feedback{}, id).Error; err != nil {
		return classify(err)
	}
	if len(fields) == 0 {
		return nil
	}
	if err := f.db.Model(&models.Feedback{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (f *Feedback) Delete(id uint) error {
	res := f.db.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (f *Feedback) Count(filter map[string]interface{}) (int64, error) {
	var count int64
	q := f.db.Model(&models.Feedback{})
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// CountSince counts records created at or after the given time.
func (f *Feedback) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := f.db.Model(&models.Feedback{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func validateFeedback(fb *models.Feedback) error {
	if strings.TrimSpace(fb.UserID) == "" {
		return &ValidationError{Field: "userId", Reason: "is required"}
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if strings.TrimSpace(fb.Comment) == "" {
		return &ValidationError{Field: "comment", Reason: "is required"}
	}
	if !models.ValidCategory(fb.Category) {
		return &ValidationError{Field: "category", Reason: "is not a known category"}
	}
	if !models.ValidStatus(fb.Status) {
		return &ValidationError{Field: "status", Reason: "is not a known status"}
	}
	return nil
}

// validatePartial checks the constrained fields of a partial update map.
func validatePartial(fields map[string]interface{}) error {
	if v, ok := fields["status"]; ok {
		s, _ := v.(string)
		if !models.ValidStatus(s) {
			return &ValidationError{Field: "status", Reason: "is not a known status"}
		}
	}
	if v, ok := fields["rating"]; ok {
		r, _ := v.(int)
		if r < 1 || r > 5 {
			return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
		}
	}
	return nil
}
