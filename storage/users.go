package storage

import (
	"strings"

	"gorm.io/gorm"

	"feedback-board-server/models"
)

// Users is the collection handle for user records.
type Users struct {
	db *gorm.DB
}

func (u *Users) Find(filter map[string]interface{}, sort string, limit int) ([]models.User, error) {
	var users []models.User
	q := applyFind(u.db.Model(&models.User{}), filter, sort, limit)
	if err := q.Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}

// FindByEmail looks a user up by lower-cased email. The second return value
// reports whether the record exists.
func (u *Users) FindByEmail(email string) (*models.User, bool, error) {
	var user models.User
	q := u.db.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if q.Error != nil {
		return nil, false, classify(q.Error)
	}
	if q.RowsAffected == 0 {
		return nil, false, nil
	}
	return &user, true, nil
}

// AdminExists reports whether any record has isAdmin set.
func (u *Users) AdminExists() (bool, error) {
	var count int64
	if err := u.db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// Insert validates and creates the user. A duplicate email surfaces as
// ErrConstraint, a missing required field as a ValidationError.
func (u *Users) Insert(user *models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := u.db.Create(user).Error; err != nil {
		return classify(err)
	}
	return nil
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Email) == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if strings.TrimSpace(user.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if user.Password == "" {
		return &ValidationError{Field: "password", Reason: "is required"}
	}
	return nil
}
