package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ContactSubmission is a message left through the contact form.
type ContactSubmission struct {
	BaseModel
	Name       string     `json:"name" gorm:"not null"`
	Email      string     `json:"email" gorm:"not null;index"`
	Message    string     `json:"message" gorm:"type:text;not null"`
	Locale     string     `json:"locale"`
	RemoteAddr string     `json:"remote_addr"`
	UserAgent  string     `json:"user_agent"`
	Read       bool       `json:"read" gorm:"default:false"`
	NotifiedAt *time.Time `json:"notified_at"`
}

var updatableSubmissionFields = []string{"read"}

func (submission *ContactSubmission) Update(data map[string]interface{}) error {
	res := db.Model(&ContactSubmission{}).Where("id = ?", submission.ID).
		Select(updatableSubmissionFields).Updates(data)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MarkNotified records that the owner has been told about this submission.
func (submission *ContactSubmission) MarkNotified() error {
	now := time.Now()
	err := db.Model(&ContactSubmission{}).Where("id = ?", submission.ID).Update("notified_at", now).Error
	if err != nil {
		return err
	}

	submission.NotifiedAt = &now
	return nil
}

func CreateSubmission(submission *ContactSubmission) error {
	return db.Create(submission).Error
}

func FindSubmission(id interface{}) (*ContactSubmission, error) {
	submission := ContactSubmission{}
	err := db.First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// FetchSubmissions returns a page of submissions, newest first.
func FetchSubmissions(page int, unreadOnly bool) ([]ContactSubmission, *Paging, error) {
	var total int64
	submissions := []ContactSubmission{}

	query := db.Model(&ContactSubmission{})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	err := query.Count(&total).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	query = db.Scopes(paginate(page, DEFAULT_PAGE_SIZE)).Order("id desc")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	err = query.Find(&submissions).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	return submissions, newPaging(page, DEFAULT_PAGE_SIZE, total), nil
}

func DeleteSubmission(id interface{}) error {
	res := db.Delete(&ContactSubmission{}, id)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
