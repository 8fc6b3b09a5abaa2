package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"idea-portal-api/models"
)

// IdentityStore is the persistence boundary for the two credential sets.
// Find* return (nil, nil) when no row matches so callers can express the
// user-before-admin precedence without juggling sentinel errors.
type IdentityStore interface {
	FindUser(corporateID string) (*models.UserCredential, error)
	FindAdmin(corporateID string) (*models.AdminCredential, error)
	SetUserOTP(corporateID string, otpHash *string, expiry *time.Time) error
	SetAdminOTP(corporateID string, otpHash *string, expiry *time.Time) error
}

// IdeaStore is the persistence boundary for idea submissions. UpdateFields
// applies a transition as a single statement; partial multi-field updates are
// ruled out by the store's own atomicity for one UPDATE.
type IdeaStore interface {
	Create(idea *models.IdeaSubmission) error
	FindByID(id uint) (*models.IdeaSubmission, error)
	FindAll() ([]models.IdeaSubmission, error)
	FindByEmployee(employeeID string) ([]models.IdeaSubmission, error)
	UpdateFields(id uint, updates map[string]interface{}) error
}

type NotificationStore interface {
	Create(n *models.Notification) error
	ListForCorporateID(corporateID string) ([]models.Notification, error)
	MarkRead(notificationID uint, corporateID string) error
}

type gormIdentityStore struct {
	db *gorm.DB
}

func NewIdentityStore(db *gorm.DB) IdentityStore {
	return &gormIdentityStore{db: db}
}

func (s *gormIdentityStore) FindUser(corporateID string) (*models.UserCredential, error) {
	var user models.UserCredential
	if err := s.db.Where("corporateId = ?", corporateID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormIdentityStore) FindAdmin(corporateID string) (*models.AdminCredential, error) {
	var admin models.AdminCredential
	if err := s.db.Where("corporateId = ?", corporateID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (s *gormIdentityStore) SetUserOTP(corporateID string, otpHash *string, expiry *time.Time) error {
	return s.db.Model(&models.UserCredential{}).
		Where("corporateId = ?", corporateID).
		Updates(map[string]interface{}{
			"otp":       otpHash,
			"otpExpiry": expiry,
		}).Error
}

func (s *gormIdentityStore) SetAdminOTP(corporateID string, otpHash *string, expiry *time.Time) error {
	return s.db.Model(&models.AdminCredential{}).
		Where("corporateId = ?", corporateID).
		Updates(map[string]interface{}{
			"otp":       otpHash,
			"otpExpiry": expiry,
		}).Error
}

type gormIdeaStore struct {
	db *gorm.DB
}

func NewIdeaStore(db *gorm.DB) IdeaStore {
	return &gormIdeaStore{db: db}
}

func (s *gormIdeaStore) Create(idea *models.IdeaSubmission) error {
	return s.db.Create(idea).Error
}

func (s *gormIdeaStore) FindByID(id uint) (*models.IdeaSubmission, error) {
	var idea models.IdeaSubmission
	if err := s.db.First(&idea, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &idea, nil
}

func (s *gormIdeaStore) FindAll() ([]models.IdeaSubmission, error) {
	var ideas []models.IdeaSubmission
	if err := s.db.Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (s *gormIdeaStore) FindByEmployee(employeeID string) ([]models.IdeaSubmission, error) {
	var ideas []models.IdeaSubmission
	if err := s.db.Where("employeeId = ?", employeeID).Find(&ideas).Error; err != nil {
		return nil, err
	}
	return ideas, nil
}

func (s *gormIdeaStore) UpdateFields(id uint, updates map[string]interface{}) error {
	return s.db.Model(&models.IdeaSubmission{}).
		Where("id = ?", id).
		Updates(updates).Error
}

type gormNotificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) NotificationStore {
	return &gormNotificationStore{db: db}
}

func (s *gormNotificationStore) Create(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *gormNotificationStore) ListForCorporateID(corporateID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("corporate_id = ?", corporateID).
		Order("create_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *gormNotificationStore) MarkRead(notificationID uint, corporateID string) error {
	var n models.Notification
	err := s.db.Where("notification_id = ? AND corporate_id = ?", notificationID, corporateID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("notification_id = ?", notificationID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		}).Error
}
