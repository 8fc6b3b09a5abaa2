package services

import (
	"errors"
	"time"

	"idea-portal-api/models"
)

type fakeIdentityStore struct {
	users  map[string]*models.UserCredential
	admins map[string]*models.AdminCredential
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{
		users:  map[string]*models.UserCredential{},
		admins: map[string]*models.AdminCredential{},
	}
}

func (s *fakeIdentityStore) FindUser(corporateID string) (*models.UserCredential, error) {
	return s.users[corporateID], nil
}

func (s *fakeIdentityStore) FindAdmin(corporateID string) (*models.AdminCredential, error) {
	return s.admins[corporateID], nil
}

func (s *fakeIdentityStore) SetUserOTP(corporateID string, otpHash *string, expiry *time.Time) error {
	user, ok := s.users[corporateID]
	if !ok {
		return errors.New("no such user")
	}
	user.OTPHash = otpHash
	user.OTPExpiry = expiry
	return nil
}

func (s *fakeIdentityStore) SetAdminOTP(corporateID string, otpHash *string, expiry *time.Time) error {
	admin, ok := s.admins[corporateID]
	if !ok {
		return errors.New("no such admin")
	}
	admin.OTPHash = otpHash
	admin.OTPExpiry = expiry
	return nil
}

type fakeIdeaStore struct {
	ideas  map[uint]*models.IdeaSubmission
	nextID uint
}

func newFakeIdeaStore() *fakeIdeaStore {
	return &fakeIdeaStore{ideas: map[uint]*models.IdeaSubmission{}, nextID: 1}
}

func (s *fakeIdeaStore) Create(idea *models.IdeaSubmission) error {
	idea.ID = s.nextID
	s.nextID++
	stored := *idea
	s.ideas[idea.ID] = &stored
	return nil
}

func (s *fakeIdeaStore) FindByID(id uint) (*models.IdeaSubmission, error) {
	idea, ok := s.ideas[id]
	if !ok {
		return nil, nil
	}
	copied := *idea
	return &copied, nil
}

func (s *fakeIdeaStore) FindAll() ([]models.IdeaSubmission, error) {
	out := make([]models.IdeaSubmission, 0, len(s.ideas))
	for _, idea := range s.ideas {
		out = append(out, *idea)
	}
	return out, nil
}

func (s *fakeIdeaStore) FindByEmployee(employeeID string) ([]models.IdeaSubmission, error) {
	var out []models.IdeaSubmission
	for _, idea := range s.ideas {
		if idea.EmployeeID == employeeID {
			out = append(out, *idea)
		}
	}
	return out, nil
}

func (s *fakeIdeaStore) UpdateFields(id uint, updates map[string]interface{}) error {
	idea, ok := s.ideas[id]
	if !ok {
		return errors.New("no such idea")
	}
	for column, value := range updates {
		switch column {
		case "status":
			idea.Status = value.(string)
		case "recommendedAt":
			t := value.(time.Time)
			idea.RecommendedAt = &t
		case "approvedAt":
			t := value.(time.Time)
			idea.ApprovedAt = &t
		case "rejectedAt":
			t := value.(time.Time)
			idea.RejectedAt = &t
		case "rejectionReason":
			r := value.(string)
			idea.RejectionReason = &r
		case "adminL1Message":
			m := value.(string)
			idea.AdminL1Message = &m
		default:
			return errors.New("unexpected column " + column)
		}
	}
	return nil
}

type fakeNotificationStore struct {
	created []models.Notification
}

func (s *fakeNotificationStore) Create(n *models.Notification) error {
	n.NotificationID = uint(len(s.created) + 1)
	s.created = append(s.created, *n)
	return nil
}

func (s *fakeNotificationStore) ListForCorporateID(corporateID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range s.created {
		if n.CorporateID == corporateID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(notificationID uint, corporateID string) error {
	for i := range s.created {
		if s.created[i].NotificationID == notificationID && s.created[i].CorporateID == corporateID {
			s.created[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

type sentMail struct {
	to      []string
	subject string
	text    string
	html    string
}

type mailRecorder struct {
	sent []sentMail
	err  error
}

func (m *mailRecorder) send(to []string, subject, text, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, text: text, html: html})
	return nil
}
