package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"idea-portal-api/models"
)

// allowedTransitions is the explicit workflow table. Pending is initial,
// Recommended is the first-tier admin step, Approved and Rejected are
// terminal. Same-status transitions are treated as idempotent no-ops.
var allowedTransitions = map[string]map[string]bool{
	models.StatusPending: {
		models.StatusRecommended: true,
		models.StatusApproved:    true,
		models.StatusRejected:    true,
	},
	models.StatusRecommended: {
		models.StatusApproved: true,
		models.StatusRejected: true,
	},
	models.StatusApproved: {},
	models.StatusRejected: {},
}

func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	return allowedTransitions[from][to]
}

// IdeaInput carries the immutable submission fields. Attachments are filename
// references already persisted by the upload layer; the service never touches
// file bytes.
type IdeaInput struct {
	EmployeeName          string
	EmployeeID            string
	EmployeeFunction      string
	Location              string
	IdeaTheme             string
	Department            string
	BenefitsCategory      string
	IdeaDescription       string
	ImpactedProcess       string
	ExpectedBenefitsValue string
	Attachments           []string
}

// EmployeeIdeas is the per-employee listing with derived counters, computed
// fresh on every call.
type EmployeeIdeas struct {
	TotalIdeas    int                     `json:"totalIdeas"`
	ApprovedCount int                     `json:"approvedCount"`
	RejectedCount int                     `json:"rejectedCount"`
	Ideas         []models.IdeaSubmission `json:"ideas"`
}

// IdeaService owns the idea record's workflow state and which fields each
// transition may touch.
type IdeaService struct {
	ideas         IdeaStore
	identities    IdentityStore
	notifications NotificationStore
	sendMail      Mailer

	now func() time.Time
}

func NewIdeaService(ideas IdeaStore, identities IdentityStore, notifications NotificationStore, sendMail Mailer) *IdeaService {
	return &IdeaService{
		ideas:         ideas,
		identities:    identities,
		notifications: notifications,
		sendMail:      sendMail,
		now:           time.Now,
	}
}

// Submit persists a new idea in Pending state and returns it with its
// assigned id. The confirmation mail and in-app notification are best effort;
// their failure never fails the submission.
func (s *IdeaService) Submit(input IdeaInput) (*models.IdeaSubmission, error) {
	if strings.TrimSpace(input.EmployeeID) == "" {
		return nil, fmt.Errorf("%w: employeeId is required", ErrValidation)
	}

	idea := &models.IdeaSubmission{
		EmployeeName:          input.EmployeeName,
		EmployeeID:            input.EmployeeID,
		EmployeeFunction:      input.EmployeeFunction,
		Location:              input.Location,
		IdeaTheme:             input.IdeaTheme,
		Department:            input.Department,
		BenefitsCategory:      input.BenefitsCategory,
		IdeaDescription:       input.IdeaDescription,
		ImpactedProcess:       input.ImpactedProcess,
		ExpectedBenefitsValue: input.ExpectedBenefitsValue,
		SubmissionDate:        s.now(),
		Status:                models.StatusPending,
	}
	if err := idea.SetAttachmentNames(input.Attachments); err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}

	if err := s.ideas.Create(idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	s.sendSubmissionConfirmation(idea)

	return idea, nil
}

// Get returns one idea by id.
func (s *IdeaService) Get(id uint) (*models.IdeaSubmission, error) {
	idea, err := s.ideas.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("%w: idea %d", ErrNotFound, id)
	}
	return idea, nil
}

// ListAll returns every idea. Order is not part of the contract.
func (s *IdeaService) ListAll() ([]models.IdeaSubmission, error) {
	return s.ideas.FindAll()
}

// ListForEmployee returns an employee's ideas together with fresh counters.
func (s *IdeaService) ListForEmployee(employeeID string) (*EmployeeIdeas, error) {
	ideas, err := s.ideas.FindByEmployee(employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee ideas: %w", err)
	}

	out := &EmployeeIdeas{
		TotalIdeas: len(ideas),
		Ideas:      ideas,
	}
	for _, idea := range ideas {
		switch idea.Status {
		case models.StatusApproved:
			out.ApprovedCount++
		case models.StatusRejected:
			out.RejectedCount++
		}
	}
	return out, nil
}

// WorkflowSummary holds portal-wide counts per workflow state.
type WorkflowSummary struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Recommended int `json:"recommended"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
}

// Summarize counts every idea by its current status.
func (s *IdeaService) Summarize() (*WorkflowSummary, error) {
	ideas, err := s.ideas.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load ideas: %w", err)
	}

	out := &WorkflowSummary{Total: len(ideas)}
	for _, idea := range ideas {
		switch idea.Status {
		case models.StatusPending:
			out.Pending++
		case models.StatusRecommended:
			out.Recommended++
		case models.StatusApproved:
			out.Approved++
		case models.StatusRejected:
			out.Rejected++
		}
	}
	return out, nil
}

// SetStatus applies the generic status transition. The target status must be
// one of the four workflow values and the transition must be allowed by the
// table. Rejecting through this path accepts an empty reason.
func (s *IdeaService) SetStatus(id uint, status, rejectionReason string) (*models.IdeaSubmission, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	idea, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if idea.Status == status {
		return idea, nil
	}
	if !canTransition(idea.Status, status) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrValidation, idea.Status, status)
	}

	now := s.now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.StatusRecommended:
		updates["recommendedAt"] = now
	case models.StatusApproved:
		updates["approvedAt"] = now
	case models.StatusRejected:
		updates["rejectedAt"] = now
		if reason := strings.TrimSpace(rejectionReason); reason != "" {
			updates["rejectionReason"] = reason
		}
	}

	return s.applyTransition(idea, status, updates)
}

// Recommend is the first-tier admin action advancing an idea toward
// second-tier review, carrying an optional admin message.
func (s *IdeaService) Recommend(id uint, message string) (*models.IdeaSubmission, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: ideaId is required", ErrValidation)
	}

	idea, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(idea.Status, models.StatusRecommended) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrValidation, idea.Status, models.StatusRecommended)
	}

	updates := map[string]interface{}{
		"status":        models.StatusRecommended,
		"recommendedAt": s.now(),
	}
	if msg := strings.TrimSpace(message); msg != "" {
		updates["adminL1Message"] = msg
	}

	return s.applyTransition(idea, models.StatusRecommended, updates)
}

// Reject moves an idea to Rejected with a mandatory reason.
func (s *IdeaService) Reject(id uint, reason string) (*models.IdeaSubmission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	idea, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(idea.Status, models.StatusRejected) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrValidation, idea.Status, models.StatusRejected)
	}

	updates := map[string]interface{}{
		"status":          models.StatusRejected,
		"rejectionReason": reason,
		"rejectedAt":      s.now(),
	}

	return s.applyTransition(idea, models.StatusRejected, updates)
}

// applyTransition writes the update as a single statement, reloads the record
// and dispatches the best-effort status notification.
func (s *IdeaService) applyTransition(idea *models.IdeaSubmission, status string, updates map[string]interface{}) (*models.IdeaSubmission, error) {
	if err := s.ideas.UpdateFields(idea.ID, updates); err != nil {
		return nil, fmt.Errorf("update idea %d: %w", idea.ID, err)
	}

	updated, err := s.Get(idea.ID)
	if err != nil {
		return nil, err
	}

	s.sendStatusNotification(updated, status)

	return updated, nil
}

func (s *IdeaService) sendSubmissionConfirmation(idea *models.IdeaSubmission) {
	user, err := s.identities.FindUser(idea.EmployeeID)
	if err != nil || user == nil {
		if err != nil {
			log.Printf("Warning: could not resolve submitter %s: %v", idea.EmployeeID, err)
		}
		return
	}

	ideaID := idea.ID
	if s.notifications != nil {
		n := &models.Notification{
			CorporateID:   user.CorporateID,
			Title:         "Idea submitted",
			Message:       fmt.Sprintf("Your idea %q was received and is pending review (ID %d).", idea.IdeaTheme, ideaID),
			Type:          "success",
			RelatedIdeaID: &ideaID,
		}
		if err := s.notifications.Create(n); err != nil {
			log.Printf("Warning: failed to record submission notification for %s: %v", user.CorporateID, err)
		}
	}

	subject := "Thank You for Your Idea Submission"
	text := fmt.Sprintf("Hello %s,\n\nThank you for submitting your idea. Your Idea ID is %d.", user.EmployeeName, ideaID)
	html := buildEmailHTML(subject,
		[]string{
			fmt.Sprintf("Hello %s,", user.EmployeeName),
			"Thank you for submitting your idea. It is now pending review.",
		},
		[]emailMetaItem{
			{Label: "Idea ID", Value: fmt.Sprintf("%d", ideaID)},
			{Label: "Theme", Value: idea.IdeaTheme},
		},
		"You will be notified when the review status changes.",
	)
	if err := s.sendMail([]string{user.Email}, subject, text, html); err != nil {
		log.Printf("Warning: failed to send submission confirmation to %s: %v", user.Email, err)
	}
}

var statusNotificationText = map[string]struct {
	title string
	kind  string
	body  string
}{
	models.StatusRecommended: {"Idea recommended", "info", "has been recommended for second-tier review"},
	models.StatusApproved:    {"Idea approved", "success", "has been approved"},
	models.StatusRejected:    {"Idea rejected", "warning", "has been rejected"},
}

func (s *IdeaService) sendStatusNotification(idea *models.IdeaSubmission, status string) {
	wording, ok := statusNotificationText[status]
	if !ok {
		return
	}

	user, err := s.identities.FindUser(idea.EmployeeID)
	if err != nil || user == nil {
		if err != nil {
			log.Printf("Warning: could not resolve submitter %s: %v", idea.EmployeeID, err)
		}
		return
	}

	ideaID := idea.ID
	message := fmt.Sprintf("Your idea %q (ID %d) %s.", idea.IdeaTheme, ideaID, wording.body)
	if status == models.StatusRejected && idea.RejectionReason != nil && *idea.RejectionReason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, *idea.RejectionReason)
	}

	if s.notifications != nil {
		n := &models.Notification{
			CorporateID:   user.CorporateID,
			Title:         wording.title,
			Message:       message,
			Type:          wording.kind,
			RelatedIdeaID: &ideaID,
		}
		if err := s.notifications.Create(n); err != nil {
			log.Printf("Warning: failed to record status notification for %s: %v", user.CorporateID, err)
		}
	}

	subject := fmt.Sprintf("Idea Status Update: %s", status)
	meta := []emailMetaItem{
		{Label: "Idea ID", Value: fmt.Sprintf("%d", ideaID)},
		{Label: "Status", Value: status},
	}
	if status == models.StatusRejected && idea.RejectionReason != nil {
		meta = append(meta, emailMetaItem{Label: "Reason", Value: *idea.RejectionReason})
	}
	html := buildEmailHTML(subject,
		[]string{fmt.Sprintf("Hello %s,", user.EmployeeName), message},
		meta,
		"Log in to the Idea Portal for details.",
	)
	if err := s.sendMail([]string{user.Email}, subject, message, html); err != nil {
		log.Printf("Warning: failed to send status mail to %s: %v", user.Email, err)
	}
}
