package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Idea workflow statuses. Pending is the initial state.
const (
	StatusPending     = "Pending"
	StatusRecommended = "Recommended"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
)

// IsValidStatus reports whether s is one of the four workflow statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusRecommended, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IdeaSubmission is one submitted improvement idea. Submission fields are
// written once at creation; only the workflow fields (status, reason, stamps,
// admin message) change afterwards.
type IdeaSubmission struct {
	ID                    uint           `gorm:"primaryKey;column:id" json:"id"`
	EmployeeName          string         `gorm:"column:employeeName" json:"employeeName"`
	EmployeeID            string         `gorm:"column:employeeId;index" json:"employeeId"`
	EmployeeFunction      string         `gorm:"column:employeeFunction" json:"employeeFunction"`
	Location              string         `gorm:"column:location" json:"location"`
	IdeaTheme             string         `gorm:"column:ideaTheme" json:"ideaTheme"`
	Department            string         `gorm:"column:department" json:"department"`
	BenefitsCategory      string         `gorm:"column:benefitsCategory" json:"benefitsCategory"`
	IdeaDescription       string         `gorm:"column:ideaDescription;type:text" json:"ideaDescription"`
	ImpactedProcess       string         `gorm:"column:impactedProcess" json:"impactedProcess"`
	ExpectedBenefitsValue string         `gorm:"column:expectedBenefitsValue" json:"expectedBenefitsValue"`
	Attachments           datatypes.JSON `gorm:"column:attachments" json:"attachments"`
	SubmissionDate        time.Time      `gorm:"column:submissionDate" json:"submissionDate"`
	Status                string         `gorm:"column:status;default:Pending" json:"status"`
	RejectionReason       *string        `gorm:"column:rejectionReason" json:"rejectionReason,omitempty"`
	RejectedAt            *time.Time     `gorm:"column:rejectedAt" json:"rejectedAt,omitempty"`
	RecommendedAt         *time.Time     `gorm:"column:recommendedAt" json:"recommendedAt,omitempty"`
	ApprovedAt            *time.Time     `gorm:"column:approvedAt" json:"approvedAt,omitempty"`
	AdminL1Message        *string        `gorm:"column:adminL1Message" json:"adminL1Message,omitempty"`
}

func (IdeaSubmission) TableName() string {
	return "idea_submissions"
}

// AttachmentNames decodes the stored attachments column. A missing or
// malformed column reads as no attachments.
func (i *IdeaSubmission) AttachmentNames() []string {
	if len(i.Attachments) == 0 {
		return []string{}
	}
	var names []string
	if err := json.Unmarshal(i.Attachments, &names); err != nil {
		return []string{}
	}
	return names
}

// SetAttachmentNames encodes names into the attachments column.
func (i *IdeaSubmission) SetAttachmentNames(names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	i.Attachments = datatypes.JSON(raw)
	return nil
}
