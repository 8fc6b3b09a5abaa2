package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserCredential is a regular employee login record. The otp column holds a
// bcrypt hash of the last issued code, never the code itself.
type UserCredential struct {
	ID               uint       `gorm:"primaryKey;column:id" json:"id"`
	CorporateID      string     `gorm:"column:corporateId;unique" json:"corporateId"`
	EmployeeName     string     `gorm:"column:employeeName" json:"employeeName"`
	EmployeeFunction string     `gorm:"column:employeeFunction" json:"employeeFunction"`
	Location         string     `gorm:"column:location" json:"location"`
	Role             string     `gorm:"column:role" json:"role"`
	Email            string     `gorm:"column:email" json:"email"`
	OTPHash          *string    `gorm:"column:otp" json:"-"`
	OTPExpiry        *time.Time `gorm:"column:otpExpiry" json:"-"`
}

// AdminCredential mirrors UserCredential for the admin credential set. The two
// sets are separate tables; lookups always check users before admins.
type AdminCredential struct {
	ID               uint       `gorm:"primaryKey;column:id" json:"id"`
	CorporateID      string     `gorm:"column:corporateId;unique" json:"corporateId"`
	EmployeeName     string     `gorm:"column:employeeName" json:"employeeName"`
	EmployeeFunction string     `gorm:"column:employeeFunction" json:"employeeFunction"`
	Location         string     `gorm:"column:location" json:"location"`
	Role             string     `gorm:"column:role" json:"role"`
	Email            string     `gorm:"column:email" json:"email"`
	OTPHash          *string    `gorm:"column:otp" json:"-"`
	OTPExpiry        *time.Time `gorm:"column:otpExpiry" json:"-"`
}

func (UserCredential) TableName() string {
	return "user_credentials"
}

func (AdminCredential) TableName() string {
	return "admin_credentials"
}
