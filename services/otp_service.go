package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// OTP codes are 4 digits (1000-9999) and live for 5 minutes. Only the bcrypt
// hash of a code is ever persisted, mirroring how reset tokens are handled.
const (
	otpTTL          = 5 * time.Minute
	otpExpiryMinute = 5
)

// Mailer delivers a transactional mail. config.SendMail satisfies it; tests
// swap in a recorder.
type Mailer func(to []string, subject, textBody, htmlBody string) error

// Profile is the read-only projection returned after login.
type Profile struct {
	CorporateID      string `json:"corporateId"`
	EmployeeName     string `json:"employeeName"`
	EmployeeFunction string `json:"employeeFunction"`
	Location         string `json:"location"`
	Role             string `json:"role"`
}

// identity is the common view over the user and admin credential sets.
type identity struct {
	CorporateID      string
	EmployeeName     string
	EmployeeFunction string
	Location         string
	Role             string
	Email            string
	OTPHash          *string
	OTPExpiry        *time.Time
	isAdmin          bool
}

// OTPAuthenticator proves control of a corporate identifier's registered
// email. At most one live code exists per identifier; issuing again simply
// overwrites the previous one.
type OTPAuthenticator struct {
	store    IdentityStore
	sendMail Mailer

	// overridable in tests
	now      func() time.Time
	codeFn   func() (string, error)
	hashCost int
}

func NewOTPAuthenticator(store IdentityStore, sendMail Mailer) *OTPAuthenticator {
	return &OTPAuthenticator{
		store:    store,
		sendMail: sendMail,
		now:      time.Now,
		codeFn:   generateOTPCode,
		hashCost: bcrypt.DefaultCost,
	}
}

// generateOTPCode draws a 4-digit code uniformly from 1000-9999 inclusive.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// resolve looks the identifier up in the user set first, then the admin set.
// Issue and Verify must share this order so an identifier colliding in both
// sets deterministically resolves to the user interpretation.
func (a *OTPAuthenticator) resolve(corporateID string) (*identity, error) {
	user, err := a.store.FindUser(corporateID)
	if err != nil {
		return nil, fmt.Errorf("lookup user credential: %w", err)
	}
	if user != nil {
		return &identity{
			CorporateID:      user.CorporateID,
			EmployeeName:     user.EmployeeName,
			EmployeeFunction: user.EmployeeFunction,
			Location:         user.Location,
			Role:             user.Role,
			Email:            user.Email,
			OTPHash:          user.OTPHash,
			OTPExpiry:        user.OTPExpiry,
		}, nil
	}

	admin, err := a.store.FindAdmin(corporateID)
	if err != nil {
		return nil, fmt.Errorf("lookup admin credential: %w", err)
	}
	if admin != nil {
		return &identity{
			CorporateID:      admin.CorporateID,
			EmployeeName:     admin.EmployeeName,
			EmployeeFunction: admin.EmployeeFunction,
			Location:         admin.Location,
			Role:             admin.Role,
			Email:            admin.Email,
			OTPHash:          admin.OTPHash,
			OTPExpiry:        admin.OTPExpiry,
			isAdmin:          true,
		}, nil
	}

	return nil, nil
}

func (a *OTPAuthenticator) setOTP(id *identity, otpHash *string, expiry *time.Time) error {
	if id.isAdmin {
		return a.store.SetAdminOTP(id.CorporateID, otpHash, expiry)
	}
	return a.store.SetUserOTP(id.CorporateID, otpHash, expiry)
}

// Issue generates a fresh code for the identifier, persists its hash and
// expiry, and emails the plaintext code. Any previously pending code is
// overwritten. A mail delivery failure is surfaced to the caller; the code
// stays persisted and the next issue overwrites it.
func (a *OTPAuthenticator) Issue(corporateID string) error {
	corporateID = strings.TrimSpace(corporateID)
	if corporateID == "" {
		return fmt.Errorf("%w: corporateId is required", ErrValidation)
	}

	id, err := a.resolve(corporateID)
	if err != nil {
		return err
	}
	if id == nil {
		return fmt.Errorf("%w: corporate id %q", ErrNotFound, corporateID)
	}

	code, err := a.codeFn()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), a.hashCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	hash := string(hashed)
	expiry := a.now().Add(otpTTL)
	if err := a.setOTP(id, &hash, &expiry); err != nil {
		return fmt.Errorf("persist otp: %w", err)
	}

	subject := "Your OTP Code"
	text := fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, otpExpiryMinute)
	html := buildEmailHTML(subject,
		[]string{
			fmt.Sprintf("Hello %s,", id.EmployeeName),
			"Use the code below to sign in to the Idea Portal.",
		},
		[]emailMetaItem{
			{Label: "One-time passcode", Value: code},
			{Label: "Valid for", Value: fmt.Sprintf("%d minutes", otpExpiryMinute)},
		},
		"If you did not request this code, you can ignore this email.",
	)
	if err := a.sendMail([]string{id.Email}, subject, text, html); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	return nil
}

// Verify checks the submitted code against the pending one. A successful
// verification consumes the code and returns the record's role. Expired codes
// are rejected but not cleared; the caller must request a new one.
func (a *OTPAuthenticator) Verify(corporateID, code string) (string, error) {
	id, err := a.resolve(strings.TrimSpace(corporateID))
	if err != nil {
		return "", err
	}
	if id == nil || id.OTPHash == nil {
		return "", fmt.Errorf("%w: no matching pending code", ErrInvalidCredential)
	}

	if bcrypt.CompareHashAndPassword([]byte(*id.OTPHash), []byte(code)) != nil {
		return "", fmt.Errorf("%w: otp mismatch", ErrInvalidCredential)
	}

	if id.OTPExpiry == nil || a.now().After(*id.OTPExpiry) {
		return "", fmt.Errorf("%w: otp expired", ErrExpired)
	}

	// Single use: clear both fields on success.
	if err := a.setOTP(id, nil, nil); err != nil {
		return "", fmt.Errorf("clear otp: %w", err)
	}

	return id.Role, nil
}

// Describe returns the display projection for an identifier.
func (a *OTPAuthenticator) Describe(corporateID string) (*Profile, error) {
	id, err := a.resolve(strings.TrimSpace(corporateID))
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, fmt.Errorf("%w: corporate id %q", ErrNotFound, corporateID)
	}

	return &Profile{
		CorporateID:      id.CorporateID,
		EmployeeName:     id.EmployeeName,
		EmployeeFunction: id.EmployeeFunction,
		Location:         id.Location,
		Role:             id.Role,
	}, nil
}
