package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"idea-portal-api/models"
)

func TestGormIdentityStoreFindUserNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `user_credentials` WHERE corporateId = \\?"),
			args:    []driver.Value{"E999"},
			columns: []string{"id", "corporateId"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewIdentityStore(db)
	user, err := store.FindUser("E999")
	if err != nil {
		t.Fatalf("FindUser returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for a missing row, got %+v", user)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestGormIdentityStoreFindUserScansRecord(t *testing.T) {
	expiry := time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `user_credentials` WHERE corporateId = \\?"),
			args:    []driver.Value{"E100"},
			columns: []string{"id", "corporateId", "employeeName", "role", "email", "otp", "otpExpiry"},
			rows: [][]driver.Value{
				{int64(1), "E100", "Asha Rao", "user", "asha@corp.example", "$2a$04$hash", expiry},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewIdentityStore(db)
	user, err := store.FindUser("E100")
	if err != nil {
		t.Fatalf("FindUser returned error: %v", err)
	}
	if user == nil || user.CorporateID != "E100" || user.Role != models.RoleUser {
		t.Fatalf("unexpected record: %+v", user)
	}
	if user.OTPHash == nil || *user.OTPHash != "$2a$04$hash" {
		t.Fatalf("unexpected otp hash: %v", user.OTPHash)
	}
	if user.OTPExpiry == nil || !user.OTPExpiry.Equal(expiry) {
		t.Fatalf("unexpected expiry: %v", user.OTPExpiry)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestGormIdentityStoreSetUserOTPClearsBothFields(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `user_credentials` SET `otp`=\\?,`otpExpiry`=\\? WHERE corporateId = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewIdentityStore(db)
	if err := store.SetUserOTP("E100", nil, nil); err != nil {
		t.Fatalf("SetUserOTP returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestGormIdeaStoreUpdateFieldsIsOneStatement(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `idea_submissions` SET `rejectedAt`=\\?,`rejectionReason`=\\?,`status`=\\? WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewIdeaStore(db)
	err := store.UpdateFields(5, map[string]interface{}{
		"status":          models.StatusRejected,
		"rejectionReason": "Not feasible",
		"rejectedAt":      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("UpdateFields returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestGormIdeaStoreFindByEmployeePropagatesErrors(t *testing.T) {
	dbErr := errors.New("connection lost")
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `idea_submissions` WHERE employeeId = \\?"),
			args:    []driver.Value{"E100"},
			err:     dbErr,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewIdeaStore(db)
	if _, err := store.FindByEmployee("E100"); !errors.Is(err, dbErr) {
		t.Fatalf("expected the store error to surface, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
