package controllers

import (
	"gorm.io/gorm"

	"idea-portal-api/config"
	"idea-portal-api/services"
)

// Package-level service handles, swapped out by tests.
var (
	otpService        *services.OTPAuthenticator
	ideaService       *services.IdeaService
	notificationStore services.NotificationStore
)

// Init wires the controllers to GORM-backed stores and the SMTP mailer.
func Init(db *gorm.DB) {
	identities := services.NewIdentityStore(db)
	ideas := services.NewIdeaStore(db)
	notifications := services.NewNotificationStore(db)

	otpService = services.NewOTPAuthenticator(identities, config.SendMail)
	ideaService = services.NewIdeaService(ideas, identities, notifications, config.SendMail)
	notificationStore = notifications
}
