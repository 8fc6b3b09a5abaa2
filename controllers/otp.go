package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"idea-portal-api/middleware"
	"idea-portal-api/services"
	"idea-portal-api/utils"
)

type otpRequest struct {
	CorporateID string `json:"corporateId" binding:"required"`
}

type verifyOTPRequest struct {
	CorporateID string `json:"corporateId" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// RequestOTP issues a fresh code for the identifier and emails it. Serves
// both /request-otp and /resend-otp; a resend simply overwrites the pending
// code.
func RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "corporateId is required"})
		return
	}

	err := otpService.Issue(utils.SanitizeInput(req.CorporateID))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Corporate ID not found"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "corporateId is required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
	}
}

// VerifyOTP consumes a pending code and returns the role plus a session
// token for the authenticated routes.
func VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "corporateId and otp are required"})
		return
	}

	role, err := otpService.Verify(utils.SanitizeInput(req.CorporateID), utils.SanitizeInput(req.OTP))
	switch {
	case err == nil:
		// fall through to token issuance
	case errors.Is(err, services.ErrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
		return
	case errors.Is(err, services.ErrInvalidCredential):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify OTP"})
		return
	}

	token, err := generateToken(req.CorporateID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"role":    role,
		"token":   token,
	})
}

// GetUserDetails returns the display profile for an identifier.
func GetUserDetails(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "corporateId is required"})
		return
	}

	profile, err := otpService.Describe(utils.SanitizeInput(req.CorporateID))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, profile)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User/Admin not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user details"})
	}
}

// GetMe returns the profile of the authenticated caller.
func GetMe(c *gin.Context) {
	corporateID := c.GetString("corporateID")

	profile, err := otpService.Describe(corporateID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, profile)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User/Admin not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
	}
}

// generateToken creates the session JWT issued after a successful OTP verify.
func generateToken(corporateID, role string) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}

	claims := middleware.Claims{
		CorporateID: corporateID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
