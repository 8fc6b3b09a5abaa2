package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"

	"idea-portal-api/services"
)

const maxAttachments = 10

var whitespaceRe = regexp.MustCompile(`\s+`)

func uploadDir() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// attachmentFilename builds the stored name: the submitter's identifier plus
// the original name with whitespace collapsed to underscores. The reference
// is stored verbatim on the idea record and served back under /uploads.
func attachmentFilename(employeeID, original string) string {
	safeName := whitespaceRe.ReplaceAllString(filepath.Base(original), "_")
	return employeeID + "_" + safeName
}

// SubmitForm accepts the multipart idea submission with up to ten
// attachments.
func SubmitForm(c *gin.Context) {
	employeeID := c.PostForm("employeeId")
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Employee ID is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}

	files := form.File["attachments"]
	if len(files) > maxAttachments {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Too many attachments (max 10)"})
		return
	}

	attachments := make([]string, 0, len(files))
	for _, file := range files {
		name := attachmentFilename(employeeID, file.Filename)
		dst := filepath.Join(uploadDir(), name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error storing attachment", "error": err.Error()})
			return
		}
		attachments = append(attachments, name)
	}

	idea, err := ideaService.Submit(services.IdeaInput{
		EmployeeName:          c.PostForm("employeeName"),
		EmployeeID:            employeeID,
		EmployeeFunction:      c.PostForm("employeeFunction"),
		Location:              c.PostForm("location"),
		IdeaTheme:             c.PostForm("ideaTheme"),
		Department:            c.PostForm("department"),
		BenefitsCategory:      c.PostForm("benefitsCategory"),
		IdeaDescription:       c.PostForm("ideaDescription"),
		ImpactedProcess:       c.PostForm("impactedProcess"),
		ExpectedBenefitsValue: c.PostForm("expectedBenefitsValue"),
		Attachments:           attachments,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Employee ID is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error submitting form", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Form submitted successfully",
		"ideaId":  idea.ID,
	})
}
