package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"idea-portal-api/config"
	"idea-portal-api/models"
	"idea-portal-api/utils"
)

// seed-credentials imports credential records from a CSV with the columns
// corporateId,employeeName,employeeFunction,location,role,email. Rows with
// role "admin" go to the admin set, everything else to the user set.
// Existing records (matched by corporateId) are updated in place; pending
// OTP fields are never touched.
func main() {
	csvPath := flag.String("file", "", "path to the credentials CSV")
	dryRun := flag.Bool("dry-run", false, "parse and validate without writing")
	flag.Parse()

	log.Println("👥 Starting credential import...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	if *csvPath == "" {
		log.Fatal("usage: seed-credentials -file credentials.csv [-dry-run]")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *csvPath, err)
	}
	defer f.Close()

	config.InitDB()

	reader := csv.NewReader(f)
	var (
		line      int
		succeeded int
		failed    []string
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			failed = append(failed, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(record[0], "corporateId") {
			continue // header row
		}
		if err := importRow(record, *dryRun); err != nil {
			log.Printf("❌ line %d: %v", line, err)
			failed = append(failed, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		succeeded++
	}

	log.Printf("✅ Imported %d credential(s)", succeeded)
	if len(failed) > 0 {
		log.Printf("⚠️  %d row(s) failed:", len(failed))
		for _, f := range failed {
			log.Printf("   - %s", f)
		}
		os.Exit(1)
	}
}

func importRow(record []string, dryRun bool) error {
	if len(record) < 6 {
		return fmt.Errorf("expected 6 columns, got %d", len(record))
	}

	corporateID := utils.SanitizeInput(record[0])
	name := utils.SanitizeInput(record[1])
	function := utils.SanitizeInput(record[2])
	location := utils.SanitizeInput(record[3])
	role := strings.ToLower(utils.SanitizeInput(record[4]))
	email := utils.SanitizeInput(record[5])

	if corporateID == "" {
		return errors.New("corporateId is empty")
	}
	if !utils.ValidateEmail(email) {
		return fmt.Errorf("invalid email %q", email)
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("invalid role %q", role)
	}

	if dryRun {
		log.Printf("➡️  would import %s (%s)", corporateID, role)
		return nil
	}

	fields := map[string]interface{}{
		"employeeName":     name,
		"employeeFunction": function,
		"location":         location,
		"role":             role,
		"email":            email,
	}

	if role == models.RoleAdmin {
		return upsertAdmin(corporateID, fields)
	}
	return upsertUser(corporateID, fields)
}

func upsertUser(corporateID string, fields map[string]interface{}) error {
	var existing models.UserCredential
	err := config.DB.Where("corporateId = ?", corporateID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return config.DB.Create(&models.UserCredential{
			CorporateID:      corporateID,
			EmployeeName:     fields["employeeName"].(string),
			EmployeeFunction: fields["employeeFunction"].(string),
			Location:         fields["location"].(string),
			Role:             fields["role"].(string),
			Email:            fields["email"].(string),
		}).Error
	}
	if err != nil {
		return err
	}
	return config.DB.Model(&models.UserCredential{}).
		Where("corporateId = ?", corporateID).
		Updates(fields).Error
}

func upsertAdmin(corporateID string, fields map[string]interface{}) error {
	var existing models.AdminCredential
	err := config.DB.Where("corporateId = ?", corporateID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return config.DB.Create(&models.AdminCredential{
			CorporateID:      corporateID,
			EmployeeName:     fields["employeeName"].(string),
			EmployeeFunction: fields["employeeFunction"].(string),
			Location:         fields["location"].(string),
			Role:             fields["role"].(string),
			Email:            fields["email"].(string),
		}).Error
	}
	if err != nil {
		return err
	}
	return config.DB.Model(&models.AdminCredential{}).
		Where("corporateId = ?", corporateID).
		Updates(fields).Error
}
