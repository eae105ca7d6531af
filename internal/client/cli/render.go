package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/medesi/portal/internal/client/models"
)

const greetingFallback = "PATIENT"

// Profile placeholders shown while the user is unknown.
const (
	emailPlaceholder = "Email"
	agePlaceholder   = "Age"
	phonePlaceholder = "Phone Number"
)

func greeting(u *models.User) string {
	name := greetingFallback
	if u != nil && strings.TrimSpace(u.FirstName) != "" {
		name = strings.ToUpper(u.FirstName)
	}
	return "HELLO, " + name
}

// weekStrip renders today and the six following days as "Mon 02".
func weekStrip(now time.Time) string {
	days := make([]string, 0, 7)
	for i := range 7 {
		d := now.AddDate(0, 0, i)
		days = append(days, d.Format("Mon 02"))
	}
	return strings.Join(days, " | ")
}

func formatConsultation(c models.Consultation) string {
	return fmt.Sprintf("  %-8s  %s: %s", c.Time, c.Title, c.Description)
}

func profileRows(u *models.User) [][2]string {
	if u == nil {
		return [][2]string{
			{"Name", greetingFallback},
			{"Email", emailPlaceholder},
			{"Age", agePlaceholder},
			{"Phone", phonePlaceholder},
		}
	}
	return [][2]string{
		{"Name", u.FullName()},
		{"Email", u.Email},
		{"Age", strconv.Itoa(u.Age)},
		{"Phone", u.PhoneNumber},
		{"Patient type", u.PatientType},
	}
}

func formatRow(row [2]string) string {
	return fmt.Sprintf("  %-22s %s", row[0]+":", row[1])
}
