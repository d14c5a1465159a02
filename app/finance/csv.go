package finance

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PORTABLEA02/primaire2/app/models"
)

// OutstandingStudent is one row of the outstanding-payments listing: the
// student's identity and class placement with the derived balance attached.
type OutstandingStudent struct {
	StudentID   string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	ClassName   string `json:"class_name"`
	LevelName   string `json:"level_name"`
	ParentPhone string `json:"parent_phone,omitempty"`
	ParentEmail string `json:"parent_email,omitempty"`
	StudentBalance
}

// FormatAmount renders a whole-FCFA amount with space-grouped thousands,
// e.g. 250000 -> "250 000", matching what the spreadsheets downstream expect.
func FormatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDate renders a calendar date the French way (day/month/year).
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// writeCSVRow writes one row with every field quoted, the format the existing
// exports have always used. Embedded quotes are doubled per RFC 4180.
func writeCSVRow(w io.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		quoted := `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		if _, err := io.WriteString(w, quoted); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WritePaymentsCSV serializes a payment list for the finance export
// (paiements_YYYY-MM-DD.csv). Payments are written in the order given.
func WritePaymentsCSV(w io.Writer, payments []models.Payment) error {
	header := []string{"Date", "Élève", "Classe", "Type", "Montant", "Méthode", "Référence", "Statut"}
	if err := writeCSVRow(w, header); err != nil {
		return err
	}
	for _, p := range payments {
		ref := ""
		if p.ReferenceNumber != nil {
			ref = *p.ReferenceNumber
		}
		row := []string{
			FormatDate(p.PaymentDate),
			p.StudentName,
			p.ClassName,
			string(p.Type),
			FormatAmount(p.Amount),
			string(p.Method),
			ref,
			string(p.Status),
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteOutstandingCSV serializes the outstanding-payments listing
// (impayes_YYYY-MM-DD.csv), including the paid percentage per student.
func WriteOutstandingCSV(w io.Writer, students []OutstandingStudent) error {
	header := []string{"Élève", "Classe", "Niveau", "Montant dû", "Total frais", "Montant payé", "Pourcentage payé"}
	if err := writeCSVRow(w, header); err != nil {
		return err
	}
	for _, s := range students {
		row := []string{
			s.FirstName + " " + s.LastName,
			s.ClassName,
			s.LevelName,
			FormatAmount(s.OutstandingAmount),
			FormatAmount(s.TotalFees),
			FormatAmount(s.PaidAmount),
			fmt.Sprintf("%d%%", s.PaidPercentage()),
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// ExportFileName builds the dated attachment name for an export, e.g.
// ExportFileName("paiements", d) -> "paiements_2025-09-01.csv".
func ExportFileName(prefix string, date time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, date.Format("2006-01-02"))
}
