package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dentalops/dental-admin-api/config"
	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/pkg/logger"
)

// Service sends transactional mail to patients.
type Service interface {
	SendPrescription(patient *model.Patient, prescription *model.Prescription) error
}

type SMTPService struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

func NewSMTPService(cfg config.SMTPConfig, log *logger.Logger) *SMTPService {
	return &SMTPService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

func (s *SMTPService) SendPrescription(patient *model.Patient, prescription *model.Prescription) error {
	if patient.Email == "" {
		return fmt.Errorf("patient %s has no email address", patient.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", patient.Email)
	m.SetHeader("Subject", "Your prescription is ready")
	m.SetBody("text/html", renderPrescription(patient, prescription))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error(err, "failed to send prescription email",
			"prescription_id", prescription.ID.String())
		return fmt.Errorf("failed to send prescription email: %w", err)
	}

	s.logger.Info("prescription email sent",
		"prescription_id", prescription.ID.String(),
		"patient_id", patient.ID.String())
	return nil
}

func renderPrescription(patient *model.Patient, prescription *model.Prescription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Prescription for %s %s</h2>", patient.FirstName, patient.LastName)
	b.WriteString("<ul>")
	for _, med := range prescription.Medications {
		fmt.Fprintf(&b, "<li><strong>%s</strong> %s, %s", med.Name, med.Dosage, med.Frequency)
		if med.DurationDays > 0 {
			fmt.Fprintf(&b, " for %d days", med.DurationDays)
		}
		if med.Instructions != "" {
			fmt.Fprintf(&b, "<br/><em>%s</em>", med.Instructions)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	if prescription.Notes != "" {
		fmt.Fprintf(&b, "<p>%s</p>", prescription.Notes)
	}
	return b.String()
}
