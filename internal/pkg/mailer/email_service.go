package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReportCopy(toEmail, caseId string, pdf []byte) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendReportCopy mails the rendered case report as a PDF attachment. This is
// the "email me a copy" path for users who can't download on their device.
func (s *emailService) SendReportCopy(toEmail, caseId string, pdf []byte) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Security Deposit Case Report")

	body := `
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your case report is attached</h2>
			<p>The attached PDF contains your case analysis, action plan, and demand letter.</p>
			<p>Keep a copy for your records — you may need it in small claims court.</p>
			<p>This document is available for download for a limited time after purchase.</p>
		</div>
	`
	m.SetBody("text/html", body)
	m.Attach(
		fmt.Sprintf("case-report-%s.pdf", caseId),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
	)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send report copy to %s: %w", toEmail, err)
	}
	return nil
}
