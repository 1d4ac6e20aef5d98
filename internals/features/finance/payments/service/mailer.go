// file: internals/features/finance/payments/service/mailer.go
package service

import (
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"kelasku_backend/internals/configs"
)

// InvoiceMailer mengirim invoice; diabstraksi supaya test bisa pakai fake.
type InvoiceMailer interface {
	SendInvoice(toEmail, toName, subject, htmlBody string, attachment []byte, filename string) error
}

/* ===================== SendGrid impl ===================== */

type SendGridMailer struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		APIKey:    configs.SendGridAPIKey,
		FromEmail: configs.SendGridFromEmail,
		FromName:  configs.SendGridFromName,
	}
}

func (m *SendGridMailer) SendInvoice(toEmail, toName, subject, htmlBody string, attachment []byte, filename string) error {
	if m.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY belum diset")
	}

	from := sgmail.NewEmail(m.FromName, m.FromEmail)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	if len(attachment) > 0 {
		att := sgmail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(attachment))
		att.SetType("application/pdf")
		att.SetFilename(filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	client := sendgrid.NewSendClient(m.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
