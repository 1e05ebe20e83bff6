package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"quotation-backend/config"
	"quotation-backend/models"

	xhtml "golang.org/x/net/html"
	"gopkg.in/gomail.v2"
)

const (
	InternalAttachmentName = "Requirements_Summary.pdf"
	ClientAttachmentName   = "Your_Quotation_Summary.pdf"
)

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, email models.OutgoingEmail) error
}

var internalNotificationTemplate = models.EmailTemplate{
	Name:    "internal_notification",
	Subject: "New Quotation Request",
	Body: `<h3>Client Details</h3>
<p><strong>Name:</strong> {{client_name}}</p>
<p><strong>Email:</strong> {{client_email}}</p>
<p><strong>Phone:</strong> {{phone}}</p>
<p><strong>Message:</strong> {{message}}</p>
<p><strong>Grand Total:</strong> ₹{{grand_total}}</p>
<pre>{{table_details}}</pre>`,
	IsHTML:         true,
	AttachmentName: InternalAttachmentName,
}

var clientConfirmationTemplate = models.EmailTemplate{
	Name:    "client_confirmation",
	Subject: "Your Project Summary - {{client_name}}",
	Body: `Hello {{client_name}},

Thank you for using {{company_name}}'s Website Cost Calculator.
Your project summary PDF is attached.`,
	AttachmentName: ClientAttachmentName,
}

// convertHTMLToText converts HTML content to plain text for the text/plain part
func convertHTMLToText(htmlContent string) string {
	doc, err := xhtml.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*xhtml.Node)
	extractText = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			text.WriteString(n.Data)
		case xhtml.ElementNode:
			// Line breaks for block elements
			switch n.Data {
			case "p", "div", "br", "pre", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("• ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

// EmailService renders the quotation emails and hands them to a Mailer.
type EmailService struct {
	mailer      Mailer
	from        string
	notifyTo    string
	companyName string
}

func NewEmailService(mailer Mailer, cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		mailer:      mailer,
		from:        cfg.Username,
		notifyTo:    cfg.NotifyTo,
		companyName: cfg.CompanyName,
	}
}

// SendInternalNotification mails the full submission to the company inbox.
func (es *EmailService) SendInternalNotification(ctx context.Context, data models.EmailData, pdfPath string) error {
	if data.Message == "" {
		data.Message = "N/A"
	}
	email := es.render(internalNotificationTemplate, data, pdfPath, es.notifyTo)
	if err := es.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send internal notification: %w", err)
	}
	log.Printf("internal notification sent to %s", es.notifyTo)
	return nil
}

// SendClientConfirmation mails the thank-you note to the submitter.
func (es *EmailService) SendClientConfirmation(ctx context.Context, data models.EmailData, pdfPath string) error {
	email := es.render(clientConfirmationTemplate, data, pdfPath, data.ClientEmail)
	if err := es.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send client confirmation: %w", err)
	}
	log.Printf("client confirmation sent to %s", data.ClientEmail)
	return nil
}

func (es *EmailService) render(tmpl models.EmailTemplate, data models.EmailData, pdfPath, to string) models.OutgoingEmail {
	if data.CompanyName == "" {
		data.CompanyName = es.companyName
	}

	email := models.OutgoingEmail{
		From:        es.from,
		To:          []string{to},
		Subject:     processTemplate(tmpl.Subject, data, false),
		Attachments: []models.Attachment{{Filename: tmpl.AttachmentName, Path: pdfPath}},
	}
	if tmpl.IsHTML {
		email.HTMLBody = processTemplate(tmpl.Body, data, true)
		email.TextBody = convertHTMLToText(email.HTMLBody)
	} else {
		email.TextBody = processTemplate(tmpl.Body, data, false)
	}
	return email
}

// processTemplate replaces {{variable}} placeholders in a single pass, so a
// value that itself contains a placeholder is left as typed. Values are
// HTML-escaped when the template is HTML.
func processTemplate(templateStr string, data models.EmailData, escape bool) string {
	variables := map[string]string{
		"client_name":   data.ClientName,
		"client_email":  data.ClientEmail,
		"phone":         data.Phone,
		"message":       data.Message,
		"grand_total":   data.GrandTotal,
		"table_details": data.TableDetails,
		"company_name":  data.CompanyName,
	}

	pairs := make([]string, 0, len(variables)*2)
	for key, value := range variables {
		if escape {
			value = html.EscapeString(value)
		}
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(templateStr)
}

// SMTPMailer sends mail through an SMTP relay. Port 465 uses implicit TLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email models.OutgoingEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(buildMessage(email)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", strings.Join(email.To, ", "), err)
	}
	return nil
}

func buildMessage(email models.OutgoingEmail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", email.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.TextBody != "":
		msg.SetBody("text/plain", email.TextBody)
		msg.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		msg.SetBody("text/html", email.HTMLBody)
	default:
		msg.SetBody("text/plain", email.TextBody)
	}

	for _, att := range email.Attachments {
		msg.Attach(att.Path, gomail.Rename(att.Filename))
	}
	return msg
}
