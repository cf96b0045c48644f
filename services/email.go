package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"lawyer_tools/config"
	"lawyer_tools/services/i18n"
	"log"
	"path"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/resend/resend-go/v2"
)

//go:embed emails
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// emailSender is swapped in tests
var emailSender = sendViaResend

// readTemplate returns the localized variant of name+ext, or the base template
func readTemplate(name, lang, ext string) (string, []byte, error) {
	localized := path.Join("emails", fmt.Sprintf("%s_%s%s", name, lang, ext))
	if content, err := fs.ReadFile(emailTemplates, localized); err == nil {
		return localized, content, nil
	}
	base := path.Join("emails", name+ext)
	content, err := fs.ReadFile(emailTemplates, base)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read template %s: %w", base, err)
	}
	return base, content, nil
}

// loadTemplate renders the HTML and text variants of an email template
func loadTemplate(name string, lang string, data interface{}) (html string, text string, err error) {
	htmlPath, htmlContent, err := readTemplate(name, lang, ".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path.Base(htmlPath)).Parse(string(htmlContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlPath, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlPath, err)
	}

	textPath, textContent, err := readTemplate(name, lang, ".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path.Base(textPath)).Parse(string(textContent))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textPath, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textPath, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API, or logs it in test mode
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	return emailSender(cfg, email)
}

func sendViaResend(cfg *config.Config, email *Email) error {
	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
		ReplyTo: email.ReplyTo,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so handlers don't block
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := *email
	emailCopy.To = append([]string{}, email.To...)

	go func() {
		if err := SendEmail(cfg, &emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// ContactEmailData contains data for the contact request email template
type ContactEmailData struct {
	Name       string
	Email      string
	Message    string
	ReceivedAt string
}

// BuildContactEmail creates the notification sent to the portal operators
func BuildContactEmail(recipient string, data ContactEmailData, lang string) (*Email, error) {
	if data.ReceivedAt == "" {
		data.ReceivedAt = time.Now().Format("02.01.2006 15:04")
	}
	htmlBody, textBody, err := loadTemplate("contact_request", lang, data)
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       []string{recipient},
		ReplyTo:  data.Email,
		Subject:  i18n.Translate(lang, "email.subject.contact_request", map[string]interface{}{"name": data.Name}),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// BuildSecurityAlertEmail creates the alert sent when the security monitor fires
func BuildSecurityAlertEmail(recipient string, alert SecurityAlert) (*Email, error) {
	data := map[string]string{
		"Reason": alert.Reason,
		"IP":     alert.IP,
		"Time":   alert.Timestamp.Format(time.RFC1123),
	}
	htmlBody, textBody, err := loadTemplate("security_alert", "en", data)
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       []string{recipient},
		Subject:  fmt.Sprintf("Security Alert: %s", alert.Reason),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}
