package services

import (
	"context"
	"fmt"
	"html"
	"lawyer_tools/config"
	"lawyer_tools/models"
	"log"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	maxContactNameLength    = 200
	maxContactMessageLength = 5000
)

// ContactValidationError reports an invalid contact form field.
// Key is an i18n key for the user-facing message.
type ContactValidationError struct {
	Field string
	Key   string
}

func (e *ContactValidationError) Error() string {
	return fmt.Sprintf("invalid contact field %s", e.Field)
}

// ContactInput is the submitted contact form
type ContactInput struct {
	Name           string
	Email          string
	Message        string
	TurnstileToken string
	IPAddress      string
	UserID         string
	Lang           string
}

var contactPolicy = bluemonday.StrictPolicy()

// stripMarkup removes all tags and returns plain text
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(contactPolicy.Sanitize(s)))
}

// SanitizeContactInput strips markup and surrounding whitespace from the free-text fields
func SanitizeContactInput(in ContactInput) ContactInput {
	in.Name = stripMarkup(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = stripMarkup(in.Message)
	return in
}

// ValidateContactInput checks required fields and limits
func ValidateContactInput(in ContactInput) error {
	if in.Name == "" {
		return &ContactValidationError{Field: "name", Key: "contact.errors.name_required"}
	}
	if utf8.RuneCountInString(in.Name) > maxContactNameLength {
		return &ContactValidationError{Field: "name", Key: "contact.errors.name_too_long"}
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return &ContactValidationError{Field: "email", Key: "contact.errors.email_invalid"}
	}
	if in.Message == "" {
		return &ContactValidationError{Field: "message", Key: "contact.errors.message_required"}
	}
	if utf8.RuneCountInString(in.Message) > maxContactMessageLength {
		return &ContactValidationError{Field: "message", Key: "contact.errors.message_too_long"}
	}
	return nil
}

// SubmitContactRequest verifies, stores (encrypted) and forwards a contact form submission
func SubmitContactRequest(ctx context.Context, db *gorm.DB, cfg *config.Config, in ContactInput) (*models.ContactRequest, error) {
	in = SanitizeContactInput(in)
	if err := ValidateContactInput(in); err != nil {
		return nil, err
	}

	if cfg.TurnstileSecretKey != "" {
		if err := VerifyTurnstile(ctx, cfg.TurnstileSecretKey, in.TurnstileToken, in.IPAddress); err != nil {
			log.Printf("[SECURITY] Contact captcha rejected from %s: %v", in.IPAddress, err)
			return nil, ErrTurnstileFailed
		}
	}

	request := &models.ContactRequest{
		UserID:    ptrIfNotEmpty(in.UserID),
		IPAddress: in.IPAddress,
	}
	var err error
	if request.NameEncrypted, err = EncryptSensitiveData(in.Name); err != nil {
		return nil, fmt.Errorf("failed to encrypt contact name: %w", err)
	}
	if request.EmailEncrypted, err = EncryptSensitiveData(in.Email); err != nil {
		return nil, fmt.Errorf("failed to encrypt contact email: %w", err)
	}
	if request.MessageEncrypted, err = EncryptSensitiveData(in.Message); err != nil {
		return nil, fmt.Errorf("failed to encrypt contact message: %w", err)
	}

	if err := db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact request: %w", err)
	}

	email, err := BuildContactEmail(cfg.ContactRecipient, ContactEmailData{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}, in.Lang)
	if err != nil {
		log.Printf("[WARNING] Failed to build contact email %s: %v", request.ID, err)
		return request, nil
	}

	if err := SendEmail(cfg, email); err != nil {
		log.Printf("[WARNING] Failed to send contact email %s: %v", request.ID, err)
		return request, nil
	}

	request.EmailSent = true
	if err := db.Model(request).Update("email_sent", true).Error; err != nil {
		log.Printf("[WARNING] Failed to mark contact request %s as sent: %v", request.ID, err)
	}

	return request, nil
}

// DecryptContactRequest returns the plaintext name, email and message of a stored request
func DecryptContactRequest(r *models.ContactRequest) (name, email, message string, err error) {
	if name, err = DecryptSensitiveData(r.NameEncrypted); err != nil {
		return "", "", "", err
	}
	if email, err = DecryptSensitiveData(r.EmailEncrypted); err != nil {
		return "", "", "", err
	}
	if message, err = DecryptSensitiveData(r.MessageEncrypted); err != nil {
		return "", "", "", err
	}
	return name, email, message, nil
}
