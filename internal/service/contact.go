package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgContactSuccess     = "Thank you for your message! I'll get back to you soon."
	MsgContactStoreFailed = "Failed to submit contact form. Please try again."
	MsgContactUnexpected  = "An unexpected error occurred. Please try again."
)

// * formFields fixes the order violations are reported in
var formFields = []string{"name", "email", "subject", "message"}

// * Notifier is told about every stored contact. Failures are logged only.
type Notifier interface {
	ContactSubmitted(ctx context.Context, contact models.Contact) error
}

type ContactService struct {
	store    models.ContactStore
	notifier Notifier
}

func NewContactService(store models.ContactStore, notifier Notifier) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
	}
}

// * ValidateContactForm checks every rule and joins all violations into one message
func ValidateContactForm(form models.ContactForm) error {
	err := validation.ValidateStruct(&form,
		validation.Field(&form.Name,
			validation.Required.Error("Name must be at least 2 characters"),
			validation.RuneLength(2, 0).Error("Name must be at least 2 characters"),
		),
		validation.Field(&form.Email,
			validation.Required.Error("Please enter a valid email address"),
			is.Email.Error("Please enter a valid email address"),
		),
		validation.Field(&form.Subject,
			validation.Required.Error("Subject must be at least 3 characters"),
			validation.RuneLength(3, 0).Error("Subject must be at least 3 characters"),
		),
		validation.Field(&form.Message,
			validation.Required.Error("Message must be at least 10 characters"),
			validation.RuneLength(10, 0).Error("Message must be at least 10 characters"),
		),
	)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, field := range formFields {
		if fieldErr, found := fieldErrs[field]; found && fieldErr != nil {
			messages = append(messages, fieldErr.Error())
		}
	}

	return errors.New(
		"CONTACT_VALIDATION_ERROR",
		strings.Join(messages, ", "),
		"Contact form failed validation",
		err,
		errors.LevelWarning,
	).WithKind(errors.KindValidation)
}

// * Submit validates the form and stores it exactly once. The returned error's
// * title is safe to show to the visitor.
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) (contact *models.Contact, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Contact form submission error: %v", p)
			metrics.ObserveContact("error")
			contact = nil
			err = errors.New(
				"CONTACT_UNEXPECTED_ERROR",
				MsgContactUnexpected,
				"Contact submission panicked",
				fmt.Errorf("%v", p),
				errors.LevelFatal,
			)
		}
	}()

	if err := ValidateContactForm(form); err != nil {
		metrics.ObserveContact("invalid")
		return nil, err
	}

	contact, err = s.store.InsertContact(ctx, form)
	if err != nil {
		logger.Error("Database error: %v", err)
		metrics.ObserveContact("error")
		return nil, errors.New(
			"CONTACT_STORE_ERROR",
			MsgContactStoreFailed,
			"The contact could not be stored",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	metrics.ObserveContact("success")
	logger.Info("Stored contact %d from %s", contact.ID, contact.Email)

	if s.notifier != nil {
		if nerr := s.notifier.ContactSubmitted(ctx, *contact); nerr != nil {
			logger.Warn("contact %d notification failed: %v", contact.ID, nerr)
		}
	}

	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		logger.Error("Error fetching contacts: %v", err)
		return nil, errors.New(
			"CONTACT_LIST_ERROR",
			"Failed to fetch contacts",
			"The contact list could not be loaded",
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	return s.store.GetContact(ctx, id)
}

// * UpdateStatus moves a contact along new -> read -> replied
func (s *ContactService) UpdateStatus(ctx context.Context, id int64, raw string) (*models.Contact, error) {
	status, err := models.ParseContactStatus(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return nil, errors.New(
			"CONTACT_STATUS_INVALID",
			"Invalid contact status",
			"Status must be one of new, read, replied",
			err,
			errors.LevelWarning,
		).WithKind(errors.KindValidation)
	}

	contact, err := s.store.UpdateContactStatus(ctx, id, status)
	if err != nil {
		// * not found and refused transitions pass through with their own status
		if errors.IsKind(err, errors.KindNotFound) || errors.IsKind(err, errors.KindValidation) {
			return nil, err
		}
		logger.Error("Error updating contact status: %v", err)
		return nil, errors.New(
			"CONTACT_STATUS_ERROR",
			"Failed to update contact status",
			fmt.Sprintf("Contact '%d' could not be updated", id),
			err,
			errors.LevelError,
		).WithKind(errors.KindPersistence)
	}

	logger.Info("Contact %d marked %s", id, status)
	return contact, nil
}
