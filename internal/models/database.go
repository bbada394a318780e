package models

import "context"

// * This interface defines all db operations needed by the application
type ContactStore interface {
	InsertContact(ctx context.Context, form ContactForm) (*Contact, error)
	ListContacts(ctx context.Context) ([]Contact, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	UpdateContactStatus(ctx context.Context, id int64, status ContactStatus) (*Contact, error)
}
