package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactStore struct {
	mock.Mock
}

func (m *MockContactStore) InsertContact(ctx context.Context, form models.ContactForm) (*models.Contact, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactStore) ListContacts(ctx context.Context) ([]models.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

func (m *MockContactStore) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactStore) UpdateContactStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ContactSubmitted(ctx context.Context, contact models.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

var validForm = models.ContactForm{
	Name:    "Jane Doe",
	Email:   "jane@x.com",
	Subject: "Hello there",
	Message: "This is a sufficiently long message.",
}

func TestValidateContactForm(t *testing.T) {
	tests := []struct {
		name     string
		form     models.ContactForm
		expected string
	}{
		{
			name:     "every field invalid",
			form:     models.ContactForm{Name: "J", Email: "bad", Subject: "Hi", Message: "short"},
			expected: "Name must be at least 2 characters, Please enter a valid email address, Subject must be at least 3 characters, Message must be at least 10 characters",
		},
		{
			name:     "two character name is accepted",
			form:     models.ContactForm{Name: "Jo", Email: "bad", Subject: "Hi", Message: "short"},
			expected: "Please enter a valid email address, Subject must be at least 3 characters, Message must be at least 10 characters",
		},
		{
			name:     "empty fields",
			form:     models.ContactForm{},
			expected: "Name must be at least 2 characters, Please enter a valid email address, Subject must be at least 3 characters, Message must be at least 10 characters",
		},
		{
			name:     "only message too short",
			form:     models.ContactForm{Name: "Jane", Email: "jane@x.com", Subject: "Hey", Message: "123456789"},
			expected: "Message must be at least 10 characters",
		},
		{
			name: "valid",
			form: validForm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContactForm(tt.form)
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindValidation))
			assert.Equal(t, http.StatusBadRequest, errors.StatusOf(err))
			assert.Equal(t, tt.expected, errors.NewHTTPErrorResponse(err).Error)
		})
	}
}

func TestValidateContactForm_EmailFormat(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "jane@x.com", valid: true},
		{email: "jane.doe+tag@example.co.uk", valid: true},
		{email: "bad", valid: false},
		{email: "jane@", valid: false},
		{email: "@x.com", valid: false},
		{email: "jane@x", valid: false},
		{email: "jane doe@x.com", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			form := validForm
			form.Email = tt.email

			err := ValidateContactForm(form)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "Please enter a valid email address", errors.NewHTTPErrorResponse(err).Error)
		})
	}
}

func TestSubmit_InvalidFormWritesNothing(t *testing.T) {
	store := new(MockContactStore)
	notifier := new(MockNotifier)
	svc := NewContactService(store, notifier)

	contact, err := svc.Submit(context.Background(), models.ContactForm{Name: "Jo", Email: "bad", Subject: "Hi", Message: "short"})

	assert.Nil(t, contact)
	assert.True(t, errors.IsKind(err, errors.KindValidation))
	store.AssertNotCalled(t, "InsertContact", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "ContactSubmitted", mock.Anything, mock.Anything)
}

func TestSubmit_Success(t *testing.T) {
	store := new(MockContactStore)
	notifier := new(MockNotifier)
	svc := NewContactService(store, notifier)

	stored := &models.Contact{
		ID:        1,
		Name:      validForm.Name,
		Email:     validForm.Email,
		Subject:   validForm.Subject,
		Message:   validForm.Message,
		Status:    models.StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	store.On("InsertContact", mock.Anything, validForm).Return(stored, nil).Once()
	notifier.On("ContactSubmitted", mock.Anything, *stored).Return(nil).Once()

	contact, err := svc.Submit(context.Background(), validForm)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, contact.Status)
	store.AssertNumberOfCalls(t, "InsertContact", 1)
	notifier.AssertExpectations(t)
}

func TestSubmit_NotificationFailureIsIgnored(t *testing.T) {
	store := new(MockContactStore)
	notifier := new(MockNotifier)
	svc := NewContactService(store, notifier)

	stored := &models.Contact{ID: 2, Status: models.StatusNew}
	store.On("InsertContact", mock.Anything, validForm).Return(stored, nil)
	notifier.On("ContactSubmitted", mock.Anything, *stored).Return(stderrors.New("broker down"))

	contact, err := svc.Submit(context.Background(), validForm)
	require.NoError(t, err)
	assert.Equal(t, int64(2), contact.ID)
}

func TestSubmit_StoreFailure(t *testing.T) {
	store := new(MockContactStore)
	svc := NewContactService(store, nil)

	store.On("InsertContact", mock.Anything, validForm).Return(nil, stderrors.New("connection refused"))

	contact, err := svc.Submit(context.Background(), validForm)
	assert.Nil(t, contact)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindPersistence))

	resp := errors.NewHTTPErrorResponse(err)
	assert.Equal(t, MsgContactStoreFailed, resp.Error)
	assert.NotContains(t, resp.Error, "connection refused")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestSubmit_PanicIsRecovered(t *testing.T) {
	store := new(MockContactStore)
	svc := NewContactService(store, nil)

	store.On("InsertContact", mock.Anything, validForm).Run(func(args mock.Arguments) {
		panic("nil map")
	}).Return(nil, nil)

	contact, err := svc.Submit(context.Background(), validForm)
	assert.Nil(t, contact)
	require.Error(t, err)
	assert.Equal(t, MsgContactUnexpected, errors.NewHTTPErrorResponse(err).Error)
	assert.Equal(t, http.StatusInternalServerError, errors.StatusOf(err))
}

func TestUpdateStatus(t *testing.T) {
	store := new(MockContactStore)
	svc := NewContactService(store, nil)

	updated := &models.Contact{ID: 4, Status: models.StatusReplied}
	store.On("UpdateContactStatus", mock.Anything, int64(4), models.StatusReplied).Return(updated, nil)

	contact, err := svc.UpdateStatus(context.Background(), 4, " Replied ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReplied, contact.Status)
	store.AssertExpectations(t)
}

func TestUpdateStatus_Errors(t *testing.T) {
	notFound := errors.New("DB_CONTACT_NOT_FOUND", "Contact not found", "", nil, errors.LevelInfo).WithKind(errors.KindNotFound)
	refused := errors.New("CONTACT_STATUS_TRANSITION", "Status change not allowed", "", nil, errors.LevelWarning).
		WithKind(errors.KindValidation).WithStatus(http.StatusConflict)

	tests := []struct {
		name           string
		status         string
		storeErr       error
		expectedStatus int
		expectedKind   errors.Kind
	}{
		{name: "unknown status", status: "archived", expectedStatus: http.StatusBadRequest, expectedKind: errors.KindValidation},
		{name: "missing contact", status: "read", storeErr: notFound, expectedStatus: http.StatusNotFound, expectedKind: errors.KindNotFound},
		{name: "refused transition", status: "new", storeErr: refused, expectedStatus: http.StatusConflict, expectedKind: errors.KindValidation},
		{name: "store failure", status: "read", storeErr: stderrors.New("timeout"), expectedStatus: http.StatusInternalServerError, expectedKind: errors.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockContactStore)
			if tt.storeErr != nil {
				store.On("UpdateContactStatus", mock.Anything, int64(9), mock.Anything).Return(nil, tt.storeErr)
			}
			svc := NewContactService(store, nil)

			_, err := svc.UpdateStatus(context.Background(), 9, tt.status)
			require.Error(t, err)
			assert.Equal(t, tt.expectedStatus, errors.StatusOf(err))
			assert.True(t, errors.IsKind(err, tt.expectedKind))
		})
	}
}

func TestList(t *testing.T) {
	store := new(MockContactStore)
	svc := NewContactService(store, nil)

	store.On("ListContacts", mock.Anything).Return([]models.Contact{{ID: 2}, {ID: 1}}, nil).Once()
	store.On("ListContacts", mock.Anything).Return(nil, stderrors.New("down")).Once()

	contacts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	_, err = svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch contacts", errors.NewHTTPErrorResponse(err).Error)
}
