package handler

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/internal/service"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/gorilla/mux"
)

const maxFormBytes = 64 << 10

type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/contact", h.submitContact).Methods("POST")
}

// * RegisterAdminRoutes expects r to be guarded by the admin middleware
func (h *ContactHandler) RegisterAdminRoutes(r *mux.Router) {
	r.HandleFunc("/contacts", h.listContacts).Methods("GET")
	r.HandleFunc("/contacts/{id:[0-9]+}", h.getContact).Methods("GET")
	r.HandleFunc("/contacts/{id:[0-9]+}/status", h.updateStatus).Methods("PATCH")
}

// submitContact godoc
// @Summary Submit the contact form
// @Description Validates the form and stores it. Accepts form-encoded or JSON bodies.
// @Tags Contact
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param name formData string true "Sender name"
// @Param email formData string true "Sender email"
// @Param subject formData string true "Subject"
// @Param message formData string true "Message"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} ContactResponse "Validation failed"
// @Failure 500 {object} ContactResponse "Failed to submit contact form"
// @Router /contact [post]
func (h *ContactHandler) submitContact(w http.ResponseWriter, r *http.Request) {
	form, err := decodeContactForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ContactResponse{Success: false, Error: "Invalid request"})
		return
	}

	contact, err := h.service.Submit(r.Context(), form)
	if err != nil {
		resp := errors.NewHTTPErrorResponse(err)
		if resp.Status >= http.StatusInternalServerError {
			logger.Error("Contact form submission error: %v", err)
		}
		writeJSON(w, resp.Status, ContactResponse{Success: false, Error: resp.Error})
		return
	}

	writeJSON(w, http.StatusCreated, ContactResponse{
		Success: true,
		Message: service.MsgContactSuccess,
		Data:    contact,
	})
}

func decodeContactForm(r *http.Request) (models.ContactForm, error) {
	var form models.ContactForm
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&form)
		return form, err
	}

	if err := r.ParseForm(); err != nil {
		return form, err
	}
	form.Name = r.PostFormValue("name")
	form.Email = r.PostFormValue("email")
	form.Subject = r.PostFormValue("subject")
	form.Message = r.PostFormValue("message")
	return form, nil
}

// listContacts godoc
// @Summary List contacts
// @Description All contact submissions, newest first
// @Tags Admin
// @Produce json
// @Security AdminToken
// @Success 200 {object} APIResponse{data=[]models.Contact}
// @Failure 401 {object} errors.HTTPErrorResponse
// @Failure 500 {object} APIResponse "Failed to fetch contacts"
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /admin/contacts [get]
func (h *ContactHandler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.List(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contacts)
}

// getContact godoc
// @Summary Get one contact
// @Tags Admin
// @Produce json
// @Security AdminToken
// @Param id path int true "Contact ID"
// @Success 200 {object} APIResponse{data=models.Contact}
// @Failure 404 {object} APIResponse "Contact not found"
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /admin/contacts/{id} [get]
func (h *ContactHandler) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	contact, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contact)
}

// updateStatus godoc
// @Summary Update contact status
// @Description Allowed moves: new to read, anything to replied
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path int true "Contact ID"
// @Param status body models.StatusRequest true "New status"
// @Success 200 {object} APIResponse{data=models.Contact}
// @Failure 400 {object} APIResponse "Invalid contact status"
// @Failure 404 {object} APIResponse "Contact not found"
// @Failure 409 {object} APIResponse "Status change not allowed"
// @Failure 503 {object} errors.HTTPErrorResponse
// @Router /admin/contacts/{id}/status [patch]
func (h *ContactHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var req models.StatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: "Invalid request"})
		return
	}

	contact, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, contact, "Contact status updated")
}

func contactID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New(
			"CONTACT_ID_INVALID",
			"Invalid contact id",
			"Contact id must be a number",
			err,
			errors.LevelWarning,
		).WithKind(errors.KindValidation)
	}
	return id, nil
}
