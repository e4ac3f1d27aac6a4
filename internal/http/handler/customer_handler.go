package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/domain"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk
const multipartMemory = 8 << 20

type CustomerHandler struct {
	customerService *service.CustomerService
	views           *Views
	maxUploadBytes  int64
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, views *Views, maxUploadBytes int64, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		views:           views,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Index godoc
// @Summary List customers
// @Description Lists every customer record. Browsers get the HTML list unless Accept asks for JSON.
// @Tags Customers
// @Produce json,html
// @Success 200 {array} domain.Customer
// @Failure 500 {object} domain.APIError
// @Router /customers [get]
func (h *CustomerHandler) Index(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, customers)
		return
	}
	h.views.Render(w, http.StatusOK, "index", "Customers", customers)
}

// CreateForm godoc
// @Summary Empty customer form
// @Tags Customers
// @Produce json,html
// @Success 200 {object} domain.CustomerForm
// @Router /customers/create [get]
func (h *CustomerHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, domain.CustomerForm{})
		return
	}
	h.views.Render(w, http.StatusOK, "create", "Create customer", formPage{
		Form:   domain.CustomerForm{},
		Errors: map[string]string{},
	})
}

// Create godoc
// @Summary Create customer
// @Description Validates the form, uploads the optional photo, stores the customer and queues an audit message.
// @Description JSON clients get 201 with a Location header; browsers are redirected to the list.
// @Tags Customers
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json,html
// @Param request body domain.CustomerForm false "Customer data (JSON requests)"
// @Param image formData file false "Customer photo (multipart requests)"
// @Success 201 {object} domain.Customer
// @Success 303 "Redirect to /customers"
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /customers/create [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form domain.CustomerForm
	image, status, msg := h.parseForm(w, r, &form, "image")
	if status != 0 {
		respondError(w, r, h.views, status, msg)
		return
	}
	if image != nil {
		defer image.Close()
	}

	fieldErrors := map[string]string{}
	if err := validate.Struct(&form); err != nil {
		fieldErrors = validationErrors(err)
	}
	if msg, ok := h.checkImage(image); !ok {
		fieldErrors["image"] = msg
	}
	if len(fieldErrors) > 0 {
		h.invalidForm(w, r, "create", "Create customer", formPage{Form: form, Errors: fieldErrors})
		return
	}

	customer, err := h.customerService.Create(r.Context(), &form, reader(image))
	if err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	if wantsJSON(r) {
		w.Header().Set("Location", fmt.Sprintf("/customers/%s/%s", customer.PartitionKey, customer.RowKey))
		respondJSON(w, http.StatusCreated, customer)
		return
	}
	redirect(w, r, "/customers")
}

// Details godoc
// @Summary Get customer
// @Tags Customers
// @Produce json,html
// @Param partitionKey path string true "Partition key"
// @Param rowKey path string true "Row key"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /customers/{partitionKey}/{rowKey} [get]
func (h *CustomerHandler) Details(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, customer)
		return
	}
	h.views.Render(w, http.StatusOK, "details", "Customer details", customer)
}

// EditForm godoc
// @Summary Edit form prefilled with the stored record
// @Tags Customers
// @Produce json,html
// @Param partitionKey path string true "Partition key"
// @Param rowKey path string true "Row key"
// @Success 200 {object} domain.EditCustomerForm
// @Failure 404 {object} domain.APIError
// @Router /customers/{partitionKey}/{rowKey}/edit [get]
func (h *CustomerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	form := domain.FormFromCustomer(customer)
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, form)
		return
	}
	h.views.Render(w, http.StatusOK, "edit", "Edit customer", formPage{
		Form:     form,
		Errors:   map[string]string{},
		PhotoURL: customer.PhotoURL,
	})
}

// Edit godoc
// @Summary Update customer
// @Description Updates the editable fields and, when a new image is posted, the photo. Keys identify the record and are never changed.
// @Tags Customers
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json,html
// @Param request body domain.EditCustomerForm false "Customer data (JSON requests)"
// @Param newImage formData file false "Replacement photo (multipart requests)"
// @Success 200 {object} domain.Customer
// @Success 303 "Redirect to /customers"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /customers/edit [post]
func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var form domain.EditCustomerForm
	image, status, msg := h.parseForm(w, r, &form, "newImage")
	if status != 0 {
		respondError(w, r, h.views, status, msg)
		return
	}
	if image != nil {
		defer image.Close()
	}

	fieldErrors := map[string]string{}
	if err := validate.Struct(&form); err != nil {
		fieldErrors = validationErrors(err)
	}
	if msg, ok := h.checkImage(image); !ok {
		fieldErrors["newImage"] = msg
	}
	if len(fieldErrors) > 0 {
		data := formPage{Form: form, Errors: fieldErrors}
		if !wantsJSON(r) {
			// redisplay the stored photo without reading the record again
			data.PhotoURL = r.PostFormValue("currentPhotoUrl")
		}
		h.invalidForm(w, r, "edit", "Edit customer", data)
		return
	}

	customer, err := h.customerService.Update(r.Context(), &form, reader(image))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(w, r, h.views, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to update customer", zap.Error(err),
			zap.String("partition_key", form.PartitionKey), zap.String("row_key", form.RowKey))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, customer)
		return
	}
	redirect(w, r, "/customers")
}

// DeleteConfirm godoc
// @Summary Delete confirmation
// @Tags Customers
// @Produce json,html
// @Param partitionKey path string true "Partition key"
// @Param rowKey path string true "Row key"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.APIError
// @Router /customers/{partitionKey}/{rowKey}/delete [get]
func (h *CustomerHandler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, customer)
		return
	}
	h.views.Render(w, http.StatusOK, "delete", "Delete customer", customer)
}

// Delete godoc
// @Summary Delete customer
// @Description Removes the customer and its photo, then queues an audit message.
// @Tags Customers
// @Produce json,html
// @Param partitionKey path string true "Partition key"
// @Param rowKey path string true "Row key"
// @Success 204 "Deleted"
// @Success 303 "Redirect to /customers"
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /customers/{partitionKey}/{rowKey}/delete [post]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	partitionKey := chi.URLParam(r, "partitionKey")
	rowKey := chi.URLParam(r, "rowKey")

	if err := h.customerService.Delete(r.Context(), partitionKey, rowKey); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(w, r, h.views, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to delete customer", zap.Error(err),
			zap.String("partition_key", partitionKey), zap.String("row_key", rowKey))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirect(w, r, "/customers")
}

// lookup loads the customer named by the route, writing 404 or 500 on failure
func (h *CustomerHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Customer, bool) {
	partitionKey := chi.URLParam(r, "partitionKey")
	rowKey := chi.URLParam(r, "rowKey")

	customer, err := h.customerService.Get(r.Context(), partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(w, r, h.views, http.StatusNotFound, "Customer not found")
			return nil, false
		}
		h.logger.Error("failed to get customer", zap.Error(err),
			zap.String("partition_key", partitionKey), zap.String("row_key", rowKey))
		respondError(w, r, h.views, http.StatusInternalServerError, "Failed to get customer")
		return nil, false
	}
	return customer, true
}

// parseForm decodes a JSON body or a (multipart) form into target and returns
// the uploaded file, if any. A non-zero status means the request was rejected
// with the returned message.
func (h *CustomerHandler) parseForm(w http.ResponseWriter, r *http.Request, target interface{}, fileField string) (multipart.File, int, string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(target); err != nil {
			return nil, bodyErrorStatus(err), "Invalid request body"
		}
		return nil, 0, ""
	}

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		status := bodyErrorStatus(err)
		if status == http.StatusRequestEntityTooLarge {
			return nil, status, fmt.Sprintf("Upload too large: maximum size is %dMB", h.maxUploadBytes>>20)
		}
		return nil, status, "Invalid form data"
	}

	bindForm(r, target)

	file, _, err := r.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, 0, ""
		}
		return nil, http.StatusBadRequest, "Invalid file upload"
	}
	return file, 0, ""
}

// bindForm copies the posted form values onto the form struct
func bindForm(r *http.Request, target interface{}) {
	fields := func(f *domain.CustomerForm) {
		f.FirstName = strings.TrimSpace(r.PostFormValue("firstName"))
		f.LastName = strings.TrimSpace(r.PostFormValue("lastName"))
		f.Email = strings.TrimSpace(r.PostFormValue("email"))
		f.PhoneNumber = strings.TrimSpace(r.PostFormValue("phoneNumber"))
	}
	switch form := target.(type) {
	case *domain.CustomerForm:
		fields(form)
	case *domain.EditCustomerForm:
		form.PartitionKey = r.PostFormValue("partitionKey")
		form.RowKey = r.PostFormValue("rowKey")
		fields(&form.CustomerForm)
	}
}

func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// checkImage accepts a missing file or one whose content sniffs as an image
func (h *CustomerHandler) checkImage(file multipart.File) (string, bool) {
	if file == nil {
		return "", true
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "Could not read the uploaded file", false
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "Could not read the uploaded file", false
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return domain.GetValidationMessage("image"), false
	}
	return "", true
}

func (h *CustomerHandler) invalidForm(w http.ResponseWriter, r *http.Request, name, title string, data formPage) {
	if wantsJSON(r) {
		respondValidationError(w, data.Errors)
		return
	}
	h.views.Render(w, http.StatusBadRequest, name, title, data)
}

// reader keeps a nil multipart.File from becoming a non-nil io.Reader
func reader(file multipart.File) io.Reader {
	if file == nil {
		return nil
	}
	return file
}
