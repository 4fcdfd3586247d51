package employee

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	GetAll() ([]*Employee, error)
	GetByEmployeeID(employeeID string) (*Employee, error)
	Update(ctx context.Context, employeeID string, dto UpdateEmployeeDTO) (*Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

// Uploader stores an uploaded image and returns the stored filename.
type Uploader interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Uploader Uploader
}

func NewHandler(svc ServiceAPI, uploader Uploader) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Uploader:    uploader,
	}
}

// CreateEmployee handles POST /api/employees. The registration form is
// multipart (it carries the image), but plain JSON is accepted too.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO

	if isMultipart(r) {
		parsed, err := h.parseMultipartDTO(w, r)
		if err != nil {
			return // response already written
		}
		dto = *parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("CreateEmployee: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	emp, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Employee created successfully",
		"employee": emp,
	})
}

// GetAllEmployees handles GET /api/employees.
func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAll()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/{id}.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	emp, err := h.Service.GetByEmployeeID(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, emp)
}

// UpdateEmployee handles PUT /api/employees/{id}.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Employee updated successfully",
		"employee": emp,
	})
}

// DeleteEmployee handles DELETE /api/employees/{id}.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Employee deleted successfully",
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "Server error")
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipartDTO reads the registration form. Courses arrive as a
// JSON-encoded array string from the form and are decoded before
// validation; a malformed string is rejected here, not in validation.
func (h *Handler) parseMultipartDTO(w http.ResponseWriter, r *http.Request) (*CreateEmployeeDTO, error) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		h.Logger.Error("CreateEmployee: failed to parse multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, err
	}

	dto := CreateEmployeeDTO{
		EmployeeID:  r.FormValue("employee_id"),
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Mobile:      r.FormValue("mobile"),
		Designation: r.FormValue("designation"),
		Gender:      r.FormValue("gender"),
	}

	if raw := r.FormValue("courses"); raw != "" {
		if err := dto.Courses.DecodeString(raw); err != nil {
			h.Logger.Error("CreateEmployee: malformed courses value", "error", err)
			h.WriteError(w, http.StatusBadRequest, "courses must be a JSON array")
			return nil, err
		}
	}

	if file, fh, err := r.FormFile("image"); err == nil {
		file.Close()
		stored, err := h.Uploader.Save(fh)
		if err != nil {
			h.Logger.Error("CreateEmployee: image upload failed", "error", err)
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return nil, err
		}
		dto.Image = stored
	}

	return &dto, nil
}
