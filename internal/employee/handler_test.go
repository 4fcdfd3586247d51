package employee_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubUploader records the last upload without touching disk.
type stubUploader struct {
	saved string
	err   error
}

func (s *stubUploader) Save(fh *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = fh.Filename
	return "stored_" + fh.Filename, nil
}

var _ = Describe("Employee Handler Integration", func() {
	var (
		db       *gorm.DB
		service  *employee.Service
		uploader *stubUploader
		router   *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employeeDatamodel.Employee{})
		Expect(err).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := employeePostgres.NewEmployeeRepository(db)
		service = employee.NewService(repo, events.NewEventBus(lg), lg)
		uploader = &stubUploader{}
		handler := employee.NewHandler(service, uploader)

		router = chi.NewRouter()
		router.Route("/employees", func(r chi.Router) {
			r.Get("/", handler.GetAllEmployees)
			r.Post("/", handler.CreateEmployee)
			r.Get("/{id}", handler.GetEmployee)
			r.Put("/{id}", handler.UpdateEmployee)
			r.Delete("/{id}", handler.DeleteEmployee)
		})
	})

	createJSON := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	validBody := `{
		"employee_id": "EMP001",
		"name": "Alice Smith",
		"email": "Alice@Example.com",
		"mobile": "0123456789",
		"designation": "HR",
		"gender": "Female",
		"courses": ["MCA"]
	}`

	Describe("POST /employees", func() {
		It("should create an employee from a JSON body", func() {
			w := createJSON(validBody)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp struct {
				Message  string            `json:"message"`
				Employee employee.Employee `json:"employee"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Employee created successfully"))
			Expect(resp.Employee.EmployeeID).To(Equal("EMP001"))
			Expect(resp.Employee.Email).To(Equal("alice@example.com"))
			Expect(resp.Employee.Courses).To(ConsistOf("MCA"))
		})

		It("should accept courses submitted as a stringified array", func() {
			w := createJSON(`{
				"employee_id": "EMP001",
				"name": "Alice Smith",
				"email": "alice@example.com",
				"mobile": "0123456789",
				"designation": "HR",
				"gender": "Female",
				"courses": "[\"BCA\",\"BSC\"]"
			}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp struct {
				Employee employee.Employee `json:"employee"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Employee.Courses).To(ConsistOf("BCA", "BSC"))
		})

		It("should return the field to reason mapping for an invalid body", func() {
			w := createJSON(`{
				"employee_id": "EMP001",
				"name": "A",
				"email": "broken",
				"mobile": "123",
				"designation": "Intern",
				"gender": "Female",
				"courses": []
			}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Message string            `json:"message"`
				Errors  map[string]string `json:"errors"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Errors).To(HaveKey("name"))
			Expect(resp.Errors).To(HaveKey("email"))
			Expect(resp.Errors).To(HaveKey("mobile"))
			Expect(resp.Errors).To(HaveKey("designation"))
			Expect(resp.Errors).To(HaveKey("courses"))
		})

		It("should return 400 with the legacy message for a duplicate email", func() {
			Expect(createJSON(validBody).Code).To(Equal(http.StatusCreated))

			w := createJSON(`{
				"employee_id": "EMP002",
				"name": "Bob Jones",
				"email": "alice@example.com",
				"mobile": "9876543210",
				"designation": "Sales",
				"gender": "Male",
				"courses": ["BSC"]
			}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Email already exists"))
		})

		It("should create an employee from a multipart form with an image", func() {
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			Expect(writer.WriteField("employee_id", "EMP001")).To(Succeed())
			Expect(writer.WriteField("name", "Alice Smith")).To(Succeed())
			Expect(writer.WriteField("email", "alice@example.com")).To(Succeed())
			Expect(writer.WriteField("mobile", "0123456789")).To(Succeed())
			Expect(writer.WriteField("designation", "HR")).To(Succeed())
			Expect(writer.WriteField("gender", "Female")).To(Succeed())
			Expect(writer.WriteField("courses", `["MCA"]`)).To(Succeed())
			part, err := writer.CreateFormFile("image", "photo.png")
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("png-bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(uploader.saved).To(Equal("photo.png"))

			var resp struct {
				Employee employee.Employee `json:"employee"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Employee.Image).To(Equal("stored_photo.png"))
		})

		It("should reject a multipart form with malformed courses", func() {
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			Expect(writer.WriteField("employee_id", "EMP001")).To(Succeed())
			Expect(writer.WriteField("courses", "MCA,BCA")).To(Succeed())
			Expect(writer.Close()).To(Succeed())

			req := httptest.NewRequest(http.MethodPost, "/employees", body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("courses must be a JSON array"))
		})
	})

	Describe("GET /employees", func() {
		It("should return an empty array when no employees exist", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var employees []employee.Employee
			Expect(json.NewDecoder(w.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(BeEmpty())
		})

		It("should list stored employees", func() {
			Expect(createJSON(validBody).Code).To(Equal(http.StatusCreated))

			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var employees []employee.Employee
			Expect(json.NewDecoder(w.Body).Decode(&employees)).To(Succeed())
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Name).To(Equal("Alice Smith"))
		})
	})

	Describe("GET /employees/{id}", func() {
		BeforeEach(func() {
			Expect(createJSON(validBody).Code).To(Equal(http.StatusCreated))
		})

		It("should fetch a single employee by business id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/EMP001", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var emp employee.Employee
			Expect(json.NewDecoder(w.Body).Decode(&emp)).To(Succeed())
			Expect(emp.EmployeeID).To(Equal("EMP001"))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodGet, "/employees/NOPE", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("Employee not found"))
		})
	})

	Describe("PUT /employees/{id}", func() {
		BeforeEach(func() {
			Expect(createJSON(validBody).Code).To(Equal(http.StatusCreated))
		})

		It("should update mutable fields", func() {
			body := `{
				"name": "Alice Cooper",
				"email": "alice@example.com",
				"mobile": "9876543210",
				"designation": "Manager",
				"gender": "Female",
				"courses": ["BCA"]
			}`
			req := httptest.NewRequest(http.MethodPut, "/employees/EMP001", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Message  string            `json:"message"`
				Employee employee.Employee `json:"employee"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Employee updated successfully"))
			Expect(resp.Employee.Name).To(Equal("Alice Cooper"))
			Expect(resp.Employee.Designation).To(Equal("Manager"))
			Expect(resp.Employee.EmployeeID).To(Equal("EMP001"))
		})

		It("should return 404 for an unknown id", func() {
			body := `{
				"name": "Ghost",
				"email": "ghost@example.com",
				"mobile": "0123456789",
				"designation": "HR",
				"gender": "Other",
				"courses": ["MCA"]
			}`
			req := httptest.NewRequest(http.MethodPut, "/employees/NOPE", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		BeforeEach(func() {
			Expect(createJSON(validBody).Code).To(Equal(http.StatusCreated))
		})

		It("should delete and confirm with a message", func() {
			req := httptest.NewRequest(http.MethodDelete, "/employees/EMP001", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Employee deleted successfully"))

			req = httptest.NewRequest(http.MethodGet, "/employees/EMP001", nil)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 404 for an unknown id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/employees/NOPE", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
