package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/auth"
	authPostgres "github.com/frahmantamala/employee-management/internal/auth/postgres"
	accountDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/account"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *auth.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&accountDatamodel.Account{})
		Expect(err).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := authPostgres.NewAccountRepository(db)
		tokenGen := auth.NewJWTTokenGenerator("test-secret", time.Hour)
		service := auth.NewService(repo, tokenGen, bcrypt.MinCost, lg)
		handler = auth.NewHandler(service)
	})

	registerRequest := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	loginRequest := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	Describe("Register", func() {
		It("should create an account and return the public view", func() {
			w := registerRequest(`{"username":"alice","password":"secret123","email":"alice@example.com"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp struct {
				Message string           `json:"message"`
				User    auth.AccountView `json:"user"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("User registered successfully"))
			Expect(resp.User.Username).To(Equal("alice"))
			Expect(resp.User.ID).To(BeNumerically(">", 0))
		})

		It("should never expose the password hash", func() {
			w := registerRequest(`{"username":"alice","password":"secret123","email":"alice@example.com"}`)
			Expect(w.Body.String()).NotTo(ContainSubstring("password"))
			Expect(w.Body.String()).NotTo(ContainSubstring("$2a$"))
		})

		It("should return 400 for a username collision", func() {
			registerRequest(`{"username":"alice","password":"secret123","email":"alice@example.com"}`)

			w := registerRequest(`{"username":"alice","password":"different1","email":"other@example.com"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Username or email already exists"))
		})

		It("should return the field errors for an invalid payload", func() {
			w := registerRequest(`{"username":"","password":"abc","email":"broken"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Errors map[string]string `json:"errors"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Errors).To(HaveKey("username"))
			Expect(resp.Errors).To(HaveKey("password"))
			Expect(resp.Errors).To(HaveKey("email"))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			w := registerRequest(`{"username":"alice","password":"secret123","email":"alice@example.com"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should return a token for valid credentials", func() {
			w := loginRequest(`{"username":"alice","password":"secret123"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Token).NotTo(BeEmpty())
			Expect(resp.User.Username).To(Equal("alice"))
		})

		It("should return 400 with a generic message for a wrong password", func() {
			w := loginRequest(`{"username":"alice","password":"wrongpass"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Invalid credentials"))
		})

		It("should return the same message for an unknown username", func() {
			w := loginRequest(`{"username":"mallory","password":"secret123"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Invalid credentials"))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			w := registerRequest(`{"username":"alice","password":"secret123","email":"alice@example.com"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))

			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				account, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(internal.UserIDFromContext(r.Context())).To(Equal(strconv.FormatInt(account.ID, 10)))
				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(account.ToView())
			}))
		})

		login := func() string {
			w := loginRequest(`{"username":"alice","password":"secret123"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			return resp.Token
		}

		It("should admit requests carrying a valid bearer token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			req.Header.Set("Authorization", "Bearer "+login())
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var view auth.AccountView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Username).To(Equal("alice"))
		})

		It("should reject requests without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("No token, authorization denied"))
		})

		It("should reject a tampered token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			req.Header.Set("Authorization", "Bearer "+login()+"x")
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("Token is not valid"))
		})

		It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator("test-secret", -time.Minute)
			token, err := expiredGen.GenerateToken("1", "alice")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
