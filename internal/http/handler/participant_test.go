package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spotcheck.app/survey/internal/http/handler"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/service"
)

var _ = Describe("ParticipantHandler", func() {
	var (
		router *gin.Engine
		svc    *mockParticipantService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockParticipantService{}
		h := handler.NewParticipantHandler(svc)
		router.POST("/signup", h.SignUp)
		router.POST("/login", h.LogIn)
		router.GET("/:id", h.Get)
		router.PUT("/:id", h.UpdateName)
	})

	post := func(path string, payload any) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("SignUp", func() {
		It("returns 201 with the participant, never the password hash", func() {
			svc.signUpFn = func(_ context.Context, name, email, cohort, _ string) (*model.Participant, error) {
				return &model.Participant{ID: "p-1", Name: name, Email: email, Cohort: cohort, PasswordHash: "secret"}, nil
			}

			w := post("/signup", map[string]string{
				"name": "Alice", "email": "alice@example.com", "password": "hunter2hunter2",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).NotTo(ContainSubstring("secret"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("p-1"))
		})

		It("returns 409 for a duplicate email", func() {
			svc.signUpFn = func(context.Context, string, string, string, string) (*model.Participant, error) {
				return nil, service.ErrEmailTaken
			}

			w := post("/signup", map[string]string{
				"name": "Alice", "email": "alice@example.com", "password": "hunter2hunter2",
			})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 for a short password", func() {
			w := post("/signup", map[string]string{
				"name": "Alice", "email": "alice@example.com", "password": "short",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("LogIn", func() {
		It("returns 401 for bad credentials", func() {
			svc.logInFn = func(context.Context, string, string, string) (*model.Participant, error) {
				return nil, service.ErrInvalidCredentials
			}

			w := post("/login", map[string]string{
				"email": "alice@example.com", "password": "wrong-password",
			})
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 500 on service failure", func() {
			svc.logInFn = func(context.Context, string, string, string) (*model.Participant, error) {
				return nil, errors.New("boom")
			}

			w := post("/login", map[string]string{
				"email": "alice@example.com", "password": "hunter2hunter2",
			})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("UpdateName", func() {
		It("returns the updated participant", func() {
			svc.updateNameFn = func(_ context.Context, participantID, name string) (*model.Participant, error) {
				return &model.Participant{ID: participantID, Name: name}, nil
			}

			body, err := json.Marshal(map[string]string{"name": "Alice B"})
			Expect(err).NotTo(HaveOccurred())
			req := httptest.NewRequest(http.MethodPut, "/p-1", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["name"]).To(Equal("Alice B"))
		})

		It("returns 400 for an empty name", func() {
			body := bytes.NewBufferString(`{"name":""}`)
			req := httptest.NewRequest(http.MethodPut, "/p-1", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Get", func() {
		It("returns 404 for an unknown participant", func() {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
