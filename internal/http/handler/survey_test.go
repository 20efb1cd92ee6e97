package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spotcheck.app/survey/internal/http/handler"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/service"
)

var _ = Describe("SurveyHandler", func() {
	var (
		router      *gin.Engine
		surveySvc   *mockSurveyService
		assignments *mockAssignmentService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		surveySvc = &mockSurveyService{}
		assignments = &mockAssignmentService{}
		h := handler.NewSurveyHandler(surveySvc, assignments)
		router.GET("/participants/:id/batches", h.ListBatches)
		router.GET("/participants/:id/batches/:no", h.GetBatch)
		router.PUT("/participants/:id/responses", h.SaveResponse)
		router.POST("/participants/:id/responses/skip", h.Skip)
		router.GET("/participants/:id/progress", h.Progress)
	})

	Describe("ListBatches", func() {
		It("deals and summarizes the batches", func() {
			assignments.ensureBatchesFn = func(_ context.Context, participantID string) ([]model.BatchAssignment, error) {
				Expect(participantID).To(Equal("p-1"))
				return []model.BatchAssignment{
					{BatchNo: 1, ItemIDs: []int64{1, 2, 3}},
					{BatchNo: 2, ItemIDs: []int64{4}},
				}, nil
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/participants/p-1/batches", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				Batches []struct {
					BatchNo   int `json:"batch_no"`
					ItemCount int `json:"item_count"`
				} `json:"batches"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Batches).To(HaveLen(2))
			Expect(resp.Batches[0].ItemCount).To(Equal(3))
		})
	})

	Describe("GetBatch", func() {
		It("rejects a non-numeric batch number", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/participants/p-1/batches/two", nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns the session payload", func() {
			surveySvc.batchSessionFn = func(_ context.Context, _ string, batchNo int) (*service.BatchSession, error) {
				return &service.BatchSession{
					BatchNo: batchNo,
					Items:   []service.BatchItem{{ID: 1, URL: "https://cdn.example.com/images/a.png"}},
				}, nil
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/participants/p-1/batches/2", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp service.BatchSession
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.BatchNo).To(Equal(2))
			Expect(resp.Items).To(HaveLen(1))
		})
	})

	Describe("SaveResponse", func() {
		It("binds the payload onto the path participant", func() {
			var saved *model.Response
			surveySvc.saveResponseFn = func(_ context.Context, rec *model.Response) error {
				saved = rec
				return nil
			}

			body, _ := json.Marshal(map[string]any{
				"image_id":        101,
				"no_flaw":         false,
				"reasons_overall": []string{"overall:style_unreal"},
				"reasons_flaws": []map[string]any{
					{"id": "m1", "px": 0.4, "py": 0.6, "r": 0.04, "reasons": []string{"face:eye_structure"}},
				},
				"duration_ms": 4200,
			})
			req := httptest.NewRequest(http.MethodPut, "/participants/p-1/responses", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(saved).NotTo(BeNil())
			Expect(saved.ParticipantID).To(Equal("p-1"))
			Expect(saved.ImageID).To(Equal(int64(101)))
			Expect(saved.ReasonsFlaws).To(HaveLen(1))
			Expect(saved.DurationMS).To(HaveValue(Equal(int64(4200))))
		})

		It("returns 422 for an empty judgment", func() {
			surveySvc.saveResponseFn = func(context.Context, *model.Response) error {
				return service.ErrEmptySave
			}

			body, _ := json.Marshal(map[string]any{"image_id": 101})
			req := httptest.NewRequest(http.MethodPut, "/participants/p-1/responses", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("rejects a marker outside normalized bounds", func() {
			body, _ := json.Marshal(map[string]any{
				"image_id": 101,
				"reasons_flaws": []map[string]any{
					{"id": "m1", "px": 1.7, "py": 0.5, "r": 0.04, "reasons": []string{"face:eye_structure"}},
				},
			})
			req := httptest.NewRequest(http.MethodPut, "/participants/p-1/responses", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Skip", func() {
		It("records the skip and echoes the record", func() {
			surveySvc.skipImageFn = func(_ context.Context, participantID string, imageID int64, isPractice bool) (*model.Response, error) {
				Expect(participantID).To(Equal("p-1"))
				Expect(isPractice).To(BeFalse())
				return &model.Response{ParticipantID: participantID, ImageID: imageID, IsSkip: true}, nil
			}

			body, _ := json.Marshal(map[string]any{"image_id": 102})
			req := httptest.NewRequest(http.MethodPost, "/participants/p-1/responses/skip", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp model.Response
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.IsSkip).To(BeTrue())
		})
	})
})
