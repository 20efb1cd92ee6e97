package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spotcheck.app/survey/common/id"
	"spotcheck.app/survey/core/config"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/queue"
	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/storage"
)

var _ = Describe("SurveyService", func() {
	var (
		ctx      context.Context
		provider *mockStoreProvider
		producer *mockProducer
		svc      service.SurveyService
	)

	cfg := config.SurveyConfig{
		AssignmentSeed: "experiment-per-user-seed-2025-12-08",
		BatchCount:     4,
		SaveTimeout:    10 * time.Second,
	}

	BeforeEach(func() {
		ctx = context.Background()
		provider = newMockStoreProvider()
		producer = &mockProducer{}

		Expect(id.Init(1)).To(Succeed())

		assignments := service.NewAssignmentService(
			&mockTxRunner{provider: provider}, provider.images, provider.assignments, cfg)
		svc = service.NewSurveyService(
			provider.responses, provider.images, assignments,
			storage.NewResolver("https://cdn.example.com", "images"),
			producer, cfg, nil)
	})

	Describe("SaveResponse", func() {
		It("rejects a record with no judgment at all", func() {
			rec := model.Response{ParticipantID: "p-1", ImageID: 101}
			Expect(svc.SaveResponse(ctx, &rec)).To(MatchError(service.ErrEmptySave))
			Expect(producer.published).To(BeEmpty())
		})

		It("upserts and publishes an audit event", func() {
			var stored *model.Response
			provider.responses.upsertFn = func(_ context.Context, rec *model.Response) error {
				stored = rec
				return nil
			}

			rec := model.Response{ParticipantID: "p-1", ImageID: 101, NoFlaw: true}
			Expect(svc.SaveResponse(ctx, &rec)).To(Succeed())
			Expect(stored).NotTo(BeNil())

			Expect(producer.published).To(HaveLen(1))
			Expect(producer.published[0].EventType).To(Equal(queue.EventResponseSaved))
			Expect(producer.published[0].ImageID).To(Equal(int64(101)))
		})

		It("succeeds even when the audit publish fails", func() {
			producer.publishFn = func(context.Context, queue.AuditEvent) error {
				return errors.New("stream unavailable")
			}

			rec := model.Response{ParticipantID: "p-1", ImageID: 101, NoFlaw: true}
			Expect(svc.SaveResponse(ctx, &rec)).To(Succeed())
		})

		It("propagates the store failure", func() {
			provider.responses.upsertFn = func(context.Context, *model.Response) error {
				return errors.New("deadlock detected")
			}

			rec := model.Response{ParticipantID: "p-1", ImageID: 101, NoFlaw: true}
			Expect(svc.SaveResponse(ctx, &rec)).To(HaveOccurred())
			Expect(producer.published).To(BeEmpty())
		})
	})

	Describe("SkipImage", func() {
		It("writes a minimal skip record", func() {
			var stored *model.Response
			provider.responses.upsertFn = func(_ context.Context, rec *model.Response) error {
				stored = rec
				return nil
			}

			rec, err := svc.SkipImage(ctx, "p-1", 102, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.IsSkip).To(BeTrue())
			Expect(rec.NoFlaw).To(BeFalse())
			Expect(rec.ReasonsOverall).To(BeEmpty())
			Expect(stored.IsSkip).To(BeTrue())

			Expect(producer.published).To(HaveLen(1))
			Expect(producer.published[0].EventType).To(Equal(queue.EventResponseSkipped))
		})
	})

	Describe("BatchSession", func() {
		BeforeEach(func() {
			provider.assignments.getByParticipantAndBatchFn = func(_ context.Context, _ string, batchNo int) (*model.BatchAssignment, error) {
				return &model.BatchAssignment{BatchNo: batchNo, ItemIDs: []int64{101, 102}}, nil
			}
			provider.images.listByIDsFn = func(_ context.Context, ids []int64) ([]model.Image, error) {
				return []model.Image{
					{ID: 101, StoragePath: "images/main/cat-101.png"},
					{ID: 102, StoragePath: "images/main/dog.png"},
				}, nil
			}
		})

		It("resolves items in assignment order with URLs", func() {
			sess, err := svc.BatchSession(ctx, "p-1", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.BatchNo).To(Equal(1))
			Expect(sess.Items).To(HaveLen(2))

			Expect(sess.Items[0].URL).To(Equal("https://cdn.example.com/images/main/cat-101.png"))
			Expect(sess.Items[0].AltURL).To(Equal("https://cdn.example.com/images/main/cat.png"))
			Expect(sess.Items[1].AltURL).To(BeEmpty())
		})

		It("includes the participant's prior records", func() {
			provider.responses.listByParticipantAndImagesFn = func(_ context.Context, _ string, _ []int64, isPractice bool) ([]model.Response, error) {
				Expect(isPractice).To(BeFalse())
				return []model.Response{{ImageID: 101, NoFlaw: true}}, nil
			}

			sess, err := svc.BatchSession(ctx, "p-1", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Records).To(HaveLen(1))
		})

		It("tolerates an assigned image missing from the pool", func() {
			provider.images.listByIDsFn = func(context.Context, []int64) ([]model.Image, error) {
				return []model.Image{{ID: 102, StoragePath: "images/main/dog.png"}}, nil
			}

			sess, err := svc.BatchSession(ctx, "p-1", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Items).To(HaveLen(1))
			Expect(sess.Items[0].ID).To(Equal(int64(102)))
		})
	})

	Describe("Progress", func() {
		It("summarizes each batch from the stored responses", func() {
			provider.assignments.listByParticipantFn = func(context.Context, string) ([]model.BatchAssignment, error) {
				return []model.BatchAssignment{
					{BatchNo: 1, ItemIDs: []int64{101, 102}},
					{BatchNo: 2, ItemIDs: []int64{103}},
				}, nil
			}
			provider.responses.listByParticipantFn = func(context.Context, string, bool) ([]model.Response, error) {
				return []model.Response{
					{ImageID: 101, NoFlaw: true},
					{ImageID: 102, IsSkip: true},
					{ImageID: 103, ReasonsOverall: []string{"overall:style_unreal"}},
				}, nil
			}

			progress, err := svc.Progress(ctx, "p-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(progress).To(HaveLen(2))

			Expect(progress[0].CompletedCount).To(Equal(1))
			Expect(progress[0].SkippedCount).To(Equal(1))
			Expect(progress[0].IsFinished).To(BeFalse())

			Expect(progress[1].CompletedCount).To(Equal(1))
			Expect(progress[1].IsFinished).To(BeTrue())
		})
	})
})
