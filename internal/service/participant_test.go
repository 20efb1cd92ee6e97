package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/service"
	"spotcheck.app/survey/internal/store"
)

var _ = Describe("ParticipantService", func() {
	var (
		ctx       context.Context
		mockStore *mockParticipantStore
		svc       service.ParticipantService
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockParticipantStore{}
		svc = service.NewParticipantService(mockStore)
	})

	Describe("SignUp", func() {
		It("creates a participant with a hashed password and normalized email", func() {
			var captured *model.Participant
			mockStore.createFn = func(_ context.Context, p *model.Participant) error {
				captured = p
				return nil
			}

			p, err := svc.SignUp(ctx, " Alice ", "Alice@Example.COM", "pilot", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Email).To(Equal("alice@example.com"))
			Expect(p.Name).To(Equal("Alice"))
			Expect(p.PasswordHash).NotTo(ContainSubstring("hunter2"))

			Expect(captured).NotTo(BeNil())
			Expect(bcrypt.CompareHashAndPassword(
				[]byte(captured.PasswordHash), []byte("hunter2hunter2"))).To(Succeed())
		})

		It("rejects an already registered email", func() {
			mockStore.getByEmailFn = func(_ context.Context, email string) (*model.Participant, error) {
				return &model.Participant{ID: "existing", Email: email}, nil
			}

			_, err := svc.SignUp(ctx, "Alice", "alice@example.com", "", "hunter2hunter2")
			Expect(err).To(MatchError(service.ErrEmailTaken))
		})

		It("propagates store failures", func() {
			mockStore.getByEmailFn = func(context.Context, string) (*model.Participant, error) {
				return nil, errors.New("connection refused")
			}

			_, err := svc.SignUp(ctx, "Alice", "alice@example.com", "", "hunter2hunter2")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, service.ErrEmailTaken)).To(BeFalse())
		})
	})

	Describe("LogIn", func() {
		hash := func(pw string) string {
			h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			return string(h)
		}

		It("returns the participant on a correct password", func() {
			mockStore.getByEmailFn = func(_ context.Context, email string) (*model.Participant, error) {
				return &model.Participant{ID: "p-1", Email: email, PasswordHash: hash("hunter2hunter2")}, nil
			}

			p, err := svc.LogIn(ctx, "alice@example.com", "", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(Equal("p-1"))
		})

		It("rejects a wrong password and an unknown email identically", func() {
			mockStore.getByEmailFn = func(_ context.Context, email string) (*model.Participant, error) {
				return &model.Participant{ID: "p-1", Email: email, PasswordHash: hash("correct-horse")}, nil
			}
			_, err := svc.LogIn(ctx, "alice@example.com", "", "wrong")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))

			mockStore.getByEmailFn = func(context.Context, string) (*model.Participant, error) {
				return nil, store.ErrNotFound
			}
			_, err = svc.LogIn(ctx, "nobody@example.com", "", "wrong")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("scopes the lookup to the cohort when one is given", func() {
			var gotCohort string
			mockStore.getByEmailCohortFn = func(_ context.Context, email, cohort string) (*model.Participant, error) {
				gotCohort = cohort
				return &model.Participant{ID: "p-1", Email: email, Cohort: cohort, PasswordHash: hash("hunter2hunter2")}, nil
			}

			p, err := svc.LogIn(ctx, "alice@example.com", "pilot", "hunter2hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Cohort).To(Equal("pilot"))
			Expect(gotCohort).To(Equal("pilot"))
		})
	})

	Describe("UpdateName", func() {
		It("trims and stores the new name", func() {
			mockStore.updateNameFn = func(_ context.Context, id, name string) (*model.Participant, error) {
				return &model.Participant{ID: id, Name: name}, nil
			}

			p, err := svc.UpdateName(ctx, "p-1", "  Alice B  ")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Alice B"))
		})

		It("rejects an empty name", func() {
			_, err := svc.UpdateName(ctx, "p-1", "   ")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MarkPracticePassed", func() {
		It("flips the flag through the store", func() {
			var gotID string
			var gotPassed bool
			mockStore.setPracticePassedFn = func(_ context.Context, id string, passed bool) error {
				gotID, gotPassed = id, passed
				return nil
			}

			Expect(svc.MarkPracticePassed(ctx, "p-1")).To(Succeed())
			Expect(gotID).To(Equal("p-1"))
			Expect(gotPassed).To(BeTrue())
		})
	})
})
