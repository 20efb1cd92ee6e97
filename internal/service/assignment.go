package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"spotcheck.app/survey/common/id"
	"spotcheck.app/survey/core/config"
	"spotcheck.app/survey/internal/model"
	"spotcheck.app/survey/internal/store"
)

// AssignmentService deals out the main image pool into per-participant
// batches. The deal is deterministic: the shuffle is seeded from the
// experiment seed and the participant id, so re-running it always produces
// the same batches, and the persisted rows are only a cache of that
// function.
type AssignmentService interface {
	EnsureBatches(ctx context.Context, participantID string) ([]model.BatchAssignment, error)
	Batch(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error)
}

type assignmentService struct {
	txRunner    TxRunner
	images      store.ImageStore
	assignments store.AssignmentStore
	cfg         config.SurveyConfig
}

func NewAssignmentService(txRunner TxRunner, images store.ImageStore, assignments store.AssignmentStore, cfg config.SurveyConfig) AssignmentService {
	return &assignmentService{
		txRunner:    txRunner,
		images:      images,
		assignments: assignments,
		cfg:         cfg,
	}
}

// EnsureBatches returns the participant's batches, generating and persisting
// them on first contact.
func (s *assignmentService) EnsureBatches(ctx context.Context, participantID string) ([]model.BatchAssignment, error) {
	existing, err := s.assignments.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	images, err := s.images.ListMain(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("image pool is empty")
	}

	itemIDs := make([]int64, len(images))
	for i, img := range images {
		itemIDs[i] = img.ID
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	seed := hashStringToSeed(fmt.Sprintf("%s-%s", s.cfg.AssignmentSeed, participantID))
	shuffle(itemIDs, mulberry32(seed))

	batches := partition(itemIDs, s.cfg.BatchCount)

	var created []model.BatchAssignment
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		// A concurrent first contact can race us to the insert; the unique
		// index on (participant_id, batch_no) makes one of the two lose,
		// and both sides compute identical batches anyway.
		for no, items := range batches {
			a := &model.BatchAssignment{
				ID:            id.New(),
				ParticipantID: participantID,
				BatchNo:       no + 1,
				ItemIDs:       items,
			}
			if err := stores.Assignments().Create(ctx, a); err != nil {
				return fmt.Errorf("creating batch %d: %w", no+1, err)
			}
			created = append(created, *a)
		}
		return nil
	})
	if err != nil {
		// Losing the race means the winner's rows are now in place.
		if again, listErr := s.assignments.ListByParticipant(ctx, participantID); listErr == nil && len(again) > 0 {
			return again, nil
		}
		return nil, err
	}
	return created, nil
}

// Batch returns one batch by number, generating the deal first if needed.
func (s *assignmentService) Batch(ctx context.Context, participantID string, batchNo int) (*model.BatchAssignment, error) {
	a, err := s.assignments.GetByParticipantAndBatch(ctx, participantID, batchNo)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	batches, err := s.EnsureBatches(ctx, participantID)
	if err != nil {
		return nil, err
	}
	for i := range batches {
		if batches[i].BatchNo == batchNo {
			return &batches[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// hashStringToSeed folds a string into a 32-bit seed with the classic
// multiply-by-31 rolling hash.
func hashStringToSeed(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// mulberry32 is a tiny deterministic PRNG. It matches the generator used
// when the batches for the first cohorts were dealt, so the seed keeps
// producing the same deal.
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t = (t + (t^(t>>7))*(t|61)) ^ t
		return float64(t^(t>>14)) / 4294967296
	}
}

// shuffle runs an in-place Fisher-Yates pass driven by the PRNG.
func shuffle(items []int64, next func() float64) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(next() * float64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}

// partition splits items into n contiguous chunks of ceil(len/n), the last
// one possibly shorter.
func partition(items []int64, n int) [][]int64 {
	size := (len(items) + n - 1) / n
	var out [][]int64
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
