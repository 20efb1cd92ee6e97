package store

import (
	"spotcheck.app/survey/core/db"
)

type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

// WithQuerier returns a Stores bound to a different querier, typically a
// transaction.
func (s *Stores) WithQuerier(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Participants() ParticipantStore {
	return newParticipantStore(s.q)
}

func (s *Stores) Images() ImageStore {
	return newImageStore(s.q)
}

func (s *Stores) Responses() ResponseStore {
	return newResponseStore(s.q)
}

func (s *Stores) Assignments() AssignmentStore {
	return newAssignmentStore(s.q)
}
