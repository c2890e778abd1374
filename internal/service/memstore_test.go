package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// memStore is an in-memory stand-in for the database. Ballots honour the
// (user, election) uniqueness the real schema enforces.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]model.User
	elections  map[uuid.UUID]model.Election
	candidates []model.Candidate
	records    []model.VoteRecord
	seq        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]model.User{},
		elections: map[uuid.UUID]model.Election{},
		seq:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.seq = s.seq.Add(time.Millisecond)
	return s.seq
}

func (s *memStore) userRepo() repository.UserRepository           { return memUsers{s} }
func (s *memStore) electionRepo() repository.ElectionRepository   { return memElections{s} }
func (s *memStore) candidateRepo() repository.CandidateRepository { return memCandidates{s} }
func (s *memStore) voteRepo() repository.VoteRepository           { return memVotes{s} }

func (s *memStore) tally(candidateID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.candidates {
		if c.ID == candidateID {
			return c.Votes
		}
	}
	return -1
}

func (s *memStore) ballotCount(userID, electionID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.records {
		if r.UserID == userID && r.ElectionID == electionID {
			n++
		}
	}
	return n
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.tick()
	stored := *user
	stored.VotedElections = nil
	r.s.users[user.ID] = stored
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.VotedElections = nil
	for _, rec := range r.s.records {
		if rec.UserID == id {
			u.VotedElections = append(u.VotedElections, rec)
		}
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memUsers) ListPendingVoters(ctx context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.User
	for _, u := range r.s.users {
		if u.Role == model.RoleVoter && !u.IsVerified {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memUsers) FindVoterByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Role != model.RoleVoter {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memUsers) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsVerified = verified
	r.s.users[id] = u
	return nil
}

func (r memUsers) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.users, id)
	kept := r.s.records[:0]
	for _, rec := range r.s.records {
		if rec.UserID != id {
			kept = append(kept, rec)
		}
	}
	r.s.records = kept
	return nil
}

type memElections struct{ s *memStore }

func (r memElections) withCandidates(e model.Election) model.Election {
	e.Candidates = nil
	for _, c := range r.s.candidates {
		if c.ElectionID == e.ID {
			e.Candidates = append(e.Candidates, c)
		}
	}
	_ = e.AfterFind(nil)
	return e
}

func (r memElections) Create(ctx context.Context, election *model.Election) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	election.CreatedAt = r.s.tick()
	r.s.elections[election.ID] = *election
	return nil
}

func (r memElections) Update(ctx context.Context, election *model.Election) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[election.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.elections[election.ID] = *election
	return nil
}

func (r memElections) FindByID(ctx context.Context, id uuid.UUID) (*model.Election, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.elections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e = r.withCandidates(e)
	return &e, nil
}

func (r memElections) List(ctx context.Context) ([]model.Election, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Election, 0, len(r.s.elections))
	for _, e := range r.s.elections {
		out = append(out, r.withCandidates(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r memElections) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.elections[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.elections, id)
	kept := r.s.candidates[:0]
	for _, c := range r.s.candidates {
		if c.ElectionID != id {
			kept = append(kept, c)
		}
	}
	r.s.candidates = kept
	var records []model.VoteRecord
	for _, rec := range r.s.records {
		if rec.ElectionID != id {
			records = append(records, rec)
		}
	}
	r.s.records = records
	return nil
}

type memCandidates struct{ s *memStore }

func (r memCandidates) Create(ctx context.Context, candidate *model.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	candidate.CreatedAt = r.s.tick()
	r.s.candidates = append(r.s.candidates, *candidate)
	return nil
}

func (r memCandidates) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.candidates {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memCandidates) ListByElection(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Candidate{}
	for _, c := range r.s.candidates {
		if c.ElectionID == electionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCandidates) ListByVotes(ctx context.Context, electionID uuid.UUID) ([]model.Candidate, error) {
	out, _ := r.ListByElection(ctx, electionID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Votes > out[j].Votes })
	return out, nil
}

type memVotes struct{ s *memStore }

func (r memVotes) CreateRecord(ctx context.Context, record *model.VoteRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.records {
		if rec.UserID == record.UserID && rec.ElectionID == record.ElectionID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.records = append(r.s.records, *record)
	return nil
}

func (r memVotes) IncrementTally(ctx context.Context, candidateID, electionID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.candidates {
		if r.s.candidates[i].ID == candidateID && r.s.candidates[i].ElectionID == electionID {
			r.s.candidates[i].Votes++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r memVotes) CountByElection(ctx context.Context, electionID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rec := range r.s.records {
		if rec.ElectionID == electionID {
			n++
		}
	}
	return n, nil
}

// WithTransaction restores ballots and tallies when fn fails.
func (r memVotes) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VoteRepository) error) error {
	return r.s.transact(func() error { return fn(ctx, r) })
}

func (s *memStore) transact(fn func() error) error {
	s.mu.Lock()
	records := append([]model.VoteRecord(nil), s.records...)
	candidates := append([]model.Candidate(nil), s.candidates...)
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.records = records
		s.candidates = candidates
		s.mu.Unlock()
		return err
	}
	return nil
}

// brokenTally stores ballots but fails every tally increment.
type brokenTally struct{ memVotes }

func (b brokenTally) IncrementTally(ctx context.Context, candidateID, electionID uuid.UUID) error {
	return errors.New("write conflict")
}

func (b brokenTally) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.VoteRepository) error) error {
	return b.s.transact(func() error { return fn(ctx, b) })
}
