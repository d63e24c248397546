package service

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/smart-kitchen/backend/internal/stock"
)

// SessionService issues and validates anonymous session tokens. A session
// token only identifies whose stock is whose; there are no user accounts.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a new SessionService instance
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken creates a new session id and a signed token carrying it.
func (s *SessionService) IssueToken() (token string, sessionID string, err error) {
	sessionID = uuid.NewString()
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

// ValidateToken returns the session id carried by a valid token.
func (s *SessionService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// GenerationState is the position of a session in its generation cycle.
type GenerationState string

const (
	StateIdle      GenerationState = "idle"
	StatePending   GenerationState = "pending"
	StateSucceeded GenerationState = "succeeded"
	StateFailed    GenerationState = "failed"
)

// Session owns one stock and at most one generation in flight.
type Session struct {
	ID string

	mu        sync.Mutex
	stock     *stock.Stock
	state     GenerationState
	last      *GenerationResult
	pending   *GenerationRequest
	previous  GenerationState
	updatedAt time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		stock:     stock.New(),
		state:     StateIdle,
		updatedAt: time.Now(),
	}
}

// AddIngredient adds to the session stock.
func (s *Session) AddIngredient(name, amount string, unit stock.Unit) (stock.IngredientEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return s.stock.Add(name, amount, unit)
}

// RemoveIngredient removes from the session stock. Unknown ids are ignored.
func (s *Session) RemoveIngredient(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	s.stock.Remove(id)
}

// Ingredients lists the session stock.
func (s *Session) Ingredients() []stock.IngredientEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock.List()
}

// Begin moves the session to pending and returns a request built from the
// current stock. It fails with ErrGenerationInProgress while pending.
func (s *Session) Begin() (GenerationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePending {
		return GenerationRequest{}, ErrGenerationInProgress
	}

	req := NewGenerationRequest(s.ID, s.stock.Snapshot())
	s.previous = s.state
	s.state = StatePending
	s.pending = &req
	s.updatedAt = time.Now()
	return req, nil
}

// Complete stores the result of the pending request and leaves pending.
// Results for any other request are ignored.
func (s *Session) Complete(req GenerationRequest, result GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending || s.pending == nil || s.pending.ID != req.ID {
		return
	}

	s.state = StateSucceeded
	if !result.OK() {
		s.state = StateFailed
	}
	s.last = &result
	s.pending = nil
	s.updatedAt = time.Now()
}

// abandon undoes Begin for a request that never reached the provider.
func (s *Session) abandon(req GenerationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending || s.pending == nil || s.pending.ID != req.ID {
		return
	}
	s.state = s.previous
	s.pending = nil
}

// Status returns the state and the most recent finished result, if any.
func (s *Session) Status() (GenerationState, *GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return s.state, nil
	}
	last := *s.last
	return s.state, &last
}

func (s *Session) touch() {
	s.mu.Lock()
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt, s.state != StatePending
}

// SessionStore keeps sessions in memory for the life of the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session with id, creating an empty one when it is unknown
// (for example after a restart, since stock is never persisted). Fetching a
// session counts as activity, so Prune cannot drop a session a caller is
// about to use.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		sess = newSession(id)
		st.sessions[id] = sess
		return sess
	}
	sess.touch()
	return sess
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Prune drops sessions untouched for longer than maxIdle. Pending sessions are
// kept. It holds the store lock for the whole sweep, so it never races Get.
func (st *SessionStore) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if updated, idle := sess.idleSince(); idle && updated.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
