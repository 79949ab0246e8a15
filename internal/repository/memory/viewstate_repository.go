package memory

import (
	"time"

	"deposit-defender-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ViewStateRepository keeps per-(session, case) report view state in memory.
// State is created on first access and TTL-expired; it is intentionally lost
// on restart because it is cosmetic disclosure state, not data.
type ViewStateRepository struct {
	cache *cache.Cache
}

func NewViewStateRepository() *ViewStateRepository {
	// Page views are short-lived; an hour of idle time is generous.
	return &ViewStateRepository{cache: cache.New(1*time.Hour, 10*time.Minute)}
}

func key(sessionId, caseId string) string {
	return sessionId + ":" + caseId
}

// Get returns the state for a page view, creating the initial hub state on
// first access.
func (r *ViewStateRepository) Get(sessionId, caseId string) *store.ViewState {
	if x, found := r.cache.Get(key(sessionId, caseId)); found {
		return x.(*store.ViewState)
	}
	s := store.NewViewState()
	r.cache.Set(key(sessionId, caseId), s, cache.DefaultExpiration)
	return s
}

// Save refreshes the TTL after a mutation.
func (r *ViewStateRepository) Save(sessionId, caseId string, s *store.ViewState) {
	r.cache.Set(key(sessionId, caseId), s, cache.DefaultExpiration)
}

// Delete discards a page view's state (navigation away).
func (r *ViewStateRepository) Delete(sessionId, caseId string) {
	r.cache.Delete(key(sessionId, caseId))
}
