package memory

import (
	"time"

	"deposit-defender-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// DownloadStateRepository tracks the observable {loading, error, progress}
// triple per case. Entries outlive a single request so the status endpoint
// and the websocket channel see the same state.
type DownloadStateRepository struct {
	cache *cache.Cache
}

func NewDownloadStateRepository() *DownloadStateRepository {
	return &DownloadStateRepository{cache: cache.New(15*time.Minute, 5*time.Minute)}
}

func (r *DownloadStateRepository) Get(caseId string) store.DownloadState {
	if x, found := r.cache.Get(caseId); found {
		return x.(store.DownloadState)
	}
	return store.DownloadState{}
}

func (r *DownloadStateRepository) Set(caseId string, s store.DownloadState) {
	r.cache.Set(caseId, s, cache.DefaultExpiration)
}

// Clear resets a case to the zero state; used by retry before re-issuing.
func (r *DownloadStateRepository) Clear(caseId string) {
	r.cache.Delete(caseId)
}
