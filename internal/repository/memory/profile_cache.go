package memory

import (
	"time"

	"solosolver-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps assembled user profiles for a short time so repeated
// complaints from the same customer skip the aggregate queries.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *ProfileCache) Save(profile *entity.UserProfile) {
	if profile == nil {
		return
	}
	cp := *profile
	cp.TopComplaintDrivers = append([]string(nil), profile.TopComplaintDrivers...)
	r.cache.Set(profile.UserId, &cp, cache.DefaultExpiration)
}

func (r *ProfileCache) Get(userId string) (*entity.UserProfile, bool) {
	if x, found := r.cache.Get(userId); found {
		cp := *x.(*entity.UserProfile)
		return &cp, true
	}
	return nil, false
}

func (r *ProfileCache) Delete(userId string) {
	r.cache.Delete(userId)
}
