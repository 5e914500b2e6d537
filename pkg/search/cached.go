package search

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes successful lookups per query so that re-enriching
// an unchanged module returns the same resources.
type CachedProvider struct {
	next  Provider
	cache *cache.Cache
}

var _ Provider = &CachedProvider{}

func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (p *CachedProvider) Name() string {
	return p.next.Name()
}

func (p *CachedProvider) Search(ctx context.Context, req Request) ([]Result, error) {
	key := fmt.Sprintf("%s|%d|%s|%s|%s|%s", p.next.Name(), req.MaxResults, req.MainTopic, req.Query, req.Title, req.Description)
	if x, found := p.cache.Get(key); found {
		return cloneResults(x.([]Result)), nil
	}

	results, err := p.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, cloneResults(results), cache.DefaultExpiration)
	return results, nil
}

func cloneResults(in []Result) []Result {
	out := make([]Result, len(in))
	copy(out, in)
	return out
}
