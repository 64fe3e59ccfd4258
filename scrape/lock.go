package scrape

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// lockStripes is the number of mutexes URLs are hashed onto.
const lockStripes = 256

// URLLocker serializes work on the same URL. URLs are hashed onto a fixed
// set of mutexes, so unrelated URLs may occasionally share a stripe.
type URLLocker struct {
	stripes [lockStripes]sync.Mutex
}

// NewURLLocker creates a new URLLocker.
func NewURLLocker() *URLLocker {
	return &URLLocker{}
}

// Lock blocks until url is free and returns the function that releases it.
func (l *URLLocker) Lock(url string) (unlock func()) {
	mu := &l.stripes[xxhash.Sum64String(url)%lockStripes]
	mu.Lock()
	return mu.Unlock
}
