package core

import (
	"sync"
	"time"

	"github.com/ipoluianov/jsonstore/internal/storage"
)

const AccessPath = "/getData"

type Core struct {
	mtx        sync.Mutex
	store      *storage.Store
	maxAge     time.Duration
	timeNow    func() time.Time
	statistics Statistics
}

func NewCore(store *storage.Store, maxAge time.Duration) *Core {
	var c Core
	c.store = store
	c.maxAge = maxAge
	if c.maxAge <= 0 {
		c.maxAge = storage.DefaultMaxAge
	}
	c.timeNow = time.Now
	return &c
}

func (c *Core) MaxAge() time.Duration {
	return c.maxAge
}

func (c *Core) Store() *storage.Store {
	return c.store
}
