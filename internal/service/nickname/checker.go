package nickname

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Status of a nickname check
type Status string

const (
	StatusAvailable  Status = "available"
	StatusTaken      Status = "taken"
	StatusError      Status = "error"
	StatusUnchanged  Status = "unchanged"
	StatusEmpty      Status = "empty"
	StatusSuperseded Status = "superseded"
)

var messages = map[Status]string{
	StatusAvailable: "此暱稱可以使用",
	StatusTaken:     "此暱稱已被使用",
	StatusError:     "檢查暱稱時發生錯誤",
}

// Lookup asks the source of truth whether a nickname is free
type Lookup func(ctx context.Context, nickname string) (bool, error)

// Result of one Check call.
// Stale is set when a newer value was typed while the lookup was in flight; callers should drop it.
type Result struct {
	Nickname  string `json:"nickname"`
	Status    Status `json:"status"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
	Stale     bool   `json:"stale,omitempty"`
}

// Checker debounces availability checks per key (one key per signed-in user).
// Only the last value typed within the quiet period reaches Lookup.
type Checker struct {
	quiet  time.Duration
	lookup Lookup
	wait   func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	seq     uint64
	pending map[string]uint64
}

// NewChecker creates a checker that waits quiet before looking a value up
func NewChecker(quiet time.Duration, lookup Lookup) *Checker {
	return &Checker{
		quiet:   quiet,
		lookup:  lookup,
		wait:    sleep,
		pending: make(map[string]uint64),
	}
}

// Check records nickname as the latest value for key, waits for the quiet period and looks it up
// unless a newer value arrived meanwhile. current is the nickname the user already has.
func (c *Checker) Check(ctx context.Context, key, current, nickname string) (Result, error) {
	nickname = strings.TrimSpace(nickname)
	gen := c.bump(key)

	switch {
	case nickname == "":
		c.finish(key, gen)
		return Result{Nickname: nickname, Status: StatusEmpty}, nil
	case nickname == strings.TrimSpace(current):
		c.finish(key, gen)
		return Result{Nickname: nickname, Status: StatusUnchanged, Available: true}, nil
	}

	if err := c.wait(ctx, c.quiet); err != nil {
		c.finish(key, gen)
		return Result{}, err
	}
	if !c.isLatest(key, gen) {
		return Result{Nickname: nickname, Status: StatusSuperseded}, nil
	}

	result := Result{Nickname: nickname}
	available, err := c.lookup(ctx, nickname)
	switch {
	case err != nil:
		result.Status = StatusError
	case available:
		result.Status = StatusAvailable
		result.Available = true
	default:
		result.Status = StatusTaken
	}
	result.Message = messages[result.Status]
	result.Stale = !c.isLatest(key, gen)

	c.finish(key, gen)
	return result, nil
}

func (c *Checker) bump(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.pending[key] = c.seq
	return c.seq
}

func (c *Checker) isLatest(key string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[key] == gen
}

// finish forgets key once its latest call is done
func (c *Checker) finish(key string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[key] == gen {
		delete(c.pending, key)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
