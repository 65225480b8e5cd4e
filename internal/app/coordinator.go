package app

import "sync"

// channelLocks hands out one mutex per channel so commands for the same
// channel are linearized across their entire read-fetch-merge-write
// sequence, while different channels never contend. Locks are created
// on first use and kept for the life of the process; the set of active
// channels is small.
type channelLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// acquire locks the channel's mutex and returns the unlock function.
func (c *channelLocks) acquire(channelID string) func() {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[string]*sync.Mutex)
	}
	l, ok := c.locks[channelID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[channelID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
