package engine

import (
	"sync"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// reentrancyGuard holds per-token lock flags. The host serializes
// transactions, so a held lock during an entry means the current call chain
// re-entered the engine for the same pool; that is an error, not a wait.
type reentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

func newReentrancyGuard() *reentrancyGuard {
	return &reentrancyGuard{locks: make(map[string]struct{})}
}

func (g *reentrancyGuard) lock(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.locks[token]; held {
		return types.ErrReentrancy.Wrapf("pool %s is locked by an in-flight operation", token)
	}
	g.locks[token] = struct{}{}
	return nil
}

func (g *reentrancyGuard) unlock(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, token)
}

// withPoolLock runs fn under the token's reentrancy lock. The lock is
// released even if fn panics.
func (e *Engine) withPoolLock(token string, fn func() error) error {
	if err := e.guard.lock(token); err != nil {
		return err
	}
	defer e.guard.unlock(token)
	return fn()
}
