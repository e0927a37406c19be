package engine

import (
	"sync"

	"github.com/moonforge-labs/launchpad/launch/types"
)

// ledger is the in-memory repository of pool records. All lookups go through
// it; nothing scans raw slices in hot paths. Getters hand out copies — the
// only way state changes is an engine entry point committing a mutated copy
// back via the setters.
type ledger struct {
	mu sync.RWMutex

	pools         map[string]types.Pool
	creatorFees   map[string]types.CreatorFees
	postGradStats map[string]types.PostGraduationStats

	// allTokens preserves creation order; active is the subset still
	// trading on the curve.
	allTokens []string
	active    map[string]struct{}
}

func newLedger() *ledger {
	return &ledger{
		pools:         make(map[string]types.Pool),
		creatorFees:   make(map[string]types.CreatorFees),
		postGradStats: make(map[string]types.PostGraduationStats),
		active:        make(map[string]struct{}),
	}
}

// getPool returns a copy of the pool record.
func (l *ledger) getPool(token string) (types.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pool, ok := l.pools[token]
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("no pool for token %s", token)
	}
	return pool, nil
}

func (l *ledger) hasPool(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.pools[token]
	return ok
}

// createPool registers a new pool with its companion records. Fails if the
// token already has a pool (creation is one-shot per token, forever).
func (l *ledger) createPool(pool types.Pool, fees types.CreatorFees, stats types.PostGraduationStats) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pools[pool.Token]; ok {
		return types.ErrPoolAlreadyExists.Wrapf("pool for token %s already exists", pool.Token)
	}
	l.pools[pool.Token] = pool
	l.creatorFees[pool.Token] = fees
	l.postGradStats[pool.Token] = stats
	l.allTokens = append(l.allTokens, pool.Token)
	if pool.Active {
		l.active[pool.Token] = struct{}{}
	}
	return nil
}

// setPool commits a mutated pool copy and refreshes the active index.
func (l *ledger) setPool(pool types.Pool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pools[pool.Token] = pool
	if pool.Active {
		l.active[pool.Token] = struct{}{}
	} else {
		delete(l.active, pool.Token)
	}
}

func (l *ledger) getCreatorFees(token string) (types.CreatorFees, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fees, ok := l.creatorFees[token]
	if !ok {
		return types.CreatorFees{}, types.ErrPoolNotFound.Wrapf("no creator fee vault for token %s", token)
	}
	return fees, nil
}

func (l *ledger) setCreatorFees(fees types.CreatorFees) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creatorFees[fees.Token] = fees
}

func (l *ledger) getPostGradStats(token string) (types.PostGraduationStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats, ok := l.postGradStats[token]
	if !ok {
		return types.PostGraduationStats{}, types.ErrPoolNotFound.Wrapf("no stats for token %s", token)
	}
	return stats, nil
}

func (l *ledger) setPostGradStats(stats types.PostGraduationStats) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.postGradStats[stats.Token] = stats
}

// tokens returns all launched tokens in creation order.
func (l *ledger) tokens() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.allTokens))
	copy(out, l.allTokens)
	return out
}

// activeTokens returns tokens still trading on the curve, in creation order.
func (l *ledger) activeTokens() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.active))
	for _, token := range l.allTokens {
		if _, ok := l.active[token]; ok {
			out = append(out, token)
		}
	}
	return out
}

// GetPool returns a copy of the pool ledger entry for token.
func (e *Engine) GetPool(token string) (types.Pool, error) {
	return e.ledger.getPool(token)
}

// GetCreatorFees returns a copy of the creator fee vault for token.
func (e *Engine) GetCreatorFees(token string) (types.CreatorFees, error) {
	return e.ledger.getCreatorFees(token)
}

// GetPostGraduationStats returns a copy of the secondary-market stats.
func (e *Engine) GetPostGraduationStats(token string) (types.PostGraduationStats, error) {
	return e.ledger.getPostGradStats(token)
}

// AllTokens returns every launched token in creation order.
func (e *Engine) AllTokens() []string {
	return e.ledger.tokens()
}

// ActiveTokens returns tokens still trading on the curve.
func (e *Engine) ActiveTokens() []string {
	return e.ledger.activeTokens()
}
