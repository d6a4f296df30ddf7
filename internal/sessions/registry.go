package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const defaultSweepInterval = time.Minute

// Params configure the session registry.
type Params struct {
	Logger    *logger.Logger
	Metrics   *metrics.SessionMetrics
	IdleTTL   time.Duration
	MaxActive int
	Now       func() time.Time
}

// Registry holds the live shopper sessions. It is safe for concurrent use.
type Registry struct {
	logg      *logger.Logger
	metrics   *metrics.SessionMetrics
	idleTTL   time.Duration
	maxActive int
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry. A zero IdleTTL disables expiry and a
// zero MaxActive removes the cap.
func NewRegistry(params Params) (*Registry, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.IdleTTL < 0 {
		return nil, fmt.Errorf("idle ttl must not be negative")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		logg:      params.Logger,
		metrics:   params.Metrics,
		idleTTL:   params.IdleTTL,
		maxActive: params.MaxActive,
		now:       now,
		sessions:  map[string]*Session{},
	}, nil
}

// Create opens a session with an empty cart and the light theme.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		cart:      cart.New(),
		lastSeen:  now,
	}

	r.mu.Lock()
	if r.maxActive > 0 && len(r.sessions) >= r.maxActive {
		r.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many active sessions")
	}
	r.sessions[s.ID] = s
	r.mu.Unlock()

	s.cart.Subscribe(r.cartListener(s.ID))
	r.metrics.SessionStarted()
	r.logg.Debug(r.logg.WithSessionID(ctx, s.ID), "session created")
	return s, nil
}

// Get returns a live session and refreshes its idle clock. A session that
// has outlived the idle TTL but was not swept yet is treated as gone.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}

	now := r.now()
	r.mu.Lock()
	s, ok := r.sessions[key]
	if ok && s.idleSince(now, r.idleTTL) {
		delete(r.sessions, key)
		r.mu.Unlock()
		r.ended(ctx, key, enums.SessionEndExpired)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	r.mu.Unlock()

	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	s.touch(now)
	return s, nil
}

// Delete ends a session.
func (r *Registry) Delete(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	_, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	r.ended(ctx, key, enums.SessionEndDeleted)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes every session idle for longer than the TTL at now and
// returns how many were removed.
func (r *Registry) Sweep(ctx context.Context, now time.Time) int {
	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.idleSince(now, r.idleTTL) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		r.ended(ctx, id, enums.SessionEndExpired)
	}
	return len(expired)
}

// Run sweeps idle sessions on a fixed cadence until the context is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ctx = r.logg.WithField(ctx, "event", "sessions.sweep")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "session sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			removed := r.Sweep(ctx, r.now())
			r.metrics.ObserveSweep(time.Since(start))
			if removed > 0 {
				r.logg.Info(r.logg.WithFields(ctx, map[string]any{
					"removed": removed,
					"active":  r.Len(),
				}), "idle sessions swept")
			}
		}
	}
}

func (r *Registry) ended(ctx context.Context, id string, reason enums.SessionEndReason) {
	r.metrics.SessionEnded(reason.String())
	ctx = r.logg.WithFields(r.logg.WithSessionID(ctx, id), map[string]any{"reason": reason.String()})
	r.logg.Debug(ctx, "session ended")
}

func (r *Registry) cartListener(sessionID string) cart.Listener {
	ctx := r.logg.WithSessionID(context.Background(), sessionID)
	return func(evt cart.Event) {
		r.metrics.IncCartEvent(evt.Kind.String())
		r.logg.Debug(r.logg.WithFields(ctx, map[string]any{
			"cart_event": evt.Kind.String(),
			"product_id": evt.ProductID,
			"quantity":   evt.Quantity,
		}), "cart changed")
	}
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid session id")
	}
	return parsed.String(), nil
}
