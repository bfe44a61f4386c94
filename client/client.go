// Package client implements the consuming application's side of the chunk
// protocol: fetching a chunk through an injected resolver, verifying its signed
// envelope against the project public key embedded at build time, instantiating
// the payload in a capability-scoped runtime, and caching the result.
package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rechunk/rechunk/internal/sign"
)

// SignedChunk is the resolver's result: payload plus the compact JWS envelope
// produced by the server or dev server.
type SignedChunk struct {
	Data  string `json:"data"`
	Token string `json:"token"`
}

// Resolver fetches a chunk by id. It owns any timeout or retry policy; the
// manager never retries on its behalf.
type Resolver func(ctx context.Context, chunkID string) (*SignedChunk, error)

// Manager resolves, verifies, instantiates, and caches chunks. One manager per
// running application; construct it explicitly and inject it where needed.
type Manager struct {
	resolver  Resolver
	publicKey string
	verify    bool
	runtime   Runtime
	globals   map[string]any
	log       *zap.Logger

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]any
	subs  map[string][]func(any)
}

// Option configures a Manager.
type Option func(*Manager)

// WithResolver sets the chunk resolver.
func WithResolver(r Resolver) Option { return func(m *Manager) { m.resolver = r } }

// WithPublicKey sets the PEM-encoded project public key used for verification.
func WithPublicKey(pem string) Option { return func(m *Manager) { m.publicKey = pem } }

// WithVerification toggles signature checking. Disabling it is an explicitly
// insecure mode intended for local development only.
func WithVerification(v bool) Option { return func(m *Manager) { m.verify = v } }

// WithRuntime sets the instantiation runtime.
func WithRuntime(r Runtime) Option { return func(m *Manager) { m.runtime = r } }

// WithGlobals sets the allow-listed bindings passed to the runtime. Anything
// not listed here is invisible to executed chunks.
func WithGlobals(g map[string]any) Option { return func(m *Manager) { m.globals = g } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(m *Manager) { m.log = l } }

// New constructs a Manager. Verification is on by default.
func New(opts ...Option) *Manager {
	m := &Manager{
		verify:  true,
		runtime: StaticRuntime{},
		log:     zap.NewNop(),
		cache:   make(map[string]any),
		subs:    make(map[string][]func(any)),
	}
	for _, o := range opts {
		o(m)
	}
	if !m.verify {
		m.log.Warn("chunk verification is OFF; fetched code is NOT checked against the project key")
	}
	return m
}

// ImportChunk returns the instantiated unit for chunkID. A previously verified
// chunk is served from cache without touching the resolver. Concurrent calls
// for the same unresolved id are collapsed into a single fetch.
//
// Failure modes are terminal per call: transport errors surface as
// errs.ErrResolutionFailed and integrity errors as errs.ErrIntegrity; neither
// is cached, and an integrity failure never falls back to the unverified
// payload.
func (m *Manager) ImportChunk(ctx context.Context, chunkID string) (any, error) {
	m.mu.Lock()
	if unit, ok := m.cache[chunkID]; ok {
		m.mu.Unlock()
		return unit, nil
	}
	m.mu.Unlock()

	unit, err, _ := m.group.Do(chunkID, func() (any, error) {
		return m.resolveAndInstantiate(ctx, chunkID)
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %q: %w", chunkID, err)
	}
	return unit, nil
}

// Subscribe registers fn to run when chunkID is instantiated. If the chunk is
// already cached, fn runs immediately.
func (m *Manager) Subscribe(chunkID string, fn func(any)) {
	m.mu.Lock()
	if unit, ok := m.cache[chunkID]; ok {
		m.mu.Unlock()
		fn(unit)
		return
	}
	m.subs[chunkID] = append(m.subs[chunkID], fn)
	m.mu.Unlock()
}

func (m *Manager) resolveAndInstantiate(ctx context.Context, chunkID string) (any, error) {
	if m.resolver == nil {
		return nil, fmt.Errorf("no resolver configured")
	}
	chunk, err := m.resolver(ctx, chunkID)
	if err != nil {
		return nil, err
	}

	if m.verify {
		if err := sign.Verify([]byte(chunk.Data), chunk.Token, m.publicKey); err != nil {
			return nil, err
		}
	}

	unit, err := m.runtime.Instantiate(chunkID, chunk.Data, m.globals)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[chunkID] = unit
	subs := m.subs[chunkID]
	delete(m.subs, chunkID)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(unit)
	}
	return unit, nil
}
