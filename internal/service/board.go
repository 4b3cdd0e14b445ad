package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"smv-nearby/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrSessionNotFound is returned for unknown map session ids.
var ErrSessionNotFound = errors.New("service: map session not found")

// PlaceResolver resolves the nearest place of one category.
type PlaceResolver interface {
	Resolve(ctx context.Context, origin models.Coordinate, category models.PlaceCategory, radiusKm float64) models.ResolvedPlace
}

// AddressResolver turns a coordinate into a display address.
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*models.Address, error)
}

// Board owns the state of one map widget: the user's position, its address and
// the nearest place per category. Every request a Board issues is tagged with
// a per-category sequence number and only the latest one may write back.
type Board struct {
	id       string
	places   PlaceResolver
	address  AddressResolver
	radiusKm float64

	mu          sync.Mutex
	origin      *models.Coordinate
	displayAddr string
	addrIssued  uint64
	addrCommit  uint64
	issued      map[models.PlaceCategory]uint64
	committed   map[models.PlaceCategory]uint64
	resolved    map[models.PlaceCategory]models.ResolvedPlace
	updatedAt   time.Time
	now         func() time.Time
}

// NewBoard creates an empty board. address may be nil to skip reverse geocoding.
func NewBoard(id string, places PlaceResolver, address AddressResolver, radiusKm float64) *Board {
	return &Board{
		id:        id,
		places:    places,
		address:   address,
		radiusKm:  radiusKm,
		issued:    make(map[models.PlaceCategory]uint64),
		committed: make(map[models.PlaceCategory]uint64),
		resolved:  make(map[models.PlaceCategory]models.ResolvedPlace),
		updatedAt: time.Now(),
		now:       time.Now,
	}
}

// ID returns the session id.
func (b *Board) ID() string {
	return b.id
}

// LastActive is the time of the last refresh or committed result.
func (b *Board) LastActive() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updatedAt
}

// Refresh moves the user marker to origin and re-resolves every category and
// the address concurrently. Results that lose the race to a newer Refresh are
// dropped. Lookups are not cancelled with ctx, so a caller that goes away
// cannot commit timeout fallbacks over real places; the resolver timeout
// still bounds them.
func (b *Board) Refresh(ctx context.Context, origin models.Coordinate) (models.Snapshot, error) {
	if err := origin.Validate(); err != nil {
		return models.Snapshot{}, err
	}
	ctx = context.WithoutCancel(ctx)

	b.mu.Lock()
	b.origin = &origin
	b.updatedAt = b.now()
	seqs := make(map[models.PlaceCategory]uint64, len(models.Categories))
	for _, c := range models.Categories {
		b.issued[c]++
		seqs[c] = b.issued[c]
	}
	b.addrIssued++
	addrSeq := b.addrIssued
	b.mu.Unlock()

	var g errgroup.Group
	for _, category := range models.Categories {
		g.Go(func() error {
			place := b.places.Resolve(ctx, origin, category, b.radiusKm)
			b.commitPlace(category, seqs[category], place)
			return nil
		})
	}
	g.Go(func() error {
		b.commitAddress(addrSeq, b.lookupAddress(ctx, origin))
		return nil
	})
	_ = g.Wait()

	return b.Snapshot(), nil
}

// lookupAddress falls back to the formatted coordinates when no address is available.
func (b *Board) lookupAddress(ctx context.Context, origin models.Coordinate) string {
	if b.address == nil {
		return origin.String()
	}
	addr, err := b.address.ReverseGeocode(ctx, origin.Lat, origin.Lon)
	if err != nil {
		log.Warn().Err(err).Str("session", b.id).Msg("reverse geocoding failed, keeping coordinates")
		return origin.String()
	}
	if addr == nil || addr.DisplayName == "" {
		return origin.String()
	}
	return addr.DisplayName
}

func (b *Board) commitPlace(category models.PlaceCategory, seq uint64, place models.ResolvedPlace) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.issued[category] || seq <= b.committed[category] {
		log.Debug().
			Str("session", b.id).
			Str("category", string(category)).
			Uint64("seq", seq).
			Uint64("latest", b.issued[category]).
			Msg("discarding stale place")
		return false
	}
	b.committed[category] = seq
	b.resolved[category] = place
	b.updatedAt = b.now()
	return true
}

func (b *Board) commitAddress(seq uint64, display string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.addrIssued || seq <= b.addrCommit {
		return false
	}
	b.addrCommit = seq
	b.displayAddr = display
	return true
}

// Snapshot returns a copy of the board state.
func (b *Board) Snapshot() models.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := models.Snapshot{
		SessionID: b.id,
		Address:   b.displayAddr,
		Places:    make(map[models.PlaceCategory]models.ResolvedPlace, len(b.resolved)),
		Sequence:  make(map[models.PlaceCategory]uint64, len(b.committed)),
		UpdatedAt: b.updatedAt,
	}
	if b.origin != nil {
		o := *b.origin
		snap.Origin = &o
	}
	for c, p := range b.resolved {
		snap.Places[c] = p
	}
	for c, s := range b.committed {
		snap.Sequence[c] = s
	}
	return snap
}

// DefaultSessionIdleTTL is how long a session may go without a refresh before
// it is dropped.
const DefaultSessionIdleTTL = 30 * time.Minute

// Boards is the registry of live map sessions. Sessions idle for longer than
// the idle TTL are swept whenever a new one is created and are no longer
// returned by Get.
type Boards struct {
	places   PlaceResolver
	address  AddressResolver
	radiusKm float64
	idleTTL  time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	boards map[string]*Board
}

// NewBoards creates an empty registry whose boards share the given resolvers.
// A non-positive idleTTL uses DefaultSessionIdleTTL.
func NewBoards(places PlaceResolver, address AddressResolver, radiusKm float64, idleTTL time.Duration) *Boards {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &Boards{
		places:   places,
		address:  address,
		radiusKm: radiusKm,
		idleTTL:  idleTTL,
		now:      time.Now,
		boards:   make(map[string]*Board),
	}
}

// Create starts a new session.
func (r *Boards) Create() *Board {
	b := NewBoard(uuid.New().String(), r.places, r.address, r.radiusKm)
	b.now = r.now
	b.updatedAt = r.now()

	r.mu.Lock()
	r.sweepLocked()
	r.boards[b.id] = b
	r.mu.Unlock()

	return b
}

func (r *Boards) expired(b *Board) bool {
	return r.now().Sub(b.LastActive()) > r.idleTTL
}

func (r *Boards) sweepLocked() {
	removed := 0
	for id, b := range r.boards {
		if r.expired(b) {
			delete(r.boards, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("live", len(r.boards)).Msg("swept idle sessions")
	}
}

// Len returns the number of sessions held, idle ones included until swept.
func (r *Boards) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boards)
}

// Get returns the session with the given id.
func (r *Boards) Get(id string) (*Board, error) {
	r.mu.RLock()
	b, ok := r.boards[id]
	r.mu.RUnlock()
	if !ok || r.expired(b) {
		return nil, ErrSessionNotFound
	}
	return b, nil
}

// Delete ends a session.
func (r *Boards) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.boards, id)
	return nil
}

// Refresh moves the user marker of session id.
func (r *Boards) Refresh(ctx context.Context, id string, origin models.Coordinate) (models.Snapshot, error) {
	b, err := r.Get(id)
	if err != nil {
		return models.Snapshot{}, err
	}
	return b.Refresh(ctx, origin)
}

// Open creates a session and returns its id.
func (r *Boards) Open() string {
	return r.Create().ID()
}

// Snapshot returns the current state of session id.
func (r *Boards) Snapshot(id string) (models.Snapshot, error) {
	b, err := r.Get(id)
	if err != nil {
		return models.Snapshot{}, err
	}
	return b.Snapshot(), nil
}
