package enchant

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/draw"
	"github.com/neo84716/ro-data/internal/logger"
	"github.com/neo84716/ro-data/internal/metrics"
	"github.com/neo84716/ro-data/internal/session"
)

// Config tunes session handling
type Config struct {
	ChunkSize int
	HardCap   int // ceiling for SeekCombo; zero uses draw.DefaultComboMaxAttempts
	CacheSize int
	TTL       time.Duration
}

// ComboResult is the outcome of a combo seek
type ComboResult struct {
	Session View            `json:"session"`
	Seek    draw.SeekResult `json:"seek"`
}

// Service defines the enchant simulator
type Service interface {
	ListProfiles(ctx context.Context) []Profile
	GetProfile(ctx context.Context, profileID string) (Profile, error)

	CreateSession(ctx context.Context, profileID, equipment string) (View, error)
	GetSession(ctx context.Context, sessionID string) (View, error)
	EnchantSlot(ctx context.Context, sessionID string, slotID int) (View, error)
	EnchantAll(ctx context.Context, sessionID string) (View, error)
	SeekCombo(ctx context.Context, sessionID string, targets map[int]string, maxAttempts int) (ComboResult, error)
	Reset(ctx context.Context, sessionID string) (View, error)
}

type service struct {
	engine   *draw.Engine
	cfg      Config
	sessions *session.Store[Session]
	now      func() time.Time

	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewService creates an enchant service over the given profiles
func NewService(ctx context.Context, engine *draw.Engine, profiles []Profile, cfg Config) (Service, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = draw.DefaultChunkSize
	}
	if cfg.HardCap <= 0 {
		cfg.HardCap = draw.DefaultComboMaxAttempts
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}

	svc := &service{
		engine:   engine,
		cfg:      cfg,
		sessions: session.NewStore[Session](metrics.SimulatorEnchant, cfg.CacheSize, cfg.TTL),
		now:      time.Now,
		profiles: make(map[string]Profile, len(profiles)),
	}
	for _, p := range profiles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := svc.profiles[p.ID]; dup {
			return nil, fmt.Errorf("%w: profile %s defined twice", domain.ErrInvalidInput, p.ID)
		}
		for _, d := range p.Slots {
			sum, err := engine.Validate(ctx, d.Set())
			if err != nil {
				return nil, fmt.Errorf("profile %s slot %d: %w", p.ID, d.SlotID, err)
			}
			if sum.Deviates {
				metrics.WeightDeviations.WithLabelValues(metrics.SimulatorEnchant).Inc()
			}
		}
		svc.profiles[p.ID] = p
	}
	logger.FromContext(ctx).Info(LogMsgProfilesLoaded, LogFieldCount, len(profiles))
	return svc, nil
}

func (s *service) ListProfiles(ctx context.Context) []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *service) GetProfile(ctx context.Context, profileID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileID]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	return p, nil
}

// CreateSession starts enchanting a piece of equipment. An empty equipment
// name picks the profile's first entry.
func (s *service) CreateSession(ctx context.Context, profileID, equipment string) (View, error) {
	p, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return View{}, err
	}
	if equipment == "" && len(p.Equipment) > 0 {
		equipment = p.Equipment[0]
	}
	if len(p.Equipment) > 0 && !p.hasEquipment(equipment) {
		return View{}, fmt.Errorf("%w: %q is not covered by profile %s", domain.ErrInvalidInput, equipment, p.ID)
	}

	sess := newSession(session.NewID(), p, equipment, s.now())
	s.sessions.Put(sess.ID, sess)
	logger.FromContext(ctx).Info(LogMsgSessionCreated, LogFieldSessionID, sess.ID, LogFieldProfileID, p.ID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *service) session(id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// EnchantSlot rerolls one slot, replacing its current enchant
func (s *service) EnchantSlot(ctx context.Context, sessionID string, slotID int) (View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return View{}, err
	}
	idx, ok := sess.Profile.slotIndex(slotID)
	if !ok {
		return View{}, fmt.Errorf("%w: %d", domain.ErrSlotNotFound, slotID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.beginExclusive(); err != nil {
		return View{}, err
	}
	o, err := s.engine.Draw(sess.Profile.Slots[idx].Set())
	if err != nil {
		return View{}, err
	}
	sess.recordSlot(idx, o)
	metrics.DrawsTotal.WithLabelValues(metrics.SimulatorEnchant).Inc()
	return sess.view(), nil
}

// EnchantAll rerolls every slot at once
func (s *service) EnchantAll(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return View{}, err
	}

	if err := sess.acquire(); err != nil {
		return View{}, err
	}

	drawn := make([]domain.WeightedOutcome, len(sess.Profile.Slots))
	for i, d := range sess.Profile.Slots {
		o, err := s.engine.Draw(d.Set())
		if err != nil {
			sess.release()
			return View{}, err
		}
		drawn[i] = o
	}
	metrics.DrawsTotal.WithLabelValues(metrics.SimulatorEnchant).Add(float64(len(drawn)))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.recordAll(drawn)
	sess.busy = false
	return sess.view(), nil
}

// SeekCombo rolls every slot together until each slot in targets shows its
// target option. Slots missing from targets, or mapped to draw.Wildcard, match
// anything. The session ends up showing the last roll.
func (s *service) SeekCombo(ctx context.Context, sessionID string, targets map[int]string, maxAttempts int) (ComboResult, error) {
	log := logger.FromContext(ctx)

	sess, err := s.session(sessionID)
	if err != nil {
		return ComboResult{}, err
	}

	ordered := make([]string, len(sess.Profile.Slots))
	for i := range ordered {
		ordered[i] = draw.Wildcard
	}
	for slotID, target := range targets {
		idx, ok := sess.Profile.slotIndex(slotID)
		if !ok {
			return ComboResult{}, fmt.Errorf("%w: %d", domain.ErrSlotNotFound, slotID)
		}
		ordered[idx] = target
	}

	if maxAttempts <= 0 {
		maxAttempts = draw.DefaultComboMaxAttempts
	}
	if maxAttempts > s.cfg.HardCap {
		maxAttempts = s.cfg.HardCap
	}

	seeker, err := s.engine.NewSeeker(sess.sets(), ordered, maxAttempts, sess)
	if err != nil {
		return ComboResult{}, err
	}

	if err := sess.acquire(); err != nil {
		return ComboResult{}, err
	}

	log.Info(LogMsgSeekStarted, LogFieldSessionID, sessionID, LogFieldTargets, ordered)
	res := draw.Run(ctx, seeker, s.cfg.ChunkSize)

	metrics.DrawsTotal.WithLabelValues(metrics.SimulatorEnchant).Add(float64(res.Attempts * len(ordered)))
	metrics.ObserveSeek(metrics.SimulatorEnchant, res.Found, res.Cancelled, res.Attempts)

	sess.mu.Lock()
	sess.busy = false
	v := sess.view()
	sess.mu.Unlock()

	log.Info(LogMsgSeekFinished,
		LogFieldSessionID, sessionID,
		LogFieldFound, res.Found,
		LogFieldAttempts, res.Attempts,
		LogFieldCancelled, res.Cancelled)
	return ComboResult{Session: v, Seek: res}, nil
}

// Reset clears every slot and tally
func (s *service) Reset(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.beginExclusive(); err != nil {
		return View{}, err
	}
	sess.tally.Reset()
	for i := range sess.current {
		sess.current[i] = nil
	}
	return sess.view(), nil
}
