package gacha

import (
	"context"
	"fmt"
	"sort"
	"strings"
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
	UnitCost  float64 // zero uses DefaultUnitCost
	ChunkSize int
	HardCap   int // ceiling for PullUntil; zero or above MaxSeekAttempts uses MaxSeekAttempts
	CacheSize int
	TTL       time.Duration
}

// PullResult is the outcome of a batch pull
type PullResult struct {
	Session View              `json:"session"`
	Results []draw.DrawResult `json:"results"`
	Counts  map[string]int    `json:"counts"`
	Cost    float64           `json:"cost"`
}

// SeekResult is the outcome of a pull-until-target run
type SeekResult struct {
	Session View            `json:"session"`
	Seek    draw.SeekResult `json:"seek"`
	Cost    float64         `json:"cost"`
}

// Service defines the gacha simulator
type Service interface {
	ListPools(ctx context.Context) []domain.WeightedSet
	GetPool(ctx context.Context, poolID string) (domain.WeightedSet, error)
	RegisterPool(ctx context.Context, name string, rows []Row) (domain.WeightedSet, error)

	CreateSession(ctx context.Context, poolID string) (View, error)
	GetSession(ctx context.Context, sessionID string) (View, error)
	Pull(ctx context.Context, sessionID string, count int) (PullResult, error)
	PullUntil(ctx context.Context, sessionID, targetID string, maxAttempts int) (SeekResult, error)
	Reset(ctx context.Context, sessionID string) (View, error)
}

type service struct {
	engine   *draw.Engine
	cfg      Config
	sessions *session.Store[Session]
	now      func() time.Time

	mu    sync.RWMutex
	pools map[string]domain.WeightedSet
}

// NewService creates a gacha service seeded with the given pools.
// The engine should run in draw.ModeFixedPercent to reproduce published rate tables.
func NewService(ctx context.Context, engine *draw.Engine, pools []domain.WeightedSet, cfg Config) (Service, error) {
	if cfg.UnitCost <= 0 {
		cfg.UnitCost = DefaultUnitCost
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = draw.DefaultChunkSize
	}
	if cfg.HardCap <= 0 || cfg.HardCap > MaxSeekAttempts {
		cfg.HardCap = MaxSeekAttempts
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
		sessions: session.NewStore[Session](metrics.SimulatorGacha, cfg.CacheSize, cfg.TTL),
		now:      time.Now,
		pools:    make(map[string]domain.WeightedSet, len(pools)),
	}
	for _, p := range pools {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%w: pool %q has no id", domain.ErrInvalidInput, p.Name)
		}
		if err := svc.addPool(ctx, p); err != nil {
			return nil, fmt.Errorf("pool %s: %w", p.ID, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgPoolsLoaded, LogFieldCount, len(pools))
	return svc, nil
}

func (s *service) addPool(ctx context.Context, p domain.WeightedSet) error {
	sum, err := s.engine.Validate(ctx, p)
	if err != nil {
		return err
	}
	if sum.Deviates {
		metrics.WeightDeviations.WithLabelValues(metrics.SimulatorGacha).Inc()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pools[p.ID]; exists {
		return fmt.Errorf("%w: pool %s already registered", domain.ErrInvalidInput, p.ID)
	}
	s.pools[p.ID] = p
	return nil
}

func (s *service) ListPools(ctx context.Context) []domain.WeightedSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WeightedSet, 0, len(s.pools))
	for _, p := range s.pools {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *service) GetPool(ctx context.Context, poolID string) (domain.WeightedSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pools[poolID]
	if !ok {
		return domain.WeightedSet{}, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, poolID)
	}
	return p, nil
}

// RegisterPool builds a pool from collected rows. Rows without a name or a
// positive rate are dropped; the rest keep their order.
func (s *service) RegisterPool(ctx context.Context, name string, rows []Row) (domain.WeightedSet, error) {
	log := logger.FromContext(ctx)

	id := session.NewID()
	pool := domain.WeightedSet{ID: id, Name: strings.TrimSpace(name)}
	if pool.Name == "" {
		pool.Name = id
	}
	for i, r := range rows {
		o, ok := outcomeFromRow(fmt.Sprintf("%s-%d", id[:8], i+1), r)
		if !ok {
			log.Debug(LogMsgRowSkipped, LogFieldRow, i)
			continue
		}
		pool.Outcomes = append(pool.Outcomes, o)
	}

	if err := s.addPool(ctx, pool); err != nil {
		return domain.WeightedSet{}, err
	}
	log.Info(LogMsgPoolRegistered, LogFieldPoolID, pool.ID, LogFieldCount, len(pool.Outcomes))
	return pool, nil
}

func (s *service) CreateSession(ctx context.Context, poolID string) (View, error) {
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return View{}, err
	}

	sess := newSession(session.NewID(), pool, s.cfg.UnitCost, s.now())
	sess.mu.Lock()
	sess.logf("Loaded %s with %d items", pool.Name, len(pool.Outcomes))
	v := sess.view()
	sess.mu.Unlock()

	s.sessions.Put(sess.ID, sess)
	logger.FromContext(ctx).Info(LogMsgSessionCreated, LogFieldSessionID, sess.ID, LogFieldPoolID, pool.ID)
	return v, nil
}

func (s *service) session(ctx context.Context, id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgSessionNotFound, LogFieldSessionID, id)
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Pull draws count times. Non-positive counts pull once.
func (s *service) Pull(ctx context.Context, sessionID string, count int) (PullResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return PullResult{}, err
	}

	if err := sess.acquire(); err != nil {
		return PullResult{}, err
	}

	batch, err := s.engine.DrawBatch(sess.Pool, count, sess)
	if err != nil {
		sess.release()
		return PullResult{}, err
	}
	n := len(batch.Results)
	metrics.DrawsTotal.WithLabelValues(metrics.SimulatorGacha).Add(float64(n))

	sess.mu.Lock()
	sess.busy = false
	sess.logf("Pulled %d: %s", n, highlights(batch.Results))
	v := sess.view()
	sess.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgPullCompleted, LogFieldSessionID, sessionID, LogFieldCount, n)
	return PullResult{
		Session: v,
		Results: batch.Results,
		Counts:  batch.Counts,
		Cost:    float64(n) * s.cfg.UnitCost,
	}, nil
}

func highlights(results []draw.DrawResult) string {
	var names []string
	for _, r := range results {
		if r.Outcome.Rarity.IsHigh() {
			names = append(names, r.Outcome.Name)
		}
	}
	if len(names) == 0 {
		return "no rare items"
	}
	return "got " + strings.Join(names, ", ")
}

// PullUntil pulls until targetID comes up or the ceiling is reached. It runs in
// chunks and stops early when ctx is cancelled; pulls already made are kept.
func (s *service) PullUntil(ctx context.Context, sessionID, targetID string, maxAttempts int) (SeekResult, error) {
	log := logger.FromContext(ctx)

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return SeekResult{}, err
	}
	if targetID == "" {
		return SeekResult{}, domain.ErrMissingTarget
	}
	if maxAttempts <= 0 {
		maxAttempts = draw.DefaultMaxAttempts
	}
	if maxAttempts > s.cfg.HardCap {
		maxAttempts = s.cfg.HardCap
	}

	seeker, err := s.engine.NewSeeker([]domain.WeightedSet{sess.Pool}, []string{targetID}, maxAttempts, sess)
	if err != nil {
		return SeekResult{}, err
	}
	target, _ := sess.Pool.Find(targetID)

	if err := sess.acquire(); err != nil {
		return SeekResult{}, err
	}
	sess.mu.Lock()
	sess.logf(">>> Pulling until [%s] <<<", target.Name)
	sess.mu.Unlock()

	log.Info(LogMsgSeekStarted, LogFieldSessionID, sessionID, LogFieldTarget, targetID)
	res := draw.Run(ctx, seeker, s.cfg.ChunkSize)

	metrics.DrawsTotal.WithLabelValues(metrics.SimulatorGacha).Add(float64(res.Attempts))
	metrics.ObserveSeek(metrics.SimulatorGacha, res.Found, res.Cancelled, res.Attempts)
	cost := float64(res.Attempts) * s.cfg.UnitCost

	sess.mu.Lock()
	sess.busy = false
	switch {
	case res.Found:
		sess.logf("SUCCESS! Got [%s] on pull %d", target.Name, res.Attempts)
		sess.logf("Spent %.0f P", cost)
	case res.Cancelled:
		sess.logf("Cancelled after %d pulls", res.Attempts)
	default:
		sess.logf("STOPPED. No [%s] within %d pulls", target.Name, res.Max)
	}
	v := sess.view()
	sess.mu.Unlock()

	log.Info(LogMsgSeekFinished,
		LogFieldSessionID, sessionID,
		LogFieldFound, res.Found,
		LogFieldAttempts, res.Attempts,
		LogFieldCancelled, res.Cancelled)
	return SeekResult{Session: v, Seek: res, Cost: cost}, nil
}

func (s *service) Reset(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.beginExclusive(); err != nil {
		return View{}, err
	}
	sess.tally.Reset()
	sess.log = nil
	sess.logf("History reset")
	return sess.view(), nil
}
