package config

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Watcher is notified after a validated update. changed holds the updated keys
// (apollo style, e.g. "log.level").
type Watcher func(newCfg *Config, changed map[string]bool)

// Validator may reject an update before it is committed.
type Validator func(newCfg *Config, changed map[string]bool) error

// Store holds the live configuration.
type Store struct {
	v          atomic.Pointer[Config]
	mu         sync.RWMutex
	seq        int
	watchers   map[int]Watcher
	validators map[int]Validator
}

func NewStore(cfg *Config) *Store {
	s := &Store{watchers: map[int]Watcher{}, validators: map[int]Validator{}}
	s.v.Store(cfg)
	return s
}

func (s *Store) Get() *Config {
	return s.v.Load()
}

// Update commits newCfg without validation and notifies watchers.
func (s *Store) Update(newCfg *Config, changed map[string]bool) {
	s.v.Store(newCfg)
	s.mu.RLock()
	ws := make([]Watcher, 0, len(s.watchers))
	for i := 0; i <= s.seq; i++ {
		if w, ok := s.watchers[i]; ok {
			ws = append(ws, w)
		}
	}
	s.mu.RUnlock()
	for _, w := range ws {
		w(newCfg, changed)
	}
}

// Watch registers w and returns its unregister func.
func (s *Store) Watch(w Watcher) func() {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.watchers[id] = w
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// AddValidator registers a validator. If any validator returns error on update, the update will be discarded.
func (s *Store) AddValidator(v Validator) func() {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.validators[id] = v
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.validators, id)
		s.mu.Unlock()
	}
}

// UpdateValidated runs validators before committing the config. If any validator fails, no change is applied.
func (s *Store) UpdateValidated(newCfg *Config, changed map[string]bool) bool {
	s.mu.RLock()
	vals := make([]Validator, 0, len(s.validators))
	for _, v := range s.validators {
		vals = append(vals, v)
	}
	s.mu.RUnlock()
	for _, v := range vals {
		if err := v(newCfg, changed); err != nil {
			configLogger.Sugar().Warnf("config update rejected: %v", err)
			return false
		}
	}
	s.Update(newCfg, changed)
	return true
}

// ValidateBasics rejects values the running service cannot apply.
func ValidateBasics(newCfg *Config, _ map[string]bool) error {
	if newCfg.DB.MaxIdleConns > newCfg.DB.MaxOpenConns {
		return errors.New("DB_MAX_IDLE cannot exceed DB_MAX_OPEN")
	}
	if newCfg.Menu.CacheTTLSec < 0 {
		return errors.New("MENU_CACHE_TTL_SEC must be >= 0")
	}
	if newCfg.Menu.RecentMax < 1 {
		return errors.New("MENU_RECENT_MAX must be >= 1")
	}
	return nil
}

func cloneConfig(in *Config) *Config {
	out := *in
	return &out
}
