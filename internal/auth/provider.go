// Package auth owns the current session: restore on start, login, logout.
// State is held in one place and handed out explicitly instead of living in a
// process-wide global.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"productmanager/internal/apiclient"
	"productmanager/internal/models"
	"productmanager/internal/session"
)

type Provider struct {
	store *session.Store
	api   *apiclient.Client
	log   *slog.Logger

	mu      sync.RWMutex
	current *models.Session
	loading bool
	subs    []func(*models.Session)
}

func NewProvider(store *session.Store, api *apiclient.Client, log *slog.Logger) *Provider {
	return &Provider{store: store, api: api, log: log, loading: true}
}

// Restore loads the persisted session, if any, and clears the loading flag.
// An unreadable session file is treated as logged out.
func (p *Provider) Restore() {
	sess, err := p.store.Load()
	if err != nil {
		p.log.Warn("session restore failed", "error", err)
		sess = nil
	}

	p.mu.Lock()
	p.current = sess
	p.loading = false
	p.mu.Unlock()
	p.notify(sess)
}

func (p *Provider) Login(ctx context.Context, email, password string) error {
	sess, err := p.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.store.Save(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	p.mu.Lock()
	p.current = sess
	p.mu.Unlock()
	p.log.Info("logged in", "email", sess.Email, "role", sess.Role)
	p.notify(sess)
	return nil
}

func (p *Provider) Logout() error {
	if err := p.store.Clear(); err != nil {
		return err
	}

	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.log.Info("logged out")
	p.notify(nil)
	return nil
}

func (p *Provider) Current() *models.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Subscribe registers fn to run after every session change. The current
// session (possibly nil) is passed to it.
func (p *Provider) Subscribe(fn func(*models.Session)) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}

func (p *Provider) notify(sess *models.Session) {
	p.mu.RLock()
	subs := make([]func(*models.Session), len(p.subs))
	copy(subs, p.subs)
	p.mu.RUnlock()
	for _, fn := range subs {
		fn(sess)
	}
}
