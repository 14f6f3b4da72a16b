// Package dashboard orchestrates the product list screen: loading, searching,
// the create/edit form and confirmation-gated deletion. All state lives in one
// snapshot that is replaced wholesale on every transition.
package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"productmanager/internal/models"
)

// ProductService is the slice of the API the dashboard needs.
type ProductService interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, product models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// Notifier receives the user-facing toast messages. Delivery is somebody
// else's problem.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// State is an immutable snapshot of the dashboard. Editing is nil when the
// form would create a new product; PendingDelete is "" when no confirmation
// prompt is armed.
type State struct {
	Products      []models.Product
	Query         string
	Visible       []models.Product
	FormOpen      bool
	Editing       *models.Product
	PendingDelete string
	Loading       bool
}

type Controller struct {
	svc    ProductService
	notify Notifier
	log    *slog.Logger

	mu    sync.RWMutex
	state State
	subs  []func(State)
}

func NewController(svc ProductService, notify Notifier, log *slog.Logger) *Controller {
	return &Controller{svc: svc, notify: notify, log: log}
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe registers fn to run with the new snapshot after every transition.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Controller) transition(mutate func(*State)) State {
	c.mu.Lock()
	next := c.state
	mutate(&next)
	next.Visible = Filter(next.Products, next.Query)
	c.state = next
	subs := make([]func(State), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Filter returns the products whose name, category or description contains q
// case-insensitively. An empty q returns everything. Pure, no side effects.
func Filter(products []models.Product, q string) []models.Product {
	if q == "" {
		return products
	}
	needle := strings.ToLower(q)
	var visible []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Load fetches the full product list. On failure the list comes up empty and
// the user is notified; there is nothing to retry automatically.
func (c *Controller) Load(ctx context.Context) {
	c.transition(func(s *State) { s.Loading = true })

	products, err := c.svc.GetAll(ctx)
	if err != nil {
		c.log.Warn("load products failed", "error", err)
		c.transition(func(s *State) {
			s.Loading = false
			s.Products = nil
		})
		c.notify.Error(err.Error())
		return
	}

	c.transition(func(s *State) {
		s.Loading = false
		s.Products = products
	})
}

func (c *Controller) SetQuery(q string) {
	c.transition(func(s *State) { s.Query = q })
}

func (c *Controller) OpenCreate() {
	c.transition(func(s *State) {
		s.FormOpen = true
		s.Editing = nil
	})
}

func (c *Controller) OpenEdit(p models.Product) {
	c.transition(func(s *State) {
		s.FormOpen = true
		s.Editing = &p
	})
}

func (c *Controller) CloseForm() {
	c.transition(func(s *State) {
		s.FormOpen = false
		s.Editing = nil
	})
}

// Submit persists the form: update when an edit target is set, create
// otherwise. Success closes the form and reloads the list; failure leaves the
// form open with the prior state intact.
func (c *Controller) Submit(ctx context.Context, product models.Product) error {
	editing := c.State().Editing

	var err error
	if editing != nil {
		_, err = c.svc.Update(ctx, editing.ID, product)
	} else {
		_, err = c.svc.Create(ctx, product)
	}
	if err != nil {
		c.log.Warn("submit failed", "error", err)
		c.notify.Error(err.Error())
		return err
	}

	if editing != nil {
		c.notify.Success("Product updated successfully")
	} else {
		c.notify.Success("Product created successfully")
	}
	c.CloseForm()
	c.Load(ctx)
	return nil
}

// RequestDelete arms the confirmation prompt for id. Nothing is sent to the
// backend yet.
func (c *Controller) RequestDelete(id string) {
	c.transition(func(s *State) { s.PendingDelete = id })
}

func (c *Controller) CancelDelete() {
	c.transition(func(s *State) { s.PendingDelete = "" })
}

// ConfirmDelete performs the armed deletion, then reloads and disarms. On
// failure the prompt stays armed so the user can retry or cancel.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	id := c.State().PendingDelete
	if id == "" {
		return nil
	}

	if err := c.svc.Delete(ctx, id); err != nil {
		c.log.Warn("delete failed", "id", id, "error", err)
		c.notify.Error(err.Error())
		return err
	}

	c.notify.Success("Product deleted successfully")
	c.transition(func(s *State) { s.PendingDelete = "" })
	c.Load(ctx)
	return nil
}
