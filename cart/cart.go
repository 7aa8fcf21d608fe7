package cart

import (
	"context"
	"errors"
	"log"
	"sort"

	"warungku/backend"
	"warungku/models"
)

// ErrNotLoggedIn is returned when a mutation is attempted without a
// credential. Handlers translate it into a login redirect instead of letting
// the call fail silently.
var ErrNotLoggedIn = errors.New("cart: not logged in")

// Strategy names how a mutation reconciles the local mirror with the server.
// The catalog-browsing view patches the mirror optimistically on a successful
// write; the cart page and modal re-fetch the authoritative cart instead.
// Both behaviors are deliberate and selected per call site.
type Strategy int

const (
	AuthoritativeRefetch Strategy = iota
	OptimisticLocalPatch
)

// Coordinator keeps a local quantity mirror of the remote cart. The mirror
// is transient and fully re-fetchable; totals are derived fresh on every
// render, never cached.
type Coordinator struct {
	api      *backend.Client
	token    string
	strategy Strategy
	lines    map[int]models.CartLine
}

func New(api *backend.Client, token string, strategy Strategy) *Coordinator {
	return &Coordinator{
		api:      api,
		token:    token,
		strategy: strategy,
		lines:    make(map[int]models.CartLine),
	}
}

// Fetch replaces the local mirror entirely with the server's cart. It never
// merges.
func (c *Coordinator) Fetch(ctx context.Context) error {
	lines, err := c.api.Cart(ctx, c.token)
	if err != nil {
		return err
	}
	c.lines = make(map[int]models.CartLine, len(lines))
	for _, ln := range lines {
		c.lines[ln.MenuID] = ln
	}
	return nil
}

// SetQuantity upserts one line. A quantity <= 0 must never reach the backend
// as an upsert; it becomes a remove call. Reconciliation follows the
// coordinator's strategy.
func (c *Coordinator) SetQuantity(ctx context.Context, menuID, quantity int) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}

	if quantity <= 0 {
		if err := c.Remove(ctx, menuID); err != nil {
			return err
		}
	} else {
		if err := c.api.UpsertCartLine(ctx, c.token, menuID, quantity); err != nil {
			return err
		}
		switch c.strategy {
		case OptimisticLocalPatch:
			ln := c.lines[menuID]
			ln.MenuID = menuID
			ln.Quantity = quantity
			c.lines[menuID] = ln
		}
	}

	if c.strategy == AuthoritativeRefetch {
		return c.Fetch(ctx)
	}
	return nil
}

// Remove deletes one line remotely and drops the local entry on success.
func (c *Coordinator) Remove(ctx context.Context, menuID int) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	if err := c.api.RemoveCartLine(ctx, c.token, menuID); err != nil {
		return err
	}
	delete(c.lines, menuID)
	return nil
}

// Clear empties the mirror without a remote call. Checkout uses it after the
// server acknowledged the order; the backend has already pruned the cart.
func (c *Coordinator) Clear() {
	c.lines = make(map[int]models.CartLine)
}

// Seed replaces the mirror from an already-fetched snapshot. The catalog
// handler uses it so one /cart fetch serves both the mirror and the render.
func (c *Coordinator) Seed(lines []models.CartLine) {
	c.lines = make(map[int]models.CartLine, len(lines))
	for _, ln := range lines {
		c.lines[ln.MenuID] = ln
	}
}

// Quantity returns the mirrored quantity for one menu item, zero when absent.
func (c *Coordinator) Quantity(menuID int) int {
	return c.lines[menuID].Quantity
}

// Lines returns the mirror ordered by menu id for stable rendering.
func (c *Coordinator) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.lines))
	for _, ln := range c.lines {
		out = append(out, ln)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuID < out[j].MenuID })
	return out
}

// TotalItems sums the mirrored quantities.
func (c *Coordinator) TotalItems() int {
	total := 0
	for _, ln := range c.lines {
		total += ln.Quantity
	}
	return total
}

// TotalPrice derives the display total from the mirror and a separately
// fetched menu price table. Items missing from the table are skipped rather
// than priced from a stale subtotal.
func (c *Coordinator) TotalPrice(prices map[int]int) int {
	total := 0
	for id, ln := range c.lines {
		unit, ok := prices[id]
		if !ok {
			log.Printf("cart: menu %d missing from price table, skipped in total", id)
			continue
		}
		total += unit * ln.Quantity
	}
	return total
}

// PriceTable flattens a fetched menu into the unit-price lookup the totals
// use.
func PriceTable(items []models.MenuItem) map[int]int {
	prices := make(map[int]int, len(items))
	for _, it := range items {
		prices[it.MenuID] = it.Price
	}
	return prices
}
