package client

import (
	"context"

	"feedback-board-server/models"
)

// Dashboard mirrors the admin page's behavior: it holds a transient cached
// copy of the last fetched list and re-fetches after every mutation rather
// than patching local state.
type Dashboard struct {
	c      *Client
	Filter Filter
	Items  []models.Feedback
}

func (c *Client) Dashboard(filter Filter) *Dashboard {
	return &Dashboard{c: c, Filter: filter}
}

// Refresh replaces the cached list with the server's current view.
func (d *Dashboard) Refresh(ctx context.Context) error {
	items, err := d.c.ListFeedback(ctx, d.Filter)
	if err != nil {
		return err
	}
	d.Items = items
	return nil
}

// SetStatus transitions a record's status and re-fetches.
func (d *Dashboard) SetStatus(ctx context.Context, id uint, status string) error {
	if err := d.c.UpdateFeedback(ctx, id, &status, nil); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Respond attaches an admin response and marks the record reviewed.
func (d *Dashboard) Respond(ctx context.Context, id uint, response string) error {
	status := models.StatusReviewed
	if err := d.c.UpdateFeedback(ctx, id, &status, &response); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Delete removes a record permanently and re-fetches.
func (d *Dashboard) Delete(ctx context.Context, id uint) error {
	if err := d.c.DeleteFeedback(ctx, id); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Stats summarizes the cached list by status, the way the dashboard header
// renders its counters.
func (d *Dashboard) Stats() map[string]int {
	stats := map[string]int{
		models.StatusOpen:     0,
		models.StatusReviewed: 0,
		models.StatusClosed:   0,
	}
	for _, item := range d.Items {
		stats[item.Status]++
	}
	return stats
}
