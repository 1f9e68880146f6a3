package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Counts struct {
	Spots       int
	Services    int
	Instructors int
}

// Dashboard loads the three collections for the home view.
type Dashboard struct {
	spots       *SpotService
	services    *ServiceService
	instructors *InstructorService
}

func NewDashboard(sp *SpotService, sv *ServiceService, in *InstructorService) *Dashboard {
	return &Dashboard{spots: sp, services: sv, instructors: in}
}

func (d *Dashboard) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := d.spots.Spots.Value(gctx)
		c.Spots = len(items)
		return err
	})
	g.Go(func() error {
		items, err := d.services.Services.Value(gctx)
		c.Services = len(items)
		return err
	})
	g.Go(func() error {
		items, err := d.instructors.Instructors.Value(gctx)
		c.Instructors = len(items)
		return err
	})
	return c, g.Wait()
}
