// Package console is the interactive front end of the admin: it routes
// paths to views, reads commands and renders screens as text.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/views"
)

type Deps struct {
	Spots       *app.SpotService
	Services    *app.ServiceService
	Instructors *app.InstructorService
	Photos      *app.PhotoService
	Dashboard   *app.Dashboard
	Previews    domain.PreviewStore
	MaxPhotos   int
	Constraints domain.PhotoConstraints
}

// Console implements views.Navigator and views.Alerter. Navigation requested
// while a command runs is applied once the command returns.
type Console struct {
	deps Deps
	out  io.Writer

	path   string
	screen screen
	next   string
}

func New(d Deps, out io.Writer) *Console {
	return &Console{deps: d, out: out}
}

func (c *Console) Navigate(path string) { c.next = path }

func (c *Console) Alert(msg string) { fmt.Fprintf(c.out, "! %s\n", msg) }

func (c *Console) Path() string { return c.path }

// Run reads commands from in until quit, EOF or ctx is done. The current
// view is torn down on exit.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	defer c.leave(context.WithoutCancel(ctx))

	done := make(chan struct{})
	defer close(done)
	lines, errc := scan(in, done)
	c.goTo(ctx, "/")
	for {
		fmt.Fprintf(c.out, "%s> ", c.path)
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-errc
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		if quit := c.exec(ctx, line); quit {
			return nil
		}
		for c.next != "" {
			p := c.next
			c.next = ""
			c.goTo(ctx, p)
		}
	}
}

// scan feeds lines from in; a read blocked on a terminal must not hold up
// cancellation.
func scan(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines, errc := make(chan string), make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

func (c *Console) goTo(ctx context.Context, path string) {
	path = normalizePath(path)
	s, err := c.route(path)
	if err != nil {
		c.Alert(err.Error())
		return
	}
	c.leave(ctx)
	c.path, c.screen = path, s
	log.Debug().Str("path", path).Msg("navigate")

	if o, ok := s.(opener); ok {
		// a failed open has already alerted and asked to navigate away
		if err := o.open(ctx); err != nil {
			return
		}
	}
	if err := s.render(ctx, c.out); err != nil {
		c.Alert("Erreur lors du chargement : " + err.Error())
	}
}

func (c *Console) leave(ctx context.Context) {
	if c.screen != nil {
		c.screen.close(ctx)
		c.screen = nil
	}
}

func normalizePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	switch p {
	case "/spots":
		return "/spots/list"
	case "/services":
		return "/services/list"
	case "/instructors":
		return "/instructors/list"
	}
	return p
}

func (c *Console) route(path string) (screen, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	d := c.deps
	switch {
	case path == "/":
		return &dashboardScreen{d: d.Dashboard}, nil
	case len(parts) == 2 && parts[1] == "list":
		switch parts[0] {
		case "spots":
			return &spotListScreen{l: views.NewSpotList(d.Spots, c)}, nil
		case "services":
			return &serviceListScreen{l: views.NewServiceList(d.Services, c)}, nil
		case "instructors":
			return &instructorListScreen{l: views.NewInstructorList(d.Instructors)}, nil
		}
	case len(parts) == 2 && parts[1] == "new":
		return c.formFor(parts[0], 0)
	case len(parts) == 3 && parts[2] == "edit" && parts[0] != "instructors":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("Identifiant invalide : %s", parts[1])
		}
		return c.formFor(parts[0], id)
	}
	return nil, fmt.Errorf("Page introuvable : %s", path)
}

func (c *Console) formFor(entity string, id int64) (screen, error) {
	d := c.deps
	switch entity {
	case "spots":
		title := "Nouveau spot"
		if id != 0 {
			title = fmt.Sprintf("Modifier le spot #%d", id)
		}
		return &formScreen{title: title, f: views.NewSpotForm(views.SpotDeps{
			Spots:       d.Spots,
			Photos:      d.Photos,
			Previews:    d.Previews,
			MaxPhotos:   d.MaxPhotos,
			Constraints: d.Constraints,
		}, id, c, c)}, nil
	case "services":
		title := "Nouvelle prestation"
		if id != 0 {
			title = fmt.Sprintf("Modifier la prestation #%d", id)
		}
		return &formScreen{title: title, f: views.NewServiceForm(d.Services, id, c, c)}, nil
	case "instructors":
		return &formScreen{title: "Inviter un professeur", f: views.NewInstructorForm(d.Instructors, c, c)}, nil
	}
	return nil, fmt.Errorf("Page introuvable : /%s", entity)
}
