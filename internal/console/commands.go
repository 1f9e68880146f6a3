package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/domain"
	"skate_admin/internal/views"
)

var errUsage = errors.New("usage")

const helpText = `Commandes :
  go <chemin>            /, /spots, /spots/new, /spots/<id>/edit, /services, /services/new,
                         /services/<id>/edit, /instructors, /instructors/new
  show                   réaffiche l'écran
  reload                 recharge la liste
  set <champ> <valeur>   saisit un champ du formulaire
  price <centimes>       prix rapide (prestations)
  reset                  valeurs par défaut (prestations)
  submit                 valide le formulaire et demande confirmation
  confirm | cancel       répond à la confirmation
  delete <id>            supprime un spot ou une prestation
  suspend <id> | reactivate <id> | resend <id>
  photo add <fichier>... | photo rm <n> | photo del <id> | photo upload
  quit`

// exec runs one command line against the current screen. It reports whether
// the session should end.
func (c *Console) exec(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	cmd, args := strings.ToLower(args[0]), args[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
	case "go":
		if len(args) != 1 {
			err = errUsage
			break
		}
		c.Navigate(args[0])
	case "show":
		err = c.show(ctx)
	case "reload":
		err = c.reload(ctx)
	case "set":
		err = c.set(ctx, args)
	case "price":
		err = c.price(ctx, args)
	case "reset":
		err = c.reset(ctx)
	case "submit":
		err = c.submit(ctx)
	case "confirm":
		err = c.confirm(ctx)
	case "cancel":
		err = c.cancel(ctx)
	case "delete":
		err = c.remove(ctx, args)
	case "suspend", "reactivate", "resend":
		err = c.transition(ctx, cmd, args)
	case "photo":
		err = c.photo(ctx, args)
	default:
		err = fmt.Errorf("commande inconnue %q (help pour la liste)", cmd)
	}

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(c.out, "usage: %s\n", usageOf(cmd))
	case err != nil:
		fmt.Fprintf(c.out, "erreur: %v\n", err)
	}
	return false
}

func usageOf(cmd string) string {
	for _, l := range strings.Split(helpText, "\n") {
		if f := strings.Fields(l); len(f) > 0 && f[0] == cmd {
			return strings.TrimSpace(l)
		}
	}
	return cmd
}

var errNotHere = errors.New("commande indisponible sur cet écran")

func (c *Console) show(ctx context.Context) error {
	if c.screen == nil {
		return errNotHere
	}
	return c.screen.render(ctx, c.out)
}

func (c *Console) reload(ctx context.Context) error {
	var err error
	switch s := c.screen.(type) {
	case *spotListScreen:
		_, err = s.l.Reload(ctx)
	case *serviceListScreen:
		_, err = s.l.Reload(ctx)
	case *instructorListScreen:
		_, err = s.l.Reload(ctx)
	case *dashboardScreen:
	default:
		return errNotHere
	}
	if err != nil {
		return err
	}
	return c.show(ctx)
}

func (c *Console) form() (*formScreen, error) {
	fs, ok := c.screen.(*formScreen)
	if !ok {
		return nil, errNotHere
	}
	return fs, nil
}

func (c *Console) set(ctx context.Context, args []string) error {
	fs, err := c.form()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return errUsage
	}
	if err := fs.f.Inputs().Set(args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	return c.show(ctx)
}

func (c *Console) price(ctx context.Context, args []string) error {
	fs, err := c.form()
	if err != nil {
		return err
	}
	sf, ok := fs.f.(*views.ServiceForm)
	if !ok {
		return errNotHere
	}
	if len(args) != 1 {
		return errUsage
	}
	cents, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errUsage
	}
	if err := sf.SetQuickPrice(cents); err != nil {
		return err
	}
	return c.show(ctx)
}

func (c *Console) reset(ctx context.Context) error {
	fs, err := c.form()
	if err != nil {
		return err
	}
	sf, ok := fs.f.(*views.ServiceForm)
	if !ok || sf.EditMode() {
		return errNotHere
	}
	sf.ResetDefaults()
	return c.show(ctx)
}

func (c *Console) submit(ctx context.Context) error {
	fs, err := c.form()
	if err != nil {
		return err
	}
	fs.f.Submit()
	return c.show(ctx)
}

func (c *Console) confirm(ctx context.Context) error {
	switch s := c.screen.(type) {
	case *formScreen:
		if !s.f.Confirmation().IsOpen() {
			return views.ErrModalClosed
		}
		// failures were alerted by the view
		if err := s.f.Confirm(ctx); err != nil && !errors.Is(err, views.ErrModalBusy) {
			return c.show(ctx)
		}
		return nil
	case *spotListScreen:
		if err := s.l.ConfirmDelete(ctx); err == nil {
			fmt.Fprintln(c.out, "Supprimé.")
		}
		return c.show(ctx)
	case *serviceListScreen:
		if err := s.l.ConfirmDelete(ctx); err == nil {
			fmt.Fprintln(c.out, "Supprimée.")
		}
		return c.show(ctx)
	case *instructorListScreen:
		ok, err := s.l.Confirm(ctx)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(c.out, "Compte mis à jour.")
		}
		return c.show(ctx)
	}
	return errNotHere
}

func (c *Console) cancel(ctx context.Context) error {
	var err error
	switch s := c.screen.(type) {
	case *formScreen:
		err = s.f.Cancel()
	case *spotListScreen:
		err = s.l.CloseDelete()
	case *serviceListScreen:
		err = s.l.CloseDelete()
	case *instructorListScreen:
		err = s.l.Close()
	default:
		return errNotHere
	}
	if err != nil {
		return err
	}
	return c.show(ctx)
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func (c *Console) remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	switch s := c.screen.(type) {
	case *spotListScreen:
		sp, ok, err := s.l.Resource.Find(ctx, func(sp domain.Spot) bool { return sp.ID == id })
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("spot #%d introuvable", id)
		}
		err = s.l.OpenDelete(id, sp.Name)
		if err != nil {
			return err
		}
	case *serviceListScreen:
		sv, ok, err := s.l.Resource.Find(ctx, func(sv domain.Service) bool { return sv.ID == id })
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("prestation #%d introuvable", id)
		}
		if err := s.l.OpenDelete(id, sv.Name); err != nil {
			return err
		}
	default:
		return errNotHere
	}
	return c.show(ctx)
}

func (c *Console) transition(ctx context.Context, cmd string, args []string) error {
	s, ok := c.screen.(*instructorListScreen)
	if !ok {
		return errNotHere
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	in, found, err := s.l.Resource.Find(ctx, func(in domain.Instructor) bool { return in.ID == id })
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("professeur #%d introuvable", id)
	}

	switch cmd {
	case "resend":
		if !in.CanResendInvite() {
			return fmt.Errorf("%s n'est pas en attente d'invitation", in.FullName())
		}
		if s.l.ResendInvite(ctx, id) {
			fmt.Fprintf(c.out, "Invitation renvoyée à %s.\n", in.Email)
		}
		return nil
	case "suspend":
		if !in.CanSuspend() {
			return fmt.Errorf("%s n'est pas actif", in.FullName())
		}
		err = s.l.OpenSuspend(id, in.FullName())
	case "reactivate":
		if !in.CanReactivate() {
			return fmt.Errorf("%s n'est pas suspendu", in.FullName())
		}
		err = s.l.OpenReactivate(id, in.FullName())
	}
	if err != nil {
		return err
	}
	return c.show(ctx)
}

func (c *Console) photo(ctx context.Context, args []string) error {
	fs, err := c.form()
	if err != nil {
		return err
	}
	sf, ok := fs.f.(*views.SpotForm)
	if !ok {
		return errNotHere
	}
	if len(args) == 0 {
		return errUsage
	}
	u := sf.Uploader

	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		if len(rest) == 0 {
			return errUsage
		}
		files := make([]domain.File, 0, len(rest))
		for _, p := range rest {
			f, err := loadFile(p)
			if err != nil {
				return err
			}
			files = append(files, f)
		}
		if _, err := u.Add(ctx, files); err != nil {
			log.Error().Err(err).Msg("photo add failed")
			return err
		}
	case "rm":
		if len(rest) != 1 {
			return errUsage
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return errUsage
		}
		if err := u.Remove(ctx, n-1); err != nil {
			return err
		}
	case "del":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		// alerted by the uploader
		_ = u.DeleteExisting(ctx, id)
	case "upload":
		if _, err := u.Upload(ctx); err != nil {
			log.Debug().Err(err).Msg("photo upload incomplete")
		}
	default:
		return errUsage
	}
	return c.show(ctx)
}
