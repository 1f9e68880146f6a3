package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/format"
	"skate_admin/internal/forms"
	"skate_admin/internal/views"
)

type screen interface {
	render(ctx context.Context, w io.Writer) error
	close(ctx context.Context)
}

type opener interface {
	open(ctx context.Context) error
}

// formOps is what every entity form view exposes.
type formOps interface {
	Open(ctx context.Context) error
	Submit() bool
	Confirm(ctx context.Context) error
	Cancel() error
	Close(ctx context.Context)
	EditMode() bool
	Ready() bool
	Inputs() *forms.Form
	Confirmation() *views.Modal
}

// ---- dashboard ----

type dashboardScreen struct{ d *app.Dashboard }

func (s *dashboardScreen) render(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "== Tableau de bord ==")
	if s.d == nil {
		return nil
	}
	c, err := s.d.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Spots        %d  (go /spots)\n", c.Spots)
	fmt.Fprintf(w, "Prestations  %d  (go /services)\n", c.Services)
	fmt.Fprintf(w, "Professeurs  %d  (go /instructors)\n", c.Instructors)
	return nil
}

func (s *dashboardScreen) close(context.Context) {}

// ---- lists ----

type spotListScreen struct{ l *views.ListView[domain.Spot] }

func (s *spotListScreen) render(ctx context.Context, w io.Writer) error {
	items, err := s.l.Items(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "== Spots (%d) ==\n", len(items))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tVILLE\tCP\tTYPE\tSTATUT")
	for _, sp := range items {
		kind := "Extérieur"
		if sp.IsIndoor {
			kind = "Intérieur"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", sp.ID, sp.Name, sp.City, sp.ZipCode, kind, active(sp.IsActive))
	}
	_ = tw.Flush()
	renderModal(w, &s.l.Modal)
	return nil
}

func (s *spotListScreen) close(context.Context) {}

type serviceListScreen struct{ l *views.ListView[domain.Service] }

func (s *serviceListScreen) render(ctx context.Context, w io.Writer) error {
	items, err := s.l.Items(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "== Prestations (%d) ==\n", len(items))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tTYPE\tDURÉE\tPRIX\tSTATUT")
	for _, sv := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", sv.ID, sv.Name, sv.Type.Label(),
			format.Duration(sv.DurationMinutes), format.Price(sv.BasePriceCents), active(sv.IsActive))
	}
	_ = tw.Flush()
	renderModal(w, &s.l.Modal)
	return nil
}

func (s *serviceListScreen) close(context.Context) {}

type instructorListScreen struct{ l *views.InstructorList }

func (s *instructorListScreen) render(ctx context.Context, w io.Writer) error {
	items, err := s.l.Items(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "== Professeurs (%d) ==\n", len(items))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tEMAIL\tTÉLÉPHONE\tSPÉCIALITÉ\tSTATUT\tACTIONS")
	for _, in := range items {
		spec := "-"
		if in.Specialty != nil {
			spec = in.Specialty.Label()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", in.ID, in.FullName(), in.Email,
			format.Phone(in.Phone), spec, in.Status.Label(), strings.Join(actions(in), " "))
	}
	_ = tw.Flush()
	renderModal(w, &s.l.Modal)
	return nil
}

func (s *instructorListScreen) close(context.Context) {}

func actions(in domain.Instructor) []string {
	var out []string
	if in.CanResendInvite() {
		out = append(out, "resend")
	}
	if in.CanSuspend() {
		out = append(out, "suspend")
	}
	if in.CanReactivate() {
		out = append(out, "reactivate")
	}
	return out
}

func active(b bool) string {
	if b {
		return "Actif"
	}
	return "Inactif"
}

// ---- forms ----

type formScreen struct {
	title string
	f     formOps
}

func (s *formScreen) open(ctx context.Context) error { return s.f.Open(ctx) }

func (s *formScreen) close(ctx context.Context) { s.f.Close(ctx) }

func (s *formScreen) render(ctx context.Context, w io.Writer) error {
	fmt.Fprintf(w, "== %s ==\n", s.title)
	form := s.f.Inputs()
	if !s.f.Ready() {
		fmt.Fprintln(w, "(chargement...)")
		return nil
	}
	visible := form.VisibleErrors()
	for _, fd := range form.Schema().Fields {
		mark := ""
		if fd.Required() {
			mark = "*"
		}
		fmt.Fprintf(w, "  %-18s %-28s = %q", fd.Name+mark, fd.Label, form.Value(fd.Name))
		if label := optionLabel(fd, form.Value(fd.Name)); label != "" {
			fmt.Fprintf(w, " (%s)", label)
		}
		if fd.Help != "" {
			fmt.Fprintf(w, "  [%s]", fd.Help)
		}
		fmt.Fprintln(w)
		if msg, ok := visible[fd.Name]; ok {
			fmt.Fprintf(w, "      ! %s\n", msg)
		}
		if len(fd.Options) > 0 && form.Value(fd.Name) == "" {
			fmt.Fprintf(w, "      choix : %s\n", optionList(fd.Options))
		}
	}
	if banner, lines := form.Summary(); banner != "" {
		fmt.Fprintf(w, "! %s\n", banner)
		for _, l := range lines {
			fmt.Fprintf(w, "  - %s\n", l)
		}
	}

	switch f := s.f.(type) {
	case *views.ServiceForm:
		renderServiceHelp(w, f)
	case *views.InstructorForm:
		if label, desc := f.SpecialtyHelp(); label != "" {
			fmt.Fprintf(w, "  %s : %s\n", label, desc)
		}
	case *views.SpotForm:
		renderPhotos(w, f.Uploader)
	}
	renderModal(w, s.f.Confirmation())
	return nil
}

func optionLabel(fd forms.Field, v string) string {
	for _, o := range fd.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return ""
}

func optionList(opts []forms.Option) string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value+" ("+o.Label+")")
	}
	return strings.Join(out, ", ")
}

func renderServiceHelp(w io.Writer, f *views.ServiceForm) {
	if h := f.DurationHelp(); h != "" {
		fmt.Fprintf(w, "  %s\n", h)
	}
	if h := f.PriceHelp(); h != "" {
		fmt.Fprintf(w, "  %s\n", h)
	}
	if pph := f.PricePerHour(); pph > 0 {
		fmt.Fprintf(w, "  Prix par heure: %s\n", format.Price(pph))
	}
	quick := make([]string, 0, len(views.QuickPrices))
	for _, q := range views.QuickPrices {
		quick = append(quick, strconv.FormatInt(q.Cents, 10)+"="+q.Label)
	}
	fmt.Fprintf(w, "  prix rapides : %s\n", strings.Join(quick, ", "))
}

func renderPhotos(w io.Writer, u *views.PhotoUploader) {
	existing, pending := u.Existing(), u.Pending()
	c := u.Constraints()
	fmt.Fprintf(w, "  Photos (%d/%d) : formats %s, %g MB max, %dx%dpx min\n",
		u.Total(), u.Total()+u.Remaining(), strings.Join(c.AcceptedFormats, ", "), c.MaxSizeMB, c.MinWidth, c.MinHeight)
	for _, p := range existing {
		fmt.Fprintf(w, "    #%d %s %s\n", p.ID, p.OriginalFileName, p.URL)
	}
	for i, p := range pending {
		status := "ok"
		if !p.IsValid {
			status = p.ErrorMessage
		}
		fmt.Fprintf(w, "    [%d] %s (%s) %s : %s\n", i+1, p.File.Name, app.FormatFileSize(p.File.Size()), p.Preview.URL, status)
	}
	if u.Uploading() {
		fmt.Fprintln(w, "    upload en cours...")
	} else if u.Progress() == 100 {
		fmt.Fprintln(w, "    upload terminé")
	}
}

func renderModal(w io.Writer, m *views.Modal) {
	if !m.IsOpen() {
		return
	}
	c := m.Content()
	fmt.Fprintf(w, "+-- %s --\n| %s\n", c.Title, c.Message)
	if m.IsLoading() {
		fmt.Fprintln(w, "| ...")
		return
	}
	fmt.Fprintf(w, "+-- confirm: %s | cancel: %s\n", c.ConfirmText, c.CancelText)
}
