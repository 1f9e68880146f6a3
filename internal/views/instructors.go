package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"skate_admin/internal/app"
	"skate_admin/internal/domain"
	"skate_admin/internal/forms"
)

const InstructorsPath = "/instructors/list"

// InstructorForm invites a new instructor. There is no edit mode: the
// instructor completes the profile after activation.
type InstructorForm struct {
	*FormView[domain.Instructor]
}

func NewInstructorForm(s *app.InstructorService, nav Navigator, alert Alerter) *InstructorForm {
	return &InstructorForm{NewFormView(FormSpec[domain.Instructor]{
		Entity:   "Professeur",
		ListPath: InstructorsPath,
		Schema:   forms.InstructorSchema(),
		Resource: s.Instructors,
		Save: func(ctx context.Context, _ int64, f *forms.Form) (int64, error) {
			in, err := s.Invite(ctx, instructorRequest(f))
			return in.ID, err
		},
		SaveError: func(err error) string {
			if errors.Is(err, domain.ErrConflict) {
				return "Cette adresse email est déjà utilisée par un autre compte."
			}
			return "Erreur lors de l'envoi de l'invitation. Veuillez réessayer."
		},
		Confirm: func(_ bool, f *forms.Form) ModalContent {
			return ModalContent{
				Type:        ModalInfo,
				Title:       "Confirmer l'invitation",
				Message:     fmt.Sprintf("Une invitation sera envoyée à %s %s (%s).", f.String("firstname"), f.String("lastname"), f.String("email")),
				ConfirmText: "Envoyer l'invitation",
			}
		},
	}, 0, nav, alert)}
}

// SpecialtyHelp returns the label and description of the chosen specialty.
func (f *InstructorForm) SpecialtyHelp() (string, string) {
	s := domain.SkateSpecialty(f.Form.String("specialty"))
	if s == "" {
		return "", ""
	}
	return s.Label(), domain.SkateSpecialtyDescription[s]
}

// Empty optional fields are sent as null; so is zero years of experience.
func instructorRequest(f *forms.Form) domain.InstructorCreateRequest {
	req := domain.InstructorCreateRequest{
		Firstname: f.String("firstname"),
		Lastname:  f.String("lastname"),
		Email:     f.String("email"),
		Phone:     f.OptString("phone"),
	}
	if s := f.OptString("specialty"); s != nil {
		sp := domain.SkateSpecialty(*s)
		req.Specialty = &sp
	}
	if y := f.OptInt("yearsOfExperience"); y != nil && *y != 0 {
		req.YearsOfExperience = y
	}
	return req
}

// InstructorList offers suspend and reactivate behind a modal and resends
// invitations directly. Failures of these transitions are logged only and
// never alert.
type InstructorList struct {
	Resource *app.Resource[domain.Instructor]
	Modal    Modal

	svc    *app.InstructorService
	action domain.InstructorAction
}

func NewInstructorList(s *app.InstructorService) *InstructorList {
	return &InstructorList{Resource: s.Instructors, svc: s}
}

func (l *InstructorList) Items(ctx context.Context) ([]domain.Instructor, error) {
	return l.Resource.Value(ctx)
}

func (l *InstructorList) Reload(ctx context.Context) ([]domain.Instructor, error) {
	return l.Resource.Reload(ctx)
}

func (l *InstructorList) OpenSuspend(id int64, name string) error {
	if err := l.Modal.Open(ModalContent{
		Type:        ModalWarning,
		Title:       "Suspendre le compte",
		Message:     fmt.Sprintf("Le compte de %s sera suspendu. Il ne pourra plus se connecter.", name),
		ConfirmText: "Suspendre",
		Subject:     Subject{ID: id, Name: name},
	}); err != nil {
		return err
	}
	l.action = domain.ActionSuspend
	return nil
}

func (l *InstructorList) OpenReactivate(id int64, name string) error {
	if err := l.Modal.Open(ModalContent{
		Type:        ModalInfo,
		Title:       "Réactiver le compte",
		Message:     fmt.Sprintf("Le compte de %s sera réactivé.", name),
		ConfirmText: "Réactiver",
		Subject:     Subject{ID: id, Name: name},
	}); err != nil {
		return err
	}
	l.action = domain.ActionReactivate
	return nil
}

// Confirm runs the pending transition. ok reports whether it succeeded; a
// failure is logged and the modal closes anyway.
func (l *InstructorList) Confirm(ctx context.Context) (ok bool, err error) {
	id, action := l.Modal.Content().Subject.ID, l.action
	err = l.Modal.Confirm(ctx, func(ctx context.Context) error {
		ok = l.transition(ctx, id, action)
		return nil
	})
	return ok, err
}

func (l *InstructorList) Close() error { return l.Modal.Close() }

func (l *InstructorList) ResendInvite(ctx context.Context, id int64) bool {
	return l.transition(ctx, id, domain.ActionResendInvitation)
}

func (l *InstructorList) transition(ctx context.Context, id int64, action domain.InstructorAction) bool {
	var err error
	switch action {
	case domain.ActionSuspend:
		err = l.svc.Suspend(ctx, id)
	case domain.ActionReactivate:
		err = l.svc.Reactivate(ctx, id)
	case domain.ActionResendInvitation:
		err = l.svc.ResendInvitation(ctx, id)
	default:
		err = fmt.Errorf("unknown instructor action %q", action)
	}
	if err != nil {
		log.Error().Err(err).Int64("instructor_id", id).Str("action", string(action)).Msg("instructor transition failed")
		return false
	}
	return true
}
