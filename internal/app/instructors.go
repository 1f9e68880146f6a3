package app

import (
	"context"

	"skate_admin/internal/domain"
)

type InstructorService struct {
	api         domain.InstructorsAPI
	Instructors *Resource[domain.Instructor]
}

func NewInstructorService(api domain.InstructorsAPI) *InstructorService {
	return &InstructorService{api: api, Instructors: NewResource("instructors", api.ListInstructors)}
}

// Invite creates the instructor account; the backend sends the invitation mail.
func (s *InstructorService) Invite(ctx context.Context, req domain.InstructorCreateRequest) (domain.Instructor, error) {
	in, err := s.api.CreateInstructor(ctx, req)
	if err != nil {
		return domain.Instructor{}, err
	}
	s.Instructors.refresh(ctx, "create")
	return in, nil
}

func (s *InstructorService) ResendInvitation(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionResendInvitation)
}

func (s *InstructorService) Suspend(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionSuspend)
}

func (s *InstructorService) Reactivate(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.ActionReactivate)
}

func (s *InstructorService) transition(ctx context.Context, id int64, action domain.InstructorAction) error {
	if err := s.api.InstructorAction(ctx, id, action); err != nil {
		return err
	}
	s.Instructors.refresh(ctx, string(action))
	return nil
}
