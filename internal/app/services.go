package app

import (
	"context"

	"skate_admin/internal/domain"
)

// ServiceService manages prestations.
type ServiceService struct {
	api      domain.ServicesAPI
	Services *Resource[domain.Service]
}

func NewServiceService(api domain.ServicesAPI) *ServiceService {
	return &ServiceService{api: api, Services: NewResource("services", api.ListServices)}
}

func (s *ServiceService) Create(ctx context.Context, req domain.ServiceRequest) (domain.Service, error) {
	sv, err := s.api.CreateService(ctx, req)
	if err != nil {
		return domain.Service{}, err
	}
	s.Services.refresh(ctx, "create")
	return sv, nil
}

func (s *ServiceService) Update(ctx context.Context, id int64, req domain.ServiceRequest) (domain.Service, error) {
	sv, err := s.api.UpdateService(ctx, id, req)
	if err != nil {
		return domain.Service{}, err
	}
	s.Services.refresh(ctx, "update")
	return sv, nil
}

func (s *ServiceService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteService(ctx, id); err != nil {
		return err
	}
	s.Services.refresh(ctx, "delete")
	return nil
}
