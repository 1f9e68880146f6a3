package app

import (
	"context"

	"skate_admin/internal/domain"
)

type SpotService struct {
	api   domain.SpotsAPI
	Spots *Resource[domain.Spot]
}

func NewSpotService(api domain.SpotsAPI) *SpotService {
	return &SpotService{api: api, Spots: NewResource("spots", api.ListSpots)}
}

func (s *SpotService) Create(ctx context.Context, req domain.SpotRequest) (domain.Spot, error) {
	sp, err := s.api.CreateSpot(ctx, req)
	if err != nil {
		return domain.Spot{}, err
	}
	s.Spots.refresh(ctx, "create")
	return sp, nil
}

func (s *SpotService) Update(ctx context.Context, id int64, req domain.SpotRequest) (domain.Spot, error) {
	sp, err := s.api.UpdateSpot(ctx, id, req)
	if err != nil {
		return domain.Spot{}, err
	}
	s.Spots.refresh(ctx, "update")
	return sp, nil
}

func (s *SpotService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteSpot(ctx, id); err != nil {
		return err
	}
	s.Spots.refresh(ctx, "delete")
	return nil
}
