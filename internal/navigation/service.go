package navigation

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
)

type repository interface {
	LatestActiveLogo(ctx context.Context) (*models.CompanyLogo, error)
	ActiveNavOptions(ctx context.Context, limit int) ([]models.NavOption, error)
	ActiveNavButtons(ctx context.Context, limit int) ([]models.NavButton, error)
	LatestActiveHero(ctx context.Context) (*models.HeroSection, error)
}

// Service serves the storefront chrome: logo, nav links and hero banner.
type Service interface {
	GetNavigation(ctx context.Context) (*Bundle, error)
	GetHeroSection(ctx context.Context) (*HeroPayload, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("navigation repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetNavigation(ctx context.Context) (*Bundle, error) {
	logo, err := s.repo.LatestActiveLogo(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load logo")
	}
	options, err := s.repo.ActiveNavOptions(ctx, maxNavOptions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load nav options")
	}
	buttons, err := s.repo.ActiveNavButtons(ctx, maxNavButtons)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load nav buttons")
	}

	bundle := &Bundle{
		Logo:       ToLogoDTO(logo),
		NavOptions: make([]NavOptionDTO, 0, len(options)),
		NavButtons: make([]NavButtonDTO, 0, len(buttons)),
	}
	for _, o := range options {
		bundle.NavOptions = append(bundle.NavOptions, ToNavOptionDTO(o))
	}
	for _, b := range buttons {
		bundle.NavButtons = append(bundle.NavButtons, ToNavButtonDTO(b))
	}
	return bundle, nil
}

func (s *service) GetHeroSection(ctx context.Context) (*HeroPayload, error) {
	hero, err := s.repo.LatestActiveHero(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load hero section")
	}
	return &HeroPayload{HeroSection: ToHeroDTO(hero)}, nil
}
