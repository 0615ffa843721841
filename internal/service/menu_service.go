package service

import (
	"context"
	"log"

	"savoria-backend/internal/domain"
)

type MenuService struct {
	repo  MenuRepository
	cache MenuCache
}

func NewMenuService(repo MenuRepository, cache MenuCache) *MenuService {
	return &MenuService{repo: repo, cache: cache}
}

// List returns menu items matching the filter. Cached listings are served
// for five minutes; any cache failure falls through to Postgres.
func (s *MenuService) List(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	var key string
	if s.cache != nil {
		key = s.cache.MenuKey(filter)
		var cached []domain.MenuItem
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("menu cache read error: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	items, err := s.repo.ListMenuItems(filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, MenuTTL); err != nil {
			log.Printf("menu cache write error: %v", err)
		}
	}
	return items, nil
}

func (s *MenuService) Get(id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(id)
}

func (s *MenuService) Categories(ctx context.Context) ([]domain.MenuCategory, error) {
	if s.cache != nil {
		var cached []domain.MenuCategory
		hit, err := s.cache.Get(ctx, CategoriesKey, &cached)
		if err != nil {
			log.Printf("categories cache read error: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, CategoriesKey, categories, CategoriesTTL); err != nil {
			log.Printf("categories cache write error: %v", err)
		}
	}
	return categories, nil
}

var _ MenuServiceInterface = (*MenuService)(nil)
