package service

import (
	"context"
	"sync"

	"caseFilesCPT/internal/models"
	"caseFilesCPT/internal/repository"
)

// CatalogCache - кэш каталога на весь процесс: без TTL и вытеснения,
// сбрасывается только явным Clear
type CatalogCache struct {
	mu    sync.RWMutex
	cases []models.Case
	ok    bool
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{}
}

func (c *CatalogCache) Get() ([]models.Case, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cases, c.ok
}

func (c *CatalogCache) Set(cases []models.Case) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cases = cases
	c.ok = true
}

func (c *CatalogCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cases = nil
	c.ok = false
}

type CatalogService interface {
	ListCases(ctx context.Context) ([]models.Case, error)
	GetCase(ctx context.Context, caseID string) (*models.Case, error)
	InvalidateCache()
}

type catalogService struct {
	caseRepo repository.CaseRepository
	cache    *CatalogCache
}

func NewCatalogService(caseRepo repository.CaseRepository, cache *CatalogCache) CatalogService {
	return &catalogService{
		caseRepo: caseRepo,
		cache:    cache,
	}
}

func (s *catalogService) ListCases(ctx context.Context) ([]models.Case, error) {
	if cases, ok := s.cache.Get(); ok {
		return cases, nil
	}

	cases, err := s.caseRepo.ListCases(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cases)

	return cases, nil
}

// GetCase - неизвестный id возвращает (nil, nil), а не ошибку
func (s *catalogService) GetCase(ctx context.Context, caseID string) (*models.Case, error) {
	if cases, ok := s.cache.Get(); ok {
		for i := range cases {
			if cases[i].CaseID == caseID {
				return &cases[i], nil
			}
		}
		return nil, nil
	}

	return s.caseRepo.GetCaseByID(ctx, caseID)
}

func (s *catalogService) InvalidateCache() {
	s.cache.Clear()
}

// staticCaseSource - источник каталога из фиксированного списка, без БД
type staticCaseSource struct {
	cases []models.Case
}

func (s *staticCaseSource) ListCases(ctx context.Context) ([]models.Case, error) {
	return s.cases, nil
}

func (s *staticCaseSource) GetCaseByID(ctx context.Context, caseID string) (*models.Case, error) {
	for i := range s.cases {
		if s.cases[i].CaseID == caseID {
			return &s.cases[i], nil
		}
	}
	return nil, nil
}

// NewStaticCatalogService - каталог поверх заранее заданного списка дел;
// интерфейс тот же, что у каталога из БД
func NewStaticCatalogService(cases []models.Case) CatalogService {
	return NewCatalogService(&staticCaseSource{cases: cases}, NewCatalogCache())
}
