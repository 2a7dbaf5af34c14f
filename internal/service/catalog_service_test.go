package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseFilesCPT/internal/models"
)

func TestCatalogService_ListCases_Caching(t *testing.T) {
	repo := &stubCaseRepo{cases: []models.Case{
		{CaseID: "case-1", Title: "Дело 1", Price: decimal.RequireFromString("9.99")},
		{CaseID: "case-2", Title: "Дело 2", Price: decimal.RequireFromString("14.99")},
	}}
	svc := NewCatalogService(repo, NewCatalogCache())

	ctx := context.Background()

	cases, err := svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 2)
	assert.Equal(t, 1, repo.calls)

	// повторный вызов идет из кэша, в хранилище не обращаемся
	cases, err = svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 2)
	assert.Equal(t, 1, repo.calls)

	// после сброса кэша - заново из хранилища
	svc.InvalidateCache()

	_, err = svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCatalogService_GetCase(t *testing.T) {
	repo := &stubCaseRepo{cases: []models.Case{
		{CaseID: "case-1", Title: "Дело 1", Price: decimal.RequireFromString("9.99")},
	}}
	svc := NewCatalogService(repo, NewCatalogCache())

	ctx := context.Background()

	t.Run("Неизвестный id - не ошибка", func(t *testing.T) {
		c, err := svc.GetCase(ctx, "no-such-case")

		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Поиск по прогретому кэшу", func(t *testing.T) {
		_, err := svc.ListCases(ctx)
		require.NoError(t, err)

		callsBefore := repo.calls

		c, err := svc.GetCase(ctx, "case-1")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Дело 1", c.Title)
		assert.Equal(t, callsBefore, repo.calls)

		// неизвестный id в прогретом кэше тоже (nil, nil)
		c, err = svc.GetCase(ctx, "no-such-case")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Ошибка хранилища поднимается", func(t *testing.T) {
		badRepo := &stubCaseRepo{err: errors.New("connection refused")}
		badSvc := NewCatalogService(badRepo, NewCatalogCache())

		_, err := badSvc.ListCases(ctx)
		assert.Error(t, err)
	})
}

func TestStaticCatalogService(t *testing.T) {
	svc := NewStaticCatalogService([]models.Case{
		{CaseID: "case-1", Title: "Дело 1", Price: decimal.RequireFromString("9.99")},
	})

	ctx := context.Background()

	cases, err := svc.ListCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 1)

	c, err := svc.GetCase(ctx, "case-1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Дело 1", c.Title)

	c, err = svc.GetCase(ctx, "no-such-case")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestAccessService_HasAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("Нет строки покупки - false без ошибки", func(t *testing.T) {
		access := NewAccessService(newStubPurchaseRepo())

		hasAccess, err := access.HasAccess(ctx, "case-1", "user-1")

		assert.NoError(t, err)
		assert.False(t, hasAccess)
	})

	t.Run("Ошибка запроса - доступ не выдается, ошибка возвращается", func(t *testing.T) {
		purchases := newStubPurchaseRepo()
		purchases.getErr = errors.New("connection refused")
		access := NewAccessService(purchases)

		hasAccess, err := access.HasAccess(ctx, "case-1", "user-1")

		assert.Error(t, err)
		assert.False(t, hasAccess)
	})

	t.Run("Есть строка покупки - true", func(t *testing.T) {
		purchases := newStubPurchaseRepo()
		purchases.rows["user-1/case-1"] = &models.Purchase{UserID: "user-1", CaseID: "case-1"}
		access := NewAccessService(purchases)

		hasAccess, err := access.HasAccess(ctx, "case-1", "user-1")

		assert.NoError(t, err)
		assert.True(t, hasAccess)
	})
}
