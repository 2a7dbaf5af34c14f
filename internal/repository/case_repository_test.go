package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseRepository_GetCaseByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewCaseRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT * FROM detective_cases WHERE case_id = $1`

	caseColumns := []string{
		"case_id", "title", "description", "price", "difficulty",
		"cover_image", "content", "published", "created_at",
	}

	t.Run("Успешное получение дела", func(t *testing.T) {
		rows := sqlmock.NewRows(caseColumns).
			AddRow("case-1", "Дело о пропавшем кольце", "описание", "9.99", "easy", "", "", true, time.Now())

		mock.ExpectQuery(query).
			WithArgs("case-1").
			WillReturnRows(rows)

		c, err := repo.GetCaseByID(ctx, "case-1")

		assert.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Дело о пропавшем кольце", c.Title)
		assert.Equal(t, "9.99", c.Price.StringFixed(2))
	})

	t.Run("Неизвестный id - не ошибка, а (nil, nil)", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("no-such-case").
			WillReturnRows(sqlmock.NewRows(caseColumns))

		c, err := repo.GetCaseByID(ctx, "no-such-case")

		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Ошибка БД оборачивается", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("case-1").
			WillReturnError(errors.New("connection refused"))

		c, err := repo.GetCaseByID(ctx, "case-1")

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "ошибка при получении дела")
	})
}

func TestCaseRepository_ListCases(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewCaseRepository(sqlxDB)

	ctx := context.Background()

	query := `
        SELECT * FROM detective_cases
        WHERE published = TRUE
        ORDER BY created_at
    `

	t.Run("Каталог возвращается целиком", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"case_id", "title", "description", "price", "difficulty",
			"cover_image", "content", "published", "created_at",
		}).
			AddRow("case-1", "Дело 1", "", "9.99", "easy", "", "", true, time.Now()).
			AddRow("case-2", "Дело 2", "", "14.99", "hard", "", "", true, time.Now())

		mock.ExpectQuery(query).WillReturnRows(rows)

		cases, err := repo.ListCases(ctx)

		assert.NoError(t, err)
		assert.Len(t, cases, 2)
	})
}
