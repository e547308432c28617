package storage_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
)

var productCols = []string{
	"slug", "title", "brand", "description", "price", "compare_at_price",
	"category", "tags", "images", "badge",
}

func newRepository(t *testing.T) (storage.ProductsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewProductsRepository(db), mock
}

func TestProductsRepositoryGet(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		r, mock := newRepository(t)
		mock.ExpectQuery(`SELECT .+ FROM products WHERE slug = \$1`).
			WithArgs("keratin-maske").
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(
				"keratin-maske", "Keratin Maske", "Salon Pro", "", 399.9, 459.9,
				"mask", `["damage","dry"]`, `[{"src":"/img/k.jpg","alt":"k"}]`, "",
			))

		p, err := r.Get(t.Context(), "keratin-maske")
		require.NoError(t, err)
		assert.Equal(t, "Keratin Maske", p.Title)
		require.NotNil(t, p.CompareAtPrice)
		assert.Equal(t, 459.9, *p.CompareAtPrice)
		assert.Equal(t, []string{"damage", "dry"}, p.Tags)
		assert.Equal(t, []domain.ProductImage{{Src: "/img/k.jpg", Alt: "k"}}, p.Images)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		r, mock := newRepository(t)
		mock.ExpectQuery(`SELECT .+ FROM products WHERE slug = \$1`).
			WithArgs("yok").
			WillReturnError(sql.ErrNoRows)

		_, err := r.Get(t.Context(), "yok")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestProductsRepositoryList(t *testing.T) {
	r, mock := newRepository(t)
	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY position DESC`).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("a", "A", "", "", 10.0, nil, "hair", `[]`, `[]`, "").
			AddRow("b", "B", "", "", 20.0, nil, "mask", `["dry"]`, `[]`, "Yeni"))

	ps, err := r.List(t.Context())
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "a", ps[0].Slug)
	assert.Nil(t, ps[0].CompareAtPrice)
	assert.Equal(t, "Yeni", ps[1].Badge)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepositoryUpsert(t *testing.T) {
	r, mock := newRepository(t)
	p := domain.Product{Slug: "gul-tonik", Title: "Gül Tonik", Price: 99, Category: "tonic"}

	mock.ExpectQuery(`INSERT INTO products .+ ON CONFLICT \(slug\) DO UPDATE`).
		WithArgs("gul-tonik", "Gül Tonik", "", "", 99.0, sql.NullFloat64{},
			"tonic", `[]`, `[]`, "").
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(
			"gul-tonik", "Gül Tonik", "", "", 99.0, nil, "tonic", `[]`, `[]`, "",
		))

	got, err := r.Upsert(t.Context(), p)
	require.NoError(t, err)
	assert.Equal(t, "gul-tonik", got.Slug)
	assert.Empty(t, got.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepositoryUpsertMany(t *testing.T) {
	ps := []domain.Product{
		{Slug: "first", Title: "First", Price: 1},
		{Slug: "second", Title: "Second", Price: 2},
	}

	t.Run("InsertsBackwards", func(t *testing.T) {
		r, mock := newRepository(t)
		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`INSERT INTO products`)
		prep.ExpectExec().WithArgs("second", "Second", "", "", 2.0, sql.NullFloat64{}, "", `[]`, `[]`, "").
			WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WithArgs("first", "First", "", "", 1.0, sql.NullFloat64{}, "", `[]`, `[]`, "").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.UpsertMany(t.Context(), ps))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		r, mock := newRepository(t)
		execErr := errors.New("check constraint violated")
		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`INSERT INTO products`)
		prep.ExpectExec().WillReturnError(execErr)
		mock.ExpectRollback()

		err := r.UpsertMany(t.Context(), ps)
		assert.ErrorIs(t, err, execErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductsRepositoryDelete(t *testing.T) {
	r, mock := newRepository(t)

	mock.ExpectExec(`DELETE FROM products WHERE slug = \$1`).
		WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Delete(t.Context(), "a"))

	mock.ExpectExec(`DELETE FROM products WHERE slug = \$1`).
		WithArgs("yok").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, r.Delete(t.Context(), "yok"), storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
