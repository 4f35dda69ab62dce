package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	locales := locale.NewSet("pt", []string{"en", "es"})
	return NewPGRepository(sqlx.NewDb(db, "pgx"), locales), mock
}

var resolvedColumns = []string{
	"id", "slug", "name", "description", "short_description", "category_id", "file_type", "is_active", "created_at", "updated_at",
	"tr_id", "tr_product_id", "tr_locale", "tr_name", "tr_slug", "tr_description", "tr_short_description", "tr_seo_title", "tr_seo_description",
}

func productRow(translated bool) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows(resolvedColumns)
	if translated {
		return rows.AddRow(
			"prod-1", "abas-para-biblia", "Abas para Biblia", "<p>Feito a mao.</p>", "Abas adesivas", nil, "pdf", true, now, now,
			"tr-1", "prod-1", "en", "Bible Tabs", "bible-tabs", "", "", "", "",
		)
	}
	return rows.AddRow(
		"prod-1", "abas-para-biblia", "Abas para Biblia", "<p>Feito a mao.</p>", "Abas adesivas", nil, "pdf", true, now, now,
		nil, nil, nil, nil, nil, nil, nil, nil, nil,
	)
}

func TestResolveBySlugNativeSlug(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("abas-para-biblia", "pt").
		WillReturnRows(productRow(false))

	product, tr, err := repo.ResolveBySlug(context.Background(), "abas-para-biblia", "pt")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	assert.Nil(t, tr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveBySlugTranslatedSlugFallback(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("bible-tabs", "en").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM product_translations t`).
		WithArgs("bible-tabs", "en").
		WillReturnRows(productRow(true))

	product, tr, err := repo.ResolveBySlug(context.Background(), "bible-tabs", "en")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	require.NotNil(t, tr)
	assert.Equal(t, "bible-tabs", tr.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveBySlugBothPathsReturnSameProduct(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("abas-para-biblia", "en").
		WillReturnRows(productRow(true))

	byNative, _, err := repo.ResolveBySlug(context.Background(), "abas-para-biblia", "en")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("bible-tabs", "en").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM product_translations t`).
		WithArgs("bible-tabs", "en").
		WillReturnRows(productRow(true))

	byTranslated, _, err := repo.ResolveBySlug(context.Background(), "bible-tabs", "en")
	require.NoError(t, err)

	assert.Equal(t, byNative.ID, byTranslated.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveBySlugBaseLocaleSkipsTranslatedLookup(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("missing", "pt").
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.ResolveBySlug(context.Background(), "missing", "pt")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveBySlugNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products p`).
		WithArgs("missing", "en").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM product_translations t`).
		WithArgs("missing", "en").
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.ResolveBySlug(context.Background(), "missing", "en")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// expectVariationDetailQueries registers the complete set of queries the
// batch loader is allowed to issue. The set is fixed; a per-variation round
// trip would surface as an unexpected query.
func expectVariationDetailQueries(mock sqlmock.Sqlmock) {
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`FROM variation_attribute_values`).
		WillReturnRows(sqlmock.NewRows([]string{"variation_id", "attribute_id", "attribute_value_id"}))
	mock.ExpectQuery(`FROM attribute_values`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attribute_id", "value"}))
	mock.ExpectQuery(`FROM attributes`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "variation_id", "storage_key", "original_name", "mime_type", "size_bytes", "created_at"}))
	mock.ExpectQuery(`FROM images`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "variation_id", "url", "sort_order", "is_main", "created_at"}))
	mock.ExpectQuery(`FROM variation_translations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "variation_id", "locale", "name"}))
}

func TestVariationDetailsQueryCountIndependentOfBatchSize(t *testing.T) {
	for _, k := range []int{1, 50} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			repo, mock := newMockRepo(t)
			expectVariationDetailQueries(mock)

			ids := make([]string, 0, k)
			for i := 0; i < k; i++ {
				ids = append(ids, fmt.Sprintf("var-%d", i))
			}

			details, err := repo.VariationDetails(context.Background(), ids, "pt")
			require.NoError(t, err)
			require.NotNil(t, details)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVariationDetailsEmptyBatchIssuesNoQueries(t *testing.T) {
	repo, mock := newMockRepo(t)

	details, err := repo.VariationDetails(context.Background(), nil, "pt")
	require.NoError(t, err)
	assert.Empty(t, details.AttributeRows)
	assert.Empty(t, details.Files)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariationDetailsGroupsByVariation(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.MatchExpectationsInOrder(false)

	now := time.Now()
	mock.ExpectQuery(`FROM variation_attribute_values`).
		WillReturnRows(sqlmock.NewRows([]string{"variation_id", "attribute_id", "attribute_value_id"}).
			AddRow("var-1", "attr-color", "val-blue"))
	mock.ExpectQuery(`FROM attribute_values`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attribute_id", "value"}).
			AddRow("val-blue", "attr-color", "Azul"))
	mock.ExpectQuery(`FROM attributes`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("attr-color", "Cor"))
	mock.ExpectQuery(`FROM files`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "variation_id", "storage_key", "original_name", "mime_type", "size_bytes", "created_at"}).
			AddRow("file-1", nil, "var-1", "objects/file-1.pdf", "abas.pdf", "application/pdf", 2048, now))
	mock.ExpectQuery(`FROM images`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "variation_id", "url", "sort_order", "is_main", "created_at"}).
			AddRow("img-1", nil, "var-1", "https://cdn.example.com/img-1.jpg", 0, true, now))
	mock.ExpectQuery(`FROM variation_translations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "variation_id", "locale", "name"}).
			AddRow("vtr-1", "var-1", "en", "Blue"))

	details, err := repo.VariationDetails(context.Background(), []string{"var-1"}, "en")
	require.NoError(t, err)

	require.Len(t, details.AttributeRows, 1)
	assert.Equal(t, "Cor", details.Attributes["attr-color"].Name)
	assert.Equal(t, "Azul", details.Values["val-blue"].Value)
	require.Len(t, details.Files["var-1"], 1)
	assert.Equal(t, "abas.pdf", details.Files["var-1"][0].OriginalName)
	require.Len(t, details.Images["var-1"], 1)
	assert.Equal(t, "Blue", details.Translations["var-1"].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM products WHERE id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestIsSlugUnique(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM products WHERE slug`).
		WithArgs("abas-para-biblia").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	unique, err := repo.IsSlugUnique(context.Background(), "abas-para-biblia", "")
	require.NoError(t, err)
	assert.False(t, unique)
}

func TestIsTranslatedSlugUniqueScopedToLocale(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM product_translations WHERE locale`).
		WithArgs("en", "bible-tabs", "prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	unique, err := repo.IsTranslatedSlugUnique(context.Background(), "en", "bible-tabs", "prod-1")
	require.NoError(t, err)
	assert.True(t, unique)
}
