package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

type PGRepository struct {
	DB      *sqlx.DB
	locales locale.Set
}

func NewPGRepository(db *sqlx.DB, locales locale.Set) *PGRepository {
	return &PGRepository{DB: db, locales: locales}
}

const productColumns = `p.id, p.slug, p.name, p.description, p.short_description, p.category_id, p.file_type, p.is_active, p.created_at, p.updated_at`

const translationColumns = `t.id AS tr_id, t.product_id AS tr_product_id, t.locale AS tr_locale, t.name AS tr_name,
       t.slug AS tr_slug, t.description AS tr_description, t.short_description AS tr_short_description,
       t.seo_title AS tr_seo_title, t.seo_description AS tr_seo_description`

// resolvedRow scans a product left-joined with its optional translation.
type resolvedRow struct {
	model.Product
	TrID               sql.NullString `db:"tr_id"`
	TrProductID        sql.NullString `db:"tr_product_id"`
	TrLocale           sql.NullString `db:"tr_locale"`
	TrName             sql.NullString `db:"tr_name"`
	TrSlug             sql.NullString `db:"tr_slug"`
	TrDescription      sql.NullString `db:"tr_description"`
	TrShortDescription sql.NullString `db:"tr_short_description"`
	TrSeoTitle         sql.NullString `db:"tr_seo_title"`
	TrSeoDescription   sql.NullString `db:"tr_seo_description"`
}

func (row *resolvedRow) translation() *model.ProductTranslation {
	if !row.TrID.Valid {
		return nil
	}
	return &model.ProductTranslation{
		ID:               row.TrID.String,
		ProductID:        row.TrProductID.String,
		Locale:           row.TrLocale.String,
		Name:             row.TrName.String,
		Slug:             row.TrSlug.String,
		Description:      row.TrDescription.String,
		ShortDescription: row.TrShortDescription.String,
		SeoTitle:         row.TrSeoTitle.String,
		SeoDescription:   row.TrSeoDescription.String,
	}
}

func (r *PGRepository) ResolveBySlug(ctx context.Context, slug string, loc locale.Locale) (*model.Product, *model.ProductTranslation, error) {
	// Native slug first: it resolves regardless of the requested locale.
	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM products p
        LEFT JOIN product_translations t ON t.product_id = p.id AND t.locale = $2
        WHERE p.slug = $1 AND p.is_active = true
        LIMIT 1`, productColumns, translationColumns)

	var row resolvedRow
	err := r.DB.GetContext(ctx, &row, query, slug, loc.String())
	if err == nil {
		return &row.Product, row.translation(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("resolve product by slug: %w", err)
	}

	if r.locales.IsBase(loc) {
		return nil, nil, catalog.ErrNotFound
	}

	// Fall back to the locale's translated slug.
	query = fmt.Sprintf(`
        SELECT %s, %s
        FROM product_translations t
        JOIN products p ON p.id = t.product_id
        WHERE t.slug = $1 AND t.locale = $2 AND p.is_active = true
        LIMIT 1`, productColumns, translationColumns)

	err = r.DB.GetContext(ctx, &row, query, slug, loc.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, catalog.ErrNotFound
		}
		return nil, nil, fmt.Errorf("resolve product by translated slug: %w", err)
	}
	return &row.Product, row.translation(), nil
}

func (r *PGRepository) ActiveVariations(ctx context.Context, productID string) ([]model.Variation, error) {
	var variations []model.Variation
	query := `
        SELECT id, product_id, name, price, sort_order, is_active, created_at, updated_at
        FROM variations
        WHERE product_id = $1 AND is_active = true
        ORDER BY sort_order ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &variations, query, productID); err != nil {
		return nil, fmt.Errorf("select active variations: %w", err)
	}
	return variations, nil
}

// VariationDetails loads attribute mappings, dictionaries, files, images and
// name translations for the id set in a fixed number of queries. The joins
// between result sets happen in memory; per-variation round trips are the
// failure mode this exists to avoid.
func (r *PGRepository) VariationDetails(ctx context.Context, variationIDs []string, loc locale.Locale) (*catalog.VariationDetails, error) {
	d := &catalog.VariationDetails{
		Attributes:   map[string]model.Attribute{},
		Values:       map[string]model.AttributeValue{},
		Files:        map[string][]model.File{},
		Images:       map[string][]model.Image{},
		Translations: map[string]model.VariationTranslation{},
	}
	if len(variationIDs) == 0 {
		return d, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query, args, err := sqlx.In(`SELECT variation_id, attribute_id, attribute_value_id FROM variation_attribute_values WHERE variation_id IN (?)`, variationIDs)
		if err != nil {
			return err
		}
		var rows []model.VariationAttributeValue
		if err := r.DB.SelectContext(gctx, &rows, r.DB.Rebind(query), args...); err != nil {
			return fmt.Errorf("select variation attribute values: %w", err)
		}
		d.AttributeRows = rows
		return nil
	})

	g.Go(func() error {
		var values []model.AttributeValue
		if err := r.DB.SelectContext(gctx, &values, `SELECT id, attribute_id, value FROM attribute_values`); err != nil {
			return fmt.Errorf("select attribute values: %w", err)
		}
		for _, v := range values {
			d.Values[v.ID] = v
		}
		return nil
	})

	g.Go(func() error {
		var attrs []model.Attribute
		if err := r.DB.SelectContext(gctx, &attrs, `SELECT id, name FROM attributes`); err != nil {
			return fmt.Errorf("select attributes: %w", err)
		}
		for _, a := range attrs {
			d.Attributes[a.ID] = a
		}
		return nil
	})

	g.Go(func() error {
		query, args, err := sqlx.In(`SELECT id, product_id, variation_id, storage_key, original_name, mime_type, size_bytes, created_at FROM files WHERE variation_id IN (?)`, variationIDs)
		if err != nil {
			return err
		}
		var files []model.File
		if err := r.DB.SelectContext(gctx, &files, r.DB.Rebind(query), args...); err != nil {
			return fmt.Errorf("select variation files: %w", err)
		}
		for _, f := range files {
			if f.VariationID != nil {
				d.Files[*f.VariationID] = append(d.Files[*f.VariationID], f)
			}
		}
		return nil
	})

	g.Go(func() error {
		query, args, err := sqlx.In(`SELECT id, product_id, variation_id, url, sort_order, is_main, created_at FROM images WHERE variation_id IN (?) ORDER BY sort_order ASC`, variationIDs)
		if err != nil {
			return err
		}
		var images []model.Image
		if err := r.DB.SelectContext(gctx, &images, r.DB.Rebind(query), args...); err != nil {
			return fmt.Errorf("select variation images: %w", err)
		}
		for _, img := range images {
			if img.VariationID != nil {
				d.Images[*img.VariationID] = append(d.Images[*img.VariationID], img)
			}
		}
		return nil
	})

	g.Go(func() error {
		query, args, err := sqlx.In(`SELECT id, variation_id, locale, name FROM variation_translations WHERE variation_id IN (?) AND locale = ?`, variationIDs, loc.String())
		if err != nil {
			return err
		}
		var translations []model.VariationTranslation
		if err := r.DB.SelectContext(gctx, &translations, r.DB.Rebind(query), args...); err != nil {
			return fmt.Errorf("select variation translations: %w", err)
		}
		for _, t := range translations {
			d.Translations[t.VariationID] = t
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PGRepository) ProductImages(ctx context.Context, productID string) ([]model.Image, error) {
	var images []model.Image
	query := `
        SELECT id, product_id, variation_id, url, sort_order, is_main, created_at
        FROM images
        WHERE product_id = $1
        ORDER BY is_main DESC, sort_order ASC`
	if err := r.DB.SelectContext(ctx, &images, query, productID); err != nil {
		return nil, fmt.Errorf("select product images: %w", err)
	}
	return images, nil
}

type categoryRow struct {
	model.Category
	TrID          sql.NullString `db:"tr_id"`
	TrName        sql.NullString `db:"tr_name"`
	TrSlug        sql.NullString `db:"tr_slug"`
	TrDescription sql.NullString `db:"tr_description"`
}

func (r *PGRepository) CategoryWithTranslation(ctx context.Context, categoryID string, loc locale.Locale) (*model.Category, *model.CategoryTranslation, error) {
	query := `
        SELECT c.id, c.parent_id, c.slug, c.name, c.description, c.sort_order, c.is_active, c.created_at, c.updated_at,
               t.id AS tr_id, t.name AS tr_name, t.slug AS tr_slug, t.description AS tr_description
        FROM categories c
        LEFT JOIN category_translations t ON t.category_id = c.id AND t.locale = $2
        WHERE c.id = $1
        LIMIT 1`

	var row categoryRow
	if err := r.DB.GetContext(ctx, &row, query, categoryID, loc.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, catalog.ErrNotFound
		}
		return nil, nil, fmt.Errorf("select category: %w", err)
	}

	var tr *model.CategoryTranslation
	if row.TrID.Valid {
		tr = &model.CategoryTranslation{
			ID:          row.TrID.String,
			CategoryID:  row.Category.ID,
			Locale:      loc.String(),
			Name:        row.TrName.String,
			Slug:        row.TrSlug.String,
			Description: row.TrDescription.String,
		}
	}
	return &row.Category, tr, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT id, slug, name, description, short_description, category_id, file_type, is_active, created_at, updated_at FROM products WHERE id = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR slug ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "slug":
			orderBy = "slug"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT id, slug, name, description, short_description, category_id, file_type, is_active, created_at, updated_at FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var products []model.Product
	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, slug, name, description, short_description, category_id, file_type, is_active, created_at, updated_at)
        VALUES (:id, :slug, :name, :description, :short_description, :category_id, :file_type, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET slug = :slug,
            name = :name,
            description = :description,
            short_description = :short_description,
            category_id = :category_id,
            file_type = :file_type,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE slug = $1`
	args := []interface{}{slug}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) IsTranslatedSlugUnique(ctx context.Context, loc locale.Locale, slug, excludeProductID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM product_translations WHERE locale = $1 AND slug = $2`
	args := []interface{}{loc.String(), slug}
	if excludeProductID != "" {
		query += ` AND product_id != $3`
		args = append(args, excludeProductID)
	}
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) CreateVariation(ctx context.Context, v *model.Variation) error {
	query := `
        INSERT INTO variations (id, product_id, name, price, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :product_id, :name, :price, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return err
}

func (r *PGRepository) ListVariations(ctx context.Context, productID string) ([]model.Variation, error) {
	var variations []model.Variation
	query := `
        SELECT id, product_id, name, price, sort_order, is_active, created_at, updated_at
        FROM variations
        WHERE product_id = $1
        ORDER BY sort_order ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &variations, query, productID); err != nil {
		return nil, err
	}
	return variations, nil
}

func (r *PGRepository) UpsertProductTranslation(ctx context.Context, t *model.ProductTranslation) error {
	query := `
        INSERT INTO product_translations (id, product_id, locale, name, slug, description, short_description, seo_title, seo_description)
        VALUES (:id, :product_id, :locale, :name, :slug, :description, :short_description, :seo_title, :seo_description)
        ON CONFLICT (product_id, locale) DO UPDATE
        SET name = EXCLUDED.name,
            slug = EXCLUDED.slug,
            description = EXCLUDED.description,
            short_description = EXCLUDED.short_description,
            seo_title = EXCLUDED.seo_title,
            seo_description = EXCLUDED.seo_description
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) UpsertVariationTranslation(ctx context.Context, t *model.VariationTranslation) error {
	query := `
        INSERT INTO variation_translations (id, variation_id, locale, name)
        VALUES (:id, :variation_id, :locale, :name)
        ON CONFLICT (variation_id, locale) DO UPDATE
        SET name = EXCLUDED.name
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}
