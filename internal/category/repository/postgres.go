package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/casadopastor/catalog-service/internal/category"
	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const categoryColumns = `id, parent_id, slug, name, description, sort_order, is_active, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, parent_id, slug, name, description, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :parent_id, :slug, :name, :description, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var cat model.Category
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1 LIMIT 1`, categoryColumns)
	if err := r.DB.GetContext(ctx, &cat, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM categories"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := fmt.Sprintf("SELECT %s FROM categories%s ORDER BY sort_order ASC, name ASC", categoryColumns, whereClause)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var categories []model.Category
	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}

	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            slug = :slug,
            name = :name,
            description = :description,
            sort_order = :sort_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	// FK on subcategories is SET NULL; children become roots.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *PGRepository) TranslationsFor(ctx context.Context, categoryIDs []string, loc string) (map[string]model.CategoryTranslation, error) {
	result := map[string]model.CategoryTranslation{}
	if len(categoryIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT id, category_id, locale, name, slug, description FROM category_translations WHERE category_id IN (?) AND locale = ?`, categoryIDs, loc)
	if err != nil {
		return nil, err
	}
	var translations []model.CategoryTranslation
	if err := r.DB.SelectContext(ctx, &translations, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select category translations: %w", err)
	}
	for _, t := range translations {
		result[t.CategoryID] = t
	}
	return result, nil
}

func (r *PGRepository) UpsertTranslation(ctx context.Context, t *model.CategoryTranslation) error {
	query := `
        INSERT INTO category_translations (id, category_id, locale, name, slug, description)
        VALUES (:id, :category_id, :locale, :name, :slug, :description)
        ON CONFLICT (category_id, locale) DO UPDATE
        SET name = EXCLUDED.name,
            slug = EXCLUDED.slug,
            description = EXCLUDED.description
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}
