package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ActiveAt(ctx context.Context, at time.Time) ([]model.Promotion, []model.PromotionVariation, error) {
	var promos []model.Promotion
	query := `
        SELECT id, name, discount_type, discount_value, starts_at, ends_at, is_active, created_at, updated_at
        FROM promotions
        WHERE is_active = true AND starts_at <= $1 AND ends_at > $1
    `
	if err := r.DB.SelectContext(ctx, &promos, query, at); err != nil {
		return nil, nil, fmt.Errorf("select active promotions: %w", err)
	}
	if len(promos) == 0 {
		return nil, nil, nil
	}

	ids := make([]string, 0, len(promos))
	for _, p := range promos {
		ids = append(ids, p.ID)
	}

	joinQuery, args, err := sqlx.In(`SELECT promotion_id, variation_id FROM promotion_variations WHERE promotion_id IN (?)`, ids)
	if err != nil {
		return nil, nil, err
	}
	var joins []model.PromotionVariation
	if err := r.DB.SelectContext(ctx, &joins, r.DB.Rebind(joinQuery), args...); err != nil {
		return nil, nil, fmt.Errorf("select promotion variations: %w", err)
	}

	return promos, joins, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.Promotion, variationIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO promotions (id, name, discount_type, discount_value, starts_at, ends_at, is_active, created_at, updated_at)
        VALUES (:id, :name, :discount_type, :discount_value, :starts_at, :ends_at, :is_active, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("insert promotion: %w", err)
	}

	for _, vid := range variationIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO promotion_variations (promotion_id, variation_id) VALUES ($1, $2)`,
			p.ID, vid); err != nil {
			return fmt.Errorf("insert promotion variation: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE promotions SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return promotion.ErrNotFound
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	var p model.Promotion
	query := `SELECT id, name, discount_type, discount_value, starts_at, ends_at, is_active, created_at, updated_at FROM promotions WHERE id = $1 LIMIT 1`
	if err := r.DB.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, promotion.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PromotionFilters) ([]model.Promotion, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.ActiveNow {
		conditions = append(conditions, "starts_at <= NOW() AND ends_at > NOW()")
	}
	if f.SearchName != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchName + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM promotions"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	switch f.SortBy {
	case "name":
		orderBy = "name"
	case "starts_at":
		orderBy = "starts_at"
	case "ends_at":
		orderBy = "ends_at"
	}
	if f.SortBy != "" {
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT id, name, discount_type, discount_value, starts_at, ends_at, is_active, created_at, updated_at FROM promotions%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var promos []model.Promotion
	if err := nstmt.SelectContext(ctx, &promos, args); err != nil {
		return nil, 0, err
	}

	return promos, count, nil
}

func (r *PGRepository) VariationIDs(ctx context.Context, promotionID string) ([]string, error) {
	var ids []string
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT variation_id FROM promotion_variations WHERE promotion_id = $1`, promotionID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
