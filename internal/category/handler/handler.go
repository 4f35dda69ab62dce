package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casadopastor/catalog-service/internal/category"
	"github.com/casadopastor/catalog-service/internal/category/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc      category.UseCase
	locales locale.Set
	logger  logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, locales locale.Set, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{uc: uc, locales: locales, logger: log}
}

func (h *CategoryHandler) Register(public, admin *echo.Group) {
	public.GET("/categories", h.listCategories)

	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)
	admin.PUT("/categories/:id/translations/:locale", h.upsertTranslation)
}

func (h *CategoryHandler) listCategories(c echo.Context) error {
	f := &dto.CategoryFilters{Page: 1, PageSize: 50}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		f.Page = p
	}
	if raw := c.QueryParam("parent_id"); c.QueryParams().Has("parent_id") {
		f.ParentID = &raw
	}
	active := true
	f.IsActive = &active

	loc := h.locales.Normalize(c.QueryParam("locale"))
	categories, total, err := h.uc.ListCategories(c.Request().Context(), f, loc)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list categories")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": categories, "total": total})
}

func (h *CategoryHandler) createCategory(c echo.Context) error {
	var input dto.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse category")
	}
	if input.Name == "" || input.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug and name are required")
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "parent category not found")
		}
		h.logger.Error("failed to create category", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) updateCategory(c echo.Context) error {
	var input dto.UpdateCategoryInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse category")
	}
	input.ID = c.Param("id")

	cat, err := h.uc.UpdateCategory(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		h.logger.Error("failed to update category", zap.Error(err), zap.String("category_id", input.ID))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) deleteCategory(c echo.Context) error {
	id := c.Param("id")
	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		h.logger.Error("failed to delete category", zap.Error(err), zap.String("category_id", id))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) upsertTranslation(c echo.Context) error {
	var input dto.UpsertCategoryTranslationInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse translation")
	}
	input.CategoryID = c.Param("id")
	input.Locale = c.Param("locale")

	if err := h.uc.UpsertTranslation(c.Request().Context(), &input); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		h.logger.Error("failed to upsert category translation", zap.Error(err), zap.String("category_id", input.CategoryID))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
