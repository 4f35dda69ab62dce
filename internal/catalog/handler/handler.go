package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casadopastor/catalog-service/internal/auth"
	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	uc          catalog.UseCase
	locales     locale.Set
	maxPageSize int
	logger      logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, locales locale.Set, maxPageSize int, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, locales: locales, maxPageSize: maxPageSize, logger: log}
}

// Register wires the storefront routes onto the public group and the CRUD
// routes onto the JWT-protected admin group.
func (h *CatalogHandler) Register(public, admin *echo.Group) {
	public.GET("/products", h.listProducts)
	public.GET("/products/:slug", h.getProductBySlug)

	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)
	admin.GET("/products/:id/variations", h.listVariations)
	admin.POST("/products/:id/variations", h.addVariation)
	admin.PUT("/products/:id/translations/:locale", h.upsertTranslation)
	admin.PUT("/variations/:id/translations/:locale", h.upsertVariationTranslation)
}

// requestLocale picks the locale from the explicit query parameter, then the
// Accept-Language header, then the base locale.
func (h *CatalogHandler) requestLocale(c echo.Context) locale.Locale {
	if raw := c.QueryParam("locale"); raw != "" {
		return h.locales.Normalize(raw)
	}
	return h.locales.Match(c.Request().Header.Get("Accept-Language"))
}

func (h *CatalogHandler) getProductBySlug(c echo.Context) error {
	slug := c.Param("slug")
	loc := h.requestLocale(c)

	detail, err := h.uc.GetProductBySlug(c.Request().Context(), slug, loc)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		h.logger.Error("failed to load product detail", zap.Error(err), zap.String("slug", slug), zap.String("locale", loc.String()))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load product")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) listProducts(c echo.Context) error {
	f := &dto.ProductFilters{
		CategoryID:  c.QueryParam("category_id"),
		SearchQuery: c.QueryParam("query"),
		SortBy:      c.QueryParam("sort"),
		SortOrder:   c.QueryParam("order"),
		Page:        1,
		PageSize:    20,
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		f.Page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 && ps <= h.maxPageSize {
		f.PageSize = ps
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err == nil {
			f.IsActive = &active
		}
	} else {
		active := true
		f.IsActive = &active
	}

	products, total, err := h.uc.ListProducts(c.Request().Context(), f)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list products")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":     products,
		"total":     total,
		"page":      f.Page,
		"page_size": f.PageSize,
	})
}

func (h *CatalogHandler) createProduct(c echo.Context) error {
	var input dto.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse product")
	}
	if input.Slug == "" || input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug and name are required")
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, catalog.ErrSlugTaken) {
			return echo.NewHTTPError(http.StatusConflict, "slug already in use")
		}
		h.logger.Error("failed to create product", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create product")
	}
	h.logger.Info("product created", zap.String("product_id", p.ID), zap.String("admin", auth.AdminID(c)))
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) updateProduct(c echo.Context) error {
	var input dto.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse product")
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request().Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, catalog.ErrSlugTaken):
			return echo.NewHTTPError(http.StatusConflict, "slug already in use")
		}
		h.logger.Error("failed to update product", zap.Error(err), zap.String("product_id", input.ID))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update product")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		h.logger.Error("failed to delete product", zap.Error(err), zap.String("product_id", id))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete product")
	}
	h.logger.Info("product deleted", zap.String("product_id", id), zap.String("admin", auth.AdminID(c)))
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) listVariations(c echo.Context) error {
	variations, err := h.uc.ListVariations(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to list variations", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list variations")
	}
	return c.JSON(http.StatusOK, variations)
}

func (h *CatalogHandler) addVariation(c echo.Context) error {
	var input dto.CreateVariationInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse variation")
	}
	input.ProductID = c.Param("id")
	if input.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	v, err := h.uc.AddVariation(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		h.logger.Error("failed to add variation", zap.Error(err), zap.String("product_id", input.ProductID))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add variation")
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *CatalogHandler) upsertTranslation(c echo.Context) error {
	var input dto.UpsertProductTranslationInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse translation")
	}
	input.ProductID = c.Param("id")
	input.Locale = c.Param("locale")

	if err := h.uc.UpsertTranslation(c.Request().Context(), &input); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, catalog.ErrSlugTaken):
			return echo.NewHTTPError(http.StatusConflict, "translated slug already in use for this locale")
		}
		h.logger.Error("failed to upsert translation", zap.Error(err), zap.String("product_id", input.ProductID))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) upsertVariationTranslation(c echo.Context) error {
	var input dto.UpsertVariationTranslationInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse translation")
	}
	input.VariationID = c.Param("id")
	input.Locale = c.Param("locale")

	if err := h.uc.UpsertVariationTranslation(c.Request().Context(), &input); err != nil {
		h.logger.Error("failed to upsert variation translation", zap.Error(err), zap.String("variation_id", input.VariationID))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
