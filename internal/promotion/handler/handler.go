package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casadopastor/catalog-service/internal/promotion"
	"github.com/casadopastor/catalog-service/internal/promotion/dto"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PromotionHandler struct {
	uc     promotion.UseCase
	logger logger.ZapLogger
}

func NewPromotionHandler(uc promotion.UseCase, log logger.ZapLogger) *PromotionHandler {
	return &PromotionHandler{uc: uc, logger: log}
}

func (h *PromotionHandler) Register(admin *echo.Group) {
	admin.GET("/promotions", h.listPromotions)
	admin.GET("/promotions/:id", h.getPromotion)
	admin.POST("/promotions", h.createPromotion)
	admin.DELETE("/promotions/:id", h.deactivatePromotion)
}

func (h *PromotionHandler) listPromotions(c echo.Context) error {
	f := &dto.PromotionFilters{
		SearchName: c.QueryParam("name"),
		SortBy:     c.QueryParam("sort"),
		SortOrder:  c.QueryParam("order"),
		Page:       1,
		PageSize:   20,
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		f.Page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 {
		f.PageSize = ps
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			f.IsActive = &active
		}
	}
	f.ActiveNow, _ = strconv.ParseBool(c.QueryParam("active_now"))

	promos, total, err := h.uc.ListPromotions(c.Request().Context(), f)
	if err != nil {
		h.logger.Error("failed to list promotions", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list promotions")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": promos, "total": total})
}

func (h *PromotionHandler) getPromotion(c echo.Context) error {
	p, err := h.uc.GetPromotion(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "promotion not found")
		}
		h.logger.Error("failed to load promotion", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load promotion")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PromotionHandler) createPromotion(c echo.Context) error {
	var input dto.CreatePromotionInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse promotion")
	}

	p, err := h.uc.CreatePromotion(c.Request().Context(), &input)
	if err != nil {
		h.logger.Error("failed to create promotion", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PromotionHandler) deactivatePromotion(c echo.Context) error {
	id := c.Param("id")
	if err := h.uc.DeactivatePromotion(c.Request().Context(), id); err != nil {
		if errors.Is(err, promotion.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "promotion not found")
		}
		h.logger.Error("failed to deactivate promotion", zap.Error(err), zap.String("promotion_id", id))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to deactivate promotion")
	}
	return c.NoContent(http.StatusNoContent)
}
