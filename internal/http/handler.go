package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"report-service/internal/http/middleware"
	"report-service/internal/repository"
	"report-service/internal/service"
	"report-service/internal/tz"
)

type Handler struct {
	reports *service.ReportService
	log     zerolog.Logger
}

func NewHandler(reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/reports")
	protected.Use(authMiddleware)

	protected.GET("/monthly", h.getMonthlyStats)
	protected.GET("/monthly/:senderId/detail", h.getMonthlyDetail)
	protected.GET("/sessions", h.getDaySessions)
	protected.GET("/sessions/bounds", h.getSessionBounds)
	protected.GET("/sessions/:id/file", h.getSessionFile)
	protected.GET("/years", h.listYears)
	protected.GET("/months", h.listMonths)
	protected.GET("/groups", h.listGroups)
}

func (h *Handler) getMonthlyStats(c *gin.Context) {
	role, ok := middleware.MustRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("invalid year or month"))
		return
	}

	stats, err := h.reports.MonthlyStats(c.Request.Context(), role, year, month)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) getMonthlyDetail(c *gin.Context) {
	role, ok := middleware.MustRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	senderID, err := strconv.Atoi(strings.TrimSpace(c.Param("senderId")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid sender id"))
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("invalid year or month"))
		return
	}

	details, err := h.reports.MonthlyDetail(c.Request.Context(), role, senderID, year, month)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

func (h *Handler) getDaySessions(c *gin.Context) {
	role, ok := middleware.MustRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	date, err := tz.ParseDisplayDate(strings.TrimSpace(c.Query("date")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date, expected dd.mm.yyyy"))
		return
	}

	sessions, err := h.reports.DaySessions(c.Request.Context(), role, date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sessions))
}

func (h *Handler) getSessionBounds(c *gin.Context) {
	if _, ok := middleware.MustRole(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	bounds, err := h.reports.SessionBounds(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bounds))
}

func (h *Handler) getSessionFile(c *gin.Context) {
	role, ok := middleware.MustRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid session id"))
		return
	}

	path, err := h.reports.SessionFilePath(c.Request.Context(), role, sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"path": path}))
}

func (h *Handler) listYears(c *gin.Context) {
	if _, ok := middleware.MustRole(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	years, err := h.reports.AvailableYears(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(years))
}

func (h *Handler) listMonths(c *gin.Context) {
	if _, ok := middleware.MustRole(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid year"))
		return
	}

	months, err := h.reports.AvailableMonths(c.Request.Context(), year)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(months))
}

func (h *Handler) listGroups(c *gin.Context) {
	role, ok := middleware.MustRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing role"))
		return
	}

	groups, err := h.reports.GroupNames(c.Request.Context(), role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(groups))
}

func parseYearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || year < 2000 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, repository.ErrStoreUnavailable):
		h.log.Error().Err(err).Msg("store unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse("store unavailable"))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
