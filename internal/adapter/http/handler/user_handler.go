package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "userapp/internal/adapter/http/helper"
	"userapp/internal/core/domain"
	"userapp/internal/core/model/request"
	"userapp/internal/core/model/response"
	"userapp/internal/core/port"
	"userapp/internal/core/query"
	"userapp/internal/core/util"
	"userapp/pkg/config"
	. "userapp/pkg/tracing"
)

type UserHandler struct {
	svc    port.UserService
	Logger *config.AppLogger
}

func NewUserHandler(svc port.UserService, logger *config.AppLogger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.GetAllUsers", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllUsers"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	page, err := query.ParsePagination(c.Query("page"), c.Query("limit"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	filters, err := parseFilters(c)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	sort := query.ParseSort(c.Query("sortBy"), c.Query("order"))

	span.SetAttributes(
		attribute.Int("user.page", page.Page),
		attribute.Int("user.limit", page.Limit),
	)

	users, total, err := h.svc.List(ctx, filters, sort, page)

	if err != nil {
		AddSpanError(span, err)

		h.Logger.Logger.Ctx(ctx).Error("Failed to list users", zap.Error(err))

		SendDomainError(c, err)
		return
	}

	totalPages := query.TotalPages(total, page.Limit)

	c.JSON(http.StatusOK, response.PagedUsersResponse{
		Data: response.NewUserResponses(users),
		Pagination: response.Pagination{
			Page:            page.Page,
			Limit:           page.Limit,
			Total:           total,
			TotalPages:      totalPages,
			HasNextPage:     page.Page < totalPages,
			HasPreviousPage: page.Page > 1,
		},
	})
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.svc.Search(ctx, c.Query("q"), c.Query("field"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SearchUsersResponse{
		Data:  response.NewUserResponses(users),
		Count: len(users),
	})
}

func (h *UserHandler) GetUserStats(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.user.GetUserStats", []attribute.KeyValue{
		attribute.String("handler.operation", "GetUserStats"),
	})

	defer span.End()

	bundle, err := h.svc.Stats(ctx)

	if err != nil {
		AddSpanError(span, err)

		h.Logger.Logger.Ctx(ctx).Error("Failed to compute user stats", zap.Error(err))

		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, bundle)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.svc.GetByID(ctx, c.Param("id"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.CreateUserRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := h.svc.Create(ctx, params.ToDomain())

	if err != nil {
		h.Logger.Logger.Ctx(ctx).Error("Failed to create user",
			zap.Error(err),
			zap.String("email", params.Email),
		)

		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.NewUserResponse(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.UpdateUserRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := h.svc.Update(ctx, c.Param("id"), params.ToPatch())

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.svc.Delete(ctx, c.Param("id"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user), "User deleted successfully")
}

func (h *UserHandler) AddHobby(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.AddHobbyRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	user, err := h.svc.AddHobby(ctx, c.Param("id"), params.Hobby)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (h *UserHandler) RemoveHobby(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.svc.RemoveHobby(ctx, c.Param("id"), c.Param("hobby"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func parseFilters(c *gin.Context) (query.Filters, error) {
	filters := query.Filters{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Hobby: c.Query("hobby"),
	}

	minAge, err := query.ParseAge("minAge", c.Query("minAge"))

	if err != nil {
		return filters, err
	}

	maxAge, err := query.ParseAge("maxAge", c.Query("maxAge"))

	if err != nil {
		return filters, err
	}

	filters.MinAge = minAge
	filters.MaxAge = maxAge

	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)

		if err != nil {
			return filters, domain.NewMalformedRequest("isActive", "isActive must be true or false")
		}

		filters.IsActive = &active
	}

	return filters, nil
}
