package leave

import (
	"net/http"

	"go-leave/internal/domain"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rbac    middleware.RBACService
	logger  *zap.Logger
}

// NewHandler takes the RBAC service to decide whether the caller may read
// every leave in the company; a nil service limits callers to their own.
func NewHandler(service Service, rbacService middleware.RBACService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rbac: rbacService, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("http "+op+" leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func (h *Handler) canReadAll(c *gin.Context) bool {
	return middleware.Allowed(c, h.rbac, domain.ResourceLeave, domain.ActionReadAll)
}

func (h *Handler) Submit(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)
	h.logger.Debug("http submit leave", zap.String("company_id", companyID), zap.String("actor_id", actorID))

	var req CreateLeaveRequest
	if !h.bind(c, &req, "submit") {
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Preview(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req CreateLeaveRequest
	if !h.bind(c, &req, "preview") {
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	resp, err := h.service.GetAll(c.Request.Context(), companyID, actorID, h.canReadAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	resp, err := h.service.GetByID(c.Request.Context(), companyID, actorID, c.Param("id"), h.canReadAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	resp, err := h.service.History(c.Request.Context(), companyID, actorID, c.Param("id"), h.canReadAll(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Resubmit(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req UpdateLeaveRequest
	if !h.bind(c, &req, "resubmit") {
		return
	}

	resp, err := h.service.Resubmit(c.Request.Context(), companyID, actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req ReasonRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &req, "cancel") {
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), companyID, c.Param("id"), actorID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req CommentRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &req, "approve") {
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), companyID, c.Param("id"), actorID, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req ReasonRequest
	if !h.bind(c, &req, "reject") {
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), companyID, c.Param("id"), actorID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Forward(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req CommentRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &req, "forward") {
		return
	}

	resp, err := h.service.Forward(c.Request.Context(), companyID, c.Param("id"), actorID, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Return(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req ReasonRequest
	if !h.bind(c, &req, "return") {
		return
	}

	resp, err := h.service.ReturnForModification(c.Request.Context(), companyID, c.Param("id"), actorID, req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	resp, err := h.service.ListPendingFor(c.Request.Context(), companyID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) BulkApprove(c *gin.Context) {
	companyID, actorID := middleware.Actor(c)

	var req BulkApproveRequest
	if !h.bind(c, &req, "bulk approve") {
		return
	}

	resp := h.service.BulkApprove(c.Request.Context(), companyID, req.LeaveIDs, actorID, req.Comment)
	response.Success(c, http.StatusOK, resp, nil)
}
