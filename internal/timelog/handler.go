package timelog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: キオスク用の公開エンドポイント
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// POST /time-logs (打刻)
	r.POST("/time-logs", h.Tap)
	// GET /time-logs?on=today (当日一覧)
	r.GET("/time-logs", h.ListForDate)
}

// RegisterAdminRoutes: 認証必須の管理系
func RegisterAdminRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// POST /time-logs/auto-out?type=AM|PM (打ち忘れ一括補正)
	r.POST("/time-logs/auto-out", h.AutoOut)
}

// Tap godoc
// @Summary  学生IDで1回打刻する
// @Tags     time-logs
// @Accept   json
// @Produce  json
// @Param    body body TapRequest true "student_id"
// @Success  200 {object} TapResult
// @Router   /time-logs [post]
func (h *Handler) Tap(c *gin.Context) {
	var req TapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing student_id"))
		return
	}

	res, err := h.svc.RecordEvent(c.Request.Context(), req.StudentID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListForDate(c *gin.Context) {
	logs, err := h.svc.ListForDate(c.Request.Context(), c.DefaultQuery("on", "today"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func (h *Handler) AutoOut(c *gin.Context) {
	closed, err := h.svc.AutoClose(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "auto-out completed", "closed": closed})
}

// ---------- helpers ----------

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code Code = CodeInternal
	if api, ok := err.(*APIError); ok {
		code, msg = api.Code, api.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}
