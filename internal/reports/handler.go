package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// GET /reports?student_id=&from=&to=
	r.GET("/reports", h.List)
	// GET /reports/summary?from=&to=&limit=
	r.GET("/reports/summary", h.Summary)
}

func (h *Handler) List(c *gin.Context) {
	var q ReportQuery
	if v := c.Query("student_id"); v != "" {
		q.StudentID = &v
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}

	rows, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *Handler) Summary(c *gin.Context) {
	req := SummaryRequest{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: atoiDef(c.Query("limit"), DefaultTopN),
	}

	res, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func apiErrFrom(err error) gin.H {
	if api, ok := err.(*APIError); ok {
		return gin.H{"error": api}
	}
	return gin.H{"error": APIError{Code: CodeInternal, Message: err.Error()}}
}
