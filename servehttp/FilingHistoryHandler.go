package servehttp

import (
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterFilingHistoryHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/filing-history", middleWares...)

	handler := &filingHistoryHandler{}
	g.GET("", handler.handleQuery)
}

type filingHistoryHandler struct {
}

// FilingHistoryBody bundles the raw ledger with the read-side aggregations
// the work views need: days per stage and the end-to-end span.
type FilingHistoryBody struct {
	Entries        []domain.FilingHistoryEntry `json:"entries"`
	StageDurations []domain.StageDuration      `json:"stageDurations"`
	TotalDays      int                         `json:"totalDays"`
}

func (h *filingHistoryHandler) handleQuery(c *gin.Context) {
	query := domain.FilingHistoryQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	entries, err := filing.QueryHistoryFunc(&query, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &FilingHistoryBody{
		Entries:        *entries,
		StageDurations: filing.StageDurations(*entries),
		TotalDays:      filing.TotalDaysToFile(*entries),
	})
}
