package servehttp

import (
	"filingflow/bizerror"
	"filingflow/domain/filing"
	"filingflow/session"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRolloverHandler exposes the recovery path of the rollover: when the
// automatic run after a completing transition was lost (crash, registry
// outage), operators re-request it here. The rollover itself is idempotent.
func RegisterRolloverHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/rollovers", middleWares...)

	handler := &rolloverHandler{validator: validator.New()}
	g.POST("", handler.handleCreate)
}

type rolloverHandler struct {
	validator *validator.Validate
}

type RolloverRequest struct {
	FilingID types.ID `json:"filingId" binding:"required"`
}

func (h *rolloverHandler) handleCreate(c *gin.Context) {
	req := RolloverRequest{}
	err := c.ShouldBindBodyWith(&req, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err = h.validator.Struct(req); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	completed, err := filing.DetailFilingFunc(req.FilingID, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	if err := filing.MaybeRolloverFunc(completed); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"result": true})
}
