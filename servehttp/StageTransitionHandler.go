package servehttp

import (
	"filingflow/bizerror"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterStageTransitionHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/transitions", middleWares...)

	handler := &stageTransitionHandler{validator: validator.New()}
	g.POST("", handler.handleCreate)
}

type stageTransitionHandler struct {
	validator *validator.Validate
}

func (h *stageTransitionHandler) handleCreate(c *gin.Context) {
	creation := domain.StageTransitionCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err = h.validator.Struct(creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	updated, err := filing.CreateStageTransitionFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, updated)
}
