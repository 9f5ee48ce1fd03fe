package servehttp

import (
	"errors"
	"filingflow/bizerror"
	"filingflow/common"
	"filingflow/domain"
	"filingflow/domain/filing"
	"filingflow/session"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterFilingHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/filings", middleWares...)

	handler := &filingHandler{validator: validator.New()}

	g.GET("", handler.handleQuery)
	g.POST("", handler.handleCreate)
	g.GET(":id", handler.handleDetail)
}

type filingHandler struct {
	validator *validator.Validate
}

func (h *filingHandler) handleCreate(c *gin.Context) {
	creation := domain.FilingCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	if err = h.validator.Struct(creation); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	created, err := filing.CreateFilingFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *filingHandler) handleDetail(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}

	detail, err := filing.DetailFilingFunc(parsedId, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func (h *filingHandler) handleQuery(c *gin.Context) {
	query := domain.FilingQuery{}
	_ = c.MustBindWith(&query, binding.Query)

	filings, err := filing.QueryFilingsFunc(&query, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &common.PagedBody{List: filings, Total: uint64(len(*filings))})
}
