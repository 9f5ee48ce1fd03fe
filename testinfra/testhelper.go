package testinfra

import (
	"filingflow/session"
	"net/http"
	"net/http/httptest"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

// BuildSecCtx builds a security context of an operator with the given role
func BuildSecCtx(uid types.ID, name, role string) *session.Context {
	return &session.Context{Identity: session.Identity{ID: uid, Name: name, Email: name + "@example.com", Role: role}}
}

// ExecuteRequest drives a request through the router and collects the response
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, http.Header, string) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Header(), w.Body.String()
}
