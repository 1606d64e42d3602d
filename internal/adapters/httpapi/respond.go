package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admitd/pkg/api"
)

// fail renders a domain error as JSON with a translated message.
func (s *Server) fail(c *gin.Context, err error) {
	code := api.CodeFor(err)
	c.JSON(api.StatusFor(code), api.ErrorResponse{
		Code:    code,
		Message: s.translator.T(localeFrom(c), api.MessageKey(code), nil),
	})
}

// badRequest renders a binding or validation failure, keeping the concrete
// reason from the validator.
func (s *Server) badRequest(c *gin.Context, err error) {
	msg := s.translator.T(localeFrom(c), "error.bad_request", nil)
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Code: "bad_request", Message: msg})
}
