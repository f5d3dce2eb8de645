package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spinmall/backend/pkg/errorx"
)

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func writeResponse(gctx *gin.Context, data any, err error) {
	if gctx.Writer.Written() {
		return
	}

	if err != nil {
		var xerr errorx.Error
		if !errors.As(err, &xerr) {
			xerr = errorx.Unknown
		}

		gctx.JSON(http.StatusOK, response{Code: int(xerr.Code), Error: xerr.Message})
		return
	}

	gctx.JSON(http.StatusOK, response{Code: 0, Data: data})
}

func badRequest() error {
	return errorx.New(errorx.BadRequest, "Cannot bind the request")
}
