package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context, c *gin.Context) {
	if err := xcontext.Error(ctx); err != nil {
		c.JSON(http.StatusOK, newErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, newResponse(xcontext.GetResponse(ctx)))
}
