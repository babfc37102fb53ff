package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	closers := router.closers

	return func(c *gin.Context) {
		ctx := xcontext.WithHTTPRequest(router.ctx, c.Request)

		ctx = serve(ctx, c, method, befores, handler)

		writeResponse(ctx, c)
		for _, closer := range closers {
			closer(ctx)
		}
	}
}

func serve[Request, Response any](
	ctx context.Context,
	c *gin.Context,
	method string,
	befores []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) context.Context {
	for _, before := range befores {
		newCtx, err := before(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err)
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	var req Request
	if err := bind(c, method, &req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request: %v", err))
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	return xcontext.WithResponse(ctx, resp)
}

// bind decodes query parameters for GET and either a multipart form or a
// json body for POST. An empty POST body is accepted.
func bind(c *gin.Context, method string, req any) error {
	switch method {
	case http.MethodGet:
		return c.ShouldBindQuery(req)
	case http.MethodPost:
		contentType := c.ContentType()
		if strings.HasPrefix(contentType, binding.MIMEMultipartPOSTForm) {
			return c.ShouldBindWith(req, binding.FormMultipart)
		}

		if c.Request.ContentLength == 0 {
			return nil
		}

		return c.ShouldBindJSON(req)
	default:
		return errorx.New(errorx.BadRequest, "Unsupported method %s", method)
	}
}
