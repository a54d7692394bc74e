package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError replies with the client-safe part of err. Errors that are not
// AppErrors get the generic status text.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	resp := APIError{Code: utils.CodeOf(err), Message: http.StatusText(status)}

	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		resp.Message = ae.Message
	}
	c.JSON(status, resp)
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
