// Package api exposes a read-only HTTP view of an in-progress simulation
// run through a single uniform JSON envelope. No auth error codes are
// needed since every route here is read-only and unauthenticated.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope for every route this server serves.
type Response struct {
	Code int         `json:"code"`
	Data interface{} `json:"data,omitempty"`
	Msg  string      `json:"msg"`
}

const (
	codeSuccess = 0
	codeError   = -1
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: codeSuccess, Data: data, Msg: "ok"})
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: codeError, Msg: msg})
}
