package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

// Response is the standard API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 response with the created resource.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error sends an error response.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// FromError maps the domain error taxonomy onto HTTP statuses: validation
// and insufficient-points problems are the caller's fault, missing resources
// are 404, remote failures surface as 502 so the client can offer a retry.
func FromError(c *gin.Context, err error) {
	var (
		ve  *models.ValidationError
		ipe *models.InsufficientPointsError
		nfe *models.NotFoundError
		re  *models.RemoteError
	)
	switch {
	case errors.As(err, &ve):
		Error(c, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ipe):
		Error(c, http.StatusBadRequest, ipe.Error())
	case errors.As(err, &nfe):
		Error(c, http.StatusNotFound, nfe.Error())
	case errors.As(err, &re):
		Error(c, http.StatusBadGateway, re.Error())
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
}
