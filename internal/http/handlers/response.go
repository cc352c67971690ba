// Package handlers provides HTTP handler implementations for the mock API.
//
// This file defines the response envelope shared by every endpoint and the
// helpers that write it. Every response, success or failure, has the shape:
//
//	{
//	  "statusCode": 404,
//	  "message": "Not Found",
//	  "description": "Patient does not exist",
//	  "data": {}
//	}
//
// statusCode mirrors the HTTP status. message is derived from the status;
// description carries request-specific detail (empty on success). data is
// an object or an array depending on the endpoint, and is never null.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/his-mockup-api/internal/http/middleware"
)

// Envelope is the uniform response body returned by all API endpoints.
type Envelope struct {
	StatusCode  int    `json:"statusCode"  example:"200"`
	Message     string `json:"message"     example:"Success"`
	Description string `json:"description" example:""`
	Data        any    `json:"data"`
}

// emptyObject and emptyList are the data payloads of failed requests.
func emptyObject() gin.H { return gin.H{} }
func emptyList() []any  { return []any{} }

// respond writes an envelope with the given HTTP status.
func respond(c *gin.Context, status int, description string, data any) {
	c.JSON(status, Envelope{
		StatusCode:  status,
		Message:     MessageFor(status),
		Description: description,
		Data:        data,
	})
}

// ok writes a 200 envelope with an empty description.
func ok(c *gin.Context, data any) {
	respond(c, http.StatusOK, "", data)
}

// fail aborts the request with an error envelope. Server errors (>=500) are
// logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, description string, data any) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("description", description).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, Envelope{
		StatusCode:  status,
		Message:     MessageFor(status),
		Description: description,
		Data:        data,
	})
}

// Fail is the exported variant of fail() with an empty object as data.
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, description string) {
	fail(c, status, description, emptyObject())
}
