package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// HeaderXRequestID and HeaderXProcessTime stamp every response.
	HeaderXRequestID   = "X-Request-ID"
	HeaderXProcessTime = "X-Process-Time"

	requestIDContextKey = "request_id"
)

// RequestLogger assigns each request a fresh identifier, logs arrival and
// completion, and stamps the response with X-Request-ID and X-Process-Time.
// Both headers are registered before the downstream call: handlers commit the
// response while they run, so X-Process-Time is computed in a Before hook that
// fires just ahead of the header flush. The completion log is emitted even
// when the downstream handler returns an error; the error itself is
// propagated untouched.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			start := time.Now()

			req := c.Request()
			res := c.Response()
			url := requestURL(c)
			c.Set(requestIDContextKey, requestID)
			res.Header().Set(HeaderXRequestID, requestID)
			res.Before(func() {
				res.Header().Set(HeaderXProcessTime,
					strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64))
			})

			log.Info().
				Str("request_id", requestID).
				Str("method", req.Method).
				Str("url", url).
				Str("user_agent", req.UserAgent()).
				Msg("request started")

			err := next(c)

			elapsed := time.Since(start)

			log.Info().
				Str("request_id", requestID).
				Str("method", req.Method).
				Str("url", url).
				Int("status", responseStatus(c, err)).
				Str("process_time", fmt.Sprintf("%.3f", elapsed.Seconds())).
				Msg("request completed")

			return err
		}
	}
}

// requestURL reconstructs the full request URL; server-side request URLs
// carry only the path and query.
func requestURL(c echo.Context) string {
	req := c.Request()
	return c.Scheme() + "://" + req.Host + req.RequestURI
}

// responseStatus resolves the status for the completion log. For errored,
// uncommitted responses the framework has not written a status code yet.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

// RequestID returns the identifier assigned by RequestLogger, or "" outside it.
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDContextKey).(string)
	return id
}

// Telemetry wraps each request in a New Relic transaction. With a nil
// application it is a passthrough.
func Telemetry(app *newrelic.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if app == nil {
				return next(c)
			}
			txn := app.StartTransaction(c.Request().Method + " " + c.Path())
			defer txn.End()

			txn.SetWebRequestHTTP(c.Request())
			c.Response().Writer = txn.SetWebResponse(c.Response().Writer)
			c.SetRequest(c.Request().WithContext(newrelic.NewContext(c.Request().Context(), txn)))

			err := next(c)
			if err != nil {
				txn.NoticeError(err)
			}
			return err
		}
	}
}
