package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorTable maps response status codes to fixed bodies. Statuses not listed
// fall back to a generic body built from the status text.
var errorTable = map[int]errorBody{
	http.StatusNotFound: {
		Error:   "Not Found",
		Message: "The requested resource was not found",
	},
	http.StatusMethodNotAllowed: {
		Error:   "Method Not Allowed",
		Message: "The requested method is not allowed on this resource",
	},
	http.StatusBadRequest: {
		Error:   "Bad Request",
		Message: "The request could not be understood",
	},
	http.StatusInternalServerError: {
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred",
	},
}

// httpErrorHandler translates handler errors into the fixed JSON bodies
// above. Errors that are not *echo.HTTPError become 500s.
func httpErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		body, ok := errorTable[code]
		if !ok {
			body = errorBody{
				Error:   http.StatusText(code),
				Message: "An unexpected error occurred",
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Int("status", code).
				Str("request_id", RequestID(c)).
				Msg("request failed")
		}

		// Error bodies are byte-exact regardless of Echo's debug-mode
		// pretty-printing, so marshal compactly and send the blob.
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else if blob, merr := json.Marshal(body); merr != nil {
			werr = merr
		} else {
			werr = c.JSONBlob(code, blob)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}
