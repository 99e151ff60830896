package server

import (
	"strings"

	"github.com/alya-io/alya/internal/config"
	"github.com/labstack/echo/v4"
)

// openapiDocument is the subset of OpenAPI 3 this service emits.
type openapiDocument struct {
	OpenAPI string              `json:"openapi"`
	Info    openapiInfo         `json:"info"`
	Paths   map[string]pathItem `json:"paths"`
}

type openapiInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type pathItem map[string]operation

type operation struct {
	OperationID string                     `json:"operationId"`
	Responses   map[string]operationResult `json:"responses"`
}

type operationResult struct {
	Description string `json:"description"`
}

// buildOpenAPI generates the schema document from the route table registered
// so far. The document itself is excluded by building it before its own route
// is added.
func buildOpenAPI(cfg *config.Settings, e *echo.Echo) openapiDocument {
	doc := openapiDocument{
		OpenAPI: "3.0.3",
		Info:    openapiInfo{Title: cfg.ProjectName, Version: cfg.Version},
		Paths:   make(map[string]pathItem),
	}
	for _, r := range e.Routes() {
		item, ok := doc.Paths[r.Path]
		if !ok {
			item = make(pathItem)
			doc.Paths[r.Path] = item
		}
		item[strings.ToLower(r.Method)] = operation{
			OperationID: operationID(r.Method, r.Path),
			Responses: map[string]operationResult{
				"200": {Description: "Successful Response"},
			},
		}
	}
	return doc
}

func operationID(method, path string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		p = "root"
	}
	p = strings.NewReplacer("/", "_", ":", "", ".", "_").Replace(p)
	return strings.ToLower(method) + "_" + p
}
