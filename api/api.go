// Package api embeds the OpenAPI document of the HTTP surface and serves it
// to the swagger UI.
package api

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var document []byte

// Document returns the raw OpenAPI YAML.
func Document() []byte {
	return document
}

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}

// Route is one documented operation in echo path syntax.
type Route struct {
	Method      string
	Path        string
	OperationID string
}

// Routes lists every operation of doc with the first server URL as prefix,
// sorted by path then method.
func Routes(doc *openapi3.T) []Route {
	prefix := ""
	if len(doc.Servers) > 0 {
		prefix = strings.TrimSuffix(doc.Servers[0].URL, "/")
	}

	var routes []Route
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			routes = append(routes, Route{
				Method:      method,
				Path:        prefix + echoPath(path),
				OperationID: op.OperationID,
			})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// echoPath turns /orders/{orderId} into /orders/:orderId.
func echoPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			parts[i] = ":" + strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}")
		}
	}
	return strings.Join(parts, "/")
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterSwagger publishes the document under swag.Name so that
// echo-swagger can serve it at /swagger/doc.json. Safe to call repeatedly.
func RegisterSwagger() error {
	registerOnce.Do(func() {
		doc, err := Load()
		if err != nil {
			registerErr = err
			return
		}

		raw, err := doc.MarshalJSON()
		if err != nil {
			registerErr = fmt.Errorf("encode openapi document: %w", err)
			return
		}

		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return registerErr
}
