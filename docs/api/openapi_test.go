package api_test

import (
	"context"
	"regexp"
	"testing"

	"church-cms/docs/api"
	"church-cms/internal/adapter/http/handler"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ginParam = regexp.MustCompile(`:([A-Za-z]+)`)

func loadDoc(t *testing.T) *openapi3.T {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

func TestOpenAPI_Valid(t *testing.T) {
	doc := loadDoc(t)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.NotNil(t, doc.Components.SecuritySchemes["bearerAuth"])
}

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	doc := loadDoc(t)

	r := handler.SetupRouter(handler.RouterDeps{Logger: zerolog.Nop()})
	for _, route := range r.Routes() {
		path := ginParam.ReplaceAllString(route.Path, "{$1}")
		item := doc.Paths.Value(path)
		if !assert.NotNil(t, item, "undocumented path %s", path) {
			continue
		}
		assert.NotNil(t, item.GetOperation(route.Method), "undocumented operation %s %s", route.Method, path)
	}
}
