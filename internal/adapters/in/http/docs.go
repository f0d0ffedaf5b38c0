package http

import (
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	echoSwagger "github.com/swaggo/echo-swagger"
)

type openAPIDoc []byte

func (d openAPIDoc) ReadDoc() string {
	return string(d)
}

var registerDocOnce sync.Once

// RegisterDocs serves the Swagger UI for the given OpenAPI document under
// /swagger/.
func RegisterDocs(e *echo.Echo, doc []byte) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc(doc))
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
