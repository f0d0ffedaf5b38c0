package http

import (
	"saleedit/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
)

// NewEcho builds the echo instance serving s. Requests under /api/v1 are
// validated against doc before reaching the handlers.
func NewEcho(s *Server, doc []byte, log *logger.Logger) (*echo.Echo, error) {
	spec, err := LoadSpec(doc)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(spec)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.WARN)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	RegisterDocs(e, doc)
	s.Register(e, validator)

	return e, nil
}
