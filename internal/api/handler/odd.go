package handler

import (
	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupODD struct {
	container *do.Injector
}

func (gr *groupODD) GetODDs(c echo.Context) error {
	serviceODD, err := do.Invoke[*services.ServiceODD](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	odds, err := serviceODD.GetActiveODDs(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, odds, nil)
}
