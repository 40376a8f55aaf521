package handler

import (
	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupChallenge struct {
	container *do.Injector
}

func (gr *groupChallenge) Get(c echo.Context) error {
	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	challengeID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	challenge, err := serviceChallenge.GetChallenge(c.Request().Context(), challengeID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, challenge, nil)
}
