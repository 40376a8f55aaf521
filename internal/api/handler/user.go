package handler

import (
	"strconv"

	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

func (gr *groupUser) Me(c echo.Context) error {
	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	rank, err := serviceLeaderboard.Rank(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	user.Rank = rank

	return httpx.RestAbort(c, user, nil)
}

func (gr *groupUser) Progress(c echo.Context) error {
	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	progress, err := serviceUser.GetProgress(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, progress, nil)
}

func (gr *groupUser) Leaderboard(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	entries, err := serviceLeaderboard.Top(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, entries, nil)
}

func (gr *groupUser) Feed(c echo.Context) error {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := serviceActivity.Feed(c.Request().Context(), limit)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, events, nil)
}
