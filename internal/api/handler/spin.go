package handler

import (
	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSpin struct {
	container *do.Injector
}

func (gr *groupSpin) Spin(c echo.Context) error {
	serviceSpin, err := do.Invoke[*services.ServiceSpin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := serviceSpin.Spin(c.Request().Context(), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupSpin) Status(c echo.Context) error {
	serviceSpin, err := do.Invoke[*services.ServiceSpin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	status, err := serviceSpin.Status(c.Request().Context(), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, status, nil)
}

func (gr *groupSpin) AnswerQuiz(c echo.Context) error {
	serviceQuiz, err := do.Invoke[*services.ServiceQuiz](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload services.QuizAnswer
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := serviceQuiz.Answer(c.Request().Context(), user, payload)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupSpin) AcceptChallenge(c echo.Context) error {
	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	pending, err := serviceChallenge.Accept(c.Request().Context(), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, pending, nil)
}

func (gr *groupSpin) DeclineChallenge(c echo.Context) error {
	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	pending, err := serviceChallenge.Decline(c.Request().Context(), user)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, pending, nil)
}
