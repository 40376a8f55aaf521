package handler

import (
	"errors"
	"strconv"

	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupProof struct {
	container *do.Injector
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorx.Wrap(errors.New("invalid id"), errorx.Invalid)
	}
	return id, nil
}

func (gr *groupProof) Submit(c echo.Context) error {
	serviceProof, err := do.Invoke[*services.ServiceProof](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	challengeID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	description := c.FormValue("description")
	file, err := c.FormFile("file")
	if err != nil {
		file = nil // multipart file is optional when a description is given
	}

	proof, err := serviceProof.Submit(c.Request().Context(), user, challengeID, description, file)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, proof, nil)
}

type reviewPayload struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason"`
}

func (gr *groupProof) Review(c echo.Context) error {
	serviceProof, err := do.Invoke[*services.ServiceProof](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	admin, err := ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proofID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proof, err := serviceProof.Review(c.Request().Context(), admin, proofID, payload.Status, payload.RejectionReason)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, proof, nil)
}

func (gr *groupProof) Vote(c echo.Context) error {
	serviceVote, err := do.Invoke[*services.ServiceVote](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proofID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proof, err := serviceVote.Vote(c.Request().Context(), user, proofID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, proof, nil)
}

func (gr *groupProof) Mine(c echo.Context) error {
	serviceVote, err := do.Invoke[*services.ServiceVote](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	user, err := ResolveValidUser(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proofs, err := serviceVote.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, proofs, nil)
}
