package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ecospin/internal/datastore"
	"ecospin/internal/pkg/exporting"
	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type groupAdmin struct {
	container *do.Injector
}

func (gr *groupAdmin) ListProofs(c echo.Context) error {
	serviceProof, err := do.Invoke[*services.ServiceProof](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	status := c.QueryParam("status")
	if status == "" {
		status = "PENDING"
	}

	proofs, err := serviceProof.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, proofs, nil)
}

func (gr *groupAdmin) ReconcileProofLogs(c echo.Context) error {
	serviceProof, err := do.Invoke[*services.ServiceProof](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	repaired, err := serviceProof.Reconcile(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]int{"repaired": repaired}, nil)
}

func (gr *groupAdmin) ExportProofsCSV(c echo.Context) error {
	_, err := ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	postgresDB, err := do.Invoke[*bun.DB](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	proofs, err := datastore.ListAllProofs(c.Request().Context(), postgresDB)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="proofs.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return exporting.WriteProofsCSV(c.Response(), proofs)
}

type oddWeightPayload struct {
	Weight int `json:"weight"`
}

func (gr *groupAdmin) UpdateODDWeight(c echo.Context) error {
	serviceODD, err := do.Invoke[*services.ServiceODD](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	oddID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload oddWeightPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	err = serviceODD.UpdateWeight(c.Request().Context(), int(oddID), payload.Weight)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	odd, err := serviceODD.GetODD(c.Request().Context(), int(oddID))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, odd, nil)
}

// RecentActivity reads the durable Postgres history, not the capped redis
// feed the public endpoint serves.
func (gr *groupAdmin) RecentActivity(c echo.Context) error {
	serviceActivity, err := do.Invoke[*services.ServiceActivity](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	activities, err := serviceActivity.History(c.Request().Context(), limit)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, activities, nil)
}

type configPayload struct {
	Value string `json:"value"`
}

func (gr *groupAdmin) UpdateConfig(c echo.Context) error {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	key := c.Param("key")
	if key == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid config key"), errorx.Invalid))
	}

	var payload configPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	err = serviceConfig.Set(c.Request().Context(), key, payload.Value)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]string{"key": key, "value": payload.Value}, nil)
}

func (gr *groupAdmin) AuditUserPoints(c echo.Context) error {
	servicePoints, err := do.Invoke[*services.ServicePoints](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	_, err = ResolveValidAdmin(c.Request().Context(), gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	userID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	audit, err := servicePoints.Audit(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, audit, nil)
}
