package handler

import (
	"net/http"

	"ecospin/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🌱")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		s := groupSpin{cfg.Container}
		o := groupODD{cfg.Container}
		routesAPIv1ODDs := routesAPIv1.Group("/odds")
		{
			routesAPIv1ODDs.GET("", o.GetODDs)
			routesAPIv1ODDs.POST("/spin", s.Spin)
			routesAPIv1ODDs.GET("/spin/status", s.Status)
			routesAPIv1ODDs.POST("/quiz/answer", s.AnswerQuiz)
			routesAPIv1ODDs.POST("/challenge/accept", s.AcceptChallenge)
			routesAPIv1ODDs.POST("/challenge/decline", s.DeclineChallenge)
		}

		ch := groupChallenge{cfg.Container}
		routesAPIv1.GET("/challenges/:id", ch.Get)

		p := groupProof{cfg.Container}
		routesAPIv1.POST("/challenges/:id/proof", p.Submit)
		routesAPIv1.PUT("/proofs/:id/status", p.Review)
		routesAPIv1.POST("/proofs/:id/vote", p.Vote)
		routesAPIv1.GET("/proofs/me", p.Mine)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/me", u.Me)
		routesAPIv1.GET("/user/me/progress", u.Progress)
		routesAPIv1.GET("/leaderboard", u.Leaderboard)
		routesAPIv1.GET("/feed", u.Feed)

		a := groupAdmin{cfg.Container}
		routesAPIv1Admin := routesAPIv1.Group("/admin")
		{
			routesAPIv1Admin.GET("/proofs", a.ListProofs)
			routesAPIv1Admin.POST("/proofs/reconcile", a.ReconcileProofLogs)
			routesAPIv1Admin.GET("/export/proofs.csv", a.ExportProofsCSV)
			routesAPIv1Admin.PUT("/odds/:id/weight", a.UpdateODDWeight)
			routesAPIv1Admin.PUT("/config/:key", a.UpdateConfig)
			routesAPIv1Admin.GET("/activity", a.RecentActivity)
			routesAPIv1Admin.GET("/users/:id/audit", a.AuditUserPoints)
		}
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
