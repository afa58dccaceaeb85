package handler

import (
	"net/http"

	"github.com/ohadbenami/gaya-daily-reports/internal/api/handler/router"
	"github.com/ohadbenami/gaya-daily-reports/internal/scheduler"
	"github.com/ohadbenami/gaya-daily-reports/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Jobs exposes the report job admin endpoints, all behind the static admin
// token.
func Jobs(sched *scheduler.ReportScheduler, adminToken string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/jobs/status",
			Method:      http.MethodGet,
			Handler:     GetJobStatus(sched),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminAuth(adminToken)},
		},
		{
			Path:        "/v1/jobs/:name/run",
			Method:      http.MethodPost,
			Handler:     RunReportJob(sched),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminAuth(adminToken)},
		},
	}
}
