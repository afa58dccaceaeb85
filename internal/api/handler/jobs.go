package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/ohadbenami/gaya-daily-reports/internal/scheduler"
	"github.com/ohadbenami/gaya-daily-reports/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RunReportJob triggers one report job by name. The run happens in the
// background; the response only confirms the trigger was accepted.
func RunReportJob(sched *scheduler.ReportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "report job name not specified", nil)
			return
		}

		if err := sched.TriggerManualRun(name); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, err.Error(), map[string]any{
				"known_jobs": sched.JobNames(),
			})
			return
		}

		logrus.WithField("job", name).Info("report job triggered via admin API")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "report job triggered",
			"job":     name,
		})
	}
}

// GetJobStatus returns scheduling state and last-run bookkeeping per job.
func GetJobStatus(sched *scheduler.ReportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sched.GetStatus())
	}
}
