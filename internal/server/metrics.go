package server

import "github.com/prometheus/client_golang/prometheus"

// Submission outcome labels.
const (
	statusSuccess          = "success"
	statusValidationFailed = "validation_failed"
	statusBadRequest       = "bad_request"
	statusSinkError        = "sink_error"
)

// Metrics counts sign-up attempts by outcome.
type Metrics struct {
	Submissions *prometheus.CounterVec
}

// NewMetrics registers the sign-up counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Sign-up submission attempts by outcome.",
		}, []string{"status"}),
	}
	if reg != nil {
		if err := reg.Register(m.Submissions); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) IncSubmission(status string) {
	if m == nil || m.Submissions == nil {
		return
	}

	m.Submissions.WithLabelValues(status).Inc()
}
