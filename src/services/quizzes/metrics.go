package quizzes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	groupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_groups_created_total",
		Help: "Quiz groups created",
	})

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Quiz submission attempts by outcome",
		},
		[]string{"result"},
	)
)

func observeSubmission(err error) {
	result := "accepted"
	if err != nil {
		result = "rejected"
	}
	submissionsTotal.WithLabelValues(result).Inc()
}
