package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QuestionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bulletin", Name: "questions_created_total", Help: "Number of questions created."},
	)
	AnswersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bulletin", Name: "answers_created_total", Help: "Number of answers created."},
	)
	Votes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bulletin", Name: "votes_total", Help: "Vote attempts by target and result."},
		[]string{"target", "result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bulletin", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bulletin", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(QuestionsCreated)
	reg.MustRegister(AnswersCreated)
	reg.MustRegister(Votes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
