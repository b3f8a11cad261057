package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationTransitions counts request status transitions by edge
	VerificationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gharmitra_verification_transitions_total",
		Help: "Verification request status transitions",
	}, []string{"from", "to"})

	// AdminDecisions counts admin review outcomes
	AdminDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gharmitra_admin_decisions_total",
		Help: "Admin verification decisions",
	}, []string{"decision"})

	// OTPRequests counts OTP issuance by role
	OTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gharmitra_otp_requests_total",
		Help: "OTP codes issued",
	}, []string{"role"})

	// ExpirySweeps counts properties downgraded by the expiry worker
	ExpirySweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gharmitra_verification_expired_total",
		Help: "Verification requests marked expired by the sweep worker",
	})
)
