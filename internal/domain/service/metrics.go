package service

import "time"

// MetricsRecorder records business metrics.
type MetricsRecorder interface {
	PortalDecision(portal, decision string)
	ApprovalOutcome(action, outcome string)
	Upload(bucket, outcome string)
	ObserveRefetch(d time.Duration)
}
