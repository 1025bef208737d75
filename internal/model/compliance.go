package model

// CheckStatus is the outcome of one compliance check.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// CheckSeverity grades how serious a non-pass outcome is.
type CheckSeverity string

const (
	SeverityLow      CheckSeverity = "low"
	SeverityMedium   CheckSeverity = "medium"
	SeverityHigh     CheckSeverity = "high"
	SeverityCritical CheckSeverity = "critical"
)

// ComplianceCheck is the result of one independent regulatory rule.
type ComplianceCheck struct {
	Type           string            `json:"type"`
	Status         CheckStatus       `json:"status"`
	Severity       CheckSeverity     `json:"severity"`
	Message        string            `json:"message"`
	RequiredAction string            `json:"required_action,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ComplianceReport aggregates all checks for a listing. Overall is the
// worst status across checks: fail beats warn beats pass.
type ComplianceReport struct {
	Checks        []ComplianceCheck `json:"checks"`
	Overall       CheckStatus       `json:"overall"`
	CriticalCount int               `json:"critical_count"`
	HighCount     int               `json:"high_count"`
}
