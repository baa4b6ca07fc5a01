package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded means searches are served by the catalog fallback only.
	Degraded Status = "degraded"
	// Unhealthy means the catalog is down and nothing can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckDisabled indicates a component switched off for the process lifetime.
	CheckDisabled CheckResult = "disabled"
)

// Component names in Report.Checks.
const (
	ComponentCatalog = "catalog"
	ComponentIndex   = "search_index"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog DBPinger
	index   IndexGate
}

// New creates a Service. index can be nil.
func New(catalog DBPinger, index IndexGate) *Service {
	return &Service{catalog: catalog, index: index}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	status := Healthy

	if err := s.catalog.Ping(ctx); err != nil {
		checks[ComponentCatalog] = CheckError
		status = Unhealthy
	} else {
		checks[ComponentCatalog] = CheckOK
	}

	if s.index != nil {
		if s.index.Ready(ctx) {
			checks[ComponentIndex] = CheckOK
		} else {
			checks[ComponentIndex] = CheckDisabled
			if status == Healthy {
				status = Degraded
			}
		}
	}

	return Report{Status: status, Checks: checks}
}
