package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics so that components can be
// tested for the reports they make.
//
// Ids passed to ReportBroken, ReportWarning and ReportCount identify a
// component and the method of it that reported, formatted like
// `<component>.<method>` in lowercase with dashes between words
// (ex. `source.submit-address`). They are usually declared as `report_...`
// constants at the top of the package that uses them.
type API interface {
	// ReportBroken reports a component that has broken in a way that should be addressed.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that does not necessarily indicate brokenness, but may be subject to investigation.
	ReportWarning(id string, params ...any)

	// ReportDebug reports some debug information that will be ignored in production.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of a specific event at the current time, these counts should
	// not be summed but interpreted as points of data over time.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id reported through it with a namespace, kind of
// like a "sub" logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}

// NopAPI discards every report.
type NopAPI struct{}

func (NopAPI) ReportBroken(id string, params ...any) {}

func (NopAPI) ReportWarning(id string, params ...any) {}

func (NopAPI) ReportDebug(msg string, params ...any) {}

func (NopAPI) ReportCount(id string, count int64) {}
