package telemetry

import "sync"

type Report struct {
	// Kind is one of "broken", "warning", "debug" or "count".
	Kind   string
	Id     string
	Params []any
}

// RecorderAPI keeps every report in memory, it is meant for tests that
// assert on what a component reported.
type RecorderAPI struct {
	lock    sync.Mutex
	reports []Report
}

func NewRecorderAPI() *RecorderAPI {
	return &RecorderAPI{}
}

func (r *RecorderAPI) record(kind, id string, params []any) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, Report{Kind: kind, Id: id, Params: params})
}

func (r *RecorderAPI) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r *RecorderAPI) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r *RecorderAPI) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r *RecorderAPI) ReportCount(id string, count int64) {
	r.record("count", id, []any{count})
}

// Reports returns a copy of the reports of a given kind, or all of them if
// kind is empty.
func (r *RecorderAPI) Reports(kind string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	var out []Report
	for _, report := range r.reports {
		if kind != "" && report.Kind != kind {
			continue
		}
		out = append(out, report)
	}
	return out
}

// Has returns true if a report of the given kind and id was made.
func (r *RecorderAPI) Has(kind, id string) bool {
	for _, report := range r.Reports(kind) {
		if report.Id == id {
			return true
		}
	}
	return false
}
