package eastrenfrewshire

import (
	"bindays-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("bindays.internal.scrapers.eastrenfrewshire")

const (
	report_source_fetch       = "source.fetch"
	report_source_no_schedule = "source.no-schedule"
	report_source_collections = "source.collections"
)
