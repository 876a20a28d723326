package tracing

// Span names.
const (
	SpanTimelineMajors  = "timeline.majors"
	SpanTimelineResolve = "timeline.resolve"
	SpanTimelineWindow  = "timeline.window"
	SpanTimelineSector  = "timeline.classify"
)

// Span attribute keys.
const (
	AttrLongitude   = "dasha.longitude"
	AttrBirth       = "dasha.birth"
	AttrSpanYears   = "dasha.span_years"
	AttrSeedRuler   = "dasha.seed.ruler"
	AttrSector      = "dasha.sector"
	AttrMajorCount  = "dasha.majors.count"
	AttrQueryTime   = "dasha.query.time"
	AttrLevel       = "dasha.level"
	AttrResultCount = "dasha.result.count"
	AttrResolved    = "dasha.resolved"
	AttrCacheHit    = "cache.hit"
)

// Event names recorded on resolve spans, one per resolved level.
const (
	EventMajorResolved  = "major.resolved"
	EventMediumResolved = "medium.resolved"
	EventMinorResolved  = "minor.resolved"
)
