// Package timeline is the caller-facing layer over the dasha engine. It owns
// everything the engine deliberately leaves out: memoizing Major sequences
// per birth context, widening the span when a query falls past it, tracing
// and logging.
package timeline

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vishalchabra/sarathi/internal/cachemanager"
	"github.com/vishalchabra/sarathi/internal/dasha"
	"github.com/vishalchabra/sarathi/internal/flags"
	"github.com/vishalchabra/sarathi/internal/log"
	"github.com/vishalchabra/sarathi/internal/tracing"
)

// MaxSpanYears bounds automatic span widening.
const MaxSpanYears = 240.0

// BirthContext identifies one chart: the birth instant, the Moon's sidereal
// longitude at birth, and how many years past birth to generate.
type BirthContext struct {
	Birth     time.Time
	Longitude float64
	SpanYears float64
}

func (b BirthContext) key(yearLength time.Duration) string {
	return fmt.Sprintf("%d|%s|%s|%d",
		b.Birth.UnixNano(),
		strconv.FormatFloat(b.Longitude, 'g', -1, 64),
		strconv.FormatFloat(b.SpanYears, 'g', -1, 64),
		int64(yearLength),
	)
}

// Config wires a Service. Zero fields get defaults: the default engine, a
// no-op tracer, default flags and an in-memory cache.
type Config struct {
	Engine   *dasha.Engine
	Tracer   trace.Tracer
	Flags    *flags.Registry
	Cache    cachemanager.CacheManager[string, dasha.Chart]
	CacheTTL time.Duration

	// RefreshOnHit extends a cached chart's TTL every time it is served.
	RefreshOnHit bool
}

// Service answers chart, point and window queries.
type Service struct {
	engine  *dasha.Engine
	tracer  trace.Tracer
	flags   *flags.Registry
	cache   cachemanager.CacheManager[string, dasha.Chart]
	charts  *cachemanager.ReadThroughCache[string, dasha.Chart, BirthContext]
	ttl     time.Duration
	refresh bool
}

// NewService builds a Service from cfg.
func NewService(cfg Config) *Service {
	s := &Service{
		engine:  cfg.Engine,
		tracer:  cfg.Tracer,
		flags:   cfg.Flags,
		cache:   cfg.Cache,
		ttl:     cfg.CacheTTL,
		refresh: cfg.RefreshOnHit,
	}
	if s.engine == nil {
		s.engine = dasha.NewDefault()
	}
	if s.tracer == nil {
		s.tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if s.flags == nil {
		s.flags = flags.New(nil)
	}
	if s.cache == nil {
		s.cache = cachemanager.NewInMemoryCacheManager[string, dasha.Chart](
			"charts", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	if s.ttl <= 0 {
		s.ttl = cachemanager.DefaultExpiration
	}

	skipCache := !s.flags.Enabled(flags.FlagTimelineCache)
	s.charts = cachemanager.NewReadThroughCache(s.cache, s.computeChart, skipCache)
	return s
}

// Engine returns the underlying engine.
func (s *Service) Engine() *dasha.Engine {
	return s.engine
}

// CacheStats reports timeline cache usage.
func (s *Service) CacheStats() cachemanager.Stats {
	return s.cache.Stats()
}

// Reset drops every cached chart.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.cache.Flush(ctx); err != nil {
		return fmt.Errorf("flushing timeline cache: %w", err)
	}
	return nil
}

// Classify reports the nakshatra for a longitude.
func (s *Service) Classify(ctx context.Context, longitude float64) (dasha.Sector, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanTimelineSector,
		trace.WithAttributes(attribute.Float64(tracing.AttrLongitude, longitude)))
	defer span.End()

	sector, err := dasha.Classify(longitude)
	if err != nil {
		recordError(span, err)
		return dasha.Sector{}, err
	}
	span.SetAttributes(attribute.String(tracing.AttrSector, sector.Name))
	return sector, nil
}

// Chart returns the seed and Major sequence for bc, from cache when the
// timeline-cache flag is on.
func (s *Service) Chart(ctx context.Context, bc BirthContext) (dasha.Chart, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanTimelineMajors, trace.WithAttributes(
		attribute.String(tracing.AttrBirth, bc.Birth.UTC().Format(time.RFC3339)),
		attribute.Float64(tracing.AttrLongitude, bc.Longitude),
		attribute.Float64(tracing.AttrSpanYears, bc.SpanYears),
	))
	defer span.End()

	get := s.charts.Get
	if s.refresh {
		get = s.charts.GetWithRefresh
	}
	chart, hit, err := get(ctx, bc.key(s.engine.YearLength()), bc, s.ttl)
	if err != nil {
		recordError(span, err)
		log.ErrorErr(log.CatTimeline, "chart generation failed", err,
			"longitude", bc.Longitude, "span_years", bc.SpanYears)
		return dasha.Chart{}, err
	}
	span.SetAttributes(
		attribute.Bool(tracing.AttrCacheHit, hit),
		attribute.String(tracing.AttrSeedRuler, chart.Seed.Ruler.String()),
		attribute.Int(tracing.AttrMajorCount, len(chart.Majors)),
	)

	// Cached charts are shared; hand out a private slice.
	chart.Majors = slices.Clone(chart.Majors)
	return chart, nil
}

func (s *Service) computeChart(ctx context.Context, bc BirthContext) (dasha.Chart, error) {
	chart, err := s.engine.Chart(bc.Birth, bc.Longitude, bc.SpanYears)
	if err != nil {
		return dasha.Chart{}, fmt.Errorf("generating chart: %w", err)
	}
	log.Debug(log.CatEngine, "generated majors",
		"seed", chart.Seed.Ruler, "used_years", chart.Seed.UsedYears, "count", len(chart.Majors))
	return chart, nil
}

// At resolves the Major, Medium and Minor periods containing t. If t lies
// beyond the requested span the span is widened to cover it, up to
// MaxSpanYears. An empty Resolution means t precedes the first Major period
// or lies past MaxSpanYears.
func (s *Service) At(ctx context.Context, bc BirthContext, t time.Time) (dasha.Resolution, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanTimelineResolve, trace.WithAttributes(
		attribute.String(tracing.AttrQueryTime, t.UTC().Format(time.RFC3339)),
	))
	defer span.End()

	chart, err := s.Chart(ctx, s.widen(bc, t))
	if err != nil {
		recordError(span, err)
		return dasha.Resolution{}, err
	}

	res := dasha.Resolve(t, chart.Majors)
	span.SetAttributes(attribute.Bool(tracing.AttrResolved, !res.Empty()))
	if s.flags.Enabled(flags.FlagTraceResolvePath) {
		addPathEvents(span, res)
	}
	if res.Empty() {
		log.Warn(log.CatTimeline, "instant outside generated span", "at", t, "birth", bc.Birth)
	}
	return res, nil
}

// Window lists the periods at level intersecting [from, to), widening the
// span to reach to when needed.
func (s *Service) Window(ctx context.Context, bc BirthContext, from, to time.Time, level dasha.Level) ([]dasha.Period, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanTimelineWindow, trace.WithAttributes(
		attribute.String(tracing.AttrLevel, level.String()),
	))
	defer span.End()

	chart, err := s.Chart(ctx, s.widen(bc, to))
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	periods, err := dasha.Window(chart.Majors, from, to, level)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("listing %s periods: %w", level, err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(periods)))
	return periods, nil
}

// widen returns bc with its span stretched so t is covered, capped at
// MaxSpanYears.
func (s *Service) widen(bc BirthContext, t time.Time) BirthContext {
	needed := float64(t.Sub(bc.Birth)) / float64(s.engine.YearLength())
	if needed <= bc.SpanYears {
		return bc
	}
	widened := math.Min(math.Ceil(needed), MaxSpanYears)
	if widened > bc.SpanYears {
		log.Debug(log.CatTimeline, "widening span", "from", bc.SpanYears, "to", widened)
		bc.SpanYears = widened
	}
	return bc
}

func addPathEvents(span trace.Span, res dasha.Resolution) {
	levels := []struct {
		name string
		p    *dasha.Period
	}{
		{tracing.EventMajorResolved, res.Major},
		{tracing.EventMediumResolved, res.Medium},
		{tracing.EventMinorResolved, res.Minor},
	}
	for _, l := range levels {
		if l.p == nil {
			return
		}
		span.AddEvent(l.name, trace.WithAttributes(
			attribute.String("ruler", l.p.Ruler.String()),
			attribute.String("start", l.p.Start.UTC().Format(time.RFC3339)),
		))
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
