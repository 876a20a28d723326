package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vishalchabra/sarathi/internal/dasha"
	"github.com/vishalchabra/sarathi/internal/flags"
	"github.com/vishalchabra/sarathi/internal/tracing"
)

var birth = time.Date(1990, time.March, 14, 6, 30, 0, 0, time.UTC)

func newRecordingService(t *testing.T, flagValues map[string]bool) (*Service, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc := NewService(Config{
		Tracer: tp.Tracer("test"),
		Flags:  flags.New(flagValues),
	})
	return svc, rec
}

func spanNamed(rec *tracetest.SpanRecorder, name string) []sdktrace.ReadOnlySpan {
	var out []sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == name {
			out = append(out, s)
		}
	}
	return out
}

func TestService_Classify(t *testing.T) {
	svc, rec := newRecordingService(t, nil)

	sector, err := svc.Classify(context.Background(), 200)
	require.NoError(t, err)
	require.Equal(t, "Vishakha", sector.Name)
	require.Len(t, spanNamed(rec, tracing.SpanTimelineSector), 1)
}

func TestService_ChartIsCached(t *testing.T) {
	svc, rec := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}

	first, err := svc.Chart(context.Background(), bc)
	require.NoError(t, err)
	second, err := svc.Chart(context.Background(), bc)
	require.NoError(t, err)

	require.Equal(t, first, second)
	stats := svc.CacheStats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)

	spans := spanNamed(rec, tracing.SpanTimelineMajors)
	require.Len(t, spans, 2)
	require.Contains(t, spans[1].Attributes(), attribute.Bool(tracing.AttrCacheHit, true))
}

func TestService_ChartReturnsPrivateSlice(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}

	first, err := svc.Chart(context.Background(), bc)
	require.NoError(t, err)
	first.Majors[0].Ruler = dasha.Mercury

	second, err := svc.Chart(context.Background(), bc)
	require.NoError(t, err)
	require.Equal(t, dasha.Venus, second.Majors[0].Ruler)
}

func TestService_CacheFlagOff(t *testing.T) {
	svc, _ := newRecordingService(t, map[string]bool{flags.FlagTimelineCache: false})
	bc := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}

	for range 3 {
		_, err := svc.Chart(context.Background(), bc)
		require.NoError(t, err)
	}
	stats := svc.CacheStats()
	require.Zero(t, stats.Hits)
	require.Zero(t, stats.Items)
}

func TestService_ChartInvalidInput(t *testing.T) {
	svc, _ := newRecordingService(t, nil)

	_, err := svc.Chart(context.Background(), BirthContext{Birth: birth, Longitude: 20, SpanYears: -1})
	require.ErrorIs(t, err, dasha.ErrInvalidInput)
	require.Zero(t, svc.CacheStats().Items)
}

func TestService_AtMatchesEngine(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 200, SpanYears: 120}
	at := birth.Add(50 * svc.Engine().YearLength())

	res, err := svc.At(context.Background(), bc, at)
	require.NoError(t, err)

	majors, err := svc.Engine().Majors(birth, 200, 120)
	require.NoError(t, err)
	require.Equal(t, dasha.Resolve(at, majors), res)
	require.Equal(t, "Mercury/Saturn/Mercury", res.Minor.Label())
}

func TestService_AtWidensSpan(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 0, SpanYears: 10}
	at := birth.Add(80 * svc.Engine().YearLength())

	res, err := svc.At(context.Background(), bc, at)
	require.NoError(t, err)
	require.NotNil(t, res.Minor)
	require.True(t, res.Major.Contains(at))
}

func TestService_AtBeforeFirstMajor(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 0, SpanYears: 120}

	res, err := svc.At(context.Background(), bc, birth.Add(-time.Hour))
	require.NoError(t, err)
	require.True(t, res.Empty())
}

func TestService_AtPastMaxSpan(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 0, SpanYears: 120}

	res, err := svc.At(context.Background(), bc, birth.Add(1000*svc.Engine().YearLength()))
	require.NoError(t, err)
	require.True(t, res.Empty())
}

func TestService_AtPathEvents(t *testing.T) {
	bc := BirthContext{Birth: birth, Longitude: 200, SpanYears: 120}

	svc, rec := newRecordingService(t, map[string]bool{flags.FlagTraceResolvePath: true})
	_, err := svc.At(context.Background(), bc, birth.Add(50*svc.Engine().YearLength()))
	require.NoError(t, err)

	spans := spanNamed(rec, tracing.SpanTimelineResolve)
	require.Len(t, spans, 1)
	var names []string
	for _, ev := range spans[0].Events() {
		names = append(names, ev.Name)
	}
	require.Equal(t, []string{
		tracing.EventMajorResolved,
		tracing.EventMediumResolved,
		tracing.EventMinorResolved,
	}, names)

	svc, rec = newRecordingService(t, nil)
	_, err = svc.At(context.Background(), bc, birth.Add(50*svc.Engine().YearLength()))
	require.NoError(t, err)
	require.Empty(t, spanNamed(rec, tracing.SpanTimelineResolve)[0].Events())
}

func TestService_Window(t *testing.T) {
	svc, rec := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 0, SpanYears: 120}
	from := birth
	to := birth.Add(10 * svc.Engine().YearLength())

	periods, err := svc.Window(context.Background(), bc, from, to, dasha.LevelMedium)
	require.NoError(t, err)
	require.NotEmpty(t, periods)
	require.Equal(t, dasha.Ketu, periods[0].Ruler)
	for _, p := range periods {
		require.True(t, p.Overlaps(from, to))
	}

	spans := spanNamed(rec, tracing.SpanTimelineWindow)
	require.Len(t, spans, 1)
	require.Contains(t, spans[0].Attributes(), attribute.Int(tracing.AttrResultCount, len(periods)))
}

func TestService_WindowEmptyRange(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 0, SpanYears: 120}

	periods, err := svc.Window(context.Background(), bc, birth.Add(time.Hour), birth, dasha.LevelMajor)
	require.NoError(t, err)
	require.Empty(t, periods)

	_, err = svc.Window(context.Background(), bc, birth, birth.Add(time.Hour), dasha.Level(7))
	require.ErrorIs(t, err, dasha.ErrInvalidInput)
}

func TestBirthContext_KeyDistinguishesInputs(t *testing.T) {
	yl := dasha.NewDefault().YearLength()
	base := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}

	other := base
	other.Longitude = 20.5
	require.NotEqual(t, base.key(yl), other.key(yl))

	other = base
	other.SpanYears = 60
	require.NotEqual(t, base.key(yl), other.key(yl))

	require.NotEqual(t, base.key(yl), base.key(yl+time.Second))
	require.Equal(t, base.key(yl), base.key(yl))
}

func TestService_RefreshOnHitSlidesExpiry(t *testing.T) {
	bc := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}
	ttl := 300 * time.Millisecond

	newSvc := func(refresh bool) *Service {
		return NewService(Config{CacheTTL: ttl, RefreshOnHit: refresh})
	}

	sliding := newSvc(true)
	fixed := newSvc(false)
	for _, svc := range []*Service{sliding, fixed} {
		_, err := svc.Chart(context.Background(), bc)
		require.NoError(t, err)
	}

	// Each lookup lands before the previous expiry but after the original one.
	time.Sleep(200 * time.Millisecond)
	for _, svc := range []*Service{sliding, fixed} {
		_, err := svc.Chart(context.Background(), bc)
		require.NoError(t, err)
	}
	time.Sleep(200 * time.Millisecond)
	for _, svc := range []*Service{sliding, fixed} {
		_, err := svc.Chart(context.Background(), bc)
		require.NoError(t, err)
	}

	require.Equal(t, uint64(2), sliding.CacheStats().Hits)
	require.Equal(t, uint64(1), fixed.CacheStats().Hits)
}

func TestService_Reset(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	bc := BirthContext{Birth: birth, Longitude: 20, SpanYears: 120}

	_, err := svc.Chart(context.Background(), bc)
	require.NoError(t, err)
	require.Equal(t, 1, svc.CacheStats().Items)

	require.NoError(t, svc.Reset(context.Background()))
	require.Zero(t, svc.CacheStats().Items)

	_, err = svc.Chart(context.Background(), bc)
	require.NoError(t, err)
	require.Equal(t, uint64(2), svc.CacheStats().Misses)
}
