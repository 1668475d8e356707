package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/cache"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	"github.com/go-playground/assert/v2"
)

type fakeSource struct {
	mu      sync.Mutex
	titles  []string
	calls   int
	symbols []string
	limits  []int
}

func (f *fakeSource) FetchHeadlines(ctx context.Context, symbol string, limit int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.symbols = append(f.symbols, symbol)
	f.limits = append(f.limits, limit)
	return f.titles
}

type fakeClassifier map[string]model.Sentiment

func (f fakeClassifier) Classify(text string) model.Sentiment {
	if s, ok := f[text]; ok {
		return s
	}
	return model.SentimentNeutral
}

type failingCache struct {
	lookupErr error
	storeErr  error
	stores    int
}

func (f *failingCache) Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error) {
	return nil, f.lookupErr
}

func (f *failingCache) Store(ctx context.Context, result *model.SentimentResult) error {
	f.stores++
	return f.storeErr
}

var tcsTitles = []string{"TCS profit soars", "TCS faces lawsuit", "TCS stock steady"}

var tcsClassifier = fakeClassifier{
	"TCS profit soars":  model.SentimentPositive,
	"TCS faces lawsuit": model.SentimentNegative,
	"TCS stock steady":  model.SentimentNeutral,
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newTestService(c Cache, src HeadlineSource) (*Service, *clock) {
	clk := &clock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	svc := NewService(c, src, tcsClassifier, Config{})
	svc.now = clk.Now
	return svc, clk
}

func TestAnalyze_EndToEnd(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, clk := newTestService(cache.NewMemoryCache(0), src)

	res, err := svc.Analyze(context.Background(), "TCS")

	assert.Equal(t, nil, err)
	assert.Equal(t, "TCS", res.Symbol)
	assert.Equal(t, true, clk.now.Equal(res.Timestamp))
	assert.Equal(t, model.SentimentPositive, res.OverallSentiment)
	assert.Equal(t, []model.Headline{
		{Title: "TCS profit soars", Sentiment: model.SentimentPositive},
		{Title: "TCS faces lawsuit", Sentiment: model.SentimentNegative},
		{Title: "TCS stock steady", Sentiment: model.SentimentNeutral},
	}, res.Headlines)
	assert.Equal(t, []int{DefaultHeadlineLimit}, src.limits)
}

func TestAnalyze_CacheHitWithinWindow(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, clk := newTestService(cache.NewMemoryCache(0), src)

	first, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)

	clk.now = clk.now.Add(9 * time.Minute)
	src.titles = []string{"TCS something else entirely"}

	second, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, first.Headlines, second.Headlines)
	assert.Equal(t, first.OverallSentiment, second.OverallSentiment)
	assert.Equal(t, true, first.Timestamp.Equal(second.Timestamp))
}

func TestAnalyze_RefetchAfterWindow(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, clk := newTestService(cache.NewMemoryCache(0), src)

	_, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)

	clk.now = clk.now.Add(DefaultFreshnessWindow + time.Second)

	res, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, true, clk.now.Equal(res.Timestamp))
}

func TestAnalyze_ExactlyAtWindowIsStale(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, clk := newTestService(cache.NewMemoryCache(0), src)

	_, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)

	clk.now = clk.now.Add(DefaultFreshnessWindow)

	_, err = svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, src.calls)
}

func TestAnalyze_SymbolNormalization(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, _ := newTestService(cache.NewMemoryCache(0), src)

	lower, err := svc.Analyze(context.Background(), "tcs")
	assert.Equal(t, nil, err)
	upper, err := svc.Analyze(context.Background(), " TCS ")
	assert.Equal(t, nil, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, []string{"TCS"}, src.symbols)
	assert.Equal(t, "TCS", lower.Symbol)
	assert.Equal(t, lower.ID, upper.ID)
}

func TestAnalyze_NoHeadlines(t *testing.T) {
	c := cache.NewMemoryCache(0)
	src := &fakeSource{titles: []string{}}
	svc, clk := newTestService(c, src)

	res, err := svc.Analyze(context.Background(), "TCS")

	assert.Equal(t, true, errors.Is(err, ErrNoHeadlines))
	assert.Equal(t, true, res == nil)

	cached, err := c.Lookup(context.Background(), "TCS", clk.now.Add(-time.Hour))
	assert.Equal(t, nil, err)
	assert.Equal(t, true, cached == nil)
}

func TestAnalyze_NoHeadlinesIsNotCached(t *testing.T) {
	src := &fakeSource{titles: nil}
	svc, _ := newTestService(cache.NewMemoryCache(0), src)

	_, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, true, errors.Is(err, ErrNoHeadlines))

	src.titles = tcsTitles
	res, err := svc.Analyze(context.Background(), "TCS")
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(res.Headlines))
	assert.Equal(t, 2, src.calls)
}

func TestAnalyze_SQLiteNoHeadlinesLeavesNoRecord(t *testing.T) {
	ctx := context.Background()
	c, err := cache.OpenSQLite(filepath.Join(t.TempDir(), "pipeline.db"))
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	defer c.Close()

	src := &fakeSource{titles: nil}
	svc, clk := newTestService(c, src)

	_, err = svc.Analyze(ctx, "tcs")
	assert.Equal(t, true, errors.Is(err, ErrNoHeadlines))

	history, err := c.History(ctx, "TCS", 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(history))

	src.titles = tcsTitles
	first, err := svc.Analyze(ctx, "tcs")
	assert.Equal(t, nil, err)

	clk.now = clk.now.Add(5 * time.Minute)
	second, err := svc.Analyze(ctx, "TCS")
	assert.Equal(t, nil, err)

	assert.Equal(t, 2, src.calls)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, true, first.Timestamp.Equal(second.Timestamp))
	assert.Equal(t, first.Headlines, second.Headlines)

	history, err = c.History(ctx, "TCS", 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(history))
}

func TestAnalyze_EmptySymbol(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, _ := newTestService(cache.NewMemoryCache(0), src)

	_, err := svc.Analyze(context.Background(), "   ")

	assert.Equal(t, true, errors.Is(err, ErrInvalidSymbol))
	assert.Equal(t, 0, src.calls)
}

func TestAnalyze_StoreFailureStillReturnsResult(t *testing.T) {
	c := &failingCache{storeErr: errors.New("disk full")}
	src := &fakeSource{titles: tcsTitles}
	svc, _ := newTestService(c, src)

	res, err := svc.Analyze(context.Background(), "TCS")

	assert.Equal(t, nil, err)
	assert.Equal(t, model.SentimentPositive, res.OverallSentiment)
	assert.Equal(t, 1, c.stores)
}

func TestAnalyze_LookupFailureFetches(t *testing.T) {
	c := &failingCache{lookupErr: errors.New("DB down")}
	src := &fakeSource{titles: tcsTitles}
	svc, _ := newTestService(c, src)

	res, err := svc.Analyze(context.Background(), "TCS")

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(res.Headlines))
	assert.Equal(t, 1, src.calls)
}

func TestAnalyze_ConcurrentSymbols(t *testing.T) {
	src := &fakeSource{titles: tcsTitles}
	svc, _ := newTestService(cache.NewMemoryCache(0), src)

	symbols := []string{"TCS", "INFY", "WIPRO", "HDFCBANK"}
	var wg sync.WaitGroup
	errs := make([]error, len(symbols))
	for i, s := range symbols {
		wg.Add(1)
		go func(i int, s string) {
			defer wg.Done()
			_, errs[i] = svc.Analyze(context.Background(), s)
		}(i, s)
	}
	wg.Wait()

	for _, err := range errs {
		assert.Equal(t, nil, err)
	}
	assert.Equal(t, len(symbols), src.calls)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(cache.NewMemoryCache(0), &fakeSource{}, tcsClassifier, Config{HeadlineLimit: -1})

	assert.Equal(t, DefaultHeadlineLimit, svc.cfg.HeadlineLimit)
	assert.Equal(t, DefaultFreshnessWindow, svc.cfg.FreshnessWindow)
}
