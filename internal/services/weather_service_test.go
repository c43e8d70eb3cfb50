package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/namefreezers/weather-lookup-api/internal/repository"
	"github.com/namefreezers/weather-lookup-api/internal/weather"
	"github.com/namefreezers/weather-lookup-api/internal/weather/types"
)

// stubFetcher returns doc (or err) and records the locations it was asked for.
type stubFetcher struct {
	mu        sync.Mutex
	doc       types.Document
	err       error
	locations []string
}

func (f *stubFetcher) FetchCurrent(_ context.Context, location string) (types.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations = append(f.locations, location)
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// countingRepo wraps a repository and counts successful Puts.
type countingRepo struct {
	repository.RecordRepository
	mu   sync.Mutex
	puts int
}

func (r *countingRepo) Put(ctx context.Context, rec repository.WeatherRecord) (string, error) {
	id, err := r.RecordRepository.Put(ctx, rec)
	if err == nil {
		r.mu.Lock()
		r.puts++
		r.mu.Unlock()
	}
	return id, err
}

func newTestService(f weather.Fetcher) (WeatherService, *countingRepo) {
	repo := &countingRepo{RecordRepository: repository.NewMemoryRepository(zap.NewNop())}
	return NewWeatherService(repo, f, zap.NewNop()), repo
}

func TestWeatherService_CreateThenGet(t *testing.T) {
	doc := types.Document{"current": map[string]any{"temperature": 10}}
	f := &stubFetcher{doc: doc}
	svc, _ := newTestService(f)

	id, err := svc.Create(context.Background(), WeatherRequest{Date: "2024-01-01", Location: "London", Notes: "test"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	got, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}

	want := repository.WeatherRecord{
		ID:          id,
		Date:        "2024-01-01",
		Location:    "London",
		Notes:       "test",
		WeatherData: doc,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"London"}, f.locations); diff != "" {
		t.Errorf("fetched locations mismatch (-want +got):\n%s", diff)
	}
}

func TestWeatherService_Get_UnknownID(t *testing.T) {
	svc, _ := newTestService(&stubFetcher{doc: types.Document{}})

	_, err := svc.Get(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestWeatherService_Create_MissingAPIKey(t *testing.T) {
	svc, repo := newTestService(&stubFetcher{err: weather.ErrMissingAPIKey})

	id, err := svc.Create(context.Background(), WeatherRequest{Date: "2024-01-01", Location: "London"})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Create() error = %v, want ErrConfiguration", err)
	}
	if errors.Is(err, ErrUpstream) {
		t.Errorf("Create() error = %v, must not be ErrUpstream", err)
	}
	if id != "" {
		t.Errorf("Create() id = %q, want empty", id)
	}
	if repo.puts != 0 {
		t.Errorf("repository received %d puts, want 0", repo.puts)
	}
}

func TestWeatherService_Create_UpstreamFailure(t *testing.T) {
	cause := fmt.Errorf("%w: connection refused", weather.ErrUpstream)
	svc, repo := newTestService(&stubFetcher{err: cause})

	_, err := svc.Create(context.Background(), WeatherRequest{Date: "2024-01-01", Location: "London"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Create() error = %v, want ErrUpstream", err)
	}
	if !errors.Is(err, weather.ErrUpstream) {
		t.Errorf("Create() error = %v, want it to wrap the provider error", err)
	}
	if repo.puts != 0 {
		t.Errorf("repository received %d puts, want 0", repo.puts)
	}
}

func TestWeatherService_Create_Concurrent(t *testing.T) {
	svc, repo := newTestService(&stubFetcher{doc: types.Document{"ok": true}})

	const n = 50
	ids := make([]string, n)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			id, err := svc.Create(ctx, WeatherRequest{
				Date:     "2024-01-01",
				Location: fmt.Sprintf("city-%d", i),
			})
			ids[i] = id
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	seen := make(map[string]struct{}, n)
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}

		rec, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("Get(%q) unexpected error: %v", id, err)
		}
		if want := fmt.Sprintf("city-%d", i); rec.Location != want {
			t.Errorf("Get(%q).Location = %q, want %q", id, rec.Location, want)
		}
	}
	if repo.puts != n {
		t.Errorf("repository received %d puts, want %d", repo.puts, n)
	}
}
