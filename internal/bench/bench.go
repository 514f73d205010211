// Package bench repeatedly issues a request and aggregates latency into an
// HDR histogram for percentile reporting.
package bench

import (
	"context"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/tmont/requiem"
)

// Recorder aggregates request latencies. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	hist     *hdrhistogram.Histogram
	failures int64
}

// NewRecorder creates a recorder covering 1 microsecond to 1 minute with
// three significant figures.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, time.Minute.Microseconds(), 3),
	}
}

// Record adds one request outcome.
func (r *Recorder) Record(d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failures++
		return
	}
	r.hist.RecordValue(d.Microseconds())
}

// Summary is a point-in-time view of the recorded latencies.
type Summary struct {
	Requests int64
	Failures int64
	Min      time.Duration
	Mean     time.Duration
	P50      time.Duration
	P90      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Snapshot computes the current summary.
func (r *Recorder) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	micros := func(v int64) time.Duration {
		return time.Duration(v) * time.Microsecond
	}

	return Summary{
		Requests: r.hist.TotalCount() + r.failures,
		Failures: r.failures,
		Min:      micros(r.hist.Min()),
		Mean:     time.Duration(r.hist.Mean()) * time.Microsecond,
		P50:      micros(r.hist.ValueAtQuantile(50)),
		P90:      micros(r.hist.ValueAtQuantile(90)),
		P99:      micros(r.hist.ValueAtQuantile(99)),
		Max:      micros(r.hist.Max()),
	}
}

// Run issues the same request n times across the given number of concurrent
// workers and returns the aggregated summary. Responses are drained and
// discarded so connection reuse and body timing behave as in real use.
func Run(ctx context.Context, client *requiem.Client, opts *requiem.Options, n, concurrency int) Summary {
	if concurrency < 1 {
		concurrency = 1
	}

	recorder := NewRecorder()
	jobs := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				start := time.Now()
				resp, err := client.Do(ctx, opts)
				if err == nil {
					_, err = resp.Buffer()
				}
				recorder.Record(time.Since(start), err)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case jobs <- struct{}{}:
		case <-ctx.Done():
			i = n
		}
	}
	close(jobs)
	wg.Wait()

	return recorder.Snapshot()
}
