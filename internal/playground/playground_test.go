package playground

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentsAPI = API{
	Key:       "students",
	Title:     "Student Management API",
	BaseURL:   "https://api.studentms.demo",
	Endpoints: []Endpoint{{Method: "GET", Path: "/api/v1/students", Description: "List all students"}},
	SampleGet: map[string]any{"meta": map[string]any{"total": 2}},
}

func noWait(calls *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*calls = append(*calls, d)
		return ctx.Err()
	}
}

func TestSendGetReturnsSample(t *testing.T) {
	var waits []time.Duration
	c := New([]API{studentsAPI}, WithWait(noWait(&waits)))

	resp, err := c.Send(context.Background(), Request{API: "students", Method: "get"})
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{DefaultDelay}, waits)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Equal(t, "142ms", resp.Headers["X-Response-Time"])
	assert.Equal(t, studentsAPI.SampleGet, resp.Data)
	assert.JSONEq(t, `{"meta":{"total":2}}`, resp.Pretty())
}

func TestSendWriteReturnsGeneratedID(t *testing.T) {
	var waits []time.Duration
	at := time.UnixMilli(1700000000123)
	c := New([]API{studentsAPI}, WithWait(noWait(&waits)), WithClock(func() time.Time { return at }))

	for _, m := range []string{"POST", "PUT", "DELETE"} {
		resp, err := c.Send(context.Background(), Request{API: "students", Method: m, Body: "{}"})
		require.NoError(t, err, m)
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["success"])
		assert.Equal(t, "students_1700000000123", data["id"])
	}
}

func TestSendErrors(t *testing.T) {
	var waits []time.Duration
	c := New([]API{studentsAPI}, WithWait(noWait(&waits)))

	_, err := c.Send(context.Background(), Request{API: "nope", Method: "GET"})
	assert.ErrorIs(t, err, ErrUnknownAPI)

	_, err = c.Send(context.Background(), Request{API: "students", Method: "PATCH"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Empty(t, waits, "rejected requests must not wait")
}

func TestSendHonoursContext(t *testing.T) {
	c := New([]API{studentsAPI}, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Send(ctx, Request{API: "students", Method: "GET"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendRealDelay(t *testing.T) {
	c := New([]API{studentsAPI}, WithDelay(5*time.Millisecond))
	start := time.Now()
	_, err := c.Send(context.Background(), Request{API: "students", Method: "GET"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestCurl(t *testing.T) {
	c := New([]API{studentsAPI})

	got, err := c.Curl(Request{API: "students", Method: "post", Body: `{"a":1}`})
	require.NoError(t, err)
	assert.Equal(t, "curl -X POST \\\n  \"https://api.studentms.demo/api/v1/students\" \\\n"+
		"  -H \"Content-Type: application/json\" \\\n"+
		"  -H \"Authorization: Bearer your-token\" \\\n"+
		"  -d '{\"a\":1}'", got)

	_, err = c.Curl(Request{API: "x"})
	assert.ErrorIs(t, err, ErrUnknownAPI)
}

func TestGitHubStats(t *testing.T) {
	var waits []time.Duration
	want := Stats{
		TotalRepos: 42,
		Activity:   []MonthlyCommits{{Month: "Jan", Commits: 45}, {Month: "Oct", Commits: 189}},
	}
	c := New(nil, WithStats(want), WithWait(noWait(&waits)), WithDelay(time.Second))

	got, err := c.GitHubStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []time.Duration{time.Second}, waits)
	assert.Equal(t, 189, got.PeakCommits())
	assert.Equal(t, 23, got.BarPercent(45))
	assert.Equal(t, 0, Stats{}.BarPercent(10))
}
