package bench

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileNearestRank(t *testing.T) {
	latencies := []float64{10, 20, 30, 40, 50}

	assert.Equal(t, 30.0, percentile(latencies, 50))
	assert.Equal(t, 50.0, percentile(latencies, 95))

	ten := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	// index floor(10*50/100) = 5, the sixth smallest value
	assert.Equal(t, 6.0, percentile(ten, 50))
	assert.Equal(t, 10.0, percentile(ten, 100))
	assert.Equal(t, 1.0, percentile(ten, 0))

	assert.Equal(t, 0.0, percentile(nil, 50))
}

func TestSummarizeEmpty(t *testing.T) {
	report := Summarize(nil, 0)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.SuccessRate)
	assert.Equal(t, 0.0, report.Throughput)
	assert.Nil(t, report.Latency)
}

func TestSummarizeAllSuccessful(t *testing.T) {
	outcomes := []Outcome{
		{RequestID: 1, Language: "python", Success: true, LatencyMS: 100, StatusCode: 200},
		{RequestID: 2, Language: "python", Success: true, LatencyMS: 300, StatusCode: 200},
		{RequestID: 3, Language: "python", Success: true, LatencyMS: 200, StatusCode: 202},
	}

	report := Summarize(outcomes, 2*time.Second)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Successes)
	assert.Equal(t, 0, report.Failures)
	assert.Equal(t, 100.0, report.SuccessRate)
	assert.InDelta(t, 1.5, report.Throughput, 0.001)

	require.NotNil(t, report.Latency)
	assert.Equal(t, 200.0, report.Latency.Avg)
	assert.Equal(t, 100.0, report.Latency.Min)
	assert.Equal(t, 300.0, report.Latency.Max)
	// sorted [100 200 300], index floor(3*50/100) = 1
	assert.Equal(t, 200.0, report.Latency.P50)
	assert.Equal(t, 300.0, report.Latency.P95)
}

func TestSummarizeZeroSuccessesOmitsLatency(t *testing.T) {
	outcomes := []Outcome{
		{RequestID: 1, Language: "python", Err: "Timeout", LatencyMS: 30000},
		{RequestID: 2, Language: "python", StatusCode: 503, LatencyMS: 12},
	}

	report := Summarize(outcomes, time.Second)

	assert.Equal(t, 0.0, report.SuccessRate)
	assert.Nil(t, report.Latency)

	var buf bytes.Buffer
	report.Render(&buf)
	assert.Contains(t, buf.String(), "No successful requests")
	assert.NotContains(t, buf.String(), "Avg Latency")
}

func TestSummarizeGroupsErrorsFirstSeen(t *testing.T) {
	outcomes := []Outcome{
		{RequestID: 1, StatusCode: 503},
		{RequestID: 2, Err: "Timeout"},
		{RequestID: 3, StatusCode: 503},
		{RequestID: 4, Err: "Connection error: connection refused"},
		{RequestID: 5, Err: "Timeout"},
	}

	report := Summarize(outcomes, time.Second)

	require.Len(t, report.ErrorGroups, 3)
	assert.Equal(t, ErrorGroup{Message: "HTTP 503", Count: 2}, report.ErrorGroups[0])
	assert.Equal(t, ErrorGroup{Message: "Timeout", Count: 2}, report.ErrorGroups[1])
	assert.Equal(t, ErrorGroup{Message: "Connection error: connection refused", Count: 1}, report.ErrorGroups[2])
}

func TestRenderCapsErrorGroupsAtFive(t *testing.T) {
	var outcomes []Outcome
	for i := 0; i < 7; i++ {
		outcomes = append(outcomes, Outcome{
			RequestID: i + 1,
			Err:       fmt.Sprintf("error-%d", i),
		})
	}

	report := Summarize(outcomes, time.Second)
	assert.Len(t, report.ErrorGroups, 7)
	assert.Equal(t, 7, report.Failures)

	var buf bytes.Buffer
	report.Render(&buf)
	rendered := buf.String()

	assert.Contains(t, rendered, "Errors (7 failures):")
	for i := 0; i < 5; i++ {
		assert.Contains(t, rendered, fmt.Sprintf("error-%d: 1", i))
	}
	assert.NotContains(t, rendered, "error-5")
	assert.NotContains(t, rendered, "error-6")
}

func TestSummarizePerLanguage(t *testing.T) {
	outcomes := []Outcome{
		{RequestID: 1, Language: "python", Success: true, LatencyMS: 10},
		{RequestID: 2, Language: "java", StatusCode: 500},
		{RequestID: 3, Language: "python", Success: true, LatencyMS: 20},
		{RequestID: 4, Language: "rust", Success: true, LatencyMS: 30},
	}

	report := Summarize(outcomes, time.Second)

	require.Len(t, report.PerLanguage, 3)
	assert.Equal(t, LanguageStats{Language: "python", Success: 2}, report.PerLanguage[0])
	assert.Equal(t, LanguageStats{Language: "java", Failed: 1}, report.PerLanguage[1])
	assert.Equal(t, LanguageStats{Language: "rust", Success: 1}, report.PerLanguage[2])

	var buf bytes.Buffer
	report.Render(&buf)
	assert.Contains(t, buf.String(), "Per-Language Stats:")
	assert.Contains(t, buf.String(), "python: 2 success, 0 failed")
}

func TestRenderLayout(t *testing.T) {
	outcomes := []Outcome{
		{RequestID: 1, Language: "python", Success: true, LatencyMS: 100, JobID: "job-1"},
		{RequestID: 2, Language: "python", Err: "Timeout", LatencyMS: 30000},
	}

	var buf bytes.Buffer
	Summarize(outcomes, 4*time.Second).Render(&buf)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Results:\n"))
	assert.Contains(t, out, "Total Time: 4.00s")
	assert.Contains(t, out, "Throughput: 0.50 req/s")
	assert.Contains(t, out, "Success Rate: 1/2 (50.0%)")
	assert.Contains(t, out, "Sample Job IDs: [job-1]")
	assert.Contains(t, out, "Timeout: 1")
}
