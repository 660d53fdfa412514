package bench

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// maxErrorGroups caps how many distinct error groups Render prints. The
// total failure count still covers every failure.
const maxErrorGroups = 5

// maxSampleJobIDs caps how many accepted job ids Render shows.
const maxSampleJobIDs = 5

// LatencyStats summarizes successful request latencies in milliseconds.
// Percentiles use the nearest-rank method: sort ascending, take the value at
// index floor(n*p/100) clamped to the last element, no interpolation.
type LatencyStats struct {
	Avg float64
	Min float64
	Max float64
	P50 float64
	P95 float64
}

// ErrorGroup counts failures sharing one error description.
type ErrorGroup struct {
	Message string
	Count   int
}

// LanguageStats tallies outcomes for one language of a mixed run.
type LanguageStats struct {
	Language string
	Success  int
	Failed   int
}

// Report is a read-only view derived from a run's complete outcome set.
type Report struct {
	Total       int
	Successes   int
	Failures    int
	Elapsed     time.Duration
	Throughput  float64
	SuccessRate float64

	// Latency is nil when there were no successful outcomes; the render
	// path says so explicitly instead of printing zeros.
	Latency *LatencyStats

	// ErrorGroups holds every distinct failure group in first-seen order.
	ErrorGroups []ErrorGroup

	// PerLanguage is populated in first-seen order; single-language runs
	// get one entry.
	PerLanguage []LanguageStats

	SampleJobIDs []string
}

func errorKey(out Outcome) string {
	if out.Err != "" {
		return out.Err
	}
	return fmt.Sprintf("HTTP %d", out.StatusCode)
}

// Summarize reduces a completed outcome set into a Report. Pure function:
// it never touches the network or mutates its inputs.
func Summarize(outcomes []Outcome, elapsed time.Duration) Report {
	report := Report{
		Total:   len(outcomes),
		Elapsed: elapsed,
	}

	var latencies []float64
	groupIndex := make(map[string]int)
	langIndex := make(map[string]int)

	for _, out := range outcomes {
		li, ok := langIndex[out.Language]
		if !ok {
			li = len(report.PerLanguage)
			langIndex[out.Language] = li
			report.PerLanguage = append(report.PerLanguage, LanguageStats{Language: out.Language})
		}

		if out.Success {
			report.Successes++
			report.PerLanguage[li].Success++
			latencies = append(latencies, out.LatencyMS)
			if out.JobID != "" && len(report.SampleJobIDs) < maxSampleJobIDs {
				report.SampleJobIDs = append(report.SampleJobIDs, out.JobID)
			}
			continue
		}

		report.Failures++
		report.PerLanguage[li].Failed++
		key := errorKey(out)
		gi, ok := groupIndex[key]
		if !ok {
			gi = len(report.ErrorGroups)
			groupIndex[key] = gi
			report.ErrorGroups = append(report.ErrorGroups, ErrorGroup{Message: key})
		}
		report.ErrorGroups[gi].Count++
	}

	if report.Total > 0 {
		report.SuccessRate = float64(report.Successes) / float64(report.Total) * 100
	}
	if elapsed > 0 {
		report.Throughput = float64(report.Total) / elapsed.Seconds()
	}

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		sum := 0.0
		for _, l := range latencies {
			sum += l
		}
		report.Latency = &LatencyStats{
			Avg: sum / float64(len(latencies)),
			Min: latencies[0],
			Max: latencies[len(latencies)-1],
			P50: percentile(latencies, 50),
			P95: percentile(latencies, 95),
		}
	}

	return report
}

// percentile picks the nearest-rank value from an ascending-sorted slice.
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Render prints the report in the fixed textual layout the CLI promises.
func (r Report) Render(w io.Writer) {
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "    Total Time: %.2fs\n", r.Elapsed.Seconds())
	fmt.Fprintf(w, "    Throughput: %.2f req/s\n", r.Throughput)
	fmt.Fprintf(w, "    Success Rate: %d/%d (%.1f%%)\n", r.Successes, r.Total, r.SuccessRate)

	if r.Latency != nil {
		fmt.Fprintf(w, "    Avg Latency: %.2fms\n", r.Latency.Avg)
		fmt.Fprintf(w, "    Min Latency: %.2fms\n", r.Latency.Min)
		fmt.Fprintf(w, "    Max Latency: %.2fms\n", r.Latency.Max)
		fmt.Fprintf(w, "    P50 Latency: %.2fms\n", r.Latency.P50)
		fmt.Fprintf(w, "    P95 Latency: %.2fms\n", r.Latency.P95)
	} else {
		fmt.Fprintln(w, "    No successful requests to calculate latency statistics")
	}

	if len(r.SampleJobIDs) > 0 {
		fmt.Fprintf(w, "    Sample Job IDs: %v\n", r.SampleJobIDs)
	}

	if r.Failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors (%d failures):\n", r.Failures)
		groups := r.ErrorGroups
		if len(groups) > maxErrorGroups {
			groups = groups[:maxErrorGroups]
		}
		for _, g := range groups {
			fmt.Fprintf(w, "    %s: %d\n", g.Message, g.Count)
		}
	}

	if len(r.PerLanguage) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Per-Language Stats:")
		for _, ls := range r.PerLanguage {
			fmt.Fprintf(w, "    %s: %d success, %d failed\n", ls.Language, ls.Success, ls.Failed)
		}
	}
}
