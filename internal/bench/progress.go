package bench

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// progress tracks live counters for a run in flight.
type progress struct {
	total     int
	logEvery  int
	completed uint64
	failed    uint64
}

func newProgress(total, logEvery int) *progress {
	return &progress{total: total, logEvery: logEvery}
}

func (p *progress) observe(out Outcome) {
	done := atomic.AddUint64(&p.completed, 1)
	if !out.Success {
		atomic.AddUint64(&p.failed, 1)
		log.WithFields(log.Fields{
			"request":  out.RequestID,
			"language": out.Language,
			"status":   out.StatusCode,
		}).Warnf("request failed: %s", errorKey(out))
		return
	}
	if p.logEvery > 0 && done%uint64(p.logEvery) == 0 {
		log.Infof("progress: %d/%d (%d%%), %d failed, last %s in %.0fms",
			done, p.total, int(done)*100/p.total,
			atomic.LoadUint64(&p.failed), out.Language, out.LatencyMS)
	}
}
