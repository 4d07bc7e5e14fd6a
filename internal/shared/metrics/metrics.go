package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	signupsTotal               atomic.Uint64
	loginsFailedTotal          atomic.Uint64
	jobsCreatedTotal           atomic.Uint64
	applicationsSubmittedTotal atomic.Uint64
	applicationsDuplicateTotal atomic.Uint64
	resumeUploadsFailedTotal   atomic.Uint64

	resumeUploadDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncSignups increments the account signup counter.
func IncSignups() { signupsTotal.Add(1) }

// IncLoginsFailed increments the rejected-credentials counter.
func IncLoginsFailed() { loginsFailedTotal.Add(1) }

// IncJobsCreated increments the job posting counter.
func IncJobsCreated() { jobsCreatedTotal.Add(1) }

// IncApplicationsSubmitted increments the stored application counter.
func IncApplicationsSubmitted() { applicationsSubmittedTotal.Add(1) }

// IncApplicationsDuplicate increments the rejected duplicate application counter.
func IncApplicationsDuplicate() { applicationsDuplicateTotal.Add(1) }

// IncResumeUploadsFailed increments the failed upload counter.
func IncResumeUploadsFailed() { resumeUploadsFailedTotal.Add(1) }

// ObserveResumeUploadMs records a resume upload duration in milliseconds.
func ObserveResumeUploadMs(value float64) {
	if value < 0 {
		value = 0
	}
	resumeUploadDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "signups_total", "Total accounts created", signupsTotal.Load())
	writeCounter(&buf, "logins_failed_total", "Total rejected login attempts", loginsFailedTotal.Load())
	writeCounter(&buf, "jobs_created_total", "Total job postings created", jobsCreatedTotal.Load())
	writeCounter(&buf, "applications_submitted_total", "Total applications stored", applicationsSubmittedTotal.Load())
	writeCounter(&buf, "applications_duplicate_total", "Total duplicate applications rejected", applicationsDuplicateTotal.Load())
	writeCounter(&buf, "resume_uploads_failed_total", "Total resume uploads that failed", resumeUploadsFailedTotal.Load())
	writeHistogram(&buf, "resume_upload_duration_ms", "Resume upload duration in milliseconds", resumeUploadDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket whose bound is >= value.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

// writeHistogram emits cumulative buckets as Prometheus expects.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
