package impl

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"neighborhood/internal/domain/entity"
)

// Minimal file signatures the content sniffer recognises.
var (
	pngContent  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfContent  = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	textContent = []byte("just some plain text, not an image")
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngUpload(name string) *entity.FileUpload {
	return &entity.FileUpload{Filename: name, Content: pngContent}
}

// recordingMetrics keeps every metric call for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	decisions []string
	approvals []string
	uploads   []string
	refetches int
}

func (m *recordingMetrics) PortalDecision(portal, decision string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, portal+":"+decision)
}

func (m *recordingMetrics) ApprovalOutcome(action, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals = append(m.approvals, action+":"+outcome)
}

func (m *recordingMetrics) Upload(bucket, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, bucket+":"+outcome)
}

func (m *recordingMetrics) ObserveRefetch(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refetches++
}

func (m *recordingMetrics) Decisions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.decisions...)
}

func (m *recordingMetrics) Approvals() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.approvals...)
}

func (m *recordingMetrics) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.uploads...)
}
