package pair

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"stereopair/internal/platform/metrics"
)

// Handler exposes the wiring sequence over HTTP using go-chi. Each rewire
// request is exactly one run of the sequence; the daemon never re-wires on
// its own.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	last *Report
}

// NewHandler returns a Handler that uses the given Service, Logger, and
// optional Metrics. Metrics may be nil to disable metric recording (e.g. in
// tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// linkResponse is the JSON shape of one link attempt.
type linkResponse struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Error  string `json:"error,omitempty"`
}

// reportResponse is the JSON shape of a run report.
type reportResponse struct {
	State  State          `json:"state"`
	Left   string         `json:"left,omitempty"`
	Right  string         `json:"right,omitempty"`
	Module int64          `json:"module,omitempty"`
	Links  []linkResponse `json:"links,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func toReportResponse(rep *Report) reportResponse {
	resp := reportResponse{
		State:  rep.State,
		Left:   rep.Left.Name,
		Right:  rep.Right.Name,
		Module: int64(rep.Module),
	}
	for _, lr := range rep.Links {
		l := linkResponse{Source: lr.Link.Source, Dest: lr.Link.Dest}
		if lr.Err != nil {
			l.Error = lr.Err.Error()
		}
		resp.Links = append(resp.Links, l)
	}
	if rep.Err != nil {
		resp.Error = rep.Err.Error()
	}
	return resp
}

// Rewire handles POST /rewire. It runs the wiring sequence once and returns
// the resulting report. Status codes: 200 on done (even with failed links),
// 409 when a speaker is missing, 424 when a control tool is missing, 502 for
// audio-server failures.
func (h *Handler) Rewire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rep, err := h.svc.Run(r.Context())
	h.mu.Lock()
	h.last = rep
	h.mu.Unlock()
	h.record(rep)

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingDevice):
		status = http.StatusConflict
	case errors.Is(err, ErrMissingTool):
		status = http.StatusFailedDependency
	default:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, toReportResponse(rep))
}

// statusResponse is the JSON shape of GET /status.
type statusResponse struct {
	Endpoints []EndpointStatus `json:"endpoints"`
	LastRun   *reportResponse  `json:"last_run,omitempty"`
}

// Status handles GET /status: current presence of both configured speakers
// plus the report of the most recent run, if any.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	endpoints, err := h.svc.EndpointStatus(r.Context())
	if err != nil {
		h.log.Error("endpoint status failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	resp := statusResponse{Endpoints: endpoints}
	h.mu.Lock()
	if h.last != nil {
		rr := toReportResponse(h.last)
		resp.LastRun = &rr
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// record updates run metrics from a finished report.
func (h *Handler) record(rep *Report) {
	if h.metrics == nil {
		return
	}
	h.metrics.IncRuns()
	if rep.State != StateDone {
		h.metrics.IncRunsFailed()
		return
	}
	failed := len(rep.FailedLinks())
	created := len(rep.Links) - failed
	h.metrics.AddLinksCreated(created)
	h.metrics.AddLinkFailures(failed)
	h.metrics.SetWiredLinks(created)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
