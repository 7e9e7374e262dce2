package pair

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Defaults for the settle wait after loading the virtual sink. The audio
// server gives no synchronous acknowledgment for port registration, so the
// service polls for the expected monitor ports under a bounded timeout.
const (
	DefaultSettleTimeout = 3 * time.Second
	DefaultSettlePoll    = 150 * time.Millisecond
)

// Config holds the static inputs for one wiring run.
type Config struct {
	// SinkName is the logical name of the virtual sink. At most one
	// module with this sink name exists immediately after a run.
	SinkName string
	// SinkDescription is the human-friendly label shown by audio mixers.
	SinkDescription string
	// LeftName and RightName are the endpoint names assigned at pairing.
	LeftName  string
	RightName string

	SettleTimeout time.Duration
	SettlePoll    time.Duration
}

// Service drives the wiring sequence against an AudioServer. A run walks
// CheckingTools, CheckingDevices, RemovingStaleModule, CreatingModule and
// Linking exactly once, with no retries: the operator re-runs after fixing
// whatever aborted the sequence.
type Service struct {
	srv   AudioServer
	tools ToolChecker
	cfg   Config
	log   *slog.Logger
}

// NewService returns a Service for the given audio server, tool checker and
// configuration. Zero settle durations fall back to the defaults.
func NewService(srv AudioServer, tools ToolChecker, cfg Config, log *slog.Logger) *Service {
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = DefaultSettleTimeout
	}
	if cfg.SettlePoll <= 0 {
		cfg.SettlePoll = DefaultSettlePoll
	}
	return &Service{srv: srv, tools: tools, cfg: cfg, log: log}
}

// Run executes the wiring sequence once and reports how far it got. The
// returned report is always non-nil. A non-nil error means the run aborted;
// failed links alone do not abort (best-effort wiring) and are listed in
// the report instead.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	rep := &Report{State: StateCheckingTools}

	if err := s.tools.Check(); err != nil {
		return s.abort(rep, fmt.Errorf("%w: %v", ErrMissingTool, err))
	}

	rep.State = StateCheckingDevices
	sinks, err := s.srv.Sinks(ctx)
	if err != nil {
		return s.abort(rep, fmt.Errorf("list sinks: %w", err))
	}
	left, ok := findSink(sinks, s.cfg.LeftName)
	if !ok {
		return s.abort(rep, fmt.Errorf("%w: %q", ErrMissingDevice, s.cfg.LeftName))
	}
	s.log.Info("speaker found", slog.String("endpoint", s.cfg.LeftName), slog.String("node", left.Name))
	right, ok := findSink(sinks, s.cfg.RightName)
	if !ok {
		return s.abort(rep, fmt.Errorf("%w: %q", ErrMissingDevice, s.cfg.RightName))
	}
	s.log.Info("speaker found", slog.String("endpoint", s.cfg.RightName), slog.String("node", right.Name))
	rep.Left, rep.Right = left, right

	rep.State = StateRemovingStaleModule
	if err := s.removeStaleModules(ctx); err != nil {
		return s.abort(rep, err)
	}

	rep.State = StateCreatingModule
	s.log.Info("creating virtual sink", slog.String("sink", s.cfg.SinkName))
	id, err := s.srv.LoadNullSink(ctx, s.cfg.SinkName, s.cfg.SinkDescription)
	if err != nil {
		return s.abort(rep, fmt.Errorf("load null sink %q: %w", s.cfg.SinkName, err))
	}
	rep.Module = id
	if err := s.waitForMonitorPorts(ctx); err != nil {
		return s.abort(rep, err)
	}

	rep.State = StateLinking
	for _, link := range StereoSplitLinks(s.cfg.SinkName, left, right) {
		err := s.srv.ConnectPorts(ctx, link.Source, link.Dest)
		rep.Links = append(rep.Links, LinkResult{Link: link, Err: err})
		if err != nil {
			s.log.Warn("link failed",
				slog.String("source", link.Source),
				slog.String("dest", link.Dest),
				slog.String("error", err.Error()))
			continue
		}
		s.log.Info("linked", slog.String("source", link.Source), slog.String("dest", link.Dest))
	}

	rep.State = StateDone
	if failed := rep.FailedLinks(); len(failed) > 0 {
		s.log.Warn("wiring finished with failures", slog.Int("failed_links", len(failed)))
	} else {
		s.log.Info("wiring finished", slog.String("sink", s.cfg.SinkName))
	}
	return rep, nil
}

// EndpointStatus describes the current presence of one configured speaker.
type EndpointStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// EndpointStatus queries the live sink list and reports presence of the
// left and right endpoints, in that order.
func (s *Service) EndpointStatus(ctx context.Context) ([]EndpointStatus, error) {
	sinks, err := s.srv.Sinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}
	statuses := make([]EndpointStatus, 0, 2)
	for _, name := range []string{s.cfg.LeftName, s.cfg.RightName} {
		_, present := findSink(sinks, name)
		statuses = append(statuses, EndpointStatus{Name: name, Present: present})
	}
	return statuses, nil
}

// removeStaleModules unloads every loaded null-sink module whose sink name
// equals the configured logical name. Prior failed runs can leave more than
// one behind; all of them go. Zero matches is a no-op.
func (s *Service) removeStaleModules(ctx context.Context) error {
	modules, err := s.srv.Modules(ctx)
	if err != nil {
		return fmt.Errorf("list modules: %w", err)
	}
	for _, m := range modules {
		if m.Name != NullSinkModule || m.SinkName() != s.cfg.SinkName {
			continue
		}
		s.log.Info("removing stale sink module",
			slog.String("sink", s.cfg.SinkName),
			slog.Int64("module", int64(m.ID)))
		if err := s.srv.UnloadModule(ctx, m.ID); err != nil {
			return fmt.Errorf("unload module %d (%s): %w", m.ID, s.cfg.SinkName, err)
		}
	}
	return nil
}

// waitForMonitorPorts polls the server until both of the sink's monitor
// ports are registered, or the settle timeout elapses.
func (s *Service) waitForMonitorPorts(ctx context.Context) error {
	deadline := time.Now().Add(s.cfg.SettleTimeout)
	want := MonitorPorts(s.cfg.SinkName)
	for {
		ports, err := s.srv.OutputPorts(ctx)
		if err == nil && containsAll(ports, want) {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("list output ports: %w", err)
			}
			return fmt.Errorf("%w: %q", ErrSettleTimeout, s.cfg.SinkName)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.SettlePoll):
		}
	}
}

// abort marks the report aborted and returns it with the failure.
func (s *Service) abort(rep *Report, err error) (*Report, error) {
	step := rep.State
	rep.State = StateAborted
	rep.Err = err
	s.log.Error("run aborted", slog.String("step", string(step)), slog.String("error", err.Error()))
	return rep, err
}

func findSink(sinks []Sink, endpoint string) (Sink, bool) {
	for _, sink := range sinks {
		if sink.Matches(endpoint) {
			return sink, true
		}
	}
	return Sink{}, false
}

func containsAll(have []string, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
