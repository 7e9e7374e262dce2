package pair

import "strings"

// ModuleID is the numeric handle the audio server assigns to a loaded module.
type ModuleID int64

// Sink is one playback device currently known to the audio server.
// For a Bluetooth speaker, Name is the node name the server generated at
// connection time and Description is the human-readable alias assigned
// during pairing. Sinks are observed, never created or destroyed here.
type Sink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Matches reports whether the sink answers to the given endpoint name,
// by exact match against either its description or its node name.
func (s Sink) Matches(endpoint string) bool {
	return s.Description == endpoint || s.Name == endpoint
}

// Module is one module currently loaded in the audio server.
type Module struct {
	ID       ModuleID
	Name     string
	Argument string
}

// NullSinkModule is the module name of the duplex virtual device.
const NullSinkModule = "module-null-sink"

// SinkName extracts the sink_name= value from the module argument string,
// handling both bare and double-quoted values. It returns "" if the
// argument carries no sink_name.
func (m Module) SinkName() string {
	const key = "sink_name="
	arg := m.Argument
	for i := strings.Index(arg, key); i >= 0; i = strings.Index(arg, key) {
		// Only accept the key at the start of an argument word.
		if i == 0 || arg[i-1] == ' ' || arg[i-1] == '\t' {
			rest := arg[i+len(key):]
			if strings.HasPrefix(rest, `"`) {
				rest = rest[1:]
				if j := strings.Index(rest, `"`); j >= 0 {
					return rest[:j]
				}
				return rest
			}
			if j := strings.IndexAny(rest, " \t"); j >= 0 {
				return rest[:j]
			}
			return rest
		}
		arg = arg[i+len(key):]
	}
	return ""
}

// Link is a directed connection request from one device-qualified port to
// another. Links have no independent identity: issuing the same request
// twice is tolerated by the audio server.
type Link struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// LinkResult records the outcome of one link-creation attempt.
type LinkResult struct {
	Link Link
	Err  error
}

// State identifies a step of the wiring sequence.
type State string

const (
	StateCheckingTools       State = "checking_tools"
	StateCheckingDevices     State = "checking_devices"
	StateRemovingStaleModule State = "removing_stale_module"
	StateCreatingModule      State = "creating_module"
	StateLinking             State = "linking"
	StateDone                State = "done"
	StateAborted             State = "aborted"
)

// Report describes how far a run got and what it did. State is StateDone on
// success (possibly with failed links in Links) or StateAborted, in which
// case Err holds the failure.
type Report struct {
	State  State
	Left   Sink
	Right  Sink
	Module ModuleID
	Links  []LinkResult
	Err    error
}

// FailedLinks returns the link attempts that did not succeed.
func (r *Report) FailedLinks() []LinkResult {
	var failed []LinkResult
	for _, lr := range r.Links {
		if lr.Err != nil {
			failed = append(failed, lr)
		}
	}
	return failed
}
