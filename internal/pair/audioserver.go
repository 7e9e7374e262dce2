package pair

import (
	"context"
	"errors"
)

// AudioServer is the narrow capability surface onto the audio server's
// global module/link table. The table is external, mutable state this
// process does not own: every method is a stateless request/response call,
// and callers must not cache results beyond a single check-then-act step.
type AudioServer interface {
	// Sinks returns the playback devices currently known to the server.
	Sinks(ctx context.Context) ([]Sink, error)

	// Modules returns the modules currently loaded in the server.
	Modules(ctx context.Context) ([]Module, error)

	// LoadNullSink loads a duplex virtual device with the given sink name
	// and description and a fixed two-channel (front-left, front-right)
	// map, returning the module handle the server assigned.
	LoadNullSink(ctx context.Context, name, description string) (ModuleID, error)

	// UnloadModule removes a loaded module by handle.
	UnloadModule(ctx context.Context, id ModuleID) error

	// OutputPorts returns the identifiers of all output ports currently
	// registered with the server.
	OutputPorts(ctx context.Context) ([]string, error)

	// ConnectPorts creates a directed link between two device-qualified
	// ports. Requesting a link that already exists is a success.
	ConnectPorts(ctx context.Context, src, dst string) error
}

// ToolChecker verifies the external control tools are installed.
type ToolChecker interface {
	Check() error
}

var (
	// ErrMissingTool is returned when a required control tool is not
	// installed. Resolved by installing the package, not by this program.
	ErrMissingTool = errors.New("required tool not available")

	// ErrMissingDevice is returned when a configured speaker is not
	// visible to the audio server. Bluetooth connection state is managed
	// externally; the fix is to (re)pair the speaker and run again.
	ErrMissingDevice = errors.New("speaker not found")

	// ErrSettleTimeout is returned when the virtual sink's monitor ports
	// did not appear within the settle timeout after module load.
	ErrSettleTimeout = errors.New("sink ports did not appear before timeout")
)
