// Package audio implements the pair.AudioServer contract against a live
// PipeWire instance through its command-line control surfaces: pactl for
// sinks and modules, pw-link for ports and links. Every method is one
// command invocation; nothing is cached between calls.
package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stereopair/internal/pair"
)

// Client talks to the audio server by shelling out to the control tools.
type Client struct {
	run Runner
}

// NewClient returns a Client backed by the real executables.
func NewClient() *Client {
	return NewClientWithRunner(execRunner{})
}

// NewClientWithRunner constructs a Client with the given command runner.
// Useful for testing output parsing without a live audio server.
func NewClientWithRunner(r Runner) *Client {
	return &Client{run: r}
}

// pactlSink is the subset of `pactl -f json list sinks` output we use.
type pactlSink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// pactlModule is the subset of `pactl -f json list modules` output we use.
type pactlModule struct {
	Index    int64  `json:"index"`
	Name     string `json:"name"`
	Argument string `json:"argument"`
}

// Sinks implements pair.AudioServer.Sinks.
func (c *Client) Sinks(ctx context.Context) ([]pair.Sink, error) {
	out, err := c.run.Run(ctx, pactlTool, "-f", "json", "list", "sinks")
	if err != nil {
		return nil, err
	}
	var raw []pactlSink
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parse sink list: %w", err)
	}
	sinks := make([]pair.Sink, 0, len(raw))
	for _, s := range raw {
		sinks = append(sinks, pair.Sink{Name: s.Name, Description: s.Description})
	}
	return sinks, nil
}

// Modules implements pair.AudioServer.Modules.
func (c *Client) Modules(ctx context.Context) ([]pair.Module, error) {
	out, err := c.run.Run(ctx, pactlTool, "-f", "json", "list", "modules")
	if err != nil {
		return nil, err
	}
	var raw []pactlModule
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parse module list: %w", err)
	}
	modules := make([]pair.Module, 0, len(raw))
	for _, m := range raw {
		modules = append(modules, pair.Module{
			ID:       pair.ModuleID(m.Index),
			Name:     m.Name,
			Argument: m.Argument,
		})
	}
	return modules, nil
}

// LoadNullSink implements pair.AudioServer.LoadNullSink. pactl prints the
// assigned module index on success.
func (c *Client) LoadNullSink(ctx context.Context, name, description string) (pair.ModuleID, error) {
	out, err := c.run.Run(ctx, pactlTool, "load-module", pair.NullSinkModule,
		"sink_name="+name,
		fmt.Sprintf("sink_properties=device.description=%q", description),
		"channels=2",
		"channel_map=front-left,front-right",
	)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse module index %q: %w", strings.TrimSpace(string(out)), err)
	}
	return pair.ModuleID(id), nil
}

// UnloadModule implements pair.AudioServer.UnloadModule.
func (c *Client) UnloadModule(ctx context.Context, id pair.ModuleID) error {
	_, err := c.run.Run(ctx, pactlTool, "unload-module", strconv.FormatInt(int64(id), 10))
	return err
}
