package audio

import (
	"context"
	"strings"
)

// OutputPorts implements pair.AudioServer.OutputPorts. `pw-link --output`
// prints one device-qualified port identifier per line.
func (c *Client) OutputPorts(ctx context.Context) ([]string, error) {
	out, err := c.run.Run(ctx, pwLinkTool, "--output")
	if err != nil {
		return nil, err
	}
	var ports []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ports = append(ports, line)
	}
	return ports, nil
}

// ConnectPorts implements pair.AudioServer.ConnectPorts. pw-link exits
// non-zero with "File exists" when the link is already present; that is a
// success for our purposes, since link creation is idempotent by contract.
func (c *Client) ConnectPorts(ctx context.Context, src, dst string) error {
	_, err := c.run.Run(ctx, pwLinkTool, src, dst)
	if err != nil && strings.Contains(err.Error(), "File exists") {
		return nil
	}
	return err
}
