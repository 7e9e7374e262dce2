package pair

// Port name conventions for PipeWire nodes. A null sink exposes its capture
// side as monitor_FL/monitor_FR; a stereo playback device exposes
// playback_FL/playback_FR.
const (
	monitorFL  = "monitor_FL"
	monitorFR  = "monitor_FR"
	playbackFL = "playback_FL"
	playbackFR = "playback_FR"
)

// PortID returns the device-qualified identifier for a port on a node.
func PortID(node, port string) string {
	return node + ":" + port
}

// MonitorPorts returns the two capture-side port identifiers the virtual
// sink is expected to register after loading.
func MonitorPorts(sinkName string) []string {
	return []string{
		PortID(sinkName, monitorFL),
		PortID(sinkName, monitorFR),
	}
}

// StereoSplitLinks returns the fixed four-link topology that turns the two
// speakers into a stereo pair: the sink's left monitor feeds both drivers
// of the left speaker and the right monitor feeds both drivers of the
// right speaker. Each speaker plays one program channel through both of
// its drivers; stereo separation is between the speakers, not within one.
func StereoSplitLinks(sinkName string, left, right Sink) []Link {
	return []Link{
		{Source: PortID(sinkName, monitorFL), Dest: PortID(left.Name, playbackFL)},
		{Source: PortID(sinkName, monitorFL), Dest: PortID(left.Name, playbackFR)},
		{Source: PortID(sinkName, monitorFR), Dest: PortID(right.Name, playbackFL)},
		{Source: PortID(sinkName, monitorFR), Dest: PortID(right.Name, playbackFR)},
	}
}
