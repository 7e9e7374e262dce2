package pair

import "testing"

func TestStereoSplitLinks(t *testing.T) {
	left := Sink{Name: "bluez_output.LEFT.1", Description: "SpkA"}
	right := Sink{Name: "bluez_output.RIGHT.1", Description: "SpkB"}

	links := StereoSplitLinks("Stereo", left, right)

	want := []Link{
		{Source: "Stereo:monitor_FL", Dest: "bluez_output.LEFT.1:playback_FL"},
		{Source: "Stereo:monitor_FL", Dest: "bluez_output.LEFT.1:playback_FR"},
		{Source: "Stereo:monitor_FR", Dest: "bluez_output.RIGHT.1:playback_FL"},
		{Source: "Stereo:monitor_FR", Dest: "bluez_output.RIGHT.1:playback_FR"},
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), len(links))
	}
	for i, l := range links {
		if l != want[i] {
			t.Errorf("link %d: got %+v, want %+v", i, l, want[i])
		}
	}
}

func TestMonitorPorts(t *testing.T) {
	ports := MonitorPorts("stereo_pair")
	if len(ports) != 2 {
		t.Fatalf("expected 2 monitor ports, got %d", len(ports))
	}
	if ports[0] != "stereo_pair:monitor_FL" || ports[1] != "stereo_pair:monitor_FR" {
		t.Errorf("unexpected monitor ports: %v", ports)
	}
}
