package pair

import (
	"errors"
	"testing"
)

func TestModule_SinkName(t *testing.T) {
	tests := []struct {
		name     string
		argument string
		want     string
	}{
		{"bare", "sink_name=stereo_pair channels=2", "stereo_pair"},
		{"bare_last", "channels=2 sink_name=stereo_pair", "stereo_pair"},
		{"quoted", `sink_name="stereo pair" channels=2`, "stereo pair"},
		{"quoted_unterminated", `sink_name="stereo pair`, "stereo pair"},
		{"only_value", "sink_name=stereo_pair", "stereo_pair"},
		{"absent", "channels=2 channel_map=front-left,front-right", ""},
		{"empty", "", ""},
		{"other_key_suffix", "monitor_sink_name=other sink_name=mine", "mine"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Module{Name: NullSinkModule, Argument: tc.argument}
			if got := m.SinkName(); got != tc.want {
				t.Errorf("SinkName(%q) = %q, want %q", tc.argument, got, tc.want)
			}
		})
	}
}

func TestSink_Matches(t *testing.T) {
	s := Sink{Name: "bluez_output.AA_BB_CC_DD_EE_FF.1", Description: "SpkA"}

	if !s.Matches("SpkA") {
		t.Error("should match by description")
	}
	if !s.Matches("bluez_output.AA_BB_CC_DD_EE_FF.1") {
		t.Error("should match by node name")
	}
	if s.Matches("Spk") {
		t.Error("partial names should not match")
	}
	if s.Matches("spka") {
		t.Error("match is case sensitive")
	}
}

func TestReport_FailedLinks(t *testing.T) {
	errLink := errors.New("no such port")
	rep := &Report{
		State: StateDone,
		Links: []LinkResult{
			{Link: Link{Source: "a:monitor_FL", Dest: "l:playback_FL"}},
			{Link: Link{Source: "a:monitor_FL", Dest: "l:playback_FR"}, Err: errLink},
			{Link: Link{Source: "a:monitor_FR", Dest: "r:playback_FL"}},
		},
	}

	failed := rep.FailedLinks()
	if len(failed) != 1 {
		t.Fatalf("expected 1 failed link, got %d", len(failed))
	}
	if failed[0].Link.Dest != "l:playback_FR" {
		t.Errorf("wrong failed link: %+v", failed[0].Link)
	}
}
