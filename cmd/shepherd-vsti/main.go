//go:build plugin

package main

import (
	"log"

	gomidi "gitlab.com/gomidi/midi/v2"
	"pipelined.dev/audio/vst2"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/midi"
	"github.com/goodsheperd/shepherd/rack"
)

const (
	PLUGIN_ID   = 0x53485044 // SHPD
	PLUGIN_NAME = "Shepherd"
)

// The plugin takes the clock on input 0 and reset on input 1, and writes the
// gates of the rows to outputs 0..7 scaled to 0..1. With externalClock off in
// the config, input 0 is ignored and the rack runs from its internal clock.
func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		cfg, err := config.Load("")
		if err != nil {
			log.Printf("using default config: %v", err)
			cfg = config.Default()
		}
		r := rack.New(cfg)
		handler := midi.DefaultMapping(uint8(cfg.MIDI.InputChannel)).Handler(r)
		buf := make(shepherd.GateBuffer, 1024)
		clock := make([]float32, 1024)
		reset := make([]float32, 1024)
		return vst2.Plugin{
				UniqueID:       PLUGIN_ID,
				Version:        version,
				InputChannels:  2,
				OutputChannels: shepherd.NumRows,
				Name:           PLUGIN_NAME,
				Vendor:         "goodsheperd/shepherd",
				Category:       vst2.PluginCategoryEffect,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					if len(buf) < out.Frames {
						buf = append(buf, make(shepherd.GateBuffer, out.Frames-len(buf))...)
						clock = append(clock, make([]float32, out.Frames-len(clock))...)
						reset = append(reset, make([]float32, out.Frames-len(reset))...)
					}
					buf, clock, reset = buf[:out.Frames], clock[:out.Frames], reset[:out.Frames]
					// hosts send -1..1, the sequencer expects volts
					for i, v := range in.Channel(0) {
						clock[i] = v * shepherd.GateHigh
					}
					for i, v := range in.Channel(1) {
						reset[i] = v * shepherd.GateHigh
					}
					r.Process(buf, clock, reset)
					for row := 0; row < shepherd.NumRows; row++ {
						ch := out.Channel(row)
						for i := range ch {
							ch[i] = buf[i][row] / shepherd.GateHigh
						}
					}
					for len(r.Events) > 0 { // nobody listens to the events inside a host
						<-r.Events
					}
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						if v, ok := ev.Event(i).(*vst2.MIDIEvent); ok {
							handler(gomidi.Message(v.Data[:]), 0)
						}
					}
				},
				GetChunkFunc: func(isPreset bool) []byte {
					data, err := shepherd.EncodeSnapshot(r.Snapshot(), shepherd.YAML)
					if err != nil {
						log.Printf("could not encode snapshot: %v", err)
						return nil
					}
					return data
				},
				SetChunkFunc: func(data []byte, isPreset bool) {
					snap, err := shepherd.DecodeSnapshot(data)
					if err != nil {
						log.Printf("could not decode snapshot: %v", err)
						return
					}
					r.Restore(snap)
				},
			}
	}
}

func main() {}
