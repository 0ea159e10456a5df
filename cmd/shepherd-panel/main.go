package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/cmd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/midi"
	"github.com/goodsheperd/shepherd/oto"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/goodsheperd/shepherd/tui"
	"github.com/goodsheperd/shepherd/version"
)

var configFile = flag.String("config", "", "config file; by default, the one in the user config directory")
var snapshotFile = flag.String("snapshot", "", "snapshot `file` loaded at start and written by the save key")
var midiInput = flag.String("midi-in", "", "connect MIDI input to matching device name prefix")
var midiOutput = flag.String("midi-out", "", "send the gates as notes to the MIDI output matching device name prefix")
var noAudio = flag.Bool("no-audio", false, "do not open an audio device; run the rack from the wall clock")
var logFile = flag.String("log", "", "write log messages to `file`")
var versionFlag = flag.Bool("v", false, "print version")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("shepherd-panel"))
		os.Exit(0)
	}
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "shepherd")
		if err != nil {
			log.Fatal("could not open log file: ", err)
		}
		defer f.Close()
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if isFlagPassed("midi-in") {
		cfg.MIDI.Input = *midiInput
	}
	if isFlagPassed("midi-out") {
		cfg.MIDI.Output = *midiOutput
	}
	if *noAudio {
		cfg.Audio.Enabled = false
	}
	snapshotPath := cfg.SnapshotPath
	if *snapshotFile != "" {
		snapshotPath = *snapshotFile
	}

	r := rack.New(cfg)
	if snapshotPath != "" {
		data, err := os.ReadFile(snapshotPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			log.Fatal(err)
		default:
			snap, err := shepherd.DecodeSnapshot(data)
			if err != nil {
				log.Fatalf("could not load snapshot %v: %v", snapshotPath, err)
			}
			r.Restore(snap)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	midiContext := cmd.NewMidiContext()
	defer midiContext.Close()
	if cfg.MIDI.Input != "" {
		mapping := midi.DefaultMapping(uint8(cfg.MIDI.InputChannel))
		stop, err := midiContext.Listen(cfg.MIDI.Input, mapping.Handler(r))
		if err != nil {
			log.Printf("failed to open MIDI input '%s': %v", cfg.MIDI.Input, err)
		} else {
			defer stop()
		}
	}
	if cfg.MIDI.Output != "" {
		send, err := midiContext.Sender(cfg.MIDI.Output)
		if err != nil {
			log.Printf("failed to open MIDI output '%s': %v", cfg.MIDI.Output, err)
		} else {
			sender := midi.NewSender(send)
			sender.Channel = uint8(cfg.MIDI.OutputChannel)
			sender.BaseNote = uint8(cfg.MIDI.BaseNote)
			sender.MelodyChannel = uint8(cfg.MIDI.MelodyChannel)
			sender.MelodyBaseNote = uint8(cfg.MIDI.MelodyBaseNote)
			go func() {
				if err := sender.Run(ctx, r.Events); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("MIDI output stopped: %v", err)
				}
			}()
		}
	}

	if cfg.Audio.Enabled {
		audioContext, err := oto.NewContext(cfg.SampleRate, cfg.Audio.BufferSize)
		if err != nil {
			log.Fatal(err)
		}
		defer audioContext.Close()
		player := audioContext.Play(oto.NewMonitor(r.Reader(), cfg.SampleRate))
		defer player.Close()
	} else {
		go r.Run(ctx, 10*time.Millisecond)
	}

	model := tui.NewModel(r, tui.DefaultTheme(), snapshotPath)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Printf("panel stopped: %v", err)
	}
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
