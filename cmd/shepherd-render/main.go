package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viterin/vek/vek32"

	"github.com/goodsheperd/shepherd"
	"github.com/goodsheperd/shepherd/config"
	"github.com/goodsheperd/shepherd/oto"
	"github.com/goodsheperd/shepherd/rack"
	"github.com/goodsheperd/shepherd/version"
)

func main() {
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	play := flag.Bool("p", false, "Listen to the gates through the monitor (default behaviour when no other output is defined).")
	rawOut := flag.Bool("r", false, "Output the gates as .raw file, one channel per row.")
	wavOut := flag.Bool("w", false, "Output the gates as .wav file, one channel per row.")
	pcm := flag.Bool("c", false, "Convert the gates to 16-bit signed PCM when outputting.")
	seconds := flag.Float64("d", 8, "Length of the rendering in seconds.")
	tempo := flag.Float64("tempo", 0, "Override the tempo of the internal clock; the clock runs at 2^tempo Hz.")
	start := flag.Bool("start", false, "Start the sequencer if the snapshot was saved stopped.")
	configFile := flag.String("config", "", "Config file. By default, the one in the user config directory.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.Describe("shepherd-render"))
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*play = true
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if isFlagPassed("tempo") {
		cfg.Tempo = float32(*tempo)
	}
	var audioContext shepherd.AudioContext
	if *play {
		audioContext, err = oto.NewContext(cfg.SampleRate, cfg.Audio.BufferSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		defer audioContext.Close()
	}
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			if *stdout {
				_, err := os.Stdout.Write(contents)
				return err
			}
			dir := *directory
			if dir == "" {
				var err error
				if dir, err = os.Getwd(); err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			_, name := filepath.Split(filename)
			f := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+extension)
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		inputBytes, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		snap, err := shepherd.DecodeSnapshot(inputBytes)
		if err != nil {
			return err
		}
		gates := render(cfg, snap, int(*seconds*float64(cfg.SampleRate)), *start)
		if *rawOut || *wavOut {
			lanes := gates.Lanes()
			vek32.MulNumber_Inplace(lanes, 1/float32(shepherd.GateHigh))
			if *rawOut {
				raw, err := shepherd.Raw(lanes, *pcm)
				if err != nil {
					return fmt.Errorf("could not generate .raw file: %v", err)
				}
				if err := output(".raw", raw); err != nil {
					return fmt.Errorf("error outputting .raw file: %v", err)
				}
			}
			if *wavOut {
				wav, err := shepherd.Wav(lanes, shepherd.WavFormat{Channels: shepherd.NumRows, SampleRate: cfg.SampleRate, PCM16: *pcm})
				if err != nil {
					return fmt.Errorf("could not generate .wav file: %v", err)
				}
				if err := output(".wav", wav); err != nil {
					return fmt.Errorf("error outputting .wav file: %v", err)
				}
			}
		}
		if *play {
			audioContext.Play(oto.Mix(gates, cfg.SampleRate).Source()).Wait()
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			jsonfiles, err := filepath.Glob(filepath.Join(param, "*.json"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for json files: %v\n", param, err)
				retval = 1
				continue
			}
			ymlfiles, err := filepath.Glob(filepath.Join(param, "*.yml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for yml files: %v\n", param, err)
				retval = 1
				continue
			}
			for _, file := range append(ymlfiles, jsonfiles...) {
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

// render restores the snapshot into a fresh rack and runs it from its
// internal clock for the given number of frames.
func render(cfg *config.Config, snap shepherd.Snapshot, frames int, start bool) shepherd.GateBuffer {
	r := rack.New(cfg)
	r.Restore(snap)
	if start {
		r.Start()
	}
	ret := make(shepherd.GateBuffer, frames)
	block := cfg.Audio.BufferSize
	if block <= 0 {
		block = 1024
	}
	for i := 0; i < frames; i += block {
		r.Process(ret[i:min(i+block, frames)], nil, nil)
	}
	return ret
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

func printUsage() {
	fmt.Fprintf(os.Stderr, "Shepherd command line utility for rendering the gates of .yml/.json snapshots.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
