package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goodsheperd/shepherd"
	"gopkg.in/yaml.v3"
)

type (
	// RowConfig is the window and gate probability of one row.
	RowConfig struct {
		Start       int     `yaml:"start"`
		End         int     `yaml:"end"`
		Probability float32 `yaml:"probability"` // volts, 10 lets every gate through
	}

	// TransportConfig enables the start/stop transport and clock divider in
	// front of an external clock. It has no effect while the rack runs from
	// its internal clock, e.g. in the panel and the renderer.
	TransportConfig struct {
		Enabled bool `yaml:"enabled"`
		Divisor int  `yaml:"divisor"` // index into the divider ratios
	}

	// MelodyConfig is the three row melody sequencer clocked by the grid.
	MelodyConfig struct {
		Enabled bool        `yaml:"enabled"`
		Steps   int         `yaml:"steps"`
		Shape   float32     `yaml:"shape"`
		Rows    [][]float32 `yaml:"rows,flow"`
	}

	MIDIConfig struct {
		Input          string `yaml:"input"`  // port name prefix, empty disables
		Output         string `yaml:"output"` // port name prefix, empty disables
		InputChannel   int    `yaml:"inputChannel"`
		OutputChannel  int    `yaml:"outputChannel"`
		BaseNote       int    `yaml:"baseNote"` // note of row 0
		MelodyChannel  int    `yaml:"melodyChannel"`
		MelodyBaseNote int    `yaml:"melodyBaseNote"` // note played at 0 V
	}

	AudioConfig struct {
		Enabled    bool `yaml:"enabled"`
		BufferSize int  `yaml:"bufferSize"` // frames
	}

	// Config holds the settings of the command line tools. Fields missing
	// from a config file keep their default values.
	Config struct {
		SampleRate    int             `yaml:"sampleRate"`
		Tempo         float32         `yaml:"tempo"`         // the internal clock runs at 2^tempo Hz
		ExternalClock bool            `yaml:"externalClock"` // follow the clock input where there is one; false uses the internal clock
		Seed          uint32          `yaml:"seed"`
		Rows          []RowConfig     `yaml:"rows"`
		Transport     TransportConfig `yaml:"transport"`
		Melody        MelodyConfig    `yaml:"melody"`
		MIDI          MIDIConfig      `yaml:"midi"`
		Audio         AudioConfig     `yaml:"audio"`
		SnapshotPath  string          `yaml:"snapshotPath"`
	}
)

// Default returns the configuration used when there is no config file.
func Default() *Config {
	c := &Config{
		SampleRate:    44100,
		Tempo:         2,
		ExternalClock: true,
		Seed:          1,
		Rows:          make([]RowConfig, shepherd.NumRows),
		Melody: MelodyConfig{
			Steps: 8,
			Rows: [][]float32{
				{0, 2, 4, 5, 7, 9, 11, 12},
				{5, 5, 5, 5, 5, 5, 5, 5},
				{10, 0, 5, 0, 10, 0, 5, 0},
			},
		},
		MIDI: MIDIConfig{
			BaseNote:       36,
			MelodyChannel:  1,
			MelodyBaseNote: 60,
		},
		Audio: AudioConfig{Enabled: true, BufferSize: 1024},
	}
	for i := range c.Rows {
		c.Rows[i] = RowConfig{End: shepherd.NumColumns - 1, Probability: 10}
	}
	return c
}

// Row returns the settings of a row, or the defaults if the config file
// lists fewer rows.
func (c *Config) Row(i int) RowConfig {
	if i >= 0 && i < len(c.Rows) {
		return c.Rows[i]
	}
	return RowConfig{End: shepherd.NumColumns - 1, Probability: 10}
}

// Path returns the default location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user config directory: %v", err)
	}
	return filepath.Join(dir, "shepherd", "config.yml"), nil
}

// Load reads the config file at path, or at the default location if path
// is empty. A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return c, nil
		}
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config %v: %v", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("could not parse config %v: %v", path, err)
	}
	if c.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid config %v: sampleRate must be positive, got %v", path, c.SampleRate)
	}
	return c, nil
}

// Save writes the config to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %v", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config %v: %v", path, err)
	}
	return nil
}
