package shepherd

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	// Snapshot is the persisted state of the sequencer. Every field and every
	// list element is optional: restoring a snapshot only overwrites what is
	// present, so partial or damaged documents can still be loaded.
	Snapshot struct {
		Running      Optional[bool]
		Steps        []Optional[bool] // NumSteps cells, row-major
		Positions    []Optional[int]  // NumRows play head positions
		Increments   []Optional[int]  // NumRows step increments
		Mutes        []Optional[bool] // NumRows mute flags
		NudgeFullRow Optional[bool]   // true: nudges rotate the full row instead of the window

		Transport TransportState
		Melody    MelodyState
	}

	// TransportState is the persisted state of the transport and clock
	// divider in front of the sequencer.
	TransportState struct {
		DivisorIndex Optional[int] `json:"divisorIndex" yaml:"divisorIndex"`
		ClockCounter Optional[int] `json:"clockCounter" yaml:"clockCounter"`
	}

	// MelodyState is the persisted state of the melody lane: its step
	// sequencer and the switch choosing which of its rows is played.
	MelodyState struct {
		Running        Optional[bool]  `json:"running" yaml:"running"`
		Gates          Optionals[bool] `json:"gates,omitempty" yaml:"gates,flow,omitempty"`
		SwitchPosition Optional[int]   `json:"switchPosition" yaml:"switchPosition"`
	}

	// SnapshotFormat selects the serialization of EncodeSnapshot.
	SnapshotFormat int

	// snapshotDocument is the on-disk layout. Position and Increment are the
	// keys used by older saves; they are read but never written.
	snapshotDocument struct {
		Running      Optional[bool]  `json:"running" yaml:"running"`
		Steps        Optionals[bool] `json:"steps,omitempty" yaml:"steps,flow,omitempty"`
		Positions    Optionals[int]  `json:"positions,omitempty" yaml:"positions,flow,omitempty"`
		Increments   Optionals[int]  `json:"increments,omitempty" yaml:"increments,flow,omitempty"`
		Mutes        Optionals[bool] `json:"mutes,omitempty" yaml:"mutes,flow,omitempty"`
		NudgeFullRow Optional[bool]  `json:"nudgeFullRow" yaml:"nudgeFullRow"`
		Position     Optionals[int]  `json:"position,omitempty" yaml:"position,flow,omitempty"`
		Increment    Optionals[int]  `json:"increment,omitempty" yaml:"increment,flow,omitempty"`
		Transport    TransportState  `json:"transport" yaml:"transport,omitempty"`
		Melody       MelodyState     `json:"melody" yaml:"melody,omitempty"`
	}
)

const (
	YAML SnapshotFormat = iota
	JSON
)

// DecodeSnapshot parses a snapshot saved either as .json or .yml. Fields of
// the wrong type are skipped; an error is returned only if the data cannot be
// parsed as a document at all.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var doc snapshotDocument
	errJSON := json.Unmarshal(data, &doc)
	var jsonTypeErr *json.UnmarshalTypeError
	if errJSON != nil && !errors.As(errJSON, &jsonTypeErr) {
		doc = snapshotDocument{}
		errYaml := yaml.Unmarshal(data, &doc)
		var yamlTypeErr *yaml.TypeError
		if errYaml != nil && !errors.As(errYaml, &yamlTypeErr) {
			return Snapshot{}, fmt.Errorf("the snapshot could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return doc.snapshot(), nil
}

// EncodeSnapshot serializes the snapshot. Empty optionals are written as null
// so that element positions are kept.
func EncodeSnapshot(s Snapshot, format SnapshotFormat) ([]byte, error) {
	doc := snapshotDocument{
		Running:      s.Running,
		Steps:        Optionals[bool](s.Steps),
		Positions:    Optionals[int](s.Positions),
		Increments:   Optionals[int](s.Increments),
		Mutes:        Optionals[bool](s.Mutes),
		NudgeFullRow: s.NudgeFullRow,
		Transport:    s.Transport,
		Melody:       s.Melody,
	}
	var (
		ret []byte
		err error
	)
	switch format {
	case JSON:
		ret, err = json.MarshalIndent(doc, "", "  ")
	default:
		ret, err = yaml.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("could not encode snapshot: %v", err)
	}
	return ret, nil
}

func (d *snapshotDocument) snapshot() Snapshot {
	s := Snapshot{
		Running:      d.Running,
		Steps:        d.Steps,
		Positions:    d.Positions,
		Increments:   d.Increments,
		Mutes:        d.Mutes,
		NudgeFullRow: d.NudgeFullRow,
		Transport:    d.Transport,
		Melody:       d.Melody,
	}
	if s.Positions == nil {
		s.Positions = d.Position
	}
	if s.Increments == nil {
		s.Increments = d.Increment
	}
	return s
}
