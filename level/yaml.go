package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pulserun/common"
)

var ErrEmpty = errors.New("level: empty document")

// DecodeError reports level data that could not be parsed.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("level: decode: %v", e.Err)
	}
	return fmt.Sprintf("level: decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Marshal encodes d in the level file format. Equal documents always
// produce identical bytes.
func Marshal(d *Document) ([]byte, error) {
	if d == nil {
		return nil, errors.New("level: marshal nil document")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("level: marshal %s: %w", d.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("level: marshal %s: %w", d.Name, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a level file. Keys missing from data keep the values
// of Default. Unknown keys are ignored so older builds can open newer
// files.
func Unmarshal(data []byte) (*Document, error) {
	d := Default()
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmpty
		}
		return nil, &DecodeError{Err: err}
	}
	return d, nil
}

// UnmarshalYAML defaults rotation and scale for placements written
// without them.
func (o *PlacedObject) UnmarshalYAML(value *yaml.Node) error {
	type plain PlacedObject
	p := plain{Rotation: common.Identity, Scale: common.One}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*o = PlacedObject(p)
	return nil
}
