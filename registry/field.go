package registry

import (
	"fmt"

	"github.com/milk9111/pulserun/codec"
)

// FieldDescriptor is one persisted field of a component type. The value
// type is fixed when the descriptor is built, so Apply and Capture always
// run the codec with the right static type.
type FieldDescriptor struct {
	ID   FieldID
	Name string
	Kind codec.Kind

	apply   func(instance any, encoded codec.EncodedValue) error
	capture func(instance any) (codec.EncodedValue, error)
}

// Field describes field id of component C with value type T.
func Field[C, T any](id FieldID, name string, get func(*C) T, set func(*C, T)) FieldDescriptor {
	return FieldDescriptor{
		ID:   id,
		Name: name,
		Kind: codec.KindOf[T](),
		apply: func(instance any, encoded codec.EncodedValue) error {
			c, ok := instance.(*C)
			if !ok || c == nil {
				return fmt.Errorf("%w: field %s got %T", ErrInstanceType, name, instance)
			}
			v, err := codec.Decode[T](encoded)
			if err != nil {
				return err
			}
			set(c, v)
			return nil
		},
		capture: func(instance any) (codec.EncodedValue, error) {
			c, ok := instance.(*C)
			if !ok || c == nil {
				return "", fmt.Errorf("%w: field %s got %T", ErrInstanceType, name, instance)
			}
			return codec.Encode(get(c))
		},
	}
}

// Apply decodes encoded and stores it on instance. A malformed value
// returns a *codec.DecodeError and leaves instance untouched.
func (f FieldDescriptor) Apply(instance any, encoded codec.EncodedValue) error {
	if f.apply == nil {
		return fmt.Errorf("registry: field %d has no accessor", f.ID)
	}
	return f.apply(instance, encoded)
}

// Capture encodes the field's current value on instance.
func (f FieldDescriptor) Capture(instance any) (codec.EncodedValue, error) {
	if f.capture == nil {
		return "", fmt.Errorf("registry: field %d has no accessor", f.ID)
	}
	return f.capture(instance)
}

// Describe decodes an encoded value for display without a live instance.
func (f FieldDescriptor) Describe(encoded codec.EncodedValue) (codec.Value, error) {
	return codec.DecodeValue(f.Kind, encoded)
}
