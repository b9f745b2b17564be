package common

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Vec3 is a position, direction or scale in level space.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// One is the unit scale.
var One = Vec3{X: 1, Y: 1, Z: 1}

func (a Vec3) Add(b Vec3) Vec3    { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3    { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func (a Vec3) Mul(t float64) Vec3 { return Vec3{X: a.X * t, Y: a.Y * t, Z: a.Z * t} }
func (a Vec3) Scale(b Vec3) Vec3  { return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Length() float64    { return math.Sqrt(a.Dot(a)) }
func (a Vec3) IsZero() bool       { return a == Vec3{} }
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func (a Vec3) MarshalYAML() (any, error) {
	type plain Vec3
	return flowNode(plain(a))
}

// Quat is a rotation stored as a unit quaternion.
type Quat struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

// Identity is the zero rotation.
var Identity = Quat{W: 1}

// Euler builds a rotation from angles in degrees, applied Z then X then Y.
func Euler(x, y, z float64) Quat {
	rad := math.Pi / 180
	cx, sx := math.Cos(x*rad/2), math.Sin(x*rad/2)
	cy, sy := math.Cos(y*rad/2), math.Sin(y*rad/2)
	cz, sz := math.Cos(z*rad/2), math.Sin(z*rad/2)
	return Quat{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

func (q Quat) Normalized() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return Identity
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

func (q Quat) MarshalYAML() (any, error) {
	type plain Quat
	return flowNode(plain(q))
}

// flowNode encodes v as a single-line YAML mapping so placement data stays
// compact in level files.
func flowNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return &n, nil
}
