package whiteboard

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// Points is an ordered point list. It satisfies the postgres jsonb type.
type Points []Point

func (p *Points) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("type assertion to []byte failed: %T", value)
	}
	return json.Unmarshal(bytes, p)
}

func (p Points) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Clone returns an independent copy.
func (p Points) Clone() Points {
	if p == nil {
		return nil
	}
	out := make(Points, len(p))
	copy(out, p)
	return out
}

// Last returns the final point and whether the list is non-empty.
func (p Points) Last() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1], true
}

// Bounds returns the min and max corners. An empty list yields zero points.
func (p Points) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pt := range p {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}
