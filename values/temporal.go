// File: values/temporal.go
// Author: momentics <momentics@gmail.com>
//
// Temporal and spatial Struct variants, protocol v2 only (spec section 3).
// A representative subset is implemented: Date, LocalDateTime, Duration,
// Point2D and Point3D; the remaining Bolt v2 temporal signatures follow the
// same per-kind-fields shape and would be added the same way.
package values

const (
	SigDate          = 0x44
	SigLocalDateTime = 0x64
	SigDuration      = 0x45
	SigPoint2D       = 0x58
	SigPoint3D       = 0x59
)

// NewDate constructs a Date value: days since the Unix epoch.
func NewDate(epochDays int64) Value {
	return Struct(SigDate, []Value{Int(epochDays)})
}

// NewLocalDateTime constructs a LocalDateTime value from epoch seconds and
// a nanosecond-of-second offset.
func NewLocalDateTime(epochSeconds int64, nanos int64) (Value, error) {
	if nanos < 0 || nanos >= 1_000_000_000 {
		return Null, errInvalidArgument("nanos must be in [0, 1e9)")
	}
	return Struct(SigLocalDateTime, []Value{Int(epochSeconds), Int(nanos)}), nil
}

// NewDuration constructs a Duration value in Cypher's four-component form.
func NewDuration(months, days, seconds, nanos int64) Value {
	return Struct(SigDuration, []Value{Int(months), Int(days), Int(seconds), Int(nanos)})
}

// NewPoint2D constructs a 2D spatial point tagged with its coordinate
// reference system id (srid).
func NewPoint2D(srid int64, x, y float64) Value {
	return Struct(SigPoint2D, []Value{Int(srid), Float(x), Float(y)})
}

// NewPoint3D constructs a 3D spatial point.
func NewPoint3D(srid int64, x, y, z float64) Value {
	return Struct(SigPoint3D, []Value{Int(srid), Float(x), Float(y), Float(z)})
}

// LocalTimeOfDay splits a nanosecond-of-day offset into hour, minute and
// second components.
//
// The source this was distilled from assigns tm_hour twice while building
// the equivalent conversion, silently dropping minutes (spec section 9,
// treated as a bug rather than emulated): hour, minute and second are
// written to distinct return values here.
func LocalTimeOfDay(nanosOfDay int64) (hour, minute, second int) {
	totalSeconds := nanosOfDay / 1_000_000_000
	hour = int(totalSeconds / 3600 % 24)
	minute = int(totalSeconds / 60 % 60)
	second = int(totalSeconds % 60)
	return hour, minute, second
}
