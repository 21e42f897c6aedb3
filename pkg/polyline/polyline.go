// Package polyline converts between Google's encoded polyline format and orb
// line strings. The format is documented at:
// https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"math"

	"github.com/paulmach/orb"
)

// precision is 5 decimal places, the standard Google/routing-engine format.
const precision = 1e5

// Decode decodes a polyline-encoded string into a line string.
// Points follow the orb convention of (lon, lat) order.
func Decode(encoded string) orb.LineString {
	if encoded == "" {
		return nil
	}

	var line orb.LineString
	lat := 0
	lon := 0

	for index := 0; index < len(encoded); {
		latDelta, next := decodeValue(encoded, index)
		index = next
		lat += latDelta

		lonDelta, next := decodeValue(encoded, index)
		index = next
		lon += lonDelta

		line = append(line, orb.Point{
			float64(lon) / precision,
			float64(lat) / precision,
		})
	}

	return line
}

// decodeValue decodes a single delta value starting at index.
// Returns the delta and the index of the next value.
func decodeValue(encoded string, index int) (int, int) {
	shift := 0
	result := 0

	for index < len(encoded) {
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Two's complement for negative values
	if result&1 != 0 {
		return ^(result >> 1), index
	}
	return result >> 1, index
}

// Encode encodes a line string into the polyline format.
func Encode(line orb.LineString) string {
	if len(line) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(line)*4)
	prevLat := 0
	prevLon := 0

	for _, point := range line {
		lat := int(math.Round(point.Lat() * precision))
		lon := int(math.Round(point.Lon() * precision))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

// encodeValue appends a single delta value in 5-bit chunks.
func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	buf = append(buf, byte(value)+63)

	return buf
}
