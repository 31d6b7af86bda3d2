package gpx

import (
	"errors"
	"io"
	"strconv"
	"time"
)

// consumeString reads one flat text element: its opening tag, optional
// character data, and its matching closing tag. GPX leaf fields may
// not contain child elements. Some GPX 1.0 fields tolerate empty
// content (allowEmpty); everywhere else absent text is an error.
func consumeString(c *parseContext, tag string, allowEmpty bool) (string, error) {
	if _, err := c.verifyStartingTag(tag); err != nil {
		return "", err
	}

	var content string
	var got bool
	for {
		ev, err := c.next()
		if errors.Is(err, io.EOF) {
			return "", &MissingClosingTagError{Parent: tag}
		}
		if err != nil {
			return "", err
		}

		switch ev.kind {
		case eventStart:
			return "", &InvalidChildElementError{Child: ev.name, Parent: tag}
		case eventText:
			content, got = ev.text, true
		case eventEnd:
			if ev.name != tag {
				return "", &InvalidClosingTagError{Tag: ev.name, Parent: tag}
			}
			if !got && !allowEmpty {
				return "", &EmptyElementError{Tag: tag}
			}
			return content, nil
		}
	}
}

// timeLayoutLocal accepts xsd:dateTime values without a zone offset,
// which the GPX spec considers "undetermined"; they are read as UTC.
const timeLayoutLocal = "2006-01-02T15:04:05.999999999"

// consumeTime reads a <time> element holding an RFC3339/ISO-8601
// timestamp and normalizes it to UTC.
func consumeTime(c *parseContext) (time.Time, error) {
	content, err := consumeString(c, "time", false)
	if err != nil {
		return time.Time{}, err
	}
	t, err := parseTime(content)
	if err != nil {
		return time.Time{}, &InvalidValueError{Context: "time", Value: content, Err: err}
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t.UTC(), nil
	}
	if t, lerr := time.Parse(timeLayoutLocal, s); lerr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

// consumeFix reads a <fix> element. The five canonical lowercase
// tokens map onto the Fix constants; anything else is kept verbatim
// so vendor-specific fix values survive a round trip.
func consumeFix(c *parseContext) (Fix, error) {
	content, err := consumeString(c, "fix", false)
	if err != nil {
		return "", err
	}
	return Fix(content), nil
}

// consumeBounds reads a <bounds> element. It has no text body, only
// the four required attributes; any child element is an error.
func consumeBounds(c *parseContext) (Bounds, error) {
	attrs, err := c.verifyStartingTag("bounds")
	if err != nil {
		return Bounds{}, err
	}

	var b Bounds
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"minlat", &b.MinLat},
		{"maxlat", &b.MaxLat},
		{"minlon", &b.MinLon},
		{"maxlon", &b.MaxLon},
	} {
		raw, ok := findAttr(attrs, f.name)
		if !ok {
			return Bounds{}, &MissingAttributeError{Attr: f.name, Element: "bounds"}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Bounds{}, &InvalidValueError{Context: f.name, Value: raw, Err: err}
		}
		*f.dst = v
	}

	// Reject inverted rectangles instead of swapping the corners.
	if b.MinLon > b.MaxLon {
		return Bounds{}, &BoundsOrderError{Axis: "longitude"}
	}
	if b.MinLat > b.MaxLat {
		return Bounds{}, &BoundsOrderError{Axis: "latitude"}
	}

	for {
		ev, err := c.next()
		if errors.Is(err, io.EOF) {
			return Bounds{}, &MissingClosingTagError{Parent: "bounds"}
		}
		if err != nil {
			return Bounds{}, err
		}
		switch ev.kind {
		case eventStart:
			return Bounds{}, &InvalidChildElementError{Child: ev.name, Parent: "bounds"}
		case eventEnd:
			if ev.name != "bounds" {
				return Bounds{}, &InvalidClosingTagError{Tag: ev.name, Parent: "bounds"}
			}
			return b, nil
		}
	}
}

// consumeFloat reads a flat element and parses it as a float64.
func consumeFloat(c *parseContext, tag string) (float64, error) {
	content, err := consumeString(c, tag, false)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(content, 64)
	if err != nil {
		return 0, &InvalidValueError{Context: tag, Value: content, Err: err}
	}
	return v, nil
}

// consumeUint reads a flat element and parses it as an unsigned
// integer of the given bit size.
func consumeUint(c *parseContext, tag string, bitSize int) (uint64, error) {
	content, err := consumeString(c, tag, false)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(content, 10, bitSize)
	if err != nil {
		return 0, &InvalidValueError{Context: tag, Value: content, Err: err}
	}
	return v, nil
}
