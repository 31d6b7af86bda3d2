package gpx

import (
	"errors"
	"io"
	"strconv"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0 // exclusive; 180 wraps to -180
)

// consumeWaypoint reads one point element. The opening tag name is a
// parameter because the same grammar backs <wpt>, <trkpt> and <rtept>.
func consumeWaypoint(c *parseContext, tag string) (Waypoint, error) {
	attrs, err := c.verifyStartingTag(tag)
	if err != nil {
		return Waypoint{}, err
	}

	var wpt Waypoint
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"lat", &wpt.Lat},
		{"lon", &wpt.Lon},
	} {
		raw, ok := findAttr(attrs, f.name)
		if !ok {
			return Waypoint{}, &MissingAttributeError{Attr: f.name, Element: tag}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Waypoint{}, &InvalidValueError{Context: f.name, Value: raw, Err: err}
		}
		*f.dst = v
	}
	if wpt.Lat < minLatitude || wpt.Lat > maxLatitude {
		return Waypoint{}, &OutOfRangeError{Field: "lat", Value: wpt.Lat, Min: minLatitude, Max: maxLatitude}
	}
	if wpt.Lon < minLongitude || wpt.Lon >= maxLongitude {
		return Waypoint{}, &OutOfRangeError{Field: "lon", Value: wpt.Lon, Min: minLongitude, Max: maxLongitude}
	}

	// GPX 1.0 has no <link>; it carries a single url/urlname pair that
	// is folded into a Link when the element closes.
	var url, urlname *string
	var seenExtensions bool

	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Waypoint{}, &MissingClosingTagError{Parent: tag}
		}
		if err != nil {
			return Waypoint{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "ele":
				v, err := consumeFloat(c, "ele")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Elevation = &v
			case "speed":
				if c.version != Version10 {
					return Waypoint{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
				}
				v, err := consumeFloat(c, "speed")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Speed = &v
			case "time":
				t, err := consumeTime(c)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Time = &t
			case "name":
				content, err := consumeString(c, "name", false)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Name = &content
			case "cmt":
				content, err := consumeString(c, "cmt", true)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Comment = &content
			case "desc":
				content, err := consumeString(c, "desc", true)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Description = &content
			case "src":
				content, err := consumeString(c, "src", true)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Source = &content
			case "link":
				if c.version == Version10 {
					return Waypoint{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
				}
				link, err := consumeLink(c)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Links = append(wpt.Links, link)
			case "url":
				if c.version != Version10 {
					return Waypoint{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
				}
				content, err := consumeString(c, "url", false)
				if err != nil {
					return Waypoint{}, err
				}
				url = &content
			case "urlname":
				if c.version != Version10 {
					return Waypoint{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
				}
				content, err := consumeString(c, "urlname", true)
				if err != nil {
					return Waypoint{}, err
				}
				urlname = &content
			case "sym":
				content, err := consumeString(c, "sym", false)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Symbol = &content
			case "type":
				content, err := consumeString(c, "type", false)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Type = &content
			case "fix":
				fix, err := consumeFix(c)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Fix = &fix
			case "sat":
				v, err := consumeUint(c, "sat", 64)
				if err != nil {
					return Waypoint{}, err
				}
				wpt.Sat = &v
			case "hdop":
				v, err := consumeFloat(c, "hdop")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.HDOP = &v
			case "vdop":
				v, err := consumeFloat(c, "vdop")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.VDOP = &v
			case "pdop":
				v, err := consumeFloat(c, "pdop")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.PDOP = &v
			case "ageofdgpsdata":
				v, err := consumeFloat(c, "ageofdgpsdata")
				if err != nil {
					return Waypoint{}, err
				}
				wpt.AgeOfDGPSData = &v
			case "dgpsid":
				v, err := consumeUint(c, "dgpsid", 16)
				if err != nil {
					return Waypoint{}, err
				}
				if v > 1023 {
					return Waypoint{}, &OutOfRangeError{Field: "dgpsid", Value: float64(v), Min: 0, Max: 1023}
				}
				id := uint16(v)
				wpt.DGPSID = &id
			case "extensions":
				if seenExtensions {
					return Waypoint{}, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return Waypoint{}, err
				}
			default:
				return Waypoint{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
			}
		case eventEnd:
			if ev.name != tag {
				return Waypoint{}, &InvalidClosingTagError{Tag: ev.name, Parent: tag}
			}
			c.next()
			if link := linkFromURL(url, urlname); link != nil {
				wpt.Links = append(wpt.Links, *link)
			}
			return wpt, nil
		default:
			c.next()
		}
	}
}

// linkFromURL builds a Link from GPX 1.0 url/urlname fields. A name
// without a URL has nothing to point at and is dropped.
func linkFromURL(url, urlname *string) *Link {
	if url == nil || *url == "" {
		return nil
	}
	link := Link{Href: *url}
	if urlname != nil && *urlname != "" {
		link.Text = urlname
	}
	return &link
}

// consumeTrackSegment reads a <trkseg> element: a run of track points.
func consumeTrackSegment(c *parseContext) (TrackSegment, error) {
	if _, err := c.verifyStartingTag("trkseg"); err != nil {
		return TrackSegment{}, err
	}

	var segment TrackSegment
	var seenExtensions bool
	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return TrackSegment{}, &MissingClosingTagError{Parent: "trkseg"}
		}
		if err != nil {
			return TrackSegment{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "trkpt":
				point, err := consumeWaypoint(c, "trkpt")
				if err != nil {
					return TrackSegment{}, err
				}
				segment.Points = append(segment.Points, point)
			case "extensions":
				if seenExtensions {
					return TrackSegment{}, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return TrackSegment{}, err
				}
			default:
				return TrackSegment{}, &InvalidChildElementError{Child: ev.name, Parent: "trkseg"}
			}
		case eventEnd:
			if ev.name != "trkseg" {
				return TrackSegment{}, &InvalidClosingTagError{Tag: ev.name, Parent: "trkseg"}
			}
			c.next()
			return segment, nil
		default:
			c.next()
		}
	}
}

// consumeTrack reads a <trk> element.
func consumeTrack(c *parseContext) (Track, error) {
	if _, err := c.verifyStartingTag("trk"); err != nil {
		return Track{}, err
	}

	var track Track
	var url, urlname *string
	var seenExtensions bool
	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Track{}, &MissingClosingTagError{Parent: "trk"}
		}
		if err != nil {
			return Track{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "name":
				content, err := consumeString(c, "name", false)
				if err != nil {
					return Track{}, err
				}
				track.Name = &content
			case "cmt":
				content, err := consumeString(c, "cmt", true)
				if err != nil {
					return Track{}, err
				}
				track.Comment = &content
			case "desc":
				content, err := consumeString(c, "desc", true)
				if err != nil {
					return Track{}, err
				}
				track.Description = &content
			case "src":
				content, err := consumeString(c, "src", true)
				if err != nil {
					return Track{}, err
				}
				track.Source = &content
			case "link":
				if c.version == Version10 {
					return Track{}, &InvalidChildElementError{Child: ev.name, Parent: "trk"}
				}
				link, err := consumeLink(c)
				if err != nil {
					return Track{}, err
				}
				track.Links = append(track.Links, link)
			case "url":
				if c.version != Version10 {
					return Track{}, &InvalidChildElementError{Child: ev.name, Parent: "trk"}
				}
				content, err := consumeString(c, "url", false)
				if err != nil {
					return Track{}, err
				}
				url = &content
			case "urlname":
				if c.version != Version10 {
					return Track{}, &InvalidChildElementError{Child: ev.name, Parent: "trk"}
				}
				content, err := consumeString(c, "urlname", true)
				if err != nil {
					return Track{}, err
				}
				urlname = &content
			case "number":
				v, err := consumeUint(c, "number", 32)
				if err != nil {
					return Track{}, err
				}
				n := uint32(v)
				track.Number = &n
			case "type":
				content, err := consumeString(c, "type", false)
				if err != nil {
					return Track{}, err
				}
				track.Type = &content
			case "trkseg":
				segment, err := consumeTrackSegment(c)
				if err != nil {
					return Track{}, err
				}
				track.Segments = append(track.Segments, segment)
			case "extensions":
				if seenExtensions {
					return Track{}, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return Track{}, err
				}
			default:
				return Track{}, &InvalidChildElementError{Child: ev.name, Parent: "trk"}
			}
		case eventEnd:
			if ev.name != "trk" {
				return Track{}, &InvalidClosingTagError{Tag: ev.name, Parent: "trk"}
			}
			c.next()
			if link := linkFromURL(url, urlname); link != nil {
				track.Links = append(track.Links, *link)
			}
			return track, nil
		default:
			c.next()
		}
	}
}

// consumeRoute reads a <rte> element. It shares the track's
// descriptive grammar but holds its own points instead of segments.
func consumeRoute(c *parseContext) (Route, error) {
	if _, err := c.verifyStartingTag("rte"); err != nil {
		return Route{}, err
	}

	var route Route
	var url, urlname *string
	var seenExtensions bool
	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Route{}, &MissingClosingTagError{Parent: "rte"}
		}
		if err != nil {
			return Route{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "name":
				content, err := consumeString(c, "name", false)
				if err != nil {
					return Route{}, err
				}
				route.Name = &content
			case "cmt":
				content, err := consumeString(c, "cmt", true)
				if err != nil {
					return Route{}, err
				}
				route.Comment = &content
			case "desc":
				content, err := consumeString(c, "desc", true)
				if err != nil {
					return Route{}, err
				}
				route.Description = &content
			case "src":
				content, err := consumeString(c, "src", true)
				if err != nil {
					return Route{}, err
				}
				route.Source = &content
			case "link":
				if c.version == Version10 {
					return Route{}, &InvalidChildElementError{Child: ev.name, Parent: "rte"}
				}
				link, err := consumeLink(c)
				if err != nil {
					return Route{}, err
				}
				route.Links = append(route.Links, link)
			case "url":
				if c.version != Version10 {
					return Route{}, &InvalidChildElementError{Child: ev.name, Parent: "rte"}
				}
				content, err := consumeString(c, "url", false)
				if err != nil {
					return Route{}, err
				}
				url = &content
			case "urlname":
				if c.version != Version10 {
					return Route{}, &InvalidChildElementError{Child: ev.name, Parent: "rte"}
				}
				content, err := consumeString(c, "urlname", true)
				if err != nil {
					return Route{}, err
				}
				urlname = &content
			case "number":
				v, err := consumeUint(c, "number", 32)
				if err != nil {
					return Route{}, err
				}
				n := uint32(v)
				route.Number = &n
			case "type":
				content, err := consumeString(c, "type", false)
				if err != nil {
					return Route{}, err
				}
				route.Type = &content
			case "rtept":
				point, err := consumeWaypoint(c, "rtept")
				if err != nil {
					return Route{}, err
				}
				route.Points = append(route.Points, point)
			case "extensions":
				if seenExtensions {
					return Route{}, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return Route{}, err
				}
			default:
				return Route{}, &InvalidChildElementError{Child: ev.name, Parent: "rte"}
			}
		case eventEnd:
			if ev.name != "rte" {
				return Route{}, &InvalidClosingTagError{Tag: ev.name, Parent: "rte"}
			}
			c.next()
			if link := linkFromURL(url, urlname); link != nil {
				route.Links = append(route.Links, *link)
			}
			return route, nil
		default:
			c.next()
		}
	}
}
