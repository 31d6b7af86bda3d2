package gpx

import "time"

// Version is the GPX schema generation a document conforms to. The two
// released generations are not backward compatible: 1.0 flattens file
// metadata into the root element while 1.1 nests it under <metadata>.
type Version uint8

const (
	VersionUnknown Version = iota
	Version10              // GPX 1.0
	Version11              // GPX 1.1
)

// String returns the version as it appears in the gpx version attribute.
func (v Version) String() string {
	switch v {
	case Version10:
		return "1.0"
	case Version11:
		return "1.1"
	}
	return "unknown"
}

// Namespace returns the xmlns URI for the version.
func (v Version) Namespace() string {
	switch v {
	case Version10:
		return "http://www.topografix.com/GPX/1/0"
	case Version11:
		return "http://www.topografix.com/GPX/1/1"
	}
	return ""
}

// GPX is the root of an in-memory GPX document. It owns every other
// entity; no entity holds a back-reference to its parent.
type GPX struct {
	// Version is never VersionUnknown after a successful Read.
	Version Version

	// Creator identifies the program that produced the document.
	Creator string

	// Metadata about the file. On GPX 1.0 documents this is synthesized
	// from the flattened top-level fields and is nil when none were set.
	Metadata *Metadata

	// Waypoints holds the top-level, unrouted points.
	Waypoints []Waypoint

	Tracks []Track
	Routes []Route
}

// Metadata is information about the GPX file, its author, and
// copyright restrictions.
type Metadata struct {
	Name        *string
	Description *string

	// Author is the person or organization who created the file.
	Author *Person

	// Links point at URLs associated with the location described in the file.
	Links []Link

	// Time is the creation date of the file, normalized to UTC.
	Time *time.Time

	Keywords  *string
	Copyright *Copyright

	// Bounds covers the extent of the coordinates in the file.
	Bounds *Bounds
}

// Person represents a person or organization.
type Person struct {
	Name *string

	// Email is a full address in id@domain form. On the wire it is split
	// into the two mandatory attributes of the <email> element.
	Email *string

	Link *Link
}

// Link represents a link to an external resource (web page, digital
// photo, video clip, ...) with additional information.
type Link struct {
	// Href is the URL of the hyperlink. Required.
	Href string

	// Text of the hyperlink.
	Text *string

	// Type is the MIME type of the content (e.g. image/jpeg).
	Type *string
}

// Copyright holds information about the copyright holder and license
// governing use of the file.
type Copyright struct {
	Author  *string
	Year    *int
	License *string
}

// Bounds is the lat/lon extent of the file contents.
// MinLat <= MaxLat and MinLon <= MaxLon always hold; violating input
// is rejected during parsing, never silently swapped.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Track represents an ordered list of points describing a path,
// subdivided into segments marking continuous spans of track data.
type Track struct {
	Name        *string
	Comment     *string
	Description *string

	// Source of data, to give some idea of its reliability and accuracy.
	Source *string

	Links []Link

	// Number is the GPS track number.
	Number *uint32

	// Type (classification) of track.
	Type *string

	Segments []TrackSegment
}

// TrackSegment holds a list of track points which are logically
// connected in order. Start a new segment for each continuous span of
// track data after GPS reception was lost or the receiver was off.
type TrackSegment struct {
	Points []Waypoint
}

// Route represents an ordered list of waypoints leading to a
// destination.
type Route struct {
	Name        *string
	Comment     *string
	Description *string
	Source      *string
	Links       []Link
	Number      *uint32
	Type        *string

	Points []Waypoint
}

// Waypoint represents a waypoint, point of interest, or named feature
// on a map. The same shape backs <wpt>, <trkpt> and <rtept>.
type Waypoint struct {
	// Lat is the latitude in decimal degrees, in [-90, 90].
	Lat float64

	// Lon is the longitude in decimal degrees, in [-180, 180).
	Lon float64

	// Elevation of the point, in meters.
	Elevation *float64

	// Speed in meters per second. GPX 1.0 only.
	Speed *float64

	// Time is the creation/modification timestamp, normalized to UTC.
	Time *time.Time

	Name        *string
	Comment     *string
	Description *string
	Source      *string
	Links       []Link

	// Symbol is the exact spelling of the GPS symbol name.
	Symbol *string

	// Type (classification) of the waypoint.
	Type *string

	// Fix is the type of GPS fix. Leave nil to signify "fix info is
	// unknown"; FixNone means the GPS had no fix.
	Fix *Fix

	// Sat is the number of satellites used to calculate the fix.
	Sat *uint64

	// HDOP, VDOP and PDOP are horizontal, vertical, and positional
	// dilution of precision.
	HDOP *float64
	VDOP *float64
	PDOP *float64

	// AgeOfDGPSData is the number of seconds since the last DGPS update.
	AgeOfDGPSData *float64

	// DGPSID is the ID of the DGPS station used in differential
	// correction, in [0, 1023].
	DGPSID *uint16
}

// Fix is the type of a GPS fix. The five values below come from the
// GPX specification; any other literal is carried through unchanged so
// that vendor-specific values round-trip.
type Fix string

const (
	FixNone Fix = "none"
	Fix2D   Fix = "2d"   // needs a minimum of 3 satellites
	Fix3D   Fix = "3d"   // needs a minimum of 4 satellites
	FixDGPS Fix = "dgps" // differential GPS
	FixPPS  Fix = "pps"  // military signal
)
