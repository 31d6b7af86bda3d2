package gpx

import (
	"errors"
	"io"
	"time"

	"github.com/muktihari/xmltokenizer"
)

// Read parses a GPX document from r and returns the in-memory
// document. The whole parse is a single depth-first traversal over the
// token stream; the first error encountered unwinds it immediately
// with no partial result.
func Read(r io.Reader) (*GPX, error) {
	c := newParseContext(xmltokenizer.New(r))
	return consumeGPX(c)
}

// gpx10Fields collects the GPX 1.0 top-level fields that 1.1 moved
// under <metadata>, so they can be reconciled once the root closes.
type gpx10Fields struct {
	name     *string
	desc     *string
	author   *string
	email    *string
	url      *string
	urlname  *string
	keywords *string
	time     *time.Time
	bounds   *Bounds
}

// consumeGPX reads the <gpx> root element. It detects the schema
// version from the root attributes before dispatching any child, so
// every version-gated consumer below sees the version cell already
// populated.
func consumeGPX(c *parseContext) (*GPX, error) {
	attrs, err := c.verifyStartingTag("gpx")
	if err != nil {
		return nil, err
	}

	raw, ok := findAttr(attrs, "version")
	if !ok {
		return nil, &MissingAttributeError{Attr: "version", Element: "gpx"}
	}
	var doc GPX
	switch raw {
	case "1.0":
		doc.Version = Version10
	case "1.1":
		doc.Version = Version11
	default:
		return nil, &UnknownVersionError{Version: raw}
	}
	c.version = doc.Version
	if creator, ok := findAttr(attrs, "creator"); ok {
		doc.Creator = creator
	}

	var flat gpx10Fields
	var seenMetadata, seenExtensions bool

	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return nil, &MissingClosingTagError{Parent: "gpx"}
		}
		if err != nil {
			return nil, err
		}

		switch ev.kind {
		case eventStart:
			switch {
			case ev.name == "wpt":
				wpt, err := consumeWaypoint(c, "wpt")
				if err != nil {
					return nil, err
				}
				doc.Waypoints = append(doc.Waypoints, wpt)
			case ev.name == "trk":
				track, err := consumeTrack(c)
				if err != nil {
					return nil, err
				}
				doc.Tracks = append(doc.Tracks, track)
			case ev.name == "rte":
				route, err := consumeRoute(c)
				if err != nil {
					return nil, err
				}
				doc.Routes = append(doc.Routes, route)
			case ev.name == "metadata" && doc.Version == Version11:
				if seenMetadata {
					return nil, &TagOpenedTwiceError{Tag: "metadata"}
				}
				seenMetadata = true
				metadata, err := consumeMetadata(c)
				if err != nil {
					return nil, err
				}
				doc.Metadata = &metadata
			case ev.name == "extensions":
				if seenExtensions {
					return nil, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return nil, err
				}
			case doc.Version == Version10:
				if err := consumeGPX10Field(c, ev.name, &flat); err != nil {
					return nil, err
				}
			default:
				return nil, &InvalidChildElementError{Child: ev.name, Parent: "gpx"}
			}
		case eventEnd:
			if ev.name != "gpx" {
				return nil, &InvalidClosingTagError{Tag: ev.name, Parent: "gpx"}
			}
			c.next()
			if doc.Version == Version10 {
				doc.Metadata = flat.reconcile()
			}
			return &doc, nil
		default:
			c.next()
		}
	}
}

// consumeGPX10Field reads one of the flattened top-level fields a GPX
// 1.0 root may carry in place of <metadata>.
func consumeGPX10Field(c *parseContext, name string, flat *gpx10Fields) error {
	switch name {
	case "name":
		content, err := consumeString(c, "name", false)
		if err != nil {
			return err
		}
		flat.name = &content
	case "desc":
		content, err := consumeString(c, "desc", true)
		if err != nil {
			return err
		}
		flat.desc = &content
	case "author":
		content, err := consumeString(c, "author", true)
		if err != nil {
			return err
		}
		flat.author = &content
	case "email":
		email, err := consumeEmail(c)
		if err != nil {
			return err
		}
		flat.email = &email
	case "url":
		content, err := consumeString(c, "url", false)
		if err != nil {
			return err
		}
		flat.url = &content
	case "urlname":
		content, err := consumeString(c, "urlname", true)
		if err != nil {
			return err
		}
		flat.urlname = &content
	case "keywords":
		content, err := consumeString(c, "keywords", true)
		if err != nil {
			return err
		}
		flat.keywords = &content
	case "time":
		t, err := consumeTime(c)
		if err != nil {
			return err
		}
		flat.time = &t
	case "bounds":
		bounds, err := consumeBounds(c)
		if err != nil {
			return err
		}
		flat.bounds = &bounds
	default:
		return &InvalidChildElementError{Child: name, Parent: "gpx"}
	}
	return nil
}

// reconcile synthesizes a Metadata from the flattened 1.0 fields. The
// author is only attached when at least one of its parts is non-empty,
// and the Metadata itself only materializes when it would carry at
// least one field, keeping "absent" distinct from "present but empty".
func (f *gpx10Fields) reconcile() *Metadata {
	var person Person
	if nonEmpty(f.author) {
		person.Name = f.author
	}
	if nonEmpty(f.email) {
		person.Email = f.email
	}
	person.Link = linkFromURL(f.url, f.urlname)

	var metadata Metadata
	if person.Name != nil || person.Email != nil || person.Link != nil {
		metadata.Author = &person
	}
	if nonEmpty(f.name) {
		metadata.Name = f.name
	}
	if nonEmpty(f.desc) {
		metadata.Description = f.desc
	}
	if nonEmpty(f.keywords) {
		metadata.Keywords = f.keywords
	}
	metadata.Time = f.time
	metadata.Bounds = f.bounds

	if metadata.Name == nil && metadata.Description == nil && metadata.Keywords == nil &&
		metadata.Author == nil && metadata.Time == nil && metadata.Bounds == nil {
		return nil
	}
	return &metadata
}

func nonEmpty(s *string) bool { return s != nil && *s != "" }
