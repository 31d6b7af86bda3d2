package gpx

import (
	"io"
	"strconv"
	"strings"
	"time"

	xw "github.com/shabbyrobe/xmlwriter"
)

// defaultCreator is emitted when a document has no creator set; the
// creator attribute is mandatory on the wire.
const defaultCreator = "https://github.com/muktihari/gpx"

// Write serializes doc to w as indented XML. The document's Version
// selects which grammar is emitted: GPX 1.0 flattens metadata into
// top-level elements, GPX 1.1 nests it under <metadata>. A document
// whose Version is unknown cannot be written, there is no generic
// fallback serialization.
func Write(doc *GPX, w io.Writer) error {
	if doc.Version != Version10 && doc.Version != Version11 {
		return &UnknownVersionError{Version: doc.Version.String()}
	}

	creator := doc.Creator
	if creator == "" {
		creator = defaultCreator
	}

	d := &docWriter{xw: xw.Open(w, xw.WithIndent()), version: doc.Version}
	d.startDoc()
	d.startElem("gpx")
	d.attr("xmlns", doc.Version.Namespace())
	d.attr("version", doc.Version.String())
	d.attr("creator", creator)

	if doc.Version == Version10 {
		d.metadata10(doc.Metadata)
	} else {
		d.metadata11(doc.Metadata)
	}
	for i := range doc.Waypoints {
		d.waypoint("wpt", &doc.Waypoints[i])
	}
	for i := range doc.Tracks {
		d.track(&doc.Tracks[i])
	}
	for i := range doc.Routes {
		d.route(&doc.Routes[i])
	}

	d.endElem()
	if d.err != nil {
		return d.err
	}
	return d.xw.EndAllFlush()
}

// docWriter walks the document tree emitting XML events. The first
// emitter error sticks and turns every later call into a no-op, so
// the tree walk reads without per-call error plumbing.
type docWriter struct {
	xw      *xw.Writer
	version Version
	err     error
}

func (d *docWriter) startDoc() {
	if d.err != nil {
		return
	}
	d.err = d.xw.StartDoc(xw.Doc{})
}

func (d *docWriter) startElem(name string) {
	if d.err != nil {
		return
	}
	d.err = d.xw.StartElem(xw.Elem{Name: name})
}

func (d *docWriter) attr(name, value string) {
	if d.err != nil {
		return
	}
	d.err = d.xw.WriteAttr(xw.Attr{Name: name, Value: value})
}

func (d *docWriter) text(s string) {
	if d.err != nil {
		return
	}
	d.err = d.xw.Write(xw.Text(s))
}

func (d *docWriter) endElem() {
	if d.err != nil {
		return
	}
	d.err = d.xw.EndElem()
}

// str writes <tag>value</tag>.
func (d *docWriter) str(tag, value string) {
	d.startElem(tag)
	d.text(value)
	d.endElem()
}

func (d *docWriter) strIfExists(tag string, v *string) {
	if v == nil {
		return
	}
	d.str(tag, *v)
}

func (d *docWriter) floatIfExists(tag string, v *float64) {
	if v == nil {
		return
	}
	d.str(tag, formatFloat(*v))
}

// uintIfExists writes any optional unsigned field as decimal text.
func uintIfExists[T ~uint16 | ~uint32 | ~uint64](d *docWriter, tag string, v *T) {
	if v == nil {
		return
	}
	d.str(tag, strconv.FormatUint(uint64(*v), 10))
}

func (d *docWriter) timeIfExists(v *time.Time) {
	if v == nil {
		return
	}
	d.str("time", v.UTC().Format(time.RFC3339Nano))
}

// emailIfExists splits an id@domain address back into the two
// mandatory attributes of the <email> element. Addresses that do not
// contain exactly one @ cannot be represented and fail the write.
func (d *docWriter) emailIfExists(v *string) {
	if v == nil || d.err != nil {
		return
	}
	parts := strings.Split(*v, "@")
	switch {
	case len(parts) > 2:
		d.err = &InvalidEmailError{Address: *v, Reason: "contains more than one @"}
	case len(parts) < 2 || parts[0] == "":
		d.err = &InvalidEmailError{Address: *v, Reason: "missing id part"}
	case parts[1] == "":
		d.err = &InvalidEmailError{Address: *v, Reason: "missing domain part"}
	default:
		d.startElem("email")
		d.attr("id", parts[0])
		d.attr("domain", parts[1])
		d.endElem()
	}
}

func (d *docWriter) link(link *Link) {
	d.startElem("link")
	d.attr("href", link.Href)
	d.strIfExists("text", link.Text)
	d.strIfExists("type", link.Type)
	d.endElem()
}

// links emits the waypoint/track/route link set. GPX 1.1 writes <link>
// elements; GPX 1.0 has only the single url/urlname pair, so the first
// link is flattened and the rest have no representation.
func (d *docWriter) links(links []Link) {
	if d.version == Version10 {
		if len(links) == 0 {
			return
		}
		d.str("url", links[0].Href)
		d.strIfExists("urlname", links[0].Text)
		return
	}
	for i := range links {
		d.link(&links[i])
	}
}

func (d *docWriter) personIfExists(tag string, v *Person) {
	if v == nil {
		return
	}
	d.startElem(tag)
	d.strIfExists("name", v.Name)
	d.emailIfExists(v.Email)
	if v.Link != nil {
		d.link(v.Link)
	}
	d.endElem()
}

func (d *docWriter) copyrightIfExists(v *Copyright) {
	if v == nil {
		return
	}
	d.startElem("copyright")
	if v.Author != nil {
		d.attr("author", *v.Author)
	}
	if v.Year != nil {
		d.str("year", strconv.Itoa(*v.Year))
	}
	d.strIfExists("license", v.License)
	d.endElem()
}

func (d *docWriter) boundsIfExists(v *Bounds) {
	if v == nil {
		return
	}
	d.startElem("bounds")
	d.attr("minlat", formatFloat(v.MinLat))
	d.attr("maxlat", formatFloat(v.MaxLat))
	d.attr("minlon", formatFloat(v.MinLon))
	d.attr("maxlon", formatFloat(v.MaxLon))
	d.endElem()
}

// metadata10 flattens Metadata back out as GPX 1.0 top-level elements,
// mirroring the root consumer's reconciliation in reverse.
func (d *docWriter) metadata10(m *Metadata) {
	if m == nil {
		return
	}
	d.strIfExists("name", m.Name)
	d.strIfExists("desc", m.Description)
	if m.Author != nil {
		d.strIfExists("author", m.Author.Name)
		d.emailIfExists(m.Author.Email)
		if m.Author.Link != nil {
			d.str("url", m.Author.Link.Href)
			d.strIfExists("urlname", m.Author.Link.Text)
		}
	}
	d.strIfExists("keywords", m.Keywords)
	d.timeIfExists(m.Time)
	d.boundsIfExists(m.Bounds)
}

func (d *docWriter) metadata11(m *Metadata) {
	if m == nil {
		return
	}
	d.startElem("metadata")
	d.strIfExists("name", m.Name)
	d.strIfExists("desc", m.Description)
	d.personIfExists("author", m.Author)
	d.copyrightIfExists(m.Copyright)
	for i := range m.Links {
		d.link(&m.Links[i])
	}
	d.timeIfExists(m.Time)
	d.strIfExists("keywords", m.Keywords)
	d.boundsIfExists(m.Bounds)
	d.endElem()
}

func (d *docWriter) waypoint(tag string, w *Waypoint) {
	d.startElem(tag)
	d.attr("lat", formatFloat(w.Lat))
	d.attr("lon", formatFloat(w.Lon))
	d.floatIfExists("ele", w.Elevation)
	if d.version == Version10 {
		// speed exists only in the 1.0 grammar; keeping it on write
		// preserves the parse/write round trip for 1.0 documents.
		d.floatIfExists("speed", w.Speed)
	}
	d.timeIfExists(w.Time)
	d.strIfExists("name", w.Name)
	d.strIfExists("cmt", w.Comment)
	d.strIfExists("desc", w.Description)
	d.strIfExists("src", w.Source)
	d.links(w.Links)
	d.strIfExists("sym", w.Symbol)
	d.strIfExists("type", w.Type)
	if w.Fix != nil {
		d.str("fix", string(*w.Fix))
	}
	uintIfExists(d, "sat", w.Sat)
	d.floatIfExists("hdop", w.HDOP)
	d.floatIfExists("vdop", w.VDOP)
	d.floatIfExists("pdop", w.PDOP)
	d.floatIfExists("ageofdgpsdata", w.AgeOfDGPSData)
	uintIfExists(d, "dgpsid", w.DGPSID)
	d.endElem()
}

func (d *docWriter) track(t *Track) {
	d.startElem("trk")
	d.strIfExists("name", t.Name)
	d.strIfExists("cmt", t.Comment)
	d.strIfExists("desc", t.Description)
	d.strIfExists("src", t.Source)
	d.links(t.Links)
	uintIfExists(d, "number", t.Number)
	d.strIfExists("type", t.Type)
	for i := range t.Segments {
		d.startElem("trkseg")
		for j := range t.Segments[i].Points {
			d.waypoint("trkpt", &t.Segments[i].Points[j])
		}
		d.endElem()
	}
	d.endElem()
}

func (d *docWriter) route(r *Route) {
	d.startElem("rte")
	d.strIfExists("name", r.Name)
	d.strIfExists("cmt", r.Comment)
	d.strIfExists("desc", r.Description)
	d.strIfExists("src", r.Source)
	d.links(r.Links)
	uintIfExists(d, "number", r.Number)
	d.strIfExists("type", r.Type)
	for i := range r.Points {
		d.waypoint("rtept", &r.Points[i])
	}
	d.endElem()
}

// formatFloat renders the shortest decimal string that parses back to
// the identical float64.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
