// Package gpx reads and writes the GPS Exchange Format (GPX), an XML
// dialect describing waypoints, tracks, and routes, in both of its
// incompatible schema generations (1.0 and 1.1).
//
// Parsing is a single forward-only pass over the token stream produced
// by github.com/muktihari/xmltokenizer: one consumer per GPX element
// walks exactly its own subtree, enforces that element's child and
// attribute grammar, and returns with the cursor positioned just after
// its own closing tag. The two schema generations are reconciled into
// one model: the flattened top-level fields of a 1.0 document (author,
// email, url, time, bounds, ...) surface in the same Metadata struct
// that a 1.1 document populates from its nested <metadata> element.
//
//	doc, err := gpx.Read(file)
//	if err != nil {
//		// handle err
//	}
//	for _, trk := range doc.Tracks {
//		...
//	}
//
// Write regenerates a semantically equivalent document from the model,
// version-gating which fields are emitted, so reading the written
// output again yields a structurally equal document. <extensions> blocks are the one
// exception: their vendor XML is validated for well-formed nesting but
// not retained.
package gpx
