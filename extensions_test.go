package gpx

import (
	"errors"
	"testing"
)

func TestConsumeExtensions(t *testing.T) {
	t.Run("arbitrary content is swallowed", func(t *testing.T) {
		c := newTestContext(
			`<extensions>
				hello world
				<a><b cond="no"><c>derp</c></b></a>
				<tag>yadda yadda we dont care</tag>
			</extensions>`,
			Version11,
		)
		if err := consumeExtensions(c); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("nested extensions", func(t *testing.T) {
		c := newTestContext(
			`<extensions>
				<gpxtpx:TrackPointExtension>
					<extensions><vendor>data</vendor></extensions>
				</gpxtpx:TrackPointExtension>
			</extensions>`,
			Version11,
		)
		if err := consumeExtensions(c); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("self closing children", func(t *testing.T) {
		c := newTestContext(`<extensions><a/><b x="1"/></extensions>`, Version11)
		if err := consumeExtensions(c); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("mismatched closing tag", func(t *testing.T) {
		c := newTestContext(`<extensions><a><b></a></b></extensions>`, Version11)
		err := consumeExtensions(c)
		var closeErr *InvalidClosingTagError
		if !errors.As(err, &closeErr) {
			t.Fatalf("expected InvalidClosingTagError, got %v", err)
		}
		if closeErr.Tag != "a" || closeErr.Parent != "b" {
			t.Fatalf("unexpected error detail: %+v", closeErr)
		}
	})

	t.Run("missing closing tag", func(t *testing.T) {
		c := newTestContext(`<extensions><a></a>`, Version11)
		err := consumeExtensions(c)
		var missingErr *MissingClosingTagError
		if !errors.As(err, &missingErr) {
			t.Fatalf("expected MissingClosingTagError, got %v", err)
		}
	})
}
