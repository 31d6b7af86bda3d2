package gpx

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestConsumeWaypoint(t *testing.T) {
	t.Run("full waypoint", func(t *testing.T) {
		c := newTestContext(
			`<wpt lat="48.8581006" lon="2.2944879">
				<ele>310.6</ele>
				<time>2001-10-26T19:32:52+00:00</time>
				<name>Eiffel Tower</name>
				<cmt>check the queue</cmt>
				<desc>visited at night</desc>
				<src>gps</src>
				<link href="https://example.com/eiffel"><text>photos</text></link>
				<sym>Flag</sym>
				<type>landmark</type>
				<fix>3d</fix>
				<sat>9</sat>
				<hdop>1.2</hdop>
				<vdop>1.8</vdop>
				<pdop>2.1</pdop>
				<ageofdgpsdata>12.5</ageofdgpsdata>
				<dgpsid>42</dgpsid>
				<extensions><foo>bar</foo></extensions>
			</wpt>`,
			Version11,
		)
		got, err := consumeWaypoint(c, "wpt")
		if err != nil {
			t.Fatal(err)
		}
		expected := Waypoint{
			Lat:           48.8581006,
			Lon:           2.2944879,
			Elevation:     ptr(310.6),
			Time:          ptr(time.Date(2001, 10, 26, 19, 32, 52, 0, time.UTC)),
			Name:          ptr("Eiffel Tower"),
			Comment:       ptr("check the queue"),
			Description:   ptr("visited at night"),
			Source:        ptr("gps"),
			Links:         []Link{{Href: "https://example.com/eiffel", Text: ptr("photos")}},
			Symbol:        ptr("Flag"),
			Type:          ptr("landmark"),
			Fix:           ptr(Fix3D),
			Sat:           ptr(uint64(9)),
			HDOP:          ptr(1.2),
			VDOP:          ptr(1.8),
			PDOP:          ptr(2.1),
			AgeOfDGPSData: ptr(12.5),
			DGPSID:        ptr(uint16(42)),
		}
		if diff := cmp.Diff(got, expected); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("missing lon", func(t *testing.T) {
		c := newTestContext(`<wpt lat="48.85"></wpt>`, Version11)
		_, err := consumeWaypoint(c, "wpt")
		var attrErr *MissingAttributeError
		if !errors.As(err, &attrErr) {
			t.Fatalf("expected MissingAttributeError, got %v", err)
		}
		if attrErr.Attr != "lon" {
			t.Fatalf("unexpected attribute: %+v", attrErr)
		}
	})

	t.Run("coordinate ranges", func(t *testing.T) {
		tt := []struct {
			name    string
			xml     string
			wantErr bool
		}{
			{name: "lat at north pole", xml: `<wpt lat="90.0" lon="0"/>`},
			{name: "lat at south pole", xml: `<wpt lat="-90.0" lon="0"/>`},
			{name: "lat beyond pole", xml: `<wpt lat="90.1" lon="0"/>`, wantErr: true},
			{name: "lon at antimeridian west", xml: `<wpt lat="0" lon="-180"/>`},
			{name: "lon at antimeridian east", xml: `<wpt lat="0" lon="180"/>`, wantErr: true},
			{name: "lon beyond range", xml: `<wpt lat="0" lon="180.1"/>`, wantErr: true},
		}
		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				c := newTestContext(tc.xml, Version11)
				_, err := consumeWaypoint(c, "wpt")
				if tc.wantErr {
					var rangeErr *OutOfRangeError
					if !errors.As(err, &rangeErr) {
						t.Fatalf("expected OutOfRangeError, got %v", err)
					}
					return
				}
				if err != nil {
					t.Fatal(err)
				}
			})
		}
	})

	t.Run("dgpsid out of range", func(t *testing.T) {
		c := newTestContext(`<wpt lat="0" lon="0"><dgpsid>1024</dgpsid></wpt>`, Version11)
		_, err := consumeWaypoint(c, "wpt")
		var rangeErr *OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("expected OutOfRangeError, got %v", err)
		}
		if rangeErr.Field != "dgpsid" {
			t.Fatalf("unexpected field: %+v", rangeErr)
		}
	})

	t.Run("speed only under 1.0", func(t *testing.T) {
		c := newTestContext(`<trkpt lat="0" lon="0"><speed>12.5</speed></trkpt>`, Version10)
		got, err := consumeWaypoint(c, "trkpt")
		if err != nil {
			t.Fatal(err)
		}
		if got.Speed == nil || *got.Speed != 12.5 {
			t.Fatalf("expected speed 12.5, got %+v", got.Speed)
		}

		c = newTestContext(`<trkpt lat="0" lon="0"><speed>12.5</speed></trkpt>`, Version11)
		_, err = consumeWaypoint(c, "trkpt")
		var childErr *InvalidChildElementError
		if !errors.As(err, &childErr) {
			t.Fatalf("expected InvalidChildElementError, got %v", err)
		}
	})

	t.Run("url and urlname fold into link under 1.0", func(t *testing.T) {
		c := newTestContext(
			`<wpt lat="0" lon="0">
				<url>https://example.com</url>
				<urlname>example</urlname>
			</wpt>`,
			Version10,
		)
		got, err := consumeWaypoint(c, "wpt")
		if err != nil {
			t.Fatal(err)
		}
		expected := []Link{{Href: "https://example.com", Text: ptr("example")}}
		if diff := cmp.Diff(got.Links, expected); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("urlname without url is dropped", func(t *testing.T) {
		c := newTestContext(`<wpt lat="0" lon="0"><urlname>example</urlname></wpt>`, Version10)
		got, err := consumeWaypoint(c, "wpt")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Links) != 0 {
			t.Fatalf("expected no links, got %+v", got.Links)
		}
	})

	t.Run("url invalid under 1.1", func(t *testing.T) {
		c := newTestContext(`<wpt lat="0" lon="0"><url>https://example.com</url></wpt>`, Version11)
		_, err := consumeWaypoint(c, "wpt")
		var childErr *InvalidChildElementError
		if !errors.As(err, &childErr) {
			t.Fatalf("expected InvalidChildElementError, got %v", err)
		}
	})

	t.Run("link invalid under 1.0", func(t *testing.T) {
		c := newTestContext(`<wpt lat="0" lon="0"><link href="x"></link></wpt>`, Version10)
		_, err := consumeWaypoint(c, "wpt")
		var childErr *InvalidChildElementError
		if !errors.As(err, &childErr) {
			t.Fatalf("expected InvalidChildElementError, got %v", err)
		}
	})
}

func TestConsumeTrackSegment(t *testing.T) {
	t.Run("points in order", func(t *testing.T) {
		c := newTestContext(
			`<trkseg>
				<trkpt lat="1.0" lon="2.0"><ele>10</ele></trkpt>
				<trkpt lat="1.1" lon="2.1"><ele>11</ele></trkpt>
				<extensions></extensions>
			</trkseg>`,
			Version11,
		)
		got, err := consumeTrackSegment(c)
		if err != nil {
			t.Fatal(err)
		}
		expected := TrackSegment{Points: []Waypoint{
			{Lat: 1.0, Lon: 2.0, Elevation: ptr(10.0)},
			{Lat: 1.1, Lon: 2.1, Elevation: ptr(11.0)},
		}}
		if diff := cmp.Diff(got, expected); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("unknown child", func(t *testing.T) {
		c := newTestContext(`<trkseg><wpt lat="0" lon="0"/></trkseg>`, Version11)
		_, err := consumeTrackSegment(c)
		var childErr *InvalidChildElementError
		if !errors.As(err, &childErr) {
			t.Fatalf("expected InvalidChildElementError, got %v", err)
		}
	})
}

func TestConsumeTrack(t *testing.T) {
	c := newTestContext(
		`<trk>
			<name>Morning ride</name>
			<cmt>easy pace</cmt>
			<desc>loop around the lake</desc>
			<src>watch</src>
			<link href="https://example.com/ride"></link>
			<number>3</number>
			<type>cycling</type>
			<trkseg>
				<trkpt lat="1.0" lon="2.0"></trkpt>
			</trkseg>
			<trkseg>
				<trkpt lat="1.1" lon="2.1"></trkpt>
			</trkseg>
		</trk>`,
		Version11,
	)
	got, err := consumeTrack(c)
	if err != nil {
		t.Fatal(err)
	}
	expected := Track{
		Name:        ptr("Morning ride"),
		Comment:     ptr("easy pace"),
		Description: ptr("loop around the lake"),
		Source:      ptr("watch"),
		Links:       []Link{{Href: "https://example.com/ride"}},
		Number:      ptr(uint32(3)),
		Type:        ptr("cycling"),
		Segments: []TrackSegment{
			{Points: []Waypoint{{Lat: 1.0, Lon: 2.0}}},
			{Points: []Waypoint{{Lat: 1.1, Lon: 2.1}}},
		},
	}
	if diff := cmp.Diff(got, expected); diff != "" {
		t.Fatal(diff)
	}
}

func TestConsumeRoute(t *testing.T) {
	t.Run("route with points", func(t *testing.T) {
		c := newTestContext(
			`<rte>
				<name>Commute</name>
				<number>1</number>
				<rtept lat="1.0" lon="2.0"><name>start</name></rtept>
				<rtept lat="1.5" lon="2.5"><name>end</name></rtept>
			</rte>`,
			Version11,
		)
		got, err := consumeRoute(c)
		if err != nil {
			t.Fatal(err)
		}
		expected := Route{
			Name:   ptr("Commute"),
			Number: ptr(uint32(1)),
			Points: []Waypoint{
				{Lat: 1.0, Lon: 2.0, Name: ptr("start")},
				{Lat: 1.5, Lon: 2.5, Name: ptr("end")},
			},
		}
		if diff := cmp.Diff(got, expected); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("url folds into link under 1.0", func(t *testing.T) {
		c := newTestContext(
			`<rte>
				<url>https://example.com</url>
				<urlname>example</urlname>
			</rte>`,
			Version10,
		)
		got, err := consumeRoute(c)
		if err != nil {
			t.Fatal(err)
		}
		expected := []Link{{Href: "https://example.com", Text: ptr("example")}}
		if diff := cmp.Diff(got.Links, expected); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("segments do not belong in routes", func(t *testing.T) {
		c := newTestContext(`<rte><trkseg></trkseg></rte>`, Version11)
		_, err := consumeRoute(c)
		var childErr *InvalidChildElementError
		if !errors.As(err, &childErr) {
			t.Fatalf("expected InvalidChildElementError, got %v", err)
		}
	})
}
