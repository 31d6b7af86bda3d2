package gpx_test

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/gpx"
)

func TestReadTestdata(t *testing.T) {
	t.Run("sample_v1.1.gpx", func(t *testing.T) {
		f, err := os.Open(filepath.Join("testdata", "sample_v1.1.gpx"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		doc, err := gpx.Read(f)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Version != gpx.Version11 {
			t.Fatalf("unexpected version: %v", doc.Version)
		}
		if doc.Metadata == nil || doc.Metadata.Name == nil || *doc.Metadata.Name != "South Mountain loop" {
			t.Fatalf("unexpected metadata: %+v", doc.Metadata)
		}
		if doc.Metadata.Author == nil || *doc.Metadata.Author.Email != "john.doe@example.com" {
			t.Fatalf("unexpected author: %+v", doc.Metadata.Author)
		}
		if len(doc.Waypoints) != 1 || len(doc.Routes) != 1 || len(doc.Tracks) != 1 {
			t.Fatalf("unexpected element counts: %d waypoints, %d routes, %d tracks",
				len(doc.Waypoints), len(doc.Routes), len(doc.Tracks))
		}
		if n := len(doc.Tracks[0].Segments); n != 2 {
			t.Fatalf("expected 2 segments, got %d", n)
		}
		if doc.Waypoints[0].DGPSID == nil || *doc.Waypoints[0].DGPSID != 128 {
			t.Fatalf("unexpected dgpsid: %+v", doc.Waypoints[0].DGPSID)
		}
	})

	t.Run("sample_v1.0.gpx", func(t *testing.T) {
		f, err := os.Open(filepath.Join("testdata", "sample_v1.0.gpx"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		doc, err := gpx.Read(f)
		if err != nil {
			t.Fatal(err)
		}
		if doc.Version != gpx.Version10 {
			t.Fatalf("unexpected version: %v", doc.Version)
		}
		if doc.Metadata == nil || doc.Metadata.Author == nil {
			t.Fatalf("flattened author fields were not reconciled: %+v", doc.Metadata)
		}
		if *doc.Metadata.Author.Name != "Jane Roe" || *doc.Metadata.Author.Email != "jane.roe@example.com" {
			t.Fatalf("unexpected author: %+v", doc.Metadata.Author)
		}
		if doc.Metadata.Author.Link == nil || doc.Metadata.Author.Link.Href != "https://example.com/janeroe" {
			t.Fatalf("url/urlname not folded into link: %+v", doc.Metadata.Author.Link)
		}
		points := doc.Tracks[0].Segments[0].Points
		if points[0].Speed == nil || *points[0].Speed != 6.4 {
			t.Fatalf("unexpected speed: %+v", points[0].Speed)
		}
		if len(doc.Routes[0].Links) != 1 || doc.Routes[0].Links[0].Href != "https://example.com/detour" {
			t.Fatalf("unexpected route links: %+v", doc.Routes[0].Links)
		}
	})
}

func TestRoundTripTestdata(t *testing.T) {
	err := filepath.Walk("testdata", func(path string, info fs.FileInfo, _ error) error {
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".gpx" {
			return nil
		}
		name := strings.TrimPrefix(path, "testdata/")
		t.Run(name, func(t *testing.T) {
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			doc, err := gpx.Read(f)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := gpx.Write(doc, &buf); err != nil {
				t.Fatal(err)
			}
			again, err := gpx.Read(&buf)
			if err != nil {
				t.Fatalf("parsing written output: %v\noutput:\n%s", err, buf.String())
			}
			if diff := cmp.Diff(again, doc); diff != "" {
				t.Fatal(diff)
			}
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func BenchmarkRead(b *testing.B) {
	filepath.Walk("testdata", func(path string, info fs.FileInfo, _ error) error {
		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".gpx" {
			return nil
		}

		name := strings.TrimPrefix(path, "testdata/")

		data, err := os.ReadFile(path)
		if err != nil {
			panic(err)
		}

		b.Run(fmt.Sprintf("%q", name), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := gpx.Read(bytes.NewReader(data)); err != nil {
					b.Fatal(err)
				}
			}
		})
		return nil
	})
}

func BenchmarkWrite(b *testing.B) {
	f, err := os.Open(filepath.Join("testdata", "sample_v1.1.gpx"))
	if err != nil {
		panic(err)
	}
	doc, err := gpx.Read(f)
	f.Close()
	if err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := gpx.Write(doc, &buf); err != nil {
			b.Fatal(err)
		}
	}
}
