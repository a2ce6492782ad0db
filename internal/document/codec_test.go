package document_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-pagekit/internal/document"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/schema"
	"github.com/goliatone/go-pagekit/pkg/testsupport"
)

func sampleDocument() document.Document {
	gap := 12.5
	return document.Document{
		Handle: "ada",
		Profile: document.Profile{
			Name:     "Ada",
			Headline: "Engineer",
			Email:    "ada@example.com",
			Links:    map[string]string{"github": "https://github.com/ada"},
		},
		Theme: document.Theme{
			Mode:   "dark",
			Accent: "#ff6600",
			Params: map[string]any{"radius": 4.0},
		},
		Layout: document.Layout{Gap: 24, Width: "wide"},
		Blocks: []document.Block{
			{ID: "h", Type: "header", Variant: "split", Order: 0, Props: map[string]any{"name": "Ada"}},
			{ID: "s", Type: "skills", Variant: "chips", Order: 1, GapBefore: &gap, Props: map[string]any{
				"skills": "#go",
				"logos":  map[string]any{"go": "https://go.dev/logo.svg"},
			}},
			{ID: "g", Type: "gallery", Order: 2, Props: map[string]any{
				"columns": 3.0,
				"images":  []any{map[string]any{"src": "a.png", "caption": "A"}},
			}},
		},
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	doc := sampleDocument()

	got, err := document.FromPayload(document.ToPayload(doc))
	if err != nil {
		t.Fatalf("FromPayload: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("expected round trip equality\nwant %+v\ngot  %+v", doc, got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := document.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := document.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Fatalf("expected JSON round trip equality\nwant %+v\ngot  %+v", doc, got)
	}
}

func TestFromPayloadOrdersAndRenumbers(t *testing.T) {
	payload := map[string]any{
		"handle": "ada",
		"blocks": []any{
			map[string]any{"id": "b", "type": "quote", "order": 7.0},
			map[string]any{"id": "a", "type": "quote", "order": 2.0},
		},
	}
	doc, err := document.FromPayload(payload)
	if err != nil {
		t.Fatalf("FromPayload: %v", err)
	}
	if ids := document.IDs(doc.Blocks); !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", ids)
	}
	if doc.Blocks[1].Order != 1 {
		t.Fatalf("expected renumbered order, got %d", doc.Blocks[1].Order)
	}
}

func TestFromPayloadRejectsMalformed(t *testing.T) {
	cases := map[string]map[string]any{
		"blocks not list":    {"blocks": "nope"},
		"block missing id":   {"blocks": []any{map[string]any{"type": "quote"}}},
		"props not object":   {"blocks": []any{map[string]any{"id": "a", "type": "quote", "props": 3}}},
		"profile not object": {"profile": "ada"},
	}
	for name, payload := range cases {
		if _, err := document.FromPayload(payload); !errors.Is(err, document.ErrPayloadInvalid) {
			t.Fatalf("%s: expected ErrPayloadInvalid, got %v", name, err)
		}
	}

	dup := map[string]any{"blocks": []any{
		map[string]any{"id": "a", "type": "quote"},
		map[string]any{"id": "a", "type": "quote"},
	}}
	if _, err := document.FromPayload(dup); !errors.Is(err, document.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestUnmarshalRejectsInvalidJSON(t *testing.T) {
	if _, err := document.Unmarshal([]byte("{")); !errors.Is(err, document.ErrPayloadInvalid) {
		t.Fatalf("expected ErrPayloadInvalid, got %v", err)
	}
}

func TestFromPayloadStoredDocument(t *testing.T) {
	var payload map[string]any
	if err := testsupport.LoadGolden("testdata/stored_document.json", &payload); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	doc, err := document.FromPayload(payload)
	if err != nil {
		t.Fatalf("FromPayload returned error: %v", err)
	}
	if doc.Handle != "ada" || doc.Profile.Links["site"] != "https://example.com" {
		t.Fatalf("unexpected header fields: %+v", doc.Profile)
	}
	if doc.Theme.Mode != "dark" || doc.Layout.Gap != 32 || doc.Layout.Width != "wide" {
		t.Fatalf("unexpected theme or layout: %+v %+v", doc.Theme, doc.Layout)
	}
	if got := document.IDs(doc.Blocks); !reflect.DeepEqual(got, []string{"b-header", "b-about", "b-skills"}) {
		t.Fatalf("expected blocks sorted by order, got %v", got)
	}
	skills := doc.Blocks[2]
	if skills.GapBefore == nil || *skills.GapBefore != 8 {
		t.Fatalf("expected gap override 8, got %v", skills.GapBefore)
	}
	if skills.Order != 2 {
		t.Fatalf("expected order 2, got %d", skills.Order)
	}
}

func TestBuiltinDefaultsSurviveJSONRoundTrip(t *testing.T) {
	reg := schema.Builtin()
	m := document.NewModel(document.Document{Handle: "ada"}, reg, document.WithIDGenerator(identity.Sequence("blk")))
	for _, blockType := range reg.Types() {
		for _, variant := range reg.Variants(blockType) {
			if _, ok := m.Add(blockType, variant); !ok {
				t.Fatalf("expected %s/%s to be addable", blockType, variant)
			}
		}
	}

	want := m.Document()
	data, err := document.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	got, err := document.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	for i := range want.Blocks {
		if !reflect.DeepEqual(got.Blocks[i], want.Blocks[i]) {
			t.Fatalf("expected %s/%s to round trip, got %#v want %#v",
				want.Blocks[i].Type, want.Blocks[i].Variant, got.Blocks[i].Props, want.Blocks[i].Props)
		}
	}
	if !reflect.DeepEqual(document.ToPayload(got), document.ToPayload(want)) {
		t.Fatalf("expected payloads to match after round trip")
	}
}
