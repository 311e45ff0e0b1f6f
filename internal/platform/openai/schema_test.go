package openai

import "testing"

type sampleOut struct {
	Label  string   `json:"label" jsonschema:"required"`
	Scores []scored `json:"scores" jsonschema:"required"`
}

type scored struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestGenerateSchemaIsStrict(t *testing.T) {
	s := GenerateSchema[sampleOut]()
	if s["additionalProperties"] != false {
		t.Fatalf("root not closed: %v", s["additionalProperties"])
	}
	req, ok := s["required"].([]string)
	if !ok || len(req) != 2 || req[0] != "label" || req[1] != "scores" {
		t.Fatalf("unexpected required: %#v", s["required"])
	}
	props := s["properties"].(map[string]any)
	items := props["scores"].(map[string]any)["items"].(map[string]any)
	if items["additionalProperties"] != false {
		t.Fatalf("nested object not closed")
	}
	if r, _ := items["required"].([]string); len(r) != 2 {
		t.Fatalf("nested required missing: %#v", items["required"])
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var out sampleOut
	if err := DecodeModelJSON("```json\n{\"label\":\"joy\",\"scores\":[]}\n```", &out); err != nil {
		t.Fatalf("DecodeModelJSON: %v", err)
	}
	if out.Label != "joy" {
		t.Fatalf("label: %q", out.Label)
	}
	if err := DecodeModelJSON("no json here", &out); err == nil {
		t.Fatalf("expected error")
	}
	if err := DecodeModelJSON("  ", &out); err == nil {
		t.Fatalf("expected error for empty")
	}
}
