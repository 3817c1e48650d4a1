package docs

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func collectRefs(v any, refs map[string]bool) {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if ref, ok := child.(string); ok && k == "$ref" {
				refs[strings.TrimPrefix(ref, "#/definitions/")] = true
				continue
			}
			collectRefs(child, refs)
		}
	case []any:
		for _, child := range n {
			collectRefs(child, refs)
		}
	}
}

func TestSwaggerDoc_RefsResolve(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}

	var doc struct {
		BasePath    string                    `json:"basePath"`
		Paths       map[string]map[string]any `json:"paths"`
		Definitions map[string]any            `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}

	if doc.BasePath != "/catalog" {
		t.Errorf("expected basePath /catalog, got %q", doc.BasePath)
	}
	for _, path := range []string{"/", "/authors/", "/author/{id}/delete", "/book/create", "/bookinstance/{id}/update", "/genre/{id}"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("expected path %q in doc", path)
		}
	}

	refs := map[string]bool{}
	collectRefs(doc.Paths, refs)
	collectRefs(doc.Definitions, refs)
	if len(refs) == 0 {
		t.Fatal("expected schema references in doc")
	}
	for ref := range refs {
		if _, ok := doc.Definitions[ref]; !ok {
			t.Errorf("reference %q has no definition", ref)
		}
	}
}
