package flow

import (
	"sort"
	"testing"

	"github.com/unhabit-ai/unhabit/internal/genai"
)

// Strict structured outputs rejects schemas where required does not list
// every property, where objects allow additional properties, or where
// array length keywords appear. A schema that breaks these rules fails at
// request time and pins its stage to the fallback, so every schema the
// gateway sends is checked here.
func TestStructuredSchemasSatisfyStrictMode(t *testing.T) {
	schemas := []genai.StructuredSchema{
		safetySchema,
		quizFormSchema,
		quizSummarySchema,
	}
	for _, schema := range schemas {
		t.Run(schema.Name, func(t *testing.T) {
			checkStrictNode(t, schema.Name, schema.Schema)
		})
	}
}

func checkStrictNode(t *testing.T, path string, node map[string]any) {
	t.Helper()

	for _, keyword := range []string{"minItems", "maxItems", "minLength", "maxLength"} {
		if _, ok := node[keyword]; ok {
			t.Errorf("%s: %q is not supported in strict mode", path, keyword)
		}
	}

	props, ok := node["properties"].(map[string]any)
	if !ok {
		if items, ok := node["items"].(map[string]any); ok {
			checkStrictNode(t, path+".items", items)
		}
		return
	}

	if node["additionalProperties"] != false {
		t.Errorf("%s: additionalProperties must be false", path)
	}

	required, ok := node["required"].([]string)
	if !ok {
		t.Fatalf("%s: required list missing", path)
	}
	want := make([]string, 0, len(props))
	for key := range props {
		want = append(want, key)
	}
	sort.Strings(want)
	got := append([]string(nil), required...)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("%s: required lists %d of %d properties", path, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: required mismatch: got %v, want %v", path, got, want)
			return
		}
	}

	for key, raw := range props {
		if child, ok := raw.(map[string]any); ok {
			checkStrictNode(t, path+"."+key, child)
		}
	}
}
