package sanitize

import (
	"strings"
	"testing"

	"github.com/taantti/erp-demo/internal/config"
)

func testConfig() config.SanitizeConfig {
	return config.SanitizeConfig{
		MaxBodyBytes:   100000,
		MaxQueryString: 2048,
		MaxQueryParam:  255,
		MaxPathParam:   100,
		MaxDepth:       10,
		MaxObjectKeys:  100,
		MaxArrayLen:    100,
		MaxValueLen:    1000,
	}
}

func TestCleanStripsMarkup(t *testing.T) {
	s := New(testConfig())

	got := s.Clean("  <script>alert('x')</script>hello <b>world</b>  ")
	if got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	s := New(testConfig())

	inputs := []string{
		"plain text",
		"<img src=x onerror=alert(1)>name",
		"  padded  ",
		"",
	}
	for _, in := range inputs {
		once := s.Clean(in)
		twice := s.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestWalkBodySanitizesInPlace(t *testing.T) {
	s := New(testConfig())

	body := map[string]any{
		"name": "<b>Widget</b>",
		"tags": []any{" <i>red</i> ", "blue"},
		"nested": map[string]any{
			"note": "<script>x</script>ok",
		},
	}

	errs := s.WalkBody(body)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	if body["name"] != "Widget" {
		t.Errorf("expected name 'Widget', got %q", body["name"])
	}
	tags := body["tags"].([]any)
	if tags[0] != "red" || tags[1] != "blue" {
		t.Errorf("expected tags sanitized in place, got %v", tags)
	}
	nested := body["nested"].(map[string]any)
	if nested["note"] != "ok" {
		t.Errorf("expected nested note 'ok', got %q", nested["note"])
	}
}

func TestWalkBodyValueLengthBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.MaxValueLen = 10
	s := New(cfg)

	// Exactly at the limit passes.
	body := map[string]any{"v": strings.Repeat("a", 10)}
	if errs := s.WalkBody(body); len(errs) != 0 {
		t.Fatalf("expected value at limit to pass, got %v", errs)
	}

	// One over fails with the path in the message.
	body = map[string]any{"v": strings.Repeat("a", 11)}
	errs := s.WalkBody(body)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Path != "v" {
		t.Errorf("expected path 'v', got %q", errs[0].Path)
	}
}

func TestWalkBodyValueLengthAfterClean(t *testing.T) {
	cfg := testConfig()
	cfg.MaxValueLen = 5
	s := New(cfg)

	// Raw value exceeds the limit but the stripped value does not.
	body := map[string]any{"v": "<b><i><u>ok</u></i></b>"}
	if errs := s.WalkBody(body); len(errs) != 0 {
		t.Fatalf("expected cleaned value to pass, got %v", errs)
	}
	if body["v"] != "ok" {
		t.Errorf("expected 'ok', got %q", body["v"])
	}
}

func TestWalkBodyDepthLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDepth = 3
	s := New(cfg)

	body := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": map[string]any{
					"d": map[string]any{
						"e": float64(1),
					},
				},
			},
		},
	}

	errs := s.WalkBody(body)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Path != "a.b.c" {
		t.Errorf("expected error at path 'a.b.c', got %q", errs[0].Path)
	}
}

func TestWalkBodyDepthAtLimitPasses(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDepth = 3
	s := New(cfg)

	body := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": "leaf",
			},
		},
	}
	if errs := s.WalkBody(body); len(errs) != 0 {
		t.Fatalf("expected nesting at limit to pass, got %v", errs)
	}
}

func TestWalkBodyObjectKeyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxObjectKeys = 2
	s := New(cfg)

	inner := map[string]any{"a": "1", "b": "2", "c": "3"}
	body := map[string]any{"obj": inner}

	errs := s.WalkBody(body)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Path != "obj" {
		t.Errorf("expected path 'obj', got %q", errs[0].Path)
	}
}

func TestWalkBodyArrayLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxArrayLen = 2
	s := New(cfg)

	body := map[string]any{"items": []any{"1", "2", "3"}}

	errs := s.WalkBody(body)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Path != "items" {
		t.Errorf("expected path 'items', got %q", errs[0].Path)
	}
}

func TestWalkBodyNumberCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.MaxValueLen = 1000
	s := New(cfg)

	body := map[string]any{"price": float64(1001)}
	errs := s.WalkBody(body)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}

	body = map[string]any{"price": float64(1000)}
	if errs := s.WalkBody(body); len(errs) != 0 {
		t.Fatalf("expected number at limit to pass, got %v", errs)
	}
}

func TestWalkBodyAggregatesErrors(t *testing.T) {
	cfg := testConfig()
	cfg.MaxValueLen = 3
	s := New(cfg)

	body := map[string]any{
		"first":  "toolong",
		"second": "alsotoolong",
		"ok":     "ab",
	}

	errs := s.WalkBody(body)
	if len(errs) != 2 {
		t.Fatalf("expected 2 aggregated errors, got %d: %v", len(errs), errs)
	}
}

func TestWalkBodyBoolAndNullPass(t *testing.T) {
	s := New(testConfig())

	body := map[string]any{"active": true, "deleted": nil}
	if errs := s.WalkBody(body); len(errs) != 0 {
		t.Fatalf("expected bool and null to pass, got %v", errs)
	}
}
