package manifest

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestParsePreservesOrder(t *testing.T) {
	obj, err := Parse([]byte(`{"name":"x","zeta":1,"alpha":{"b":true,"a":null},"list":[1,"two"]}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got := strings.Join(obj.Keys(), ",")
	if got != "name,zeta,alpha,list" {
		t.Errorf("Keys() = %q, want %q", got, "name,zeta,alpha,list")
	}
	alpha, ok := obj.Object("alpha")
	if !ok {
		t.Fatal("alpha is not an object")
	}
	if strings.Join(alpha.Keys(), ",") != "b,a" {
		t.Errorf("alpha keys = %v, want [b a]", alpha.Keys())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1,2]`},
		{"scalar", `"x"`},
		{"truncated", `{"a":`},
		{"trailing", `{} {}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.input)
			}
		})
	}
}

func TestMarshalRoundTripKeepsNumbersAndOrder(t *testing.T) {
	input := "{\n  \"name\": \"@a/b\",\n  \"version\": \"1.0.0\",\n  \"n\": 1.50,\n  \"x\": \"<&>\",\n  \"nested\": {\n    \"k\": []\n  }\n}\n"
	obj, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, err := Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal() =\n%s\nwant\n%s", out, input)
	}
}

func TestMarshalEmptyObject(t *testing.T) {
	out, err := Marshal(NewObject())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != "{}\n" {
		t.Errorf("Marshal() = %q, want %q", out, "{}\n")
	}
}

func TestSetFirst(t *testing.T) {
	obj := NewObject()
	obj.Set("version", "1.0.0")
	obj.Set("private", true)
	obj.SetFirst("name", "@s/a")
	if got := strings.Join(obj.Keys(), ","); got != "name,version,private" {
		t.Errorf("Keys() = %q, want name first", got)
	}

	obj.SetFirst("private", false)
	if got := strings.Join(obj.Keys(), ","); got != "name,version,private" {
		t.Errorf("Keys() = %q, existing key should keep its position", got)
	}
	if v, _ := obj.Get("private"); v != false {
		t.Errorf("private = %v, want false", v)
	}
}

func TestDeleteAndEnsureObject(t *testing.T) {
	obj := NewObject()
	obj.Set("a", "1")
	obj.Set("b", "2")
	obj.Delete("a")
	obj.Delete("missing")
	if got := strings.Join(obj.Keys(), ","); got != "b" {
		t.Errorf("Keys() = %q, want b", got)
	}

	obj.Set("scripts", "not-an-object")
	scripts := obj.EnsureObject("scripts")
	scripts.Set("build", "tsc")
	if s, ok := obj.Object("scripts"); !ok || s.String("build") != "tsc" {
		t.Errorf("EnsureObject did not replace non-object value")
	}
}

func TestCloneIsDeep(t *testing.T) {
	obj := NewObject()
	obj.EnsureObject("deps").Set("x", "1")
	c := obj.Clone()
	c.EnsureObject("deps").Set("y", "2")
	if deps, _ := obj.Object("deps"); deps.Len() != 1 {
		t.Errorf("original deps changed: %v", deps.Keys())
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name       string
		dev, peer  bool
		mirrorPeer bool
		wantBucket map[string]bool
	}{
		{"production", false, false, true, map[string]bool{FieldDependencies: true}},
		{"dev", true, false, true, map[string]bool{FieldDevDependencies: true}},
		{"peer mirrored", false, true, true, map[string]bool{FieldDevDependencies: true, FieldPeerDependencies: true}},
		{"peer not mirrored", false, true, false, map[string]bool{FieldDevDependencies: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := NewObject()
			Place(obj, "react", "^18", tt.dev, tt.peer, tt.mirrorPeer)
			for _, b := range Buckets {
				bucket, ok := obj.Object(b)
				has := ok && bucket.String("react") == "^18"
				if has != tt.wantBucket[b] {
					t.Errorf("bucket %s has react = %v, want %v", b, has, tt.wantBucket[b])
				}
			}
		})
	}
}

func TestPlaceMovesBetweenBuckets(t *testing.T) {
	obj := NewObject()
	obj.EnsureObject(FieldDependencies).Set("keep", "1")
	Place(obj, "lodash", "4", false, false, true)
	Place(obj, "lodash", "4", true, false, true)

	deps, _ := obj.Object(FieldDependencies)
	if _, ok := deps.Get("lodash"); ok {
		t.Error("lodash still in dependencies after moving to dev")
	}
	if deps.String("keep") != "1" {
		t.Error("unrelated dependency removed")
	}
	dev, _ := obj.Object(FieldDevDependencies)
	if dev.String("lodash") != "4" {
		t.Errorf("devDependencies lodash = %q, want 4", dev.String("lodash"))
	}

	Place(obj, "solo", "1", false, true, true)
	Place(obj, "solo", "1", false, false, true)
	if _, ok := obj.Object(FieldPeerDependencies); ok {
		t.Error("empty peerDependencies bucket should be removed")
	}
}

func TestSortAndClearBuckets(t *testing.T) {
	obj := NewObject()
	obj.Set(FieldName, "x")
	deps := obj.EnsureObject(FieldDependencies)
	deps.Set("zod", "1")
	deps.Set("axios", "1")
	SortBuckets(obj)
	if got := strings.Join(deps.Keys(), ","); got != "axios,zod" {
		t.Errorf("sorted keys = %q, want axios,zod", got)
	}

	ClearBuckets(obj)
	if got := strings.Join(obj.Keys(), ","); got != "name" {
		t.Errorf("Keys() after ClearBuckets = %q, want name", got)
	}
}

func TestAccessorCachesUntilSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/repo/pkg/package.json", []byte(`{"name":"a"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	acc := NewAccessor(fsys, "/repo/pkg/package.json")
	if acc.Dir() != "/repo/pkg" {
		t.Errorf("Dir() = %q, want /repo/pkg", acc.Dir())
	}

	first, err := acc.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if err := acc.Modify(func(o *Object) error {
		o.Set("private", true)
		return nil
	}); err != nil {
		t.Fatalf("Modify() error: %v", err)
	}
	second, _ := acc.Get()
	if first != second {
		t.Error("Get() should return the cached object")
	}

	if err := acc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, _ := afero.ReadFile(fsys, "/repo/pkg/package.json")
	want := "{\n  \"name\": \"a\",\n  \"private\": true\n}\n"
	if string(data) != want {
		t.Errorf("saved file =\n%s\nwant\n%s", data, want)
	}

	third, _ := acc.Get()
	if third == first {
		t.Error("Save() should clear the cache")
	}
}

func TestAccessorInvalidateRereads(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/p/package.json", []byte(`{"name":"a"}`), 0o644)
	acc := NewAccessor(fsys, "/p/package.json")
	if _, err := acc.Get(); err != nil {
		t.Fatal(err)
	}
	_ = afero.WriteFile(fsys, "/p/package.json", []byte(`{"name":"b"}`), 0o644)
	acc.Invalidate()
	obj, err := acc.Get()
	if err != nil {
		t.Fatal(err)
	}
	if obj.String("name") != "b" {
		t.Errorf("name = %q, want b", obj.String("name"))
	}
}

func TestAccessorErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	acc := NewAccessor(fsys, "/missing/package.json")
	if ok, err := acc.Exists(); err != nil || ok {
		t.Errorf("Exists() = %v, %v, want false, nil", ok, err)
	}
	if _, err := acc.Get(); err == nil {
		t.Error("Get() on missing file expected error")
	}

	_ = afero.WriteFile(fsys, "/bad/package.json", []byte(`{`), 0o644)
	if _, err := NewAccessor(fsys, "/bad/package.json").Get(); err == nil {
		t.Error("Get() on malformed file expected error")
	}
}

func TestAccessorCreate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	acc := NewAccessor(fsys, "/new/package.json")
	obj := NewObject()
	obj.Set("name", "@s/new")
	if err := acc.Create(obj); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	got, err := acc.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.String("name") != "@s/new" {
		t.Errorf("name = %q, want @s/new", got.String("name"))
	}
}
