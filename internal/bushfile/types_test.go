package bushfile

import (
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		in      string
		value   bool
		set     bool
		wantErr bool
	}{
		{"", false, false, false},
		{"yes", true, true, false},
		{"Y", true, true, false},
		{"no", false, true, false},
		{"off", false, true, false},
		{"true", true, true, false},
		{"0", false, true, false},
		{"maybe", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			value, set, err := ParseFlag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if value != tt.value || set != tt.set {
				t.Errorf("ParseFlag(%q) = %v, %v; want %v, %v", tt.in, value, set, tt.value, tt.set)
			}
		})
	}
}

func TestFlagOr(t *testing.T) {
	var unset Flag
	if got := unset.Or(NewFlag(true)); !got.Bool() {
		t.Error("unset flag should fall back")
	}
	if got := NewFlag(false).Or(NewFlag(true)); got.Bool() || !got.IsSet() {
		t.Error("set flag should win over fallback")
	}
}

func TestRefDecode(t *testing.T) {
	var refs Ordered[Ref]
	src := "b: {version: 1.0, is-dev: yes}\na:\nc: {save-peer: true}\n"
	if err := yaml.Unmarshal([]byte(src), &refs); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if got := refs.Keys(); len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Fatalf("keys = %v, want [b a c]", got)
	}
	b, _ := refs.Get("b")
	if b.Version != "1.0" {
		t.Errorf("version = %q, want raw scalar 1.0", b.Version)
	}
	if !b.IsDev.Bool() {
		t.Error("b should be dev")
	}
	a, ok := refs.Get("a")
	if !ok || a.IsDev.IsSet() || a.Version != "" {
		t.Errorf("null ref should decode to zero value, got %+v", a)
	}
	c, _ := refs.Get("c")
	if !c.SavePeer.Bool() {
		t.Error("c should be peer")
	}
}

func TestOrderedRejectsDuplicates(t *testing.T) {
	var names Ordered[string]
	err := yaml.Unmarshal([]byte("a: x\na: y\n"), &names)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestPackageTreeAdd(t *testing.T) {
	var tree PackageTree
	utils := tree.Add("utils")
	utils.Add("fmt")
	if tree.Add("utils") != utils {
		t.Error("Add of an existing alias should return the existing child")
	}
	if tree.Len() != 1 || utils.Len() != 1 {
		t.Errorf("unexpected tree shape: %d / %d", tree.Len(), utils.Len())
	}
}

func TestValidateAlias(t *testing.T) {
	for _, alias := range []string{"", " ", "a.b", "ws@x"} {
		if err := ValidateAlias(alias); err == nil {
			t.Errorf("ValidateAlias(%q) expected error", alias)
		}
	}
	if err := ValidateAlias("core-utils"); err != nil {
		t.Errorf("ValidateAlias(core-utils) error: %v", err)
	}
}
