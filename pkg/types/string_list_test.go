package types

import (
	"reflect"
	"testing"
)

func TestStringListValue(t *testing.T) {
	v, err := StringList{"a", "b \"quoted\""}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `["a","b \"quoted\""]` {
		t.Fatalf("unexpected value %v", v)
	}

	v, err = StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("nil list should encode as empty array, got %v err=%v", v, err)
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan([]byte(`["x","y"]`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"x", "y"}) {
		t.Fatalf("unexpected list %v", l)
	}

	if err := l.Scan(`["z"]`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"z"}) {
		t.Fatalf("unexpected list %v", l)
	}

	if err := l.Scan(nil); err != nil || len(l) != 0 {
		t.Fatalf("nil scan should reset list, got %v err=%v", l, err)
	}

	if err := l.Scan(42); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if err := l.Scan("not json"); err == nil {
		t.Fatalf("expected json error")
	}
}
