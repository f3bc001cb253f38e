package utils

import (
	"reflect"
	"testing"
)

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		pair      string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{pair: "work_item_num=7", wantKey: "work_item_num", wantValue: "7"},
		{pair: "work_dir=/tmp/x", wantKey: "work_dir", wantValue: "/tmp/x"},
		{pair: "key=a=b", wantKey: "key", wantValue: "a=b"},
		{pair: "empty=", wantKey: "empty", wantValue: ""},
		{pair: "noequals", wantErr: true},
		{pair: "=value", wantErr: true},
		{pair: "  =x", wantErr: true},
	}

	for _, tt := range tests {
		key, value, err := ParseKeyValue(tt.pair)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseKeyValue(%q) succeeded, want error", tt.pair)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKeyValue(%q) failed: %v", tt.pair, err)
			continue
		}
		if key != tt.wantKey || value != tt.wantValue {
			t.Errorf("ParseKeyValue(%q) = (%q, %q), want (%q, %q)",
				tt.pair, key, value, tt.wantKey, tt.wantValue)
		}
	}
}

func TestParseKeyValuesLaterPairsWin(t *testing.T) {
	got, err := ParseKeyValues([]string{"n=1", "d=/tmp/x", "n=2"})
	if err != nil {
		t.Fatalf("ParseKeyValues failed: %v", err)
	}
	want := map[string]string{"n": "2", "d": "/tmp/x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseKeyValues = %v, want %v", got, want)
	}
}

func TestParseKeyValuesBadPair(t *testing.T) {
	if _, err := ParseKeyValues([]string{"ok=1", "bad"}); err == nil {
		t.Error("ParseKeyValues accepted an invalid pair")
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"run/item-1", "run--item-1"},
		{"a/b/c", "a--b--c"},
	}
	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
