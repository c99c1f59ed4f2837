package query

import (
	"strings"
	"testing"
)

func TestLoadValidQuery(t *testing.T) {
	q, err := Load(strings.NewReader(`{"pattern": "a(b|c)d", "input": "abd", "rleKValue": 3}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if q.Pattern != "a(b|c)d" || q.Input != "abd" || q.RLEKValue != 3 {
		t.Fatalf("Load = %+v, unexpected", q)
	}
}

func TestLoadMissingPattern(t *testing.T) {
	_, err := Load(strings.NewReader(`{"input": "abd"}`))
	if err == nil {
		t.Fatal("want error for missing pattern")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`not json`))
	if err == nil {
		t.Fatal("want decode error")
	}
}
