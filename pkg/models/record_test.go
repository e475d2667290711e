package models_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

func TestRecord_UnmarshalKeepsKeyOrder(t *testing.T) {
	var r models.Record
	if err := json.Unmarshal([]byte(`{"Zeta":1,"Alpha":"a","Mid":null,"FullName":"A"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	expected := []string{"Zeta", "Alpha", "Mid", "FullName"}
	keys := r.Keys()
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("key %d: expected %s, got %s", i, expected[i], keys[i])
		}
	}
}

func TestRecord_MarshalWritesInOrder(t *testing.T) {
	r := models.NewRecord("b", 2, "a", "x", "c", nil)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(data) != `{"b":2,"a":"x","c":null}` {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestRecord_RejectsNonObject(t *testing.T) {
	var r models.Record
	if err := json.Unmarshal([]byte(`[1,2]`), &r); err == nil {
		t.Error("expected error decoding array into record")
	}
}

func TestPlayerRecord_SliceDecoding(t *testing.T) {
	var players []models.PlayerRecord
	payload := `[{"FullName":"A","Pts":10},{"FullName":"B","Pts":7.5}]`
	if err := json.Unmarshal([]byte(payload), &players); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].FullName() != "A" {
		t.Errorf("expected FullName A, got %s", players[0].FullName())
	}
	if players[1].Text("Pts") != "7.5" {
		t.Errorf("expected Pts 7.5, got %s", players[1].Text("Pts"))
	}
}

func TestPlayerAverages_HasError(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected bool
	}{
		{"no error field", `{"points":12.5,"FullName":"A"}`, false},
		{"error string", `{"error":"Player not found"}`, true},
		{"error with other fields", `{"points":3,"error":"partial"}`, true},
		{"empty error", `{"error":""}`, false},
		{"null error", `{"error":null}`, false},
		{"zero error", `{"error":0}`, false},
		{"true error", `{"error":true}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var avg models.PlayerAverages
			if err := json.Unmarshal([]byte(tt.payload), &avg); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if avg.HasError() != tt.expected {
				t.Errorf("expected HasError=%v, got %v", tt.expected, avg.HasError())
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value    interface{}
		expected string
	}{
		{nil, "null"},
		{"Guard", "Guard"},
		{true, "true"},
		{json.Number("10"), "10"},
		{json.Number("10.0"), "10"},
		{json.Number("12.5"), "12.5"},
		{float64(3), "3"},
		{int64(42), "42"},
		{map[string]interface{}{"a": 1}, "[object Object]"},
		{float64(0.000001), "0.000001"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{-1e21, "-1e+21"},
		{1.23e22, "1.23e+22"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{json.Number("1e21"), "1e+21"},
		{[]interface{}{1, 2}, "1,2"},
		{[]interface{}{json.Number("1"), nil, "a"}, "1,,a"},
		{[]interface{}{[]interface{}{1, 2}, 3}, "1,2,3"},
		{[]interface{}{}, ""},
	}

	for _, tt := range tests {
		if got := models.FormatValue(tt.value); got != tt.expected {
			t.Errorf("FormatValue(%v): expected %q, got %q", tt.value, tt.expected, got)
		}
	}
}

func TestRecord_Without(t *testing.T) {
	r := models.NewRecord("FullName", "A", "points", 1.5)
	out := r.Without(models.FullNameKey)

	if out.Len() != 1 {
		t.Fatalf("expected 1 field, got %d", out.Len())
	}
	if _, ok := out.Get(models.FullNameKey); ok {
		t.Error("FullName should be removed")
	}
	if r.Len() != 2 {
		t.Error("original record must not change")
	}
}
