package security

import (
	"encoding/json"
	"testing"
)

func TestIdentifier_UnmarshalJSON_AllMarkets(t *testing.T) {
	cases := []struct {
		tag  string
		want Market
	}{
		{"SH", Shanghai},
		{"SZ", Shenzhen},
		{"HK", HongKong},
		{"NSDQ", Nasdaq},
	}
	for _, c := range cases {
		var id Identifier
		raw := `{"type":"` + c.tag + `","code":"600000"}`
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			t.Fatalf("%s: %v", c.tag, err)
		}
		if id.Market != c.want || id.Code != "600000" {
			t.Fatalf("%s: got %+v", c.tag, id)
		}
	}
}

func TestIdentifier_UnmarshalJSON_UnknownMarket(t *testing.T) {
	var id Identifier
	if err := json.Unmarshal([]byte(`{"type":"LSE","code":"VOD"}`), &id); err == nil {
		t.Fatal("want error for unknown market type")
	}
}

func TestIdentifier_MarshalRoundTrip(t *testing.T) {
	in := Identifier{Market: HongKong, Code: "00700"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Identifier
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip: %+v != %+v", out, in)
	}
}

func TestSecurity_UnmarshalJSON(t *testing.T) {
	raw := `{"name":"浦发银行","code":{"type":"SH","code":"600000"}}`
	var s Security
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "浦发银行" || s.ID.Market != Shanghai || s.ID.Code != "600000" {
		t.Fatalf("got %+v", s)
	}
}
