package zoom

import (
	"encoding/json"
	"testing"
)

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		res  *Result
		want string
	}{
		{&Result{Kind: KindStatus, StatusCode: 204}, `204`},
		{&Result{Kind: KindJSON, StatusCode: 200, Value: map[string]any{"n": json.Number("7")}}, `{"n":7}`},
		{&Result{Kind: KindRaw, StatusCode: 200, Raw: []byte("plain")}, `"plain"`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.res)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.res.Kind, err)
		}
		if string(got) != tt.want {
			t.Errorf("%v: expected %s, got %s", tt.res.Kind, tt.want, got)
		}
	}
}

func TestResult_Decode(t *testing.T) {
	res := &Result{Kind: KindJSON, Value: map[string]any{
		"users": []any{map[string]any{"id": "u1"}, map[string]any{"id": "u2"}},
	}}
	var out struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Users) != 2 || out.Users[1].ID != "u2" {
		t.Errorf("unexpected decode %+v", out)
	}

	if err := (&Result{Kind: KindStatus, StatusCode: 204}).Decode(&out); err == nil {
		t.Error("expected error decoding a status result")
	}
}

func TestResult_Object(t *testing.T) {
	var nilRes *Result
	if _, ok := nilRes.Object(); ok {
		t.Error("nil result has no object")
	}
	if _, ok := (&Result{Kind: KindJSON, Value: []any{}}).Object(); ok {
		t.Error("list value is not an object")
	}
}

func TestKind_String(t *testing.T) {
	if KindStatus.String() != "status" || KindJSON.String() != "json" || KindRaw.String() != "raw" {
		t.Error("unexpected kind names")
	}
}
