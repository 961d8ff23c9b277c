package zoom

import (
	"encoding/json"
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/kbukum/basiczoom/httpclient"
)

func response(status int, body string) *httpclient.Response {
	return &httpclient.Response{
		StatusCode: status,
		Body:       []byte(body),
		URL:        "https://api.zoom.us/v2/users?page_size=100",
	}
}

func TestNormalize_EmptySuccessIsStatus(t *testing.T) {
	for _, status := range []int{200, 201, 204} {
		res, err := Normalize(response(status, ""))
		if err != nil {
			t.Fatalf("%d: unexpected error %v", status, err)
		}
		if res.Kind != KindStatus || res.StatusCode != status {
			t.Errorf("%d: expected status result, got %+v", status, res)
		}
	}
}

func TestNormalize_JSON(t *testing.T) {
	res, err := Normalize(response(200, `{"id":"abc","total_records":12345678901234567}`))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	obj, ok := res.Object()
	if !ok {
		t.Fatalf("expected object, got %+v", res)
	}
	if obj["id"] != "abc" {
		t.Errorf("unexpected id %v", obj["id"])
	}
	if n, ok := obj["total_records"].(json.Number); !ok || n.String() != "12345678901234567" {
		t.Errorf("expected exact json.Number, got %#v", obj["total_records"])
	}
}

func TestNormalize_NonJSONSuccessIsRaw(t *testing.T) {
	for _, body := range []string{"BEGIN:VCALENDAR", `{"a":1} trailing`, " "} {
		res, err := Normalize(response(201, body))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", body, err)
		}
		if res.Kind != KindRaw || string(res.Raw) != body {
			t.Errorf("%q: expected raw result, got %+v", body, res)
		}
	}
}

func TestNormalize_MessageVerbatim(t *testing.T) {
	_, err := Normalize(response(404, `{"code":1001,"message":"not found"}`))
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if err.Error() != "not found" {
		t.Errorf("expected message exactly 'not found', got %q", err.Error())
	}
	if apiErr.StatusCode != 404 || apiErr.Code != 1001 {
		t.Errorf("unexpected fields %+v", apiErr)
	}
}

func TestNormalize_GenericMessage(t *testing.T) {
	cases := []struct {
		status int
		body   string
	}{
		{500, "<html>oops</html>"},
		{400, `{"error":"bad"}`},
		{403, `["not","an","object"]`},
		{202, ""},
	}
	for _, tc := range cases {
		_, err := Normalize(response(tc.status, tc.body))
		if !IsAPIError(err) {
			t.Fatalf("%d: expected APIError, got %v", tc.status, err)
		}
		want := "Received status code " + strconv.Itoa(tc.status) + " on https://api.zoom.us/v2/users?page_size=100"
		if err.Error() != want {
			t.Errorf("%d: expected %q, got %q", tc.status, want, err.Error())
		}
	}
}

