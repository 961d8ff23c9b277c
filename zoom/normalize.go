package zoom

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kbukum/basiczoom/httpclient"
)

// Normalize classifies a response. 200, 201 and 204 are successes: an empty
// body yields a KindStatus result, a JSON body a KindJSON result and anything
// else a KindRaw result. Every other status is an *APIError.
func Normalize(resp *httpclient.Response) (*Result, error) {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		if len(resp.Body) == 0 {
			return &Result{Kind: KindStatus, StatusCode: resp.StatusCode}, nil
		}
		v, err := decodeJSON(resp.Body)
		if err != nil {
			return &Result{Kind: KindRaw, StatusCode: resp.StatusCode, Raw: resp.Body}, nil
		}
		return &Result{Kind: KindJSON, StatusCode: resp.StatusCode, Value: v}, nil
	}

	apiErr := &APIError{
		Message:    fmt.Sprintf("Received status code %d on %s", resp.StatusCode, resp.URL),
		StatusCode: resp.StatusCode,
		URL:        resp.URL,
		Body:       resp.Body,
	}
	v, err := decodeJSON(resp.Body)
	if err != nil {
		return nil, apiErr
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apiErr
	}
	if msg, ok := obj["message"]; ok && msg != nil {
		if s, isString := msg.(string); isString {
			apiErr.Message = s
		} else {
			apiErr.Message = fmt.Sprint(msg)
		}
	}
	if code, ok := obj["code"]; ok {
		apiErr.Code = intValue(code)
	}
	return nil, apiErr
}

func intValue(v any) int {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
