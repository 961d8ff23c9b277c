package zoom

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/basiczoom/logger"
	"github.com/kbukum/basiczoom/observability"
)

// Get reads endpoint. Without an explicit page_size the request asks for the
// endpoint's default page size.
//
// With autoPage set, a response carrying both the endpoint's data key (see
// DataKey) and a next_page_token is followed page by page until the cursor is
// empty. Each page's records are appended to the first page's list and the
// merged result is returned without the cursor field. When params carry from
// or to and the first page echoes a different range, Get returns a
// *DateRangeError instead. An error on any page discards the pages fetched so
// far.
//
// params are not modified.
func (c *Client) Get(ctx context.Context, endpoint string, params Params, autoPage bool) (res *Result, err error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}
	params = params.clone()
	if _, ok := params[ParamPageSize]; !ok {
		params[ParamPageSize] = DefaultPageSize(endpoint)
	}

	ctx, op := observability.StartOperation(ctx, c.tracer, c.clock, c.metrics, spanName(http.MethodGet), endpoint)
	pages := 0
	defer func() {
		op.SetAttributes(attribute.Int(observability.AttrPages, pages))
		op.End(ctx, err, errorType(err))
		c.logDone(op, err)
	}()

	first, err := c.send(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	pages = 1
	if first.Kind == KindStatus || !autoPage {
		return first, nil
	}

	res, pages, err = c.paginate(ctx, endpoint, params, first)
	return res, err
}

// paginate follows next_page_token from first and merges every page into
// first. It returns the number of pages fetched, first included.
func (c *Client) paginate(ctx context.Context, endpoint string, params Params, first *Result) (*Result, int, error) {
	merged, ok := first.Object()
	if !ok {
		return first, 1, nil
	}
	key := DataKey(endpoint)
	if _, ok := merged[key]; !ok {
		return first, 1, nil
	}
	if _, ok := merged[ParamNextPageToken]; !ok {
		return first, 1, nil
	}
	if err := checkDateRange(params, merged); err != nil {
		return nil, 1, err
	}

	pages := 1
	cursor := cursorOf(merged)
	for cursor != "" {
		params[ParamNextPageToken] = cursor

		page, err := c.send(ctx, http.MethodGet, endpoint, params, nil)
		if err != nil {
			return nil, pages, err
		}
		pages++

		obj, ok := page.Object()
		if !ok {
			break
		}
		records, present := obj[key]
		if present {
			appendRecords(merged, key, records)
		}
		c.log.Debug("fetched page", logger.Fields(
			logger.FieldEndpoint, endpoint,
			"page", pages,
			"records", len(asList(records)),
			"skipped", !present,
		))
		cursor = cursorOf(obj)
	}

	delete(merged, ParamNextPageToken)
	c.metrics.RecordPages(ctx, key, pages)
	return first, pages, nil
}

// checkDateRange compares the from/to the caller asked for with what the
// server echoed. A missing echo counts as a mismatch.
func checkDateRange(params Params, payload map[string]any) error {
	reqFrom, hasFrom := params[ParamFrom]
	reqTo, hasTo := params[ParamTo]
	if !hasFrom && !hasTo {
		return nil
	}
	respFrom, fromOK := stringField(payload, ParamFrom)
	respTo, toOK := stringField(payload, ParamTo)

	mismatch := (hasFrom && (!fromOK || reqFrom != respFrom)) ||
		(hasTo && (!toOK || reqTo != respTo))
	if !mismatch {
		return nil
	}
	return &DateRangeError{
		RequestFrom:  reqFrom,
		RequestTo:    reqTo,
		ResponseFrom: respFrom,
		ResponseTo:   respTo,
	}
}

// appendRecords extends merged[key] with records when both are lists.
func appendRecords(merged map[string]any, key string, records any) {
	acc, ok := merged[key].([]any)
	if !ok {
		return
	}
	if more, ok := records.([]any); ok {
		merged[key] = append(acc, more...)
	}
}

// cursorOf returns the page's continuation cursor. A missing or non-string
// cursor ends pagination.
func cursorOf(page map[string]any) string {
	s, _ := page[ParamNextPageToken].(string)
	return s
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}
