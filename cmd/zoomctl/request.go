package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/basiczoom/validation"
	"github.com/kbukum/basiczoom/zoom"
)

func newGetCmd(gf *globalFlags) *cobra.Command {
	var (
		params     []string
		noAutoPage bool
	)

	cmd := &cobra.Command{
		Use:   "get <endpoint>",
		Short: "Read a resource, following pagination",
		Example: `  zoomctl get /users --param status=active
  zoomctl get /phone/call_logs --param from=2024-01-01 --param to=2024-01-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			return run(cmd, gf, func(ctx context.Context, c *zoom.Client) (*zoom.Result, error) {
				return c.Get(ctx, args[0], p, !noAutoPage)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&noAutoPage, "no-auto-page", false, "return only the first page")
	return cmd
}

// newWriteCmd builds the post and put commands, which differ only in verb.
func newWriteCmd(gf *globalFlags, verb, short string) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   verb + " <endpoint>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseBody(data)
			if err != nil {
				return err
			}
			return run(cmd, gf, func(ctx context.Context, c *zoom.Client) (*zoom.Result, error) {
				if verb == "put" {
					return c.Put(ctx, args[0], body)
				}
				return c.Post(ctx, args[0], body)
			})
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body, or @file to read it from a file")
	return cmd
}

func newPatchCmd(gf *globalFlags) *cobra.Command {
	var (
		params []string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "patch <endpoint>",
		Short: "Update a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			body, err := parseBody(data)
			if err != nil {
				return err
			}
			return run(cmd, gf, func(ctx context.Context, c *zoom.Client) (*zoom.Result, error) {
				return c.Patch(ctx, args[0], p, body)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body, or @file to read it from a file")
	return cmd
}

func newDeleteCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <endpoint>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, gf, func(ctx context.Context, c *zoom.Client) (*zoom.Result, error) {
				return c.Delete(ctx, args[0])
			})
		},
	}
}

// maxPageSize is the largest page the API serves.
const maxPageSize = 300

// parseParams turns key=value flags into query parameters. Later keys win.
func parseParams(raw []string) (zoom.Params, error) {
	v := validation.New()
	params := make(zoom.Params, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		v.Custom(ok && key != "", "param", "expected key=value, got "+kv)
		if ok && key != "" {
			params[key] = value
		}
	}
	if size, ok := params[zoom.ParamPageSize]; ok {
		n, err := strconv.Atoi(size)
		v.Custom(err == nil, zoom.ParamPageSize, "must be an integer")
		if err == nil {
			v.Range(zoom.ParamPageSize, n, 1, maxPageSize)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return params, nil
}

// parseBody reads the --data flag. An empty flag sends no body.
func parseBody(data string) (any, error) {
	if data == "" {
		return nil, nil
	}
	raw := []byte(data)
	if path, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if err := validation.New().Custom(json.Valid(raw), "data", "body is not valid JSON").Err(); err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
