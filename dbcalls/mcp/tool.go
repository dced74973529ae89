package mcp

import (
	"context"
	_ "embed"
	"encoding/json"

	dbservice "github.com/viant/dbcall-toolbox/dbcalls/service"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	protoserver "github.com/viant/mcp-protocol/server"
)

//go:embed tools/fixDatabaseCalls.md
var descFixDatabaseCalls string

func registerTools(base *protoserver.DefaultHandler, h *Handler) error {
	svc := h.service

	if err := protoserver.RegisterTool[*dbservice.FixInput, *dbservice.FixOutput](base.Registry, "fixDatabaseCalls", descFixDatabaseCalls, func(ctx context.Context, in *dbservice.FixInput) (*schema.CallToolResult, *jsonrpc.Error) {
		out, err := svc.Fix(ctx, in)
		if err != nil {
			return buildErrorResult(err.Error())
		}
		return buildSuccessResultOut(svc, out)
	}); err != nil {
		return err
	}
	return nil
}

func buildErrorResult(message string) (*schema.CallToolResult, *jsonrpc.Error) {
	return nil, jsonrpc.NewError(jsonrpc.InvalidParams, message, nil)
}

func buildSuccessResultOut(service *dbservice.Service, payload any) (*schema.CallToolResult, *jsonrpc.Error) {
	if service.UseTextField() {
		b, _ := json.Marshal(payload)
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{{Type: "text", Text: string(b)}}}, nil
	}
	return &schema.CallToolResult{StructuredContent: map[string]any{"result": payload}}, nil
}
