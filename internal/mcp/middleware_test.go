package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsArgumentsError(t *testing.T) {
	invalid := &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: "invalid params"}

	assert.True(t, isArgumentsError(fmt.Errorf("%w: validating \"arguments\": boom", invalid)))
	assert.False(t, isArgumentsError(&jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: `unknown tool "x"`}))
	assert.False(t, isArgumentsError(fmt.Errorf("wrapped: %w", &jsonrpc.Error{Code: jsonrpc.CodeInternalError})))
	assert.False(t, isArgumentsError(errors.New("plain")))
}

func TestInvalidParamsMiddleware(t *testing.T) {
	argsErr := fmt.Errorf("%w: validating \"arguments\": max_count too large",
		&jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: "invalid params"})
	failing := func(context.Context, string, sdkmcp.Request) (sdkmcp.Result, error) {
		return nil, argsErr
	}
	h := InvalidParamsMiddleware()(failing)

	result, err := h(context.Background(), methodCallTool, nil)
	require.NoError(t, err)
	res, ok := result.(*sdkmcp.CallToolResult)
	require.True(t, ok)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "INVALID_INPUT: invalid params: validating \"arguments\": max_count too large",
		res.Content[0].(*sdkmcp.TextContent).Text)

	_, err = h(context.Background(), "resources/read", nil)
	assert.ErrorIs(t, err, argsErr)
}
