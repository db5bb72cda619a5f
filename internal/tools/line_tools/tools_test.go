package line_tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamafumi/line-mcp/internal/config"
	"github.com/yamafumi/line-mcp/internal/line"
	"github.com/yamafumi/line-mcp/internal/server"
)

const testGroupID = "C907a5f13427d06fa58adf5c1920352ad"

func newTestServerContext(t *testing.T, apiEndpoint string) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), &config.Config{
		ChannelAccessToken: "test-token",
		DefaultGroupID:     testGroupID,
		PersonalUserID:     "U4af4980629deadbeef",
		Port:               config.DefaultPort,
		Timeout:            config.DefaultTimeout,
		APIEndpoint:        apiEndpoint,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sc.Shutdown()
	})
	return sc
}

func callSendMessage(t *testing.T, sc *server.ServerContext, args map[string]interface{}) line.SendResult {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "send_line_message",
			Arguments: args,
		},
	}

	result, err := handleSendMessage(context.Background(), request, sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool result content should be text")

	var sendResult line.SendResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &sendResult))

	// The protocol error flag mirrors the result document.
	assert.Equal(t, !sendResult.Success, result.IsError)

	return sendResult
}

func TestRegisterLineTools(t *testing.T) {
	sc := newTestServerContext(t, "")

	mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	require.NoError(t, RegisterLineTools(mcpSrv, sc))
}

func TestHandleSendMessageSuccess(t *testing.T) {
	var gotBody []byte
	lineAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/bot/message/push", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = body
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	defer lineAPI.Close()

	sc := newTestServerContext(t, lineAPI.URL)

	result := callSendMessage(t, sc, map[string]interface{}{
		"message": "メールを転送しました",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "Message sent successfully", result.Message)
	assert.Equal(t, testGroupID, result.GroupID)
	assert.Empty(t, result.Error)

	assert.Contains(t, string(gotBody), testGroupID)
	assert.Contains(t, string(gotBody), "メールを転送しました")
}

func TestHandleSendMessageExplicitGroup(t *testing.T) {
	lineAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Coverride")
		w.WriteHeader(http.StatusOK)
	}))
	defer lineAPI.Close()

	sc := newTestServerContext(t, lineAPI.URL)

	result := callSendMessage(t, sc, map[string]interface{}{
		"message":  "hello",
		"group_id": "Coverride",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "Coverride", result.GroupID)
}

func TestHandleSendMessagePersonalTarget(t *testing.T) {
	lineAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "U4af4980629deadbeef")
		w.WriteHeader(http.StatusOK)
	}))
	defer lineAPI.Close()

	sc := newTestServerContext(t, lineAPI.URL)

	result := callSendMessage(t, sc, map[string]interface{}{
		"message": "hello",
		"target":  "personal",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "U4af4980629deadbeef", result.GroupID)
}

func TestHandleSendMessageAPIError(t *testing.T) {
	lineAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authentication failed"}`))
	}))
	defer lineAPI.Close()

	sc := newTestServerContext(t, lineAPI.URL)

	result := callSendMessage(t, sc, map[string]interface{}{
		"message": "hello",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "401")
	assert.Contains(t, result.Error, "Authentication failed")
}

func TestHandleSendMessageValidation(t *testing.T) {
	var calls atomic.Int64
	lineAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer lineAPI.Close()

	sc := newTestServerContext(t, lineAPI.URL)

	tests := []struct {
		name        string
		args        map[string]interface{}
		wantErrPart string
	}{
		{
			name:        "missing message",
			args:        map[string]interface{}{},
			wantErrPart: "message",
		},
		{
			name:        "empty message",
			args:        map[string]interface{}{"message": ""},
			wantErrPart: "message",
		},
		{
			name:        "non-string message",
			args:        map[string]interface{}{"message": 42},
			wantErrPart: "message",
		},
		{
			name:        "unknown target",
			args:        map[string]interface{}{"message": "hi", "target": "broadcast"},
			wantErrPart: "target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callSendMessage(t, sc, tt.args)

			assert.False(t, result.Success)
			assert.Contains(t, result.Error, tt.wantErrPart)
		})
	}

	assert.Equal(t, int64(0), calls.Load(), "validation failures must not reach the LINE API")
}

func TestResolveTarget(t *testing.T) {
	cfg := &config.Config{
		DefaultGroupID: testGroupID,
		PersonalUserID: "U123",
	}

	tests := []struct {
		name    string
		args    map[string]interface{}
		cfg     *config.Config
		want    string
		wantErr bool
	}{
		{
			name: "defaults to configured group",
			args: map[string]interface{}{},
			cfg:  cfg,
			want: testGroupID,
		},
		{
			name: "explicit group id wins",
			args: map[string]interface{}{"group_id": "Cother"},
			cfg:  cfg,
			want: "Cother",
		},
		{
			name: "personal target uses configured user",
			args: map[string]interface{}{"target": "personal"},
			cfg:  cfg,
			want: "U123",
		},
		{
			name: "personal target with explicit user id",
			args: map[string]interface{}{"target": "personal", "user_id": "Uother"},
			cfg:  cfg,
			want: "Uother",
		},
		{
			name:    "no group configured",
			args:    map[string]interface{}{},
			cfg:     &config.Config{},
			wantErr: true,
		},
		{
			name:    "no personal user configured",
			args:    map[string]interface{}{"target": "personal"},
			cfg:     &config.Config{DefaultGroupID: testGroupID},
			wantErr: true,
		},
		{
			name:    "invalid target",
			args:    map[string]interface{}{"target": "everyone"},
			cfg:     cfg,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := resolveTarget(tt.args, tt.cfg)
			if tt.wantErr {
				assert.NotEmpty(t, errMsg)
				return
			}
			assert.Empty(t, errMsg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleSendMessageNilArguments(t *testing.T) {
	sc := newTestServerContext(t, "")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "send_line_message"},
	}

	result, err := handleSendMessage(context.Background(), request, sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
