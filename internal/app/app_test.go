package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/yungtweek/llm-mockserver/internal/chat"
	"github.com/yungtweek/llm-mockserver/internal/config"
	"github.com/yungtweek/llm-mockserver/internal/questions"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func testConfig(service string) config.Config {
	return config.Config{
		Service:         service,
		Host:            "127.0.0.1",
		Profile:         "default",
		Preset:          "none",
		MetricsEnabled:  true,
		ShutdownTimeout: 5 * time.Second,
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return port
}

func postJSON(t *testing.T, url, body string) (int, string) {
	t.Helper()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

// TestServeQuestionsMock runs the questions mock end to end over a real listener.
func TestServeQuestionsMock(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, testConfig("questions-mock"), questions.Register) }()

	code, body := postJSON(t, "http://"+lis.Addr().String()+"/gemini/ask", `{"prompt": "anything"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, `{"response":[{"text":"Mock question 1"},{"text":"Mock question 2"},{"text":"Mock question 3"}]}`, body)

	cancel()
	require.NoError(t, <-done)
}

// TestServeChatMockWithHealth verifies the gRPC health server reports SERVING while the mock runs.
func TestServeChatMockWithHealth(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig("chat-mock")
	cfg.HealthGRPCPort = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, cfg, chat.Register) }()

	code, body := postJSON(t, "http://"+lis.Addr().String()+"/v1/chat/completions", `{"model": "gpt-4", "messages": []}`)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `"model":"gpt-4"`)

	conn, err := grpc.NewClient(net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.HealthGRPCPort)),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	client := healthpb.NewHealthClient(conn)

	require.Eventually(t, func() bool {
		cctx, ccancel := context.WithTimeout(context.Background(), time.Second)
		defer ccancel()
		resp, err := client.Check(cctx, &healthpb.HealthCheckRequest{Service: "chat-mock"})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, conn.Close())

	cancel()
	require.NoError(t, <-done)
}

// TestServeHealthPortTaken verifies a failing health server stops the HTTP server and surfaces the error.
func TestServeHealthPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig("chat-mock")
	cfg.HealthGRPCPort = taken.Addr().(*net.TCPAddr).Port

	select {
	case err := <-serveAsync(context.Background(), lis, cfg):
		require.Error(t, err)
		require.Contains(t, err.Error(), "health server")
	case <-time.After(10 * time.Second):
		t.Fatalf("Serve did not return after health server failure")
	}
}

func TestRunBadAddr(t *testing.T) {
	cfg := testConfig("questions-mock")
	cfg.Port = -1
	require.Error(t, Run(context.Background(), cfg, questions.Register))
}

// TestHealthAddrFollowsHost verifies the health server is not exposed beyond the HTTP host.
func TestHealthAddrFollowsHost(t *testing.T) {
	cfg := testConfig("questions-mock")
	cfg.Host = "localhost"
	cfg.HealthGRPCPort = 50051
	require.Equal(t, "localhost:50051", healthAddr(cfg))

	cfg.Host = "::1"
	require.Equal(t, "[::1]:50051", healthAddr(cfg))

	cfg.Host = ""
	require.Equal(t, ":50051", healthAddr(cfg))
}

func serveAsync(ctx context.Context, lis net.Listener, cfg config.Config) <-chan error {
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, lis, cfg, chat.Register) }()
	return done
}
