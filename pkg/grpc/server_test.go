package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	sfgrpc "github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

const checkMethod = "/grpc.health.v1.Health/Check"

func healthClient(t *testing.T, check sfgrpc.Checker) grpc_health_v1.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := sfgrpc.NewServer(check)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { sfgrpc.Stop(srv) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return grpc_health_v1.NewHealthClient(conn)
}

func TestHealthFollowsCheck(t *testing.T) {
	var down error
	client := healthClient(t, func(context.Context) error { return down })
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.GRPCRequests.WithLabelValues(checkMethod, codes.OK.String()))

	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	down = errors.New("database: ping: connection refused")
	resp, err = client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	after := testutil.ToFloat64(metrics.GRPCRequests.WithLabelValues(checkMethod, codes.OK.String()))
	assert.Equal(t, float64(2), after-before)
}

func TestHealthUnknownService(t *testing.T) {
	client := healthClient(t, nil)

	_, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "inventory"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
