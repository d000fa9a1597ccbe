package tcp

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/tcp/frame"
)

type stubResolution struct{}

func (stubResolution) Resolve(_ context.Context, req domain.ResolveRequest) (*domain.ResolutionResult, error) {
	if req.SolarSystem {
		return &domain.ResolutionResult{
			Kind:    domain.ResultOutfile,
			OutFile: req.Name + "_" + req.Window.Start.Format(domain.TimeLayout) + ".txt",
		}, nil
	}
	return &domain.ResolutionResult{
		Kind:        domain.ResultCoordinates,
		Coordinates: &domain.SkyCoordinates{RADeg: 279.23, DecDeg: 38.78},
	}, nil
}

type stubConversion struct{}

func (stubConversion) Convert(_ context.Context, req domain.ConvertRequest) (string, error) {
	return req.Name + "_" + req.Window.Start.Format(domain.TimeLayout) + ".txt", nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func startTestServer(t *testing.T) *TCPServer {
	t.Helper()
	srv := NewTCPServer(stubResolution{}, stubConversion{}, noopLogger{},
		WithAddress("127.0.0.1:0"),
		WithMaxConnections(4),
	)
	require.NoError(t, srv.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})
	return srv
}

func dialTestServer(t *testing.T, srv *TCPServer) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Address())
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendCommand(t *testing.T, conn net.Conn, payload string) string {
	t.Helper()
	require.NoError(t, frame.WriteMessage(conn, []byte(payload)))
	reply, err := frame.ReadPayload(conn)
	require.NoError(t, err)
	return string(reply)
}

func TestServerResolveAndPushRoundTrip(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestServer(t, srv)

	reply := sendCommand(t, conn, "resolve_request\nVega\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nFalse")
	assert.Equal(t, "coordinates solved\n279.23\n38.78", reply)

	reply = sendCommand(t, conn, "resolve_request\nmars\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nTrue")
	assert.Equal(t, "output file generated\nmars_2021-07-14 08:40:00.txt", reply)

	reply = sendCommand(t, conn, "pushing_ra_dec\n279.23\n38.78\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nVega")
	assert.Equal(t, "output file generated\nVega_2021-07-14 08:40:00.txt", reply)
}

func TestServerUnknownKindKeepsConnectionOpen(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestServer(t, srv)

	reply := sendCommand(t, conn, "unknown_kind\nfoo")
	assert.Equal(t, defs.ReplyUnknownRequest, reply)

	// the same connection still serves valid commands
	reply = sendCommand(t, conn, "resolve_request\nVega\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nFalse")
	assert.Equal(t, "coordinates solved\n279.23\n38.78", reply)
}

func TestServerMalformedCommandKeepsConnectionOpen(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestServer(t, srv)

	reply := sendCommand(t, conn, "resolve_request\nVega")
	assert.Equal(t, defs.ReplyMalformed, reply)

	reply = sendCommand(t, conn, "pushing_ra_dec\n279.23\n38.78\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nVega")
	assert.Equal(t, "output file generated\nVega_2021-07-14 08:40:00.txt", reply)
}

func TestServerSentinelClosesWithoutReply(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestServer(t, srv)

	require.NoError(t, frame.WriteMessage(conn, []byte(defs.DisconnectSentinel)))

	_, err := frame.ReadPayload(conn)
	assert.ErrorIs(t, err, io.EOF)

	assert.Eventually(t, func() bool { return srv.ActiveConnections() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestServerDropsConnectionOnGarbageHeader(t *testing.T) {
	srv := startTestServer(t)
	conn := dialTestServer(t, srv)

	garbage := "zz" + strings.Repeat(" ", 62)
	_, err := conn.Write([]byte(garbage))
	require.NoError(t, err)

	_, err = frame.ReadPayload(conn)
	assert.ErrorIs(t, err, io.EOF)
}

func TestServerServesClientsConcurrently(t *testing.T) {
	srv := startTestServer(t)
	first := dialTestServer(t, srv)
	second := dialTestServer(t, srv)

	assert.Eventually(t, func() bool { return srv.ActiveConnections() == 2 },
		time.Second, 10*time.Millisecond)

	reply := sendCommand(t, second, "resolve_request\nVega\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nFalse")
	assert.Equal(t, "coordinates solved\n279.23\n38.78", reply)

	reply = sendCommand(t, first, "resolve_request\nmars\n2021-07-14 08:40:00\n2021-07-14 09:00:00\nTrue")
	assert.Equal(t, "output file generated\nmars_2021-07-14 08:40:00.txt", reply)
}

func TestServerStopClosesLiveConnections(t *testing.T) {
	srv := NewTCPServer(stubResolution{}, stubConversion{}, noopLogger{}, WithAddress("127.0.0.1:0"))
	require.NoError(t, srv.Start())

	conn, err := net.Dial("tcp", srv.Address())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	_, err = frame.ReadPayload(conn)
	assert.Error(t, err)
}
