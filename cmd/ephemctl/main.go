package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/tcp/frame"
)

var (
	serverAddr string
	objectName string
	startTime  string
	stopTime   string
	solar      bool
	push       bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ephemctl",
	Short: "Talk to the RT2 pointing server",
	Long: `ephemctl sends one resolve request to the pointing server and prints the
reply. With --push, a "coordinates solved" reply is resubmitted as a
pushing_ra_dec command for the same window, so a catalog lookup turns into a
pointing file in one run.

Examples:
  ephemctl --name Jupiter --start "2021-07-14 08:40:00" --stop "2021-07-14 09:00:00" --solar
  ephemctl --name Vega --start "2021-07-14 08:40:00" --stop "2021-07-14 09:00:00" --push`,
	RunE: runQuery,
}

func init() {
	rootCmd.Flags().StringVar(&serverAddr, "addr", "localhost:6060", "Pointing server address")
	rootCmd.Flags().StringVar(&objectName, "name", "", "Object name (required)")
	rootCmd.Flags().StringVar(&startTime, "start", "", `Window start, "YYYY-MM-DD HH:MM:SS" UTC (required)`)
	rootCmd.Flags().StringVar(&stopTime, "stop", "", "Window stop, exclusive (required)")
	rootCmd.Flags().BoolVar(&solar, "solar", false, "Treat the object as a moving solar-system body")
	rootCmd.Flags().BoolVar(&push, "push", false, "Resubmit solved coordinates as a pushing_ra_dec command")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Per-exchange deadline")
	_ = rootCmd.MarkFlagRequired("name")
	_ = rootCmd.MarkFlagRequired("start")
	_ = rootCmd.MarkFlagRequired("stop")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	conn, err := net.Dial("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverAddr, err)
	}
	defer conn.Close()
	// say goodbye before the socket goes away
	defer func() { _ = frame.WriteMessage(conn, []byte(defs.DisconnectSentinel)) }()

	flag := "False"
	if solar {
		flag = defs.FlagSolarSystem
	}
	request := strings.Join([]string{defs.CmdResolveRequest, objectName, startTime, stopTime, flag}, "\n")

	reply, err := exchange(conn, request)
	if err != nil {
		return err
	}
	fmt.Println(reply)

	if !push {
		return nil
	}
	lines := strings.Split(reply, "\n")
	if len(lines) != 3 || lines[0] != defs.ReplyCoordsSolved {
		return nil
	}

	pushRequest := strings.Join([]string{defs.CmdPushingRADec, lines[1], lines[2], startTime, stopTime, objectName}, "\n")
	pushReply, err := exchange(conn, pushRequest)
	if err != nil {
		return err
	}
	fmt.Println(pushReply)
	return nil
}

// exchange writes one framed command and reads one framed reply.
func exchange(conn net.Conn, command string) (string, error) {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return "", fmt.Errorf("failed to set deadline: %w", err)
	}
	if err := frame.WriteMessage(conn, []byte(command)); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}
	payload, err := frame.ReadPayload(conn)
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	return string(payload), nil
}
