package handlers

import (
	"context"
	"strconv"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/services/conversion"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/telemetry"
)

// PushCoordsHandler handles pushing_ra_dec commands
type PushCoordsHandler struct {
	ConversionService conversion.IConversionService
	Logger            primary.Logger
}

func NewTCPPushCoordsHandler(
	conversionService conversion.IConversionService,
	logger primary.Logger,
) *PushCoordsHandler {
	return &PushCoordsHandler{
		ConversionService: conversionService,
		Logger:            logger,
	}
}

// HandleCommand implements the CommandHandler interface. args carry the five
// fields after the kind: ra, dec, start, stop, file label.
func (h *PushCoordsHandler) HandleCommand(ctx context.Context, connID string, args []string) string {
	if len(args) != defs.PushFieldCount-1 {
		h.Logger.Error("Coordinate push has wrong field count", "connId", connID, "fields", len(args)+1)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "malformed").Inc()
		return defs.ReplyMalformed
	}

	ra, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		h.Logger.Error("Failed to parse right ascension", "connId", connID, "value", args[0], "error", err)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "malformed").Inc()
		return defs.ReplyMalformed
	}
	dec, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		h.Logger.Error("Failed to parse declination", "connId", connID, "value", args[1], "error", err)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "malformed").Inc()
		return defs.ReplyMalformed
	}

	window, err := domain.ParseTimeWindow(args[2], args[3])
	if err != nil {
		h.Logger.Error("Failed to parse push window", "connId", connID, "error", err)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "malformed").Inc()
		return defs.ReplyMalformed
	}

	outFile, err := h.ConversionService.Convert(ctx, domain.ConvertRequest{
		Coordinates: domain.SkyCoordinates{RADeg: ra, DecDeg: dec},
		Window:      window,
		Name:        args[4],
	})
	if err != nil {
		h.Logger.Error("Failed to convert coordinates",
			"connId", connID,
			"ra", ra,
			"dec", dec,
			"error", err)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "failed").Inc()
		return defs.ReplyFileFailed
	}

	telemetry.RequestsTotal.WithLabelValues(defs.CmdPushingRADec, "ok").Inc()
	return defs.ReplyFileGenerated + "\n" + outFile
}
