package handlers

import (
	"context"
	"errors"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/services/resolution"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/telemetry"
)

// ResolveHandler handles resolve_request commands
type ResolveHandler struct {
	ResolutionService resolution.IResolutionService
	Logger            primary.Logger
}

func NewTCPResolveHandler(
	resolutionService resolution.IResolutionService,
	logger primary.Logger,
) *ResolveHandler {
	return &ResolveHandler{
		ResolutionService: resolutionService,
		Logger:            logger,
	}
}

// HandleCommand implements the CommandHandler interface. args carry the four
// fields after the kind: object name, start, stop, solar-system flag.
func (h *ResolveHandler) HandleCommand(ctx context.Context, connID string, args []string) string {
	if len(args) != defs.ResolveFieldCount-1 {
		h.Logger.Error("Resolve request has wrong field count", "connId", connID, "fields", len(args)+1)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdResolveRequest, "malformed").Inc()
		return defs.ReplyMalformed
	}

	window, err := domain.ParseTimeWindow(args[1], args[2])
	if err != nil {
		h.Logger.Error("Failed to parse resolve window", "connId", connID, "error", err)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdResolveRequest, "malformed").Inc()
		return defs.ReplyMalformed
	}

	req := domain.ResolveRequest{
		Name:        args[0],
		Window:      window,
		SolarSystem: args[3] == defs.FlagSolarSystem,
	}

	result, err := h.ResolutionService.Resolve(ctx, req)
	if err != nil {
		return h.failureReply(connID, req, err)
	}

	telemetry.RequestsTotal.WithLabelValues(defs.CmdResolveRequest, "ok").Inc()
	if result.Kind == domain.ResultCoordinates {
		return defs.ReplyCoordsSolved + "\n" +
			domain.FormatDegrees(result.Coordinates.RADeg) + "\n" +
			domain.FormatDegrees(result.Coordinates.DecDeg)
	}
	return defs.ReplyFileGenerated + "\n" + result.OutFile
}

// failureReply maps service errors onto the wire vocabulary. A catalog
// lookup that positively found nothing gets the not-resolved reply; every
// other failure reads as a failed generation.
func (h *ResolveHandler) failureReply(connID string, req domain.ResolveRequest, err error) string {
	if errors.Is(err, errs.ErrNameNotResolved) && !req.SolarSystem {
		h.Logger.Info("Catalog name not resolved", "connId", connID, "name", req.Name)
		telemetry.RequestsTotal.WithLabelValues(defs.CmdResolveRequest, "not_found").Inc()
		return defs.ReplyNameNotFound
	}

	h.Logger.Error("Failed to resolve object",
		"connId", connID,
		"name", req.Name,
		"solarSystem", req.SolarSystem,
		"error", err)
	telemetry.RequestsTotal.WithLabelValues(defs.CmdResolveRequest, "failed").Inc()
	return defs.ReplyFileFailed
}
