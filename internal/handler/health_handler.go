package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-activities/internal/config"
	"github.com/noah-isme/gema-activities/internal/utils"
)

const healthProbeTimeout = 2 * time.Second

// HealthProbe checks one optional dependency such as the event brokers.
type HealthProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Environment  string            `json:"environment"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// HealthCheck returns a handler that reports application health information.
// A failing probe marks the service degraded but still answers 200: the registry itself never depends on it.
func HealthCheck(cfg config.Config, probes ...HealthProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if len(probes) > 0 {
			payload.Dependencies = make(map[string]string, len(probes))
			ctx, cancel := context.WithTimeout(c.UserContext(), healthProbeTimeout)
			defer cancel()

			for _, probe := range probes {
				if err := probe.Check(ctx); err != nil {
					payload.Dependencies[probe.Name] = err.Error()
					payload.Status = "degraded"
					continue
				}
				payload.Dependencies[probe.Name] = "ok"
			}
		}

		message := "service healthy"
		if payload.Status != "ok" {
			message = "service degraded"
		}
		return utils.SendSuccess(c, message, payload)
	}
}
