package tracker

import (
	"errors"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/mesh"
	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/trail"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/snapshot", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Nodes []mesh.Node `json:"nodes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, err := svc.ApplySnapshot(c.Context(), req.Nodes)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	r.Get("/nodes", func(c *fiber.Ctx) error {
		return c.JSON(svc.NodeViews())
	})

	r.Get("/counts", func(c *fiber.Ctx) error {
		return c.JSON(svc.Counts())
	})

	r.Get("/trails", func(c *fiber.Ctx) error {
		return c.JSON(svc.TrailPaths())
	})

	r.Get("/nodes/:id/history", func(c *fiber.Ctx) error {
		samples, err := svc.History(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(samples)
	})

	r.Get("/retention", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"retention_minutes": svc.Retention(),
			"presets":           trail.RetentionPresets,
		})
	})

	r.Put("/retention", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			RetentionMinutes int `json:"retention_minutes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.SetRetention(req.RetentionMinutes); err != nil {
			if errors.Is(err, trail.ErrRetentionPreset) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"retention_minutes": svc.Retention()})
	})
}
