package live

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires live trip sharing. Writing requires a bearer token;
// anyone with the session id can watch.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/live/sessions", authMiddleware, func(c *fiber.Ctx) error {
		session, err := svc.StartSession(c.Context(), c.Locals("user_id").(string))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(session)
	})

	r.Post("/live/sessions/:id/points", authMiddleware, func(c *fiber.Ctx) error {
		var req Point
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid point payload")
		}
		point, err := svc.AddPoint(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(point)
	})

	r.Post("/live/sessions/:id/end", authMiddleware, func(c *fiber.Ctx) error {
		session, err := svc.EndSession(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(session)
	})

	r.Get("/live/sessions/:id", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(summary)
	})

	r.Get("/live/sessions/:id/points", func(c *fiber.Ctx) error {
		points, err := svc.Points(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"points": points})
	})
}
