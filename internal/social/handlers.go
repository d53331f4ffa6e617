package social

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the follow graph and feed. Every route requires a
// bearer token; the follower is always the authenticated user.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&req); err != nil || req.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username required")
		}
		if err := svc.Follow(c.Context(), c.Locals("user_id").(string), req.Username); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	r.Delete("/follow/:username", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Unfollow(c.Context(), c.Locals("user_id").(string), c.Params("username")); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	r.Get("/following", authMiddleware, func(c *fiber.Ctx) error {
		names, err := svc.Following(c.Context(), c.Locals("user_id").(string))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"following": names})
	})

	r.Get("/feed", authMiddleware, func(c *fiber.Ctx) error {
		feed, err := svc.Feed(c.Context(), c.Locals("user_id").(string))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"trips": feed})
	})
}
