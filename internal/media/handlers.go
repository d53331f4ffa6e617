package media

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/trips/:id/photos", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			FileName string `json:"fileName"`
			Caption  string `json:"caption"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid photo payload")
		}
		photo, err := svc.AttachPhoto(c.Context(), c.Params("id"), c.Locals("user_id").(string), req.FileName, req.Caption)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(photo)
	})

	r.Get("/trips/:id/photos", func(c *fiber.Ctx) error {
		photos, err := svc.Photos(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"photos": photos})
	})
}
