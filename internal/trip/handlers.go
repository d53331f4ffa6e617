package trip

import "github.com/gofiber/fiber/v2"

// ShareSigner mints and resolves the opaque tokens behind trip share links.
type ShareSigner interface {
	SignShareToken(tripID string) (string, error)
	VerifyShareToken(token string) (string, error)
}

// RegisterRoutes wires the trips API. Every failure is a 400 with an
// {"error": ...} body; the v1 surface uses no other failure status.
func RegisterRoutes(r fiber.Router, svc *Service, signer ShareSigner) {
	r.Get("/trips", func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		trips, err := svc.ListByUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"trips": trips})
	})

	r.Post("/trips", func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid trip payload")
		}
		tripID, err := svc.Create(c.Context(), req.UserID, req.Trip)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ok": true, "tripId": tripID})
	})

	r.Post("/trips/:id/share", func(c *fiber.Ctx) error {
		tripID := c.Params("id")
		if _, err := svc.GetByID(c.Context(), tripID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip not found")
		}
		token, err := signer.SignShareToken(tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"shareToken": token})
	})

	r.Get("/trips/shared/:token", func(c *fiber.Ctx) error {
		tripID, err := signer.VerifyShareToken(c.Params("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid share token")
		}
		t, err := svc.GetByID(c.Context(), tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "trip not found")
		}
		return c.JSON(fiber.Map{"trip": t})
	})
}
