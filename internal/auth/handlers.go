package auth

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires /signup plus the optional password-upgrade auth
// endpoints. Failures come back as 400 {"error": ...} per the v1 API
// contract.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid signup payload")
		}
		user, err := svc.Signup(c.Context(), req.Username)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"userId": user.ID, "username": user.Username})
	})

	r.Post("/auth/password", func(c *fiber.Ctx) error {
		var req PasswordRequest
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId and password required")
		}
		if err := svc.SetPassword(c.Context(), req.UserID, req.Password); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"ok": true})
	})

	r.Post("/auth/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}
		user, tokens, err := svc.Login(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"userId": user.ID, "username": user.Username, "tokens": tokens})
	})
}
