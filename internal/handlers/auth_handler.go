package handlers

import (
	"log"

	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and user accounts.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. auth and admin
// are the middleware gates for authenticated and admin-only routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	users := router.Group("/users")
	users.Post("/login", h.HandleLogin)
	users.Post("/register", h.HandleRegister)
	users.Get("/profile", auth, h.HandleGetProfile)
	users.Put("/profile", auth, h.HandleUpdateProfile)
	users.Get("/", auth, admin, h.HandleListUsers)
	users.Get("/:id", auth, admin, h.HandleGetUser)
	users.Put("/:id", auth, admin, h.HandleUpdateUser)
	users.Delete("/:id", auth, admin, h.HandleDeleteUser)
}

// HandleRegister handles new user registration. The response carries the
// created user and a token so the client is logged in immediately.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, token, err := h.authService.RegisterUser(req)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": "Invalid email or password",
		})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleGetProfile returns the caller's own account.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	user, err := h.authService.GetProfile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates the caller's own account.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID, _ := currentUser(c)
	user, err := h.authService.UpdateProfile(userID, req)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleListUsers returns every account. Admin only.
func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGetUser returns a single account by ID. Admin only.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser updates an account, including the admin flag. Admin only.
func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.authService.UpdateUser(c.Params("id"), req)
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDeleteUser removes an account. Admin only.
func (h *AuthHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.authService.DeleteUser(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "User deleted"})
}
