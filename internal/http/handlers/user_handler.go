package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bookhaven/internal/log"
	"bookhaven/internal/services"
	"bookhaven/internal/validate"
)

type UserHandler struct {
	Auth *services.AuthService
}

type credentialsBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	u, token, err := h.Auth.Register(body.FullName, body.Email, body.Password)
	if err != nil {
		var errs validate.FieldErrors
		switch {
		case errors.As(err, &errs):
			return failValidation(c, errs)
		case errors.Is(err, services.ErrEmailTaken):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "users.register.fail", err, nil)
		return failInternal(c, "Error registering user", err)
	}
	applog.Audit(c, "users.register", map[string]any{"user_id": u.ID})
	return created(c, "User registered successfully", fiber.Map{"token": token, "user": u})
}

// POST /api/users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	u, token, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "users.login.fail", map[string]any{"email": body.Email})
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}
		applog.Error(c, "users.login.error", err, nil)
		return failInternal(c, "Error logging in", err)
	}
	applog.Audit(c, "users.login", map[string]any{"user_id": u.ID})
	return okMsg(c, "Login successful", fiber.Map{"token": token, "user": u})
}

// GET /api/users/profile  (authenticated)
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	return ok(c, currentUser(c))
}

// PUT /api/users/profile  (authenticated; password is not updatable here)
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return failValidation(c, validate.FieldErrors{"Invalid request body"})
	}
	u, err := h.Auth.UpdateProfile(currentUser(c), body.FullName, body.Email)
	if err != nil {
		var errs validate.FieldErrors
		switch {
		case errors.As(err, &errs):
			return failValidation(c, errs)
		case errors.Is(err, services.ErrEmailTaken):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "users.profile.update.fail", err, nil)
		return failInternal(c, "Error updating profile", err)
	}
	applog.Audit(c, "users.profile.update", map[string]any{"user_id": u.ID})
	return okMsg(c, "Profile updated successfully", u)
}

// GET /api/users  (admin)
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Auth.Users.List()
	if err != nil {
		applog.Error(c, "users.list.fail", err, nil)
		return failInternal(c, "Error fetching users", err)
	}
	return okList(c, users)
}
