package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edu-crud/user-records-api/internal/core/ports"
	"github.com/edu-crud/user-records-api/internal/pkg/metrics"
)

// UserHandler handles HTTP requests for user records.
type UserHandler struct {
	service ports.UserService
	logger  zerolog.Logger
}

func NewUserHandler(service ports.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// List godoc
//
// @Summary      List all users, newest first
// @Tags         users
// @Produce      json
// @Success      200  {object}  Envelope{data=[]userResponse}
// @Failure      500  {object}  Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to retrieve users")
	}
	return Respond(c, http.StatusOK, "Users retrieved successfully", toUserResponses(users))
}

// Get godoc
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope{data=userResponse}
// @Failure      404  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to retrieve user")
	}
	return Respond(c, http.StatusOK, "User retrieved successfully", toUserResponse(user))
}

// Create godoc
//
// @Summary      Create a user from a request body
// @Tags         users
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      createUserRequest  true  "User fields"
// @Success      201   {object}  Envelope{data=userResponse}
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return Respond(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	return h.create(c, ports.CreateUserInput{
		Username: string(req.Username),
		Password: string(req.Password),
		Age:      string(req.Age),
		Gender:   string(req.Gender),
		Source:   ports.SourceBody,
	}, "User created successfully")
}

// CreateInsecure godoc
//
// Credentials travel in the URL. Kept on purpose for teaching; never copy it.
//
// @Summary      Create a user from query parameters (insecure)
// @Tags         users
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Param        password  query     string  true  "Password, exposed in the URL"
// @Param        age       query     string  true  "Age"
// @Param        gender    query     string  true  "Gender"
// @Success      201       {object}  Envelope{data=userResponse}
// @Failure      400       {object}  Envelope
// @Failure      409       {object}  Envelope
// @Failure      500       {object}  Envelope
// @Router       /api/users-insecure/create [get]
func (h *UserHandler) CreateInsecure(c echo.Context) error {
	metrics.InsecureRequestsTotal.Inc()
	h.logger.Warn().
		Str("query", c.QueryString()).
		Str("remote_ip", c.RealIP()).
		Msg("insecure create: credentials received in URL query string")

	return h.create(c, ports.CreateUserInput{
		Username: c.QueryParam("username"),
		Password: c.QueryParam("password"),
		Age:      c.QueryParam("age"),
		Gender:   c.QueryParam("gender"),
		Source:   ports.SourceQuery,
	}, "User created successfully (INSECURE METHOD)")
}

func (h *UserHandler) create(c echo.Context, input ports.CreateUserInput, message string) error {
	user, err := h.service.CreateUser(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "Failed to create user")
	}
	return Respond(c, http.StatusCreated, message, toUserResponse(user))
}

// Update godoc
//
// @Summary      Update username, age and gender of a user
// @Tags         users
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Mutable fields"
// @Success      200   {object}  Envelope{data=updatedUserResponse}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return Respond(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	user, err := h.service.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		ID:       c.Param("id"),
		Username: string(req.Username),
		Age:      string(req.Age),
		Gender:   string(req.Gender),
	})
	if err != nil {
		return respondError(c, err, "Failed to update user")
	}
	return Respond(c, http.StatusOK, "User updated successfully", toUpdatedUserResponse(user))
}

// Delete godoc
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope{data=deletedUserResponse}
// @Failure      404  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to delete user")
	}
	return Respond(c, http.StatusOK, "User deleted successfully", deletedUserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
