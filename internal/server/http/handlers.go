package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 0
	defaultLimit = 25
)

func (s *HTTPServer) Ping(c *gin.Context) {
	body := pingResponse{Status: "OK"}
	respond(c, http.StatusOK, body, body)
}

func (s *HTTPServer) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeError(c, validationError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, validationError(err))
		return
	}

	user, err := s.users.Register(c.Request.Context(), toRegistration(req))
	if err != nil {
		s.writeError(c, err)
		return
	}

	body := toUserResponse(user)
	c.Header("Location", "/users/"+user.PublicID)
	respond(c, http.StatusCreated, body, body)
}

func (s *HTTPServer) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeError(c, validationError(err))
		return
	}

	token, publicID, err := s.login.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header(common.AuthorizationHeaderName, common.TokenPrefix+token)
	c.Header(common.UserIDHeaderName, publicID)
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
}

func (s *HTTPServer) GetUser(c *gin.Context) {
	user, err := s.users.GetByPublicID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	body := toUserResponse(user)
	respond(c, http.StatusOK, body, body)
}

func (s *HTTPServer) ListUsers(c *gin.Context) {
	page, err := queryInt(c, "page", defaultPage)
	if err != nil {
		s.writeError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	users, err := s.users.List(c.Request.Context(), page, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	list := toUserResponses(users)
	respond(c, http.StatusOK, list, userListResponse{Users: list})
}

func (s *HTTPServer) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeError(c, validationError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(c, validationError(err))
		return
	}

	user, err := s.users.Update(c.Request.Context(), c.Param("id"), toUserUpdate(req))
	if err != nil {
		s.writeError(c, err)
		return
	}

	body := toUserResponse(user)
	respond(c, http.StatusOK, body, body)
}

func (s *HTTPServer) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user deleted", "public_id", id, "by", Subject(c))
	body := operationStatus{Operation: "DELETE", Result: "SUCCESS"}
	respond(c, http.StatusOK, body, body)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return v, nil
}
