package http

import (
	"encoding/xml"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// createUserRequest is the body of POST /users.
type createUserRequest struct {
	FirstName string `form:"firstName" json:"firstName" xml:"firstName"`
	LastName  string `form:"lastName" json:"lastName" xml:"lastName"`
	Email     string `form:"email" json:"email" xml:"email"`
	Password  string `form:"password" json:"password" xml:"password"`
}

func (r createUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 120), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 72)),
	)
}

// updateUserRequest is the body of PUT /users/:id. Empty fields are kept.
type updateUserRequest struct {
	FirstName string `form:"firstName" json:"firstName" xml:"firstName"`
	LastName  string `form:"lastName" json:"lastName" xml:"lastName"`
}

func (r updateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 50)),
		validation.Field(&r.LastName, validation.Length(0, 50)),
	)
}

type loginRequest struct {
	Email    string `form:"email" json:"email" xml:"email"`
	Password string `form:"password" json:"password" xml:"password"`
}

type userResponse struct {
	XMLName   xml.Name `json:"-" xml:"user"`
	ID        string   `json:"id" xml:"id"`
	FirstName string   `json:"firstName" xml:"firstName"`
	LastName  string   `json:"lastName" xml:"lastName"`
	Email     string   `json:"email" xml:"email"`
}

type userListResponse struct {
	XMLName xml.Name       `xml:"users"`
	Users   []userResponse `xml:"user"`
}

type operationStatus struct {
	XMLName   xml.Name `json:"-" xml:"operationStatus"`
	Operation string   `json:"operation" xml:"operation"`
	Result    string   `json:"result" xml:"result"`
}

type pingResponse struct {
	XMLName xml.Name `json:"-" xml:"ping"`
	Status  string   `json:"status" xml:"status"`
}

type errorResponse struct {
	XMLName   xml.Name `json:"-" xml:"error"`
	Timestamp string   `json:"timestamp" xml:"timestamp"`
	Message   string   `json:"message" xml:"message"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.PublicID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func toUserResponses(users []*models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toRegistration(r createUserRequest) services.Registration {
	return services.Registration{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

func toUserUpdate(r updateUserRequest) services.UserUpdate {
	return services.UserUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// validationError tags an ozzo error so it maps to 400.
func validationError(err error) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, err.Error())
}
