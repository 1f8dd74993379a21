package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/middleware"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
)

type userRoutes struct {
	db db.Database
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := userRoutes{db: database}
	users := group.Group("/users", middleware.Auth(database, verifier, &middleware.AuthConfig{
		ProfileOptional: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.GET("/:username", util.HandlerWrapper(routes.getUserByName, &util.HandlerOpts{}))
}

type createUserReq struct {
	Name string `json:"name"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Name == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "name must not be empty",
		}
	}
	user := &model.User{
		Id:   middleware.MustGetToken(c).UID,
		Name: req.Name,
	}
	if err := ur.db.CreateUser(c, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, &util.HTTPError{
				Status:  http.StatusConflict,
				Message: "profile already exists or name is taken",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	user.Avatar = util.Avatar(user.Id)
	return user, nil
}

func (ur *userRoutes) getUserByName(c *gin.Context) (interface{}, *util.HTTPError) {
	user, err := ur.db.GetUserByName(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "user not found"}
	}
	return user, nil
}
