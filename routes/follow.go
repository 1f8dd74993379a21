package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/middleware"
	"github.com/quillhub/quillhub-be/util"
)

type followRoutes struct {
	follows *app.FollowManager
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database, follows *app.FollowManager, verifier middleware.TokenVerifier) {
	routes := followRoutes{follows: follows}
	followGroup := group.Group("/follows", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	followGroup.PUT("/:authorId", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	followGroup.DELETE("/:authorId", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
	followGroup.GET("/:authorId", util.HandlerWrapper(routes.isFollowing, &util.HandlerOpts{}))
}

func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := fr.follows.Follow(c, middleware.MustGetUser(c).Id, c.Param("authorId")); err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return nil, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := fr.follows.Unfollow(c, middleware.MustGetUser(c).Id, c.Param("authorId")); err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return nil, nil
}

func (fr *followRoutes) isFollowing(c *gin.Context) (interface{}, *util.HTTPError) {
	following, err := fr.follows.IsFollowing(c, middleware.MustGetUser(c).Id, c.Param("authorId"))
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{"following": following}, nil
}
