package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/middleware"
	"github.com/quillhub/quillhub-be/util"
)

type feedRoutes struct {
	feeds *app.FeedComposer
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database, feeds *app.FeedComposer, verifier middleware.TokenVerifier) {
	routes := feedRoutes{feeds: feeds}
	open := group.Group("/feeds",
		middleware.Auth(database, verifier, &middleware.AuthConfig{SessionOptional: true, ProfileOptional: true}))
	open.GET("/global", routes.getGlobalFeed)
	open.GET("/groups/:slug", util.HandlerWrapper(routes.getGroupFeed, &util.HandlerOpts{}))
	open.GET("/authors/:username", util.HandlerWrapper(routes.getAuthorFeed, &util.HandlerOpts{}))

	followed := group.Group("/feeds/followed",
		middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	followed.GET("", util.HandlerWrapper(routes.getFollowedFeed, &util.HandlerOpts{}))
}

// getGlobalFeed serves the cached rendered payload verbatim so repeated
// requests within the TTL window are byte-identical.
func (fr *feedRoutes) getGlobalFeed(c *gin.Context) {
	payload, err := fr.feeds.RenderedGlobalFeed(c, util.ParsePage(c.Query("page")))
	if err != nil {
		util.HandleHTTPErrorRes(c, buildAppHTTPErr(err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (fr *feedRoutes) getGroupFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := fr.feeds.GroupFeed(c, c.Param("slug"), util.ParsePage(c.Query("page")))
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return page, nil
}

func (fr *feedRoutes) getAuthorFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := fr.feeds.AuthorFeed(c, c.Param("username"), util.ParsePage(c.Query("page")))
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return page, nil
}

func (fr *feedRoutes) getFollowedFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := fr.feeds.FollowedFeed(c, middleware.MustGetUser(c).Id, util.ParsePage(c.Query("page")))
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return page, nil
}
