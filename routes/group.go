package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/middleware"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
)

type groupRoutes struct {
	db      db.Database
	content *app.ContentService
}

func AddGroupRoutes(group *gin.RouterGroup, database db.Database, content *app.ContentService, verifier middleware.TokenVerifier) {
	routes := groupRoutes{db: database, content: content}
	groups := group.Group("/groups",
		middleware.Auth(database, verifier, &middleware.AuthConfig{SessionOptional: true, ProfileOptional: true}))
	groups.GET("", util.HandlerWrapper(routes.getGroups, &util.HandlerOpts{}))
	groups.GET("/:slug", util.HandlerWrapper(routes.getGroupBySlug, &util.HandlerOpts{}))
	groups.PUT("", util.HandlerWrapper(routes.createGroup, &util.HandlerOpts{}))
	groups.POST("/:slug", util.HandlerWrapper(routes.editGroup, &util.HandlerOpts{}))
	groups.DELETE("/:slug", util.HandlerWrapper(routes.deleteGroup, &util.HandlerOpts{}))
}

func (gr *groupRoutes) getGroups(c *gin.Context) (interface{}, *util.HTTPError) {
	groups, err := gr.db.GetGroups(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	return groups, nil
}

func (gr *groupRoutes) getGroupBySlug(c *gin.Context) (interface{}, *util.HTTPError) {
	group, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if group == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "group not found"}
	}
	return group, nil
}

type createGroupReq struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (gr *groupRoutes) createGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createGroupReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	group, err := gr.content.CreateGroup(c, middleware.GetUserIdMaybe(c), &app.GroupInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return group, nil
}

type editGroupReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (gr *groupRoutes) editGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req editGroupReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	group, err := gr.content.EditGroup(c, c.Param("slug"), middleware.GetUserIdMaybe(c), &app.GroupUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return group, nil
}

func (gr *groupRoutes) deleteGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := gr.content.DeleteGroup(c, c.Param("slug"), middleware.GetUserIdMaybe(c)); err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return nil, nil
}
