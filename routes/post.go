package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/middleware"
	"github.com/quillhub/quillhub-be/services"
	"github.com/quillhub/quillhub-be/util"
	"github.com/sirupsen/logrus"
)

type postRoutes struct {
	content *app.ContentService
	bucket  *services.StorageBucket
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, content *app.ContentService, verifier middleware.TokenVerifier, bucket *services.StorageBucket) {
	routes := postRoutes{content: content, bucket: bucket}
	posts := group.Group("/posts", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	posts.PUT("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.POST("/:id", util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
	posts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.PUT("/:id/comments", util.HandlerWrapper(routes.createComment, &util.HandlerOpts{}))
	posts.GET("/:id/comments", util.HandlerWrapper(routes.getComments, &util.HandlerOpts{}))

	// Separate group: a static /posts/images segment cannot share the tree
	// with the /posts/:id wildcard.
	images := group.Group("/images", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	images.POST("", util.HandlerWrapper(routes.uploadImage, &util.HandlerOpts{}))
}

type createPostReq struct {
	Text      string `json:"text"`
	GroupId   *int64 `json:"groupId"`
	ImageBlob string `json:"imageBlob"`
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createPostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := pr.checkImageBlob(c, req.ImageBlob); httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.content.CreatePost(c, middleware.MustGetUser(c).Id, &app.PostInput{
		Text:      req.Text,
		GroupId:   req.GroupId,
		ImageBlob: req.ImageBlob,
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	comments, err := pr.content.GetComments(c, id)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	// GetComments already proved the post exists.
	post, err := pr.content.GetPost(c, id)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return gin.H{
		"post":     post,
		"comments": comments,
	}, nil
}

type editPostReq struct {
	Text      *string `json:"text"`
	SetGroup  bool    `json:"setGroup"`
	GroupId   *int64  `json:"groupId"`
	ImageBlob *string `json:"imageBlob"`
}

func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req editPostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.ImageBlob != nil {
		if httpErr := pr.checkImageBlob(c, *req.ImageBlob); httpErr != nil {
			return nil, httpErr
		}
	}
	post, err := pr.content.EditPost(c, id, middleware.MustGetUser(c).Id, &app.PostUpdate{
		Text:      req.Text,
		SetGroup:  req.SetGroup,
		GroupId:   req.GroupId,
		ImageBlob: req.ImageBlob,
	})
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return post, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := pr.content.DeletePost(c, id, middleware.MustGetUser(c).Id); err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return nil, nil
}

type createCommentReq struct {
	Text string `json:"text"`
}

func (pr *postRoutes) createComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req createCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	comment, err := pr.content.CreateComment(c, id, middleware.MustGetUser(c).Id, req.Text)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return comment, nil
}

func (pr *postRoutes) getComments(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	comments, err := pr.content.GetComments(c, id)
	if err != nil {
		return nil, buildAppHTTPErr(err)
	}
	return comments, nil
}

func (pr *postRoutes) uploadImage(c *gin.Context) (interface{}, *util.HTTPError) {
	if pr.bucket == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusServiceUnavailable,
			Message: "attachments are not configured",
		}
	}
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "empty image body",
		}
	}
	blobName, err := pr.bucket.Upload(c, data, c.ContentType())
	if err != nil {
		logUploadErr(err)
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "upload failed",
		}
	}
	return gin.H{"imageBlob": blobName}, nil
}

func logUploadErr(err error) {
	logrus.WithError(err).Error("attachment storage error")
}

// checkImageBlob rejects references to blobs that were never uploaded.
func (pr *postRoutes) checkImageBlob(c *gin.Context, blobName string) *util.HTTPError {
	if blobName == "" || pr.bucket == nil {
		return nil
	}
	exists, err := pr.bucket.Exists(c, blobName)
	if err != nil {
		logUploadErr(err)
		return &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "attachment storage error",
		}
	}
	if !exists {
		return &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "referenced image does not exist",
		}
	}
	return nil
}
