package httpapi

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"yatube/internal/common"
	postapp "yatube/internal/core/post/service"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc    PostUseCase
	cc    CommentUseCase
	gc    GroupUseCase
	cache PageCache
}

func NewPostController(pc PostUseCase, cc CommentUseCase, gc GroupUseCase, cache PageCache) *PostController {
	return &PostController{pc: pc, cc: cc, gc: gc, cache: cache}
}

// Detail shows a post with its comments and an empty comment form.
func (ctl *PostController) Detail(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ctl.renderDetail(c, http.StatusOK, p, CommentForm{}, nil)
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	ctl.renderForm(c, http.StatusOK, PostForm{}, nil, nil)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var form PostForm
	if err := bindForm(c, &form); err != nil {
		ctl.renderForm(c, http.StatusBadRequest, form, err, nil)
		return
	}
	in, closeImage, err := postInput(c, form)
	if err != nil {
		ctl.renderForm(c, http.StatusBadRequest, form, err, nil)
		return
	}
	defer closeImage()

	p, err := ctl.pc.CreatePost(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		if isFormError(err) {
			ctl.renderForm(c, http.StatusBadRequest, form, err, nil)
			return
		}
		respondError(c, err)
		return
	}
	invalidateIndex(c.Request.Context(), ctl.cache)
	redirect(c, profileURL(p.Author.Username))
}

// EditForm renders the filled form for the author; anybody else goes back to the post.
func (ctl *PostController) EditForm(c *gin.Context) {
	p, ok := ctl.authorPost(c)
	if !ok {
		return
	}
	form := PostForm{Text: p.Text}
	if p.Group != nil {
		form.Group = p.Group.ID
	}
	ctl.renderForm(c, http.StatusOK, form, nil, p)
}

func (ctl *PostController) EditPost(c *gin.Context) {
	p, ok := ctl.authorPost(c)
	if !ok {
		return
	}
	var form PostForm
	if err := bindForm(c, &form); err != nil {
		ctl.renderForm(c, http.StatusBadRequest, form, err, p)
		return
	}
	in, closeImage, err := postInput(c, form)
	if err != nil {
		ctl.renderForm(c, http.StatusBadRequest, form, err, p)
		return
	}
	defer closeImage()

	_, err = ctl.pc.EditPost(c.Request.Context(), currentUserID(c), p.ID, in)
	switch {
	case errors.Is(err, common.ErrForbidden):
		redirect(c, postURL(p.ID))
		return
	case isFormError(err):
		ctl.renderForm(c, http.StatusBadRequest, form, err, p)
		return
	case err != nil:
		respondError(c, err)
		return
	}
	invalidateIndex(c.Request.Context(), ctl.cache)
	redirect(c, postURL(p.ID))
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id := c.Param("id")
	p, err := ctl.pc.DeletePost(c.Request.Context(), currentUserID(c), id)
	switch {
	case errors.Is(err, common.ErrForbidden):
		redirect(c, postURL(id))
		return
	case err != nil:
		respondError(c, err)
		return
	}
	invalidateIndex(c.Request.Context(), ctl.cache)
	redirect(c, profileURL(p.Author.Username))
}

// AddComment stores a comment. Invalid forms re-render the post with errors.
func (ctl *PostController) AddComment(c *gin.Context) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	var form CommentForm
	if err := bindForm(c, &form); err != nil {
		ctl.renderDetail(c, http.StatusBadRequest, p, form, err)
		return
	}
	if _, err := ctl.cc.AddComment(c.Request.Context(), currentUserID(c), p.ID, form.Text); err != nil {
		if isFormError(err) {
			ctl.renderDetail(c, http.StatusBadRequest, p, form, err)
			return
		}
		respondError(c, err)
		return
	}
	redirect(c, postURL(p.ID))
}

// authorPost loads the post from the path and checks the current user wrote it.
// It writes the response itself when the answer is no.
func (ctl *PostController) authorPost(c *gin.Context) (*postPort.PostDTO, bool) {
	p, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if p.Author == nil || p.Author.ID != currentUserID(c) {
		redirect(c, postURL(p.ID))
		return nil, false
	}
	return p, true
}

func (ctl *PostController) renderDetail(c *gin.Context, status int, p *postPort.PostDTO, form CommentForm, formErr error) {
	comments, err := ctl.cc.ListByPost(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"post":     p,
		"comments": comments,
		"form":     form,
		"errors":   errorsOf(formErr),
	})
}

func (ctl *PostController) renderForm(c *gin.Context, status int, form PostForm, formErr error, p *postPort.PostDTO) {
	groups, err := ctl.groups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	body := gin.H{
		"form":    form,
		"errors":  errorsOf(formErr),
		"groups":  groups,
		"is_edit": p != nil,
	}
	if p != nil {
		body["post"] = p
	}
	c.JSON(status, body)
}

func (ctl *PostController) groups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	if ctl.gc == nil {
		return []*groupPort.GroupDTO{}, nil
	}
	return ctl.gc.ListGroups(ctx)
}

// postInput reads the optional image upload alongside the bound form.
func postInput(c *gin.Context, form PostForm) (postapp.PostInput, func(), error) {
	in := postapp.PostInput{Text: form.Text, GroupID: form.Group}
	noop := func() {}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, noop, nil
	case err != nil:
		return in, noop, common.FieldErrors{"image": "The submitted data was not a file."}
	}

	f, err := fh.Open()
	if err != nil {
		return in, noop, err
	}
	in.Image = &postapp.Upload{Filename: fh.Filename, Size: fh.Size, Content: f}
	return in, func() { closeFile(f) }, nil
}

func closeFile(f multipart.File) { _ = f.Close() }

func isFormError(err error) bool {
	var fe common.FieldErrors
	return errors.As(err, &fe)
}

func errorsOf(err error) common.FieldErrors {
	var fe common.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	if err != nil {
		return common.FieldErrors{"__all__": err.Error()}
	}
	return common.FieldErrors{}
}
