package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-blog/inkwell/internal/api/metrics"
	"github.com/inkwell-blog/inkwell/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog CRUD.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// Create handles POST /blogs (authenticated, multipart + thumbnail file).
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	form := createBlogForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	thumbnail, src, err := formFile(c, "thumbnail")
	if err != nil {
		return err
	}
	defer src.Close()

	blog, err := h.service.Create(c.Request().Context(), ports.CreateBlogInput{
		AuthorID:  userID,
		Title:     form.Title,
		Content:   form.Content,
		Thumbnail: thumbnail,
	})
	if err != nil {
		return err
	}

	metrics.BlogsCreatedTotal.Inc()
	return respond(c, http.StatusOK, blog, "Blog created successfully")
}

// Get handles GET /blogs/:id.
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blog, "Blog fetched successfully")
}

// List handles GET /blogs with an optional ?query= title filter.
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.List(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blogs, "Blogs fetched successfully")
}

// Update handles PATCH /blogs/:id (multipart, any subset of fields).
func (h *BlogHandler) Update(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	form := updateBlogForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}

	input := ports.UpdateBlogInput{
		ID:      c.Param("id"),
		Title:   form.Title,
		Content: form.Content,
	}

	// The thumbnail is optional on update.
	if fh, err := c.FormFile("thumbnail"); err == nil && fh != nil {
		upload, src, err := formFile(c, "thumbnail")
		if err != nil {
			return err
		}
		defer src.Close()
		input.Thumbnail = &upload
	}

	blog, err := h.service.Update(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blog, "Blog updated successfully")
}

// Delete handles DELETE /blogs/:id; the removed record is echoed back.
func (h *BlogHandler) Delete(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, echo.Map{"deletedBlog": deleted}, "Blog deleted successfully")
}
