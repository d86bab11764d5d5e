package handler

// createBlogForm is the multipart creation form; the thumbnail file travels
// separately from these fields.
type createBlogForm struct {
	Title   string `form:"title"   validate:"required"`
	Content string `form:"content" validate:"required"`
}

// updateBlogForm is the multipart edit form. All fields are optional here;
// the service rejects an edit that changes nothing.
type updateBlogForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}
