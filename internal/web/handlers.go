package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	g "github.com/maragudk/gomponents"

	"github.com/VitaminP8/blogery/internal/auth"
	"github.com/VitaminP8/blogery/internal/blog"
	"github.com/VitaminP8/blogery/internal/web/views"
	"github.com/VitaminP8/blogery/models"
)

// Identity - то, что HTTP слою нужно от компонента сессий
type Identity interface {
	auth.ActorResolver
	Register(name, email, password string) (string, *models.User, error)
	Authenticate(email, password string) (string, *models.User, error)
	EndSession(token string) error
}

type Handler struct {
	identity      Identity
	content       *blog.Service
	secureCookies bool
}

func NewHandler(identity Identity, content *blog.Service, secureCookies bool) *Handler {
	return &Handler{
		identity:      identity,
		content:       content,
		secureCookies: secureCookies,
	}
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string) views.Page {
	actor := auth.ActorFromContext(r.Context())
	return views.Page{
		Title: title,
		Actor: actor,
		Admin: auth.IsAdministrator(actor),
		Flash: popFlash(w, r),
	}
}

func render(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		log.Printf("render failed: %v", err)
	}
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	render(w, status, views.Error(h.page(w, r, http.StatusText(status)), status, message))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderStatus(w, r, http.StatusNotFound, "Page not found")
}

func postIDParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "postID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("post id %q: %w", raw, models.ErrNotFound)
	}
	return uint(id), nil
}

// MaxFieldLength - предел varchar колонок users и blog_posts
const MaxFieldLength = 250

func tooLong(values ...string) bool {
	for _, v := range values {
		if utf8.RuneCountInString(v) > MaxFieldLength {
			return true
		}
	}
	return false
}

// validEmail принимает только голый адрес, без имени и угловых скобок
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validImageURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, http.StatusOK, views.Home(h.page(w, r, "Blog"), posts))
}

func (h *Handler) about(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.About(h.page(w, r, "About")))
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.Contact(h.page(w, r, "Contact")))
}

// Регистрация и вход

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.Register(h.page(w, r, "Register"), "", ""))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if name == "" || email == "" || password == "" {
		redirectWithFlash(w, r, "/register", "Name, email and password are required")
		return
	}
	if tooLong(name, email) {
		redirectWithFlash(w, r, "/register", "Name and email must be at most 250 characters")
		return
	}
	if !validEmail(email) {
		redirectWithFlash(w, r, "/register", "Invalid email address")
		return
	}

	token, _, err := h.identity.Register(name, email, password)
	if errors.Is(err, models.ErrDuplicateEmail) {
		redirectWithFlash(w, r, "/login", flashMessage(err))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, h.secureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.Login(h.page(w, r, "Log In"), ""))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		redirectWithFlash(w, r, "/login", "Email and password are required")
		return
	}

	token, _, err := h.identity.Authenticate(email, password)
	if IsValidationError(err) {
		redirectWithFlash(w, r, "/login", flashMessage(err))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, h.secureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if auth.ActorFromContext(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.identity.EndSession(auth.TokenFromRequest(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Посты и комментарии

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.content.PostDetails(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, http.StatusOK, views.PostPage(h.page(w, r, details.Post.Title), details))
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	back := fmt.Sprintf("/post/%d", id)
	_, err = h.content.AddComment(auth.ActorFromContext(r.Context()), id, r.FormValue("comment"))
	switch {
	case err == nil:
		http.Redirect(w, r, back, http.StatusSeeOther)
	case errors.Is(err, models.ErrUnauthenticated):
		redirectWithFlash(w, r, "/login", flashMessage(err))
	case IsValidationError(err):
		redirectWithFlash(w, r, back, flashMessage(err))
	default:
		h.fail(w, r, err)
	}
}

// parsePostForm возвращает сообщение для пользователя, если форма заполнена неверно
func parsePostForm(r *http.Request) (blog.PostFields, string) {
	f := blog.PostFields{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		Body:     r.FormValue("body"),
		ImgURL:   strings.TrimSpace(r.FormValue("img_url")),
	}

	if raw := strings.TrimSpace(r.FormValue("author_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, "Author ID must be a number"
		}
		f.AuthorID = uint(id)
	}

	if f.Title == "" || f.Subtitle == "" || f.ImgURL == "" || strings.TrimSpace(f.Body) == "" {
		return f, "Title, subtitle, image URL and content are required"
	}
	if tooLong(f.Title, f.Subtitle, f.ImgURL) {
		return f, "Title, subtitle and image URL must be at most 250 characters"
	}
	if !validImageURL(f.ImgURL) {
		return f, "Image URL must be an http or https URL"
	}
	return f, ""
}

func (h *Handler) newPostForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, views.PostForm(h.page(w, r, "New Post"), "/new-post", blog.PostFields{}))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	fields, problem := parsePostForm(r)
	if problem != "" {
		p := h.page(w, r, "New Post")
		p.Flash = append(p.Flash, problem)
		render(w, http.StatusBadRequest, views.PostForm(p, "/new-post", fields))
		return
	}

	_, err := h.content.CreatePost(auth.ActorFromContext(r.Context()), fields)
	if IsValidationError(err) {
		redirectWithFlash(w, r, "/new-post", flashMessage(err))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) editPostForm(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	post, err := h.content.GetPost(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fields := blog.PostFields{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Body:     post.Body,
		ImgURL:   post.ImgURL,
		AuthorID: post.AuthorID,
	}
	render(w, http.StatusOK, views.PostForm(h.page(w, r, "Edit Post"), r.URL.Path, fields))
}

func (h *Handler) editPost(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fields, problem := parsePostForm(r)
	if problem != "" {
		p := h.page(w, r, "Edit Post")
		p.Flash = append(p.Flash, problem)
		render(w, http.StatusBadRequest, views.PostForm(p, r.URL.Path, fields))
		return
	}

	_, err = h.content.EditPost(auth.ActorFromContext(r.Context()), id, fields)
	if IsValidationError(err) {
		redirectWithFlash(w, r, r.URL.Path, flashMessage(err))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.content.DeletePost(auth.ActorFromContext(r.Context()), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
