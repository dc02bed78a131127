package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/VitaminP8/blogery/internal/auth"
)

// Page - общие для всех страниц данные: кто смотрит и какие flash-сообщения показать
type Page struct {
	Title string
	Actor *auth.Actor
	Admin bool
	Flash []string
}

func navbar(p Page) g.Node {
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text("Blog"))),
		),
		Div(Class("nav-links nav-right"),
			A(Href("/"), g.Text("Home")),
			A(Href("/about"), g.Text("About")),
			A(Href("/contact"), g.Text("Contact")),
			g.If(p.Actor == nil,
				Span(
					A(Href("/login"), g.Text("Login")),
					A(Href("/register"), g.Text("Register")),
				),
			),
			g.If(p.Actor != nil,
				Span(
					g.If(p.Admin, A(Href("/new-post"), g.Text("New Post"))),
					A(Href("/logout"), g.Text("Log Out")),
				),
			),
		),
	)
}

func flashes(messages []string) g.Node {
	if len(messages) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(messages))
	for _, m := range messages {
		items = append(items, P(Class("flash"), g.Text(m)))
	}
	return Div(Class("flashes"), g.Group(items))
}

func Layout(p Page, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(p.Title)),
			),
			Body(
				Div(Class("container"),
					navbar(p),
					flashes(p.Flash),
					Main(g.Group(children)),
				),
				Footer(Class("footer"), Small(g.Text("Blog"))),
			),
		),
	)
}
