package views

import (
	"fmt"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/VitaminP8/blogery/internal/blog"
	"github.com/VitaminP8/blogery/models"
)

func postURL(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}

func Home(p Page, posts []*models.Post) g.Node {
	items := make([]g.Node, 0, len(posts))
	for _, post := range posts {
		items = append(items, Article(Class("post-preview"),
			A(Href(postURL(post.ID)),
				H2(Class("post-title"), g.Text(post.Title)),
				H3(Class("post-subtitle"), g.Text(post.Subtitle)),
			),
			P(Class("post-meta"), g.Textf("Posted on %s", post.Date),
				g.If(p.Admin, A(Href(fmt.Sprintf("/delete/%d", post.ID)), g.Text(" ✘"))),
			),
			Hr(),
		))
	}

	return Layout(p,
		H1(g.Text("Blog")),
		g.If(len(posts) == 0, P(g.Text("No posts yet."))),
		g.Group(items),
	)
}

// PostPage выводит пост с комментариями. Тело поста - rich text, выводится как есть.
func PostPage(p Page, d *blog.PostDetails) g.Node {
	comments := make([]g.Node, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, Li(
			P(g.Text(c.Text)),
			Small(g.Text(c.Author.Name)),
		))
	}

	post := d.Post
	return Layout(p,
		Header(
			Img(Src(post.ImgURL), Alt(post.Title)),
			H1(g.Text(post.Title)),
			H2(Class("subheading"), g.Text(post.Subtitle)),
			P(Class("post-meta"), g.Textf("Posted by %s on %s", d.Author.Name, post.Date)),
		),
		Article(g.Raw(post.Body)),
		g.If(p.Admin, P(A(Href(fmt.Sprintf("/edit-post/%d", post.ID)), g.Text("Edit Post")))),
		Section(Class("comments"),
			H3(g.Text("Comments")),
			Form(Method("post"), Action(postURL(post.ID)),
				Label(For("comment"), g.Text("Comment")),
				Textarea(ID("comment"), Name("comment"), g.Attr("rows", "4")),
				Button(Type("submit"), g.Text("Comment")),
			),
			Ul(Class("comment-list"), g.Group(comments)),
		),
	)
}

func field(id, label, typ, value string) g.Node {
	return Div(Class("field"),
		Label(For(id), g.Text(label)),
		Input(ID(id), Name(id), Type(typ), Value(value), Required()),
	)
}

func Register(p Page, name, email string) g.Node {
	return Layout(p,
		H1(g.Text("Register")),
		Form(Method("post"), Action("/register"),
			field("name", "Name", "text", name),
			field("email", "Email", "email", email),
			field("password", "Password", "password", ""),
			Button(Type("submit"), g.Text("Sign Up")),
		),
	)
}

func Login(p Page, email string) g.Node {
	return Layout(p,
		H1(g.Text("Log In")),
		Form(Method("post"), Action("/login"),
			field("email", "Email", "email", email),
			field("password", "Password", "password", ""),
			Button(Type("submit"), g.Text("Let me in")),
		),
	)
}

// PostForm используется и для создания, и для редактирования поста
func PostForm(p Page, action string, f blog.PostFields) g.Node {
	author := ""
	if f.AuthorID != 0 {
		author = strconv.FormatUint(uint64(f.AuthorID), 10)
	}

	return Layout(p,
		H1(g.Text(p.Title)),
		Form(Method("post"), Action(action),
			field("title", "Blog Post Title", "text", f.Title),
			field("subtitle", "Subtitle", "text", f.Subtitle),
			field("img_url", "Blog Image URL", "url", f.ImgURL),
			Div(Class("field"),
				Label(For("author_id"), g.Text("Author ID")),
				Input(ID("author_id"), Name("author_id"), Type("number"), Value(author)),
			),
			Div(Class("field"),
				Label(For("body"), g.Text("Blog Content")),
				Textarea(ID("body"), Name("body"), g.Attr("rows", "12"), g.Text(f.Body)),
			),
			Button(Type("submit"), g.Text("Submit Post")),
		),
	)
}

func About(p Page) g.Node {
	return Layout(p,
		H1(g.Text("About")),
		P(g.Text("A small blog: the administrator writes posts, registered readers comment on them.")),
	)
}

func Contact(p Page) g.Node {
	return Layout(p,
		H1(g.Text("Contact")),
		P(g.Text("Want to get in touch? Leave a comment under any post.")),
	)
}

func Error(p Page, status int, message string) g.Node {
	return Layout(p,
		H1(g.Textf("%d", status)),
		P(g.Text(message)),
	)
}
