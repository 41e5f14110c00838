// Package view renders the application's HTML as templ components.
// Pages are full documents; fragments (the project grid, the notice region)
// carry stable element IDs so handlers can patch them over SSE.
package view

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/kmelby/showcase/internal/domain"
)

func esc(s string) string {
	return html.EscapeString(s)
}

func component(render func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func layout(title string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		fmt.Fprintf(b, "<title>%s</title>", esc(title))
		b.WriteString("<script type=\"module\" src=\"https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js\"></script>")
		b.WriteString("<style>" + stylesheet + "</style>")
		b.WriteString("</head><body><main class=\"container\">")
		body(b)
		b.WriteString("</main></body></html>")
	})
}

// AuthPage renders the sign-in / sign-up page. next is the originally
// requested path to return to after login.
func AuthPage(next, notice string) templ.Component {
	return layout("Sign in — Project Showcase", func(b *strings.Builder) {
		b.WriteString("<h1>Project Showcase</h1>")
		writeNotice(b, "error", notice)

		b.WriteString("<section class=\"auth-forms\"><div class=\"auth-card\"><h2>Sign in</h2>")
		b.WriteString("<form method=\"post\" action=\"/auth/login\">")
		writeNextField(b, next)
		b.WriteString("<label>Email<input type=\"email\" name=\"email\" required></label>")
		b.WriteString("<label>Password<input type=\"password\" name=\"password\" required></label>")
		b.WriteString("<button type=\"submit\">Sign in</button></form></div>")

		b.WriteString("<div class=\"auth-card\"><h2>Create account</h2>")
		b.WriteString("<form method=\"post\" action=\"/auth/register\">")
		writeNextField(b, next)
		b.WriteString("<label>Email<input type=\"email\" name=\"email\" required></label>")
		b.WriteString("<label>Display name<input type=\"text\" name=\"display_name\" required></label>")
		b.WriteString("<label>Password<input type=\"password\" name=\"password\" required minlength=\"8\"></label>")
		b.WriteString("<label>Confirm password<input type=\"password\" name=\"confirm_password\" required></label>")
		b.WriteString("<button type=\"submit\">Create account</button></form></div></section>")
	})
}

// GalleryPage renders the authenticated gallery: header, add-project form,
// and the project grid with per-card affordances gated by CanMutate.
func GalleryPage(actor *domain.Actor, projects []domain.Project, notice string) templ.Component {
	return layout("Project Showcase", func(b *strings.Builder) {
		b.WriteString("<header class=\"gallery-header\"><div>")
		b.WriteString("<h1>Project Showcase</h1>")
		b.WriteString("<p class=\"subtitle\">Discover and share innovative development projects</p>")
		b.WriteString("</div><div class=\"identity\">")
		if actor != nil {
			label := actor.Email
			if actor.IsAdmin {
				label += " (admin)"
			}
			fmt.Fprintf(b, "<span>%s</span>", esc(label))
		}
		b.WriteString("<form method=\"post\" action=\"/auth/logout\"><button type=\"submit\">Sign out</button></form>")
		b.WriteString("</div></header>")

		writeNotice(b, "error", notice)

		b.WriteString("<details class=\"add-project\"><summary>Add project</summary>")
		b.WriteString("<form method=\"post\" action=\"/projects\" enctype=\"multipart/form-data\">")
		writeProjectFields(b, nil)
		b.WriteString("<button type=\"submit\">Submit project</button></form></details>")

		b.WriteString("<div class=\"toolbar\"><button data-on-click=\"@get('/gallery/refresh')\">Refresh</button></div>")

		projectGrid(actor, projects)(b)
	})
}

// EditPage renders the edit form for one project. The thumbnail is shown but
// not editable; it is never regenerated after creation.
func EditPage(project *domain.Project, notice string) templ.Component {
	return layout("Edit project — Project Showcase", func(b *strings.Builder) {
		fmt.Fprintf(b, "<h1>Edit %s</h1>", esc(project.Title))
		writeNotice(b, "error", notice)

		fmt.Fprintf(b, "<img class=\"thumb\" src=\"%s\" alt=\"%s\">", esc(project.ThumbnailURL), esc(project.Title))
		fmt.Fprintf(b, "<form method=\"post\" action=\"/projects/%d\" enctype=\"multipart/form-data\">", project.ID)
		writeProjectFields(b, project)
		b.WriteString("<button type=\"submit\">Save changes</button> <a href=\"/\">Cancel</a></form>")
	})
}

// ProjectGrid is the patchable grid fragment, used both inline in the page
// and as an SSE patch target after refresh.
func ProjectGrid(actor *domain.Actor, projects []domain.Project) templ.Component {
	return component(projectGrid(actor, projects))
}

// Notice is the patchable notification fragment. kind is "error" or "info".
func Notice(kind, message string) templ.Component {
	return component(func(b *strings.Builder) {
		writeNotice(b, kind, message)
	})
}

func projectGrid(actor *domain.Actor, projects []domain.Project) func(b *strings.Builder) {
	return func(b *strings.Builder) {
		b.WriteString("<div id=\"project-grid\" class=\"grid\">")
		if len(projects) == 0 {
			b.WriteString("<p class=\"empty\">No projects yet. Add the first one.</p>")
		}
		for i := range projects {
			writeCard(b, actor, &projects[i])
		}
		b.WriteString("</div>")
	}
}

func writeCard(b *strings.Builder, actor *domain.Actor, p *domain.Project) {
	fmt.Fprintf(b, "<article class=\"card\" id=\"project-%d\">", p.ID)
	fmt.Fprintf(b, "<img src=\"%s\" alt=\"%s\">", esc(p.ThumbnailURL), esc(p.Title))
	fmt.Fprintf(b, "<h2>%s</h2>", esc(p.Title))
	fmt.Fprintf(b, "<p>%s</p>", esc(p.Description))

	meta := p.UserEmail
	if p.DevelopmentHours != nil {
		if meta != "" {
			meta += " · "
		}
		meta += fmt.Sprintf("%g hours", *p.DevelopmentHours)
	}
	if meta != "" {
		fmt.Fprintf(b, "<p class=\"meta\">%s</p>", esc(meta))
	}

	b.WriteString("<div class=\"links\">")
	fmt.Fprintf(b, "<a href=\"%s\" target=\"_blank\" rel=\"noopener\">Website</a>", esc(p.Website))
	if p.GitHub != nil {
		fmt.Fprintf(b, "<a href=\"%s\" target=\"_blank\" rel=\"noopener\">GitHub</a>", esc(*p.GitHub))
	}
	if p.VideoURL != nil {
		fmt.Fprintf(b, "<a href=\"%s\" target=\"_blank\" rel=\"noopener\">Video</a>", esc(*p.VideoURL))
	}
	b.WriteString("</div>")

	if domain.CanMutate(actor, p) {
		b.WriteString("<div class=\"actions\">")
		fmt.Fprintf(b, "<a href=\"/projects/%d/edit\">Edit</a>", p.ID)
		fmt.Fprintf(b,
			"<form method=\"post\" action=\"/projects/%d/delete\" onsubmit=\"return confirm('Delete this project? This cannot be undone.')\">", p.ID)
		b.WriteString("<input type=\"hidden\" name=\"confirm\" value=\"true\">")
		b.WriteString("<button type=\"submit\" class=\"danger\">Delete</button></form></div>")
	}

	b.WriteString("</article>")
}

func writeProjectFields(b *strings.Builder, p *domain.Project) {
	var title, description, website, github, hours string
	if p != nil {
		title = p.Title
		description = p.Description
		website = p.Website
		if p.GitHub != nil {
			github = *p.GitHub
		}
		if p.DevelopmentHours != nil {
			hours = fmt.Sprintf("%g", *p.DevelopmentHours)
		}
	}

	fmt.Fprintf(b, "<label>Project title *<input type=\"text\" name=\"title\" value=\"%s\" required></label>", esc(title))
	fmt.Fprintf(b, "<label>Description *<textarea name=\"description\" required>%s</textarea></label>", esc(description))
	fmt.Fprintf(b, "<label>Website URL *<input type=\"url\" name=\"website\" value=\"%s\" required></label>", esc(website))
	fmt.Fprintf(b, "<label>GitHub URL<input type=\"url\" name=\"github\" value=\"%s\"></label>", esc(github))
	fmt.Fprintf(b, "<label>Development hours<input type=\"number\" name=\"development_hours\" value=\"%s\" min=\"0\" step=\"0.5\"></label>", esc(hours))
	b.WriteString("<label>Video<input type=\"file\" name=\"video\" accept=\"video/mp4,video/webm,video/quicktime\"></label>")
}

func writeNextField(b *strings.Builder, next string) {
	if next == "" {
		return
	}
	fmt.Fprintf(b, "<input type=\"hidden\" name=\"next\" value=\"%s\">", esc(next))
}

func writeNotice(b *strings.Builder, kind, message string) {
	if message == "" {
		b.WriteString("<div id=\"notice\"></div>")
		return
	}
	fmt.Fprintf(b, "<div id=\"notice\" class=\"notice %s\">%s</div>", esc(kind), esc(message))
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#fafafa;color:#1a1a1a}
.container{max-width:72rem;margin:0 auto;padding:2rem 1.5rem}
.gallery-header{display:flex;justify-content:space-between;align-items:center;margin-bottom:2rem}
.subtitle,.meta{color:#666}
.identity{display:flex;gap:.75rem;align-items:center}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(18rem,1fr));gap:1.5rem;margin-top:1.5rem}
.card{background:#fff;border:1px solid #e3e3e3;border-radius:.5rem;padding:1rem}
.card img{width:100%;aspect-ratio:1;object-fit:cover;border-radius:.25rem}
.links,.actions{display:flex;gap:.5rem;flex-wrap:wrap;margin-top:.5rem}
.notice.error{background:#fde8e8;border:1px solid #f5b5b5;padding:.75rem;border-radius:.25rem;margin:1rem 0}
.notice.info{background:#e8f4fd;border:1px solid #b5d9f5;padding:.75rem;border-radius:.25rem;margin:1rem 0}
.auth-forms{display:flex;gap:2rem;flex-wrap:wrap}
.auth-card{flex:1;min-width:18rem;background:#fff;border:1px solid #e3e3e3;border-radius:.5rem;padding:1.5rem}
label{display:block;margin:.75rem 0}
input,textarea{width:100%;padding:.5rem;margin-top:.25rem;box-sizing:border-box}
button{padding:.5rem 1rem;cursor:pointer}
button.danger{color:#b91c1c}
`
