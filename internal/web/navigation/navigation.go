// Package navigation builds the menu and breadcrumbs of the public pages.
package navigation

// Sections of the public site.
const (
	SectionHome  = "home"
	SectionBooks = "books"
	SectionBlog  = "blog"
)

// Link is a single menu entry or breadcrumb.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	Menu          []Link
	Breadcrumbs   []Link
}

type menuEntry struct {
	title   string
	url     string
	section string
}

// menu lists the header links. Anchors point into the home page.
var menu = []menuEntry{ //nolint:gochecknoglobals
	{title: "Ana Sayfa", url: "/", section: SectionHome},
	{title: "Hakkımda", url: "/#about"},
	{title: "Kitaplar", url: "/books", section: SectionBooks},
	{title: "Blog", url: "/blog", section: SectionBlog},
	{title: "İletişim", url: "/#contact"},
}

// NewContext creates a navigation context with the menu entry of activeSection marked.
func NewContext(pageTitle, activeSection string) *Context {
	c := &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Menu:          make([]Link, 0, len(menu)),
		Breadcrumbs:   make([]Link, 0),
	}

	for _, m := range menu {
		c.Menu = append(c.Menu, Link{
			Title:  m.title,
			URL:    m.url,
			Active: m.section != "" && m.section == activeSection,
		})
	}

	return c
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Title joins the page title and the site name for the <title> element.
func (c *Context) Title(siteName string) string {
	switch {
	case c.PageTitle == "":
		return siteName
	case siteName == "":
		return c.PageTitle
	default:
		return c.PageTitle + " | " + siteName
	}
}
