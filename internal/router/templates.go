package router

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"time"

	"noticeboard/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

var funcMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"add": func(a, b int) int {
		return a + b
	},
	"timeAgo":  timeAgo,
	"date":     func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"markdown": utils.RenderMarkdown,
	"excerpt":  utils.Excerpt,
	"initials": utils.Initials,
	"urlquery": url.QueryEscape,
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

// views maps the names handlers render to files under views/.
var views = []string{
	"auth/login.html",
	"auth/register.html",
	"story/list.html",
	"story/search.html",
	"story/detail.html",
	"story/create.html",
	"story/edit.html",
	"category/list.html",
	"user/profile.html",
	"admin/dashboard.html",
	"error.html",
}

// LoadTemplates pairs every view with the shared layout and includes.
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}

	includes, err := filepath.Glob(filepath.Join(templatesDir, "includes", "*.html"))
	if err != nil {
		return nil, err
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	for _, name := range views {
		r.AddFromFilesFuncs(name, funcMap, assemble(filepath.Join(templatesDir, "views", name))...)
	}
	return r, nil
}
