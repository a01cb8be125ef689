package template

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var embeddedFS embed.FS

// Names of the embedded templates.
const (
	ModelTemplate            = "model.js.tmpl"
	ControllerTemplate       = "controller.js.tmpl"
	RouteTemplate            = "route.js.tmpl"
	ValidationTemplate       = "validation.js.tmpl"
	MiddlewareTemplate       = "middleware.js.tmpl"
	AuthorizationTemplate    = "authorization.js.tmpl"
	DBConfigTemplate         = "db.js.tmpl"
	MulterConfigTemplate     = "multer.js.tmpl"
	ResponseMessagesTemplate = "response_messages.js.tmpl"
	EntryTemplate            = "index.js.tmpl"
	EnvTemplate              = "env.tmpl"
	GitignoreTemplate        = "gitignore.tmpl"
)

// EmbeddedTemplates returns the template filesystem rooted at the template
// directory, so names can be passed to Render without a prefix.
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// ListTemplates returns the sorted names of all .tmpl files at the root of fsys.
func ListTemplates(fsys fs.FS) []string {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".tmpl") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
