package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"sync"
	"text/template"
	"text/template/parse"

	"github.com/Masterminds/sprig/v3"
)

// unexpandedTokenPattern detects placeholders left in a template's literal
// text. Matches ${VAR} and {{VAR}}.
var unexpandedTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\{\{\.?[A-Za-z_][A-Za-z0-9_.]*\}\}`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template and executes it with data.
	// Returns ErrMissingTemplateKey if a key is missing and
	// ErrUnexpandedToken if the template text carries a stray placeholder.
	// Substituted data is written as given and never scanned.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
// Parsed templates are cached by name; Render is safe for concurrent use.
type renderer struct {
	fsys  fs.FS
	cache sync.Map // name -> *template.Template
}

// NewRenderer creates a Renderer backed by the given filesystem.
// In production the fs.FS comes from EmbeddedTemplates; in tests use testing/fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	tmpl, err := r.load(templateName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	return buf.Bytes(), nil
}

func (r *renderer) load(name string) (*template.Template, error) {
	if cached, ok := r.cache.Load(name); ok {
		return cached.(*template.Template), nil
	}

	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}
	if tok := findUnexpandedToken(tmpl.Root); tok != "" {
		return nil, fmt.Errorf("%w: found %q in %s", ErrUnexpandedToken, tok, name)
	}

	r.cache.Store(name, tmpl)
	return tmpl, nil
}

// findUnexpandedToken returns the first placeholder found in the literal
// text of a parsed template, or "" when there is none.
func findUnexpandedToken(node parse.Node) string {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return ""
		}
		for _, child := range n.Nodes {
			if tok := findUnexpandedToken(child); tok != "" {
				return tok
			}
		}
	case *parse.TextNode:
		return string(unexpandedTokenPattern.Find(n.Text))
	case *parse.IfNode:
		return findInBranch(&n.BranchNode)
	case *parse.RangeNode:
		return findInBranch(&n.BranchNode)
	case *parse.WithNode:
		return findInBranch(&n.BranchNode)
	}
	return ""
}

func findInBranch(b *parse.BranchNode) string {
	if tok := findUnexpandedToken(b.List); tok != "" {
		return tok
	}
	return findUnexpandedToken(b.ElseList)
}
