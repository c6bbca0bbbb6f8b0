// Package prompts renders the tag-generation prompts from static text assets.
//
// Assets are read on every call so an operator can point the renderer at a
// directory on disk (os.DirFS) and edit prompts without a redeploy.
package prompts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

//go:embed templates/*.txt
var embedded embed.FS

const (
	SystemAsset = "templates/system.txt"
	UserAsset   = "templates/user.txt"
)

var ErrTemplateAssetMissing = errors.New("prompt template asset missing")

var placeholderRE = regexp.MustCompile(`\{[a-zA-Z]+\}`)

// Values are the product fields substituted into the user template.
// Price is optional; when empty the {price} token is left untouched.
type Values struct {
	Title       string
	Description string
	Category    string
	Price       string
}

type Rendered struct {
	System string
	User   string
	// Unmatched lists placeholder tokens still present in User after substitution.
	Unmatched []string
}

type Renderer struct {
	assets fs.FS
}

// NewRenderer reads assets from fsys, or from the embedded templates when fsys is nil.
func NewRenderer(fsys fs.FS) *Renderer {
	if fsys == nil {
		fsys = embedded
	}
	return &Renderer{assets: fsys}
}

func (r *Renderer) Render(v Values) (*Rendered, error) {
	system, err := fs.ReadFile(r.assets, SystemAsset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateAssetMissing, SystemAsset, err)
	}
	user, err := fs.ReadFile(r.assets, UserAsset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateAssetMissing, UserAsset, err)
	}

	out := Fill(string(user), v)
	return &Rendered{
		System:    string(system),
		User:      out,
		Unmatched: Unmatched(out),
	}, nil
}

// Fill replaces every placeholder occurrence in a single pass, so values that
// themselves contain "{title}" and friends are never expanded again.
func Fill(tmpl string, v Values) string {
	pairs := []string{
		"{title}", v.Title,
		"{description}", v.Description,
		"{category}", v.Category,
	}
	if v.Price != "" {
		pairs = append(pairs, "{price}", v.Price)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Unmatched returns the distinct placeholder tokens left in s, in order of first appearance.
func Unmatched(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, tok := range placeholderRE.FindAllString(s, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
