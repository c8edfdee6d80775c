package catalog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var frontmatterFence = []byte("---")

// frontmatter is the YAML header of a gallery markdown document. Date fields
// stay strings; the Normalizer owns timestamp parsing.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Published   string   `yaml:"published"`
	Tags        []string `yaml:"tags"`
	Model       string   `yaml:"model"`
	Category    string   `yaml:"category"`
	Cover       string   `yaml:"cover"`
	Image       string   `yaml:"image"`
}

var markdownEngine = goldmark.New()

func (n *Normalizer) canonMarkdown(rec *MarkdownRecord) (GalleryPost, error) {
	meta, body, err := splitFrontmatter(rec.Content)
	if err != nil {
		return GalleryPost{}, fmt.Errorf("%s/%s: %w", rec.ModelDir, rec.Name, err)
	}

	var fm frontmatter
	if len(meta) > 0 {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return GalleryPost{}, fmt.Errorf("%s/%s: parse frontmatter: %w", rec.ModelDir, rec.Name, err)
		}
	}

	images := extractImages(body)

	modelSlug := Slugify(rec.ModelDir)
	model := fm.Model
	if model == "" {
		model = modelSlug
	}

	date := fm.Date
	if date == "" {
		date = fm.Published
	}

	cover := fm.Cover
	if cover == "" {
		cover = fm.Image
	}
	if cover == "" && len(images) > 0 {
		cover = images[0].Src
	}

	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}

	return GalleryPost{
		Slug:        modelSlug + "/" + Slugify(rec.Name),
		Title:       fm.Title,
		Description: fm.Description,
		Date:        n.parseDate(date),
		Model:       model,
		Category:    fm.Category,
		Cover:       cover,
		Images:      images,
		Tags:        tags,
	}, nil
}

// splitFrontmatter separates the YAML header (between --- fences) from the
// markdown body. Documents without a header yield empty meta.
func splitFrontmatter(content []byte) (meta, body []byte, err error) {
	trimmed := bytes.TrimLeft(content, "\uFEFF\r\n")
	if !bytes.HasPrefix(trimmed, frontmatterFence) {
		return nil, content, nil
	}

	rest := trimmed[len(frontmatterFence):]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}

	end := bytes.Index(rest, append([]byte("\n"), frontmatterFence...))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}

	meta = rest[:end]
	body = rest[end+1+len(frontmatterFence):]
	return meta, body, nil
}

// extractImages walks the markdown AST and synthesizes one GalleryImage per
// inline image, preserving document order. The alt text doubles as caption,
// matching the source convention of captioned inline galleries.
func extractImages(body []byte) []GalleryImage {
	images := []GalleryImage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return images
	}

	doc := markdownEngine.Parser().Parse(text.NewReader(body))
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := node.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		alt := string(img.Text(body))
		images = append(images, GalleryImage{
			Src:     string(img.Destination),
			Alt:     alt,
			Caption: alt,
		})
		return ast.WalkSkipChildren, nil
	})
	return images
}
