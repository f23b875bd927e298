package wiki

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Formats lists the accepted RendererConfig.Format values.
var Formats = []string{"raw-md", "hugo", "docusaurus"}

// RendererConfig controls how the site renderer writes output files.
type RendererConfig struct {
	Format    string // "raw-md", "hugo", or "docusaurus"
	OutputDir string // root output directory
	SiteTitle string
}

// DefaultRendererConfig returns a RendererConfig with sensible defaults.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		Format:    "raw-md",
		OutputDir: "docs/diagrams",
		SiteTitle: defaultTitle,
	}
}

// Render writes the given documents to disk in the configured format.
func Render(documents []Document, cfg RendererConfig) error {
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = defaultTitle
	}
	switch cfg.Format {
	case "raw-md":
		return renderRawMarkdown(documents, cfg)
	case "hugo":
		return renderHugo(documents, cfg)
	case "docusaurus":
		return renderDocusaurus(documents, cfg)
	default:
		return fmt.Errorf("unsupported render format: %s", cfg.Format)
	}
}

func renderRawMarkdown(documents []Document, cfg RendererConfig) error {
	for _, doc := range documents {
		if err := writeDoc(filepath.Join(cfg.OutputDir, doc.Path), doc.Content); err != nil {
			return err
		}
	}
	return nil
}

type hugoFrontMatter struct {
	Title  string `yaml:"title"`
	Weight int    `yaml:"weight"`
}

type hugoConfig struct {
	BaseURL      string `toml:"baseURL"`
	LanguageCode string `toml:"languageCode"`
	Title        string `toml:"title"`
	Theme        string `toml:"theme"`
}

// renderHugo writes documents with YAML front matter under OutputDir/content/
// and a config.toml at OutputDir/config.toml.
func renderHugo(documents []Document, cfg RendererConfig) error {
	for i, doc := range documents {
		fm, err := frontMatter(hugoFrontMatter{Title: doc.Title, Weight: i + 1})
		if err != nil {
			return err
		}
		if err := writeDoc(filepath.Join(cfg.OutputDir, "content", doc.Path), fm+doc.Content); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	site := hugoConfig{BaseURL: "/", LanguageCode: "en-us", Title: cfg.SiteTitle, Theme: "hugo-book"}
	if err := toml.NewEncoder(&buf).Encode(site); err != nil {
		return fmt.Errorf("encoding hugo config: %w", err)
	}
	return writeDoc(filepath.Join(cfg.OutputDir, "config.toml"), buf.String())
}

type docusaurusFrontMatter struct {
	SidebarPosition int    `yaml:"sidebar_position"`
	SidebarLabel    string `yaml:"sidebar_label"`
}

const docusaurusConfig = `// @ts-check

/** @type {import('@docusaurus/types').Config} */
const config = {
  title: %s,
  url: 'https://your-project-url.example.com',
  baseUrl: '/',
  themes: ['@docusaurus/theme-mermaid'],
  markdown: {
    mermaid: true,
  },
  presets: [
    [
      'classic',
      ({
        docs: {
          routeBasePath: '/',
        },
      }),
    ],
  ],
};

module.exports = config;
`

// renderDocusaurus writes documents with YAML front matter under
// OutputDir/docs/ and a docusaurus.config.js with the mermaid theme enabled.
func renderDocusaurus(documents []Document, cfg RendererConfig) error {
	for i, doc := range documents {
		fm, err := frontMatter(docusaurusFrontMatter{SidebarPosition: i + 1, SidebarLabel: doc.Title})
		if err != nil {
			return err
		}
		if err := writeDoc(filepath.Join(cfg.OutputDir, "docs", doc.Path), fm+doc.Content); err != nil {
			return err
		}
	}

	content := fmt.Sprintf(docusaurusConfig, strconv.Quote(cfg.SiteTitle))
	return writeDoc(filepath.Join(cfg.OutputDir, "docusaurus.config.js"), content)
}

func frontMatter(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	return "---\n" + string(out) + "---\n\n", nil
}

// writeDoc creates parent directories and writes content to the given path.
func writeDoc(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
