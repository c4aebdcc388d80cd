// Package markdown is an offline content source: markdown files with YAML
// frontmatter are parsed with goldmark into the same block model the Notion
// backend produces, so local drafts render through the same pipeline.
package markdown
