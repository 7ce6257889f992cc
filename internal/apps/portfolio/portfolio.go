// Package portfolio holds the editable portfolio content shared by the
// About and Photos apps.
package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Content is the JSON document stored under the portfolio content key
type Content struct {
	Name              string `json:"name"`
	Role              string `json:"role"`
	About             string `json:"about"`
	Skills            string `json:"skills"`
	ResumeURL         string `json:"resumeUrl"`
	GoogleDrivePhotos string `json:"googleDrivePhotos"`
}

// Default returns the content shown before anything has been edited
func Default() Content {
	return Content{
		Name:  "DevOps Engineer",
		Role:  "Site Reliability Engineer",
		About: "Experienced DevOps/SRE professional specializing in container orchestration, CI/CD pipelines, and cloud infrastructure.",
		Skills: "Docker, Kubernetes, Linux, Terraform, Ansible, Jenkins, GitLab CI, AWS, GCP, " +
			"Prometheus, Grafana, Nginx, PostgreSQL, Redis",
	}
}

// Parse decodes a stored document. Empty fields fall back to the defaults,
// except the optional resume and photo links.
func Parse(raw string) (Content, error) {
	c := Default()
	if strings.TrimSpace(raw) == "" {
		return c, nil
	}

	var stored Content
	if err := sonic.UnmarshalString(raw, &stored); err != nil {
		return c, fmt.Errorf("parse portfolio content: %w", err)
	}
	if stored.Name != "" {
		c.Name = stored.Name
	}
	if stored.Role != "" {
		c.Role = stored.Role
	}
	if stored.About != "" {
		c.About = stored.About
	}
	if stored.Skills != "" {
		c.Skills = stored.Skills
	}
	c.ResumeURL = stored.ResumeURL
	c.GoogleDrivePhotos = stored.GoogleDrivePhotos
	return c, nil
}

// Encode serializes content for storage
func Encode(c Content) (string, error) {
	s, err := sonic.MarshalString(c)
	if err != nil {
		return "", fmt.Errorf("encode portfolio content: %w", err)
	}
	return s, nil
}

// SkillList splits the comma separated skills
func (c Content) SkillList() []string {
	return splitList(c.Skills)
}

// PhotoURLs splits the comma separated photo links
func (c Content) PhotoURLs() []string {
	return splitList(c.GoogleDrivePhotos)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Source reads raw values from the content store
type Source interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Load reads and parses the document under key. A missing key yields the defaults.
func Load(ctx context.Context, src Source, key string) (Content, error) {
	raw, ok, err := src.Get(ctx, key)
	if err != nil {
		return Default(), fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return Default(), nil
	}
	return Parse(raw)
}
