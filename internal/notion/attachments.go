// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"net/url"
	"path"
	"strings"
)

// AttachmentKind is the classification of a file URL.
type AttachmentKind int

const (
	// AttachmentNone is dropped.
	AttachmentNone AttachmentKind = iota
	AttachmentImage
	AttachmentDocument
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".avif": true, ".svg": true, ".bmp": true, ".heic": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".odt": true, ".rtf": true,
	".txt": true, ".xls": true, ".xlsx": true, ".ods": true, ".ppt": true,
	".pptx": true, ".odp": true,
}

// Classifier decides whether attachment URLs are images or documents.
//
// A URL is an image when its path has an image extension, or when it is
// served by a trusted host (signed storage URLs often lack an extension).
// A document extension always wins: a PDF is never an image.
type Classifier struct {
	trustedHosts []string
}

// NewClassifier creates a classifier that trusts the given hosts and their
// subdomains.
func NewClassifier(trustedHosts []string) *Classifier {
	hosts := make([]string, 0, len(trustedHosts))
	for _, h := range trustedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &Classifier{trustedHosts: hosts}
}

// Classify returns the kind of rawURL. name is the optional file name
// reported by Notion and is consulted when the URL path has no extension.
func (c *Classifier) Classify(rawURL, name string) AttachmentKind {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return AttachmentNone
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		ext = strings.ToLower(path.Ext(name))
	}
	if documentExtensions[ext] {
		return AttachmentDocument
	}
	if imageExtensions[ext] || c.trustedHost(u.Hostname()) {
		return AttachmentImage
	}
	return AttachmentNone
}

func (c *Classifier) trustedHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range c.trustedHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Attachments splits files into the first image URL and all document URLs,
// preserving order. cover is considered after files for the image.
func (c *Classifier) Attachments(files []File, cover *File) (imageURL string, documents []string) {
	documents = []string{}
	for _, f := range files {
		u := f.URL()
		switch c.Classify(u, f.Name) {
		case AttachmentImage:
			if imageURL == "" {
				imageURL = u
			}
		case AttachmentDocument:
			documents = append(documents, u)
		}
	}
	if imageURL == "" && cover != nil {
		if u := cover.URL(); c.Classify(u, cover.Name) == AttachmentImage {
			imageURL = u
		}
	}
	return imageURL, documents
}
