// Package chatbot answers a fixed set of phrases with canned replies.
package chatbot

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed replies.yaml
var defaultReplies []byte

// DefaultReply is used when a reply file does not set its own default.
const DefaultReply = "I'm not sure how to respond to that."

type replyFile struct {
	Default string            `yaml:"default"`
	Replies map[string]string `yaml:"replies"`
}

// Responder maps normalized input to a reply. It holds no per-user state and
// is safe for concurrent use once built.
type Responder struct {
	fallback string
	replies  map[string]string
}

// New builds a Responder from the embedded reply table.
func New() *Responder {
	r, err := parse(defaultReplies)
	if err != nil {
		panic(fmt.Sprintf("embedded replies: %v", err))
	}
	return r
}

// Load builds a Responder from a YAML file of the same shape as the
// embedded table. An empty path returns New().
func Load(path string) (*Responder, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading chat replies: %w", err)
	}

	r, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing chat replies %s: %w", path, err)
	}
	return r, nil
}

func parse(data []byte) (*Responder, error) {
	var f replyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	r := &Responder{fallback: f.Default, replies: make(map[string]string, len(f.Replies))}
	if r.fallback == "" {
		r.fallback = DefaultReply
	}
	for k, v := range f.Replies {
		r.replies[normalize(k)] = v
	}
	return r, nil
}

// Respond returns the canned reply for input, matched exactly after trimming
// and lowercasing, or the fallback reply.
func (r *Responder) Respond(input string) string {
	if reply, ok := r.replies[normalize(input)]; ok {
		return reply
	}
	return r.fallback
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
