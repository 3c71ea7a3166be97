// Package docmodel holds the in-memory documentation node graph the
// relationship builder populates: topic references, nodes with a closed
// semantic payload, relationship sections, and the topic graph.
package docmodel

// ResolvedReference is the stable address of a documentation node. Path is
// the node's reference path, e.g. "/documentation/MyKit/MyStruct/myMethod".
type ResolvedReference struct {
	Path string
}

// IsZero reports whether the reference addresses nothing.
func (r ResolvedReference) IsZero() bool { return r.Path == "" }

// isTopicReference implements TopicReference.
func (ResolvedReference) isTopicReference() {}

// UnresolvedReference stands in for a target that could not be resolved,
// carrying the best-effort display title recorded for later retry.
type UnresolvedReference struct {
	Title string
}

// isTopicReference implements TopicReference.
func (UnresolvedReference) isTopicReference() {}

// TopicReference is either a ResolvedReference or an UnresolvedReference.
// The variant is closed; consumers switch exhaustively.
type TopicReference interface {
	isTopicReference()
}

// TitleFor returns a display title for any topic reference: an unresolved
// reference's fallback title, or the last path component of a resolved one.
func TitleFor(ref TopicReference) string {
	switch r := ref.(type) {
	case ResolvedReference:
		path := r.Path
		for i := len(path) - 1; i >= 0; i-- {
			if path[i] == '/' {
				return path[i+1:]
			}
		}
		return path
	case UnresolvedReference:
		return r.Title
	default:
		return ""
	}
}
