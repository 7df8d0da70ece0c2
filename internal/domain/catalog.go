package domain

import (
	"encoding/json"
	"errors"
)

// ErrMissingPosts indicates a catalog document without the posts list.
var ErrMissingPosts = errors.New("catalog document has no posts field")

// Catalog is the full post collection persisted as one JSON document.
// Collaborators may add more top-level fields; the merger only touches the
// posts list, so unknown fields are kept as raw JSON and written back as-is.
type Catalog struct {
	Posts []Post

	extra map[string]json.RawMessage
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	raw, ok := fields["posts"]
	if !ok {
		return ErrMissingPosts
	}
	if err := json.Unmarshal(raw, &c.Posts); err != nil {
		return err
	}

	delete(fields, "posts")
	c.extra = fields
	return nil
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.extra)+1)
	for k, v := range c.extra {
		out[k] = v
	}

	posts := c.Posts
	if posts == nil {
		posts = []Post{}
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return nil, err
	}
	out["posts"] = raw

	return json.Marshal(out)
}
