package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Version returns the CWE content release served by the API.
func (c *Client) Version(ctx context.Context) (*ContentVersion, error) {
	var result ContentVersion
	if err := c.get(ctx, "version", "/cwe/version", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CWEInfo returns the entry type of each requested id. ids is a single
// id, a comma-separated list or "all".
func (c *Client) CWEInfo(ctx context.Context, ids string) (CWEInfoResponse, error) {
	ids, err := NormalizeIDs(ids)
	if err != nil {
		return nil, err
	}
	var result CWEInfoResponse
	if err := c.get(ctx, "cwe info", "/cwe/"+ids, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Parents returns the direct parents of a CWE, optionally within one view.
func (c *Client) Parents(ctx context.Context, id string, view *string) ([]Relation, error) {
	return c.relations(ctx, "parents", id, view)
}

// Children returns the direct children of a CWE, optionally within one view.
func (c *Client) Children(ctx context.Context, id string, view *string) ([]Relation, error) {
	return c.relations(ctx, "children", id, view)
}

func (c *Client) relations(ctx context.Context, kind, id string, view *string) ([]Relation, error) {
	path, query, err := relationRequest(kind, id, nil, view)
	if err != nil {
		return nil, err
	}
	var result []Relation
	if err := c.get(ctx, kind, path, query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ancestors returns the ancestor tree of a CWE. primary restricts the
// walk to primary parents.
func (c *Client) Ancestors(ctx context.Context, id string, primary *bool, view *string) ([]AncestorNode, error) {
	path, query, err := relationRequest("ancestors", id, primary, view)
	if err != nil {
		return nil, err
	}
	var result []AncestorNode
	if err := c.get(ctx, "ancestors", path, query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Descendants returns the descendant tree of a CWE.
func (c *Client) Descendants(ctx context.Context, id string, view *string) ([]DescendantNode, error) {
	path, query, err := relationRequest("descendants", id, nil, view)
	if err != nil {
		return nil, err
	}
	var result []DescendantNode
	if err := c.get(ctx, "descendants", path, query, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Weakness returns full weakness entries.
func (c *Client) Weakness(ctx context.Context, ids string) (*WeaknessResponse, error) {
	ids, err := NormalizeIDs(ids)
	if err != nil {
		return nil, err
	}
	var result WeaknessResponse
	if err := c.get(ctx, "weakness", "/cwe/weakness/"+ids, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// View returns full view entries.
func (c *Client) View(ctx context.Context, ids string) (*ViewResponse, error) {
	ids, err := NormalizeIDs(ids)
	if err != nil {
		return nil, err
	}
	var result ViewResponse
	if err := c.get(ctx, "view", "/cwe/view/"+ids, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Category returns full category entries.
func (c *Client) Category(ctx context.Context, ids string) (*CategoryResponse, error) {
	ids, err := NormalizeIDs(ids)
	if err != nil {
		return nil, err
	}
	var result CategoryResponse
	if err := c.get(ctx, "category", "/cwe/category/"+ids, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func relationRequest(kind, id string, primary *bool, view *string) (string, url.Values, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return "", nil, err
	}

	query := url.Values{}
	if primary != nil {
		query.Set("primary", strconv.FormatBool(*primary))
	}
	if view != nil {
		v, err := NormalizeID(*view)
		if err != nil {
			return "", nil, &ValidationError{Param: "view", Value: *view, Reason: "must be a numeric view id"}
		}
		query.Set("view", v)
	}
	return "/cwe/" + id + "/" + kind, query, nil
}

// NormalizeID trims a single id and strips an optional "CWE-" prefix.
// The result is always a decimal number.
func NormalizeID(id string) (string, error) {
	raw := id
	id = stripPrefix(strings.TrimSpace(id))
	if id == "" {
		return "", &ValidationError{Param: "id", Value: raw, Reason: "must not be empty"}
	}
	if !isNumeric(id) {
		return "", &ValidationError{Param: "id", Value: raw, Reason: "must be a numeric CWE id"}
	}
	return id, nil
}

// NormalizeIDs accepts "all" or a comma-separated list of ids and returns
// it in the form the API expects. The result contains only digits, commas
// or "all" and is safe to place in a path unescaped.
func NormalizeIDs(ids string) (string, error) {
	raw := ids
	ids = strings.TrimSpace(ids)
	if strings.EqualFold(ids, "all") {
		return "all", nil
	}
	if ids == "" {
		return "", &ValidationError{Param: "id", Value: raw, Reason: "must not be empty"}
	}

	parts := strings.Split(ids, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		id, err := NormalizeID(p)
		if err != nil {
			return "", &ValidationError{Param: "id", Value: raw, Reason: "must be \"all\" or a comma-separated list of numeric ids"}
		}
		out = append(out, id)
	}
	return strings.Join(out, ","), nil
}

func stripPrefix(id string) string {
	if len(id) > 4 && strings.EqualFold(id[:4], "cwe-") {
		return id[4:]
	}
	return id
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
