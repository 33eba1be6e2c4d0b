package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"bugninjaplatform/internal/domain"
)

// ExtraRules normalizes the "extra rules" field of a backend test case.
//
// Accepted shapes, tried in order:
//   - array whose first element is a string: each non-blank string is a rule
//   - array whose first element is an object: description (and id) taken from the object
//   - string: one rule per non-blank line
//   - null, absent or anything else: no rules
//
// Rule numbers are always 1..N in source order after blanks are dropped.
// A rule without an id gets "rule-<parentID>-<position>".
func ExtraRules(parentID string, raw json.RawMessage) []domain.ExtraRule {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []domain.ExtraRule{}
	}

	switch raw[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
			return []domain.ExtraRule{}
		}
		first := bytes.TrimSpace(elems[0])
		switch {
		case len(first) > 0 && first[0] == '"':
			return rulesFromStrings(parentID, elems)
		case len(first) > 0 && first[0] == '{':
			return rulesFromObjects(parentID, elems)
		}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return rulesFromText(parentID, s)
		}
	}
	return []domain.ExtraRule{}
}

func rulesFromStrings(parentID string, elems []json.RawMessage) []domain.ExtraRule {
	descriptions := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			continue
		}
		descriptions = append(descriptions, s)
	}
	return number(parentID, descriptions, nil)
}

// rulesFromObjects keeps each object's description and id. When every object
// carries a rule_number the rules are ordered by it; numbering is then reassigned
// contiguously so gaps and duplicates in the source disappear.
func rulesFromObjects(parentID string, elems []json.RawMessage) []domain.ExtraRule {
	type sourceRule struct {
		id          string
		number      int
		description string
	}
	src := make([]sourceRule, 0, len(elems))
	ordered := true
	for _, e := range elems {
		var obj struct {
			ID          json.RawMessage `json:"id"`
			RuleNumber  domain.Numeric  `json:"rule_number"`
			Description string          `json:"description"`
			Rule        string          `json:"rule"`
		}
		if err := json.Unmarshal(e, &obj); err != nil {
			continue
		}
		desc := obj.Description
		if desc == "" {
			desc = obj.Rule
		}
		if obj.RuleNumber.Int() < 1 {
			ordered = false
		}
		src = append(src, sourceRule{id: idString(obj.ID), number: obj.RuleNumber.Int(), description: desc})
	}
	if ordered {
		sort.SliceStable(src, func(i, j int) bool { return src[i].number < src[j].number })
	}

	descriptions := make([]string, len(src))
	ids := make([]string, len(src))
	for i, r := range src {
		descriptions[i] = r.description
		ids[i] = r.id
	}
	return number(parentID, descriptions, ids)
}

func rulesFromText(parentID, s string) []domain.ExtraRule {
	return number(parentID, strings.Split(s, "\n"), nil)
}

// number drops blank descriptions and assigns contiguous 1-based numbers.
// ids, when non-nil, is parallel to descriptions.
func number(parentID string, descriptions, ids []string) []domain.ExtraRule {
	rules := make([]domain.ExtraRule, 0, len(descriptions))
	for i, d := range descriptions {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		n := len(rules) + 1
		id := ""
		if ids != nil {
			id = ids[i]
		}
		if id == "" {
			id = fmt.Sprintf("rule-%s-%d", parentID, n)
		}
		rules = append(rules, domain.ExtraRule{ID: id, RuleNumber: n, Description: d})
	}
	return rules
}

// idString accepts a string or numeric JSON id.
func idString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// BackendExtraRules turns rule descriptions into the object form sent on writes.
func BackendExtraRules(descriptions []string) []domain.BackendExtraRule {
	out := make([]domain.BackendExtraRule, 0, len(descriptions))
	for _, d := range descriptions {
		if d = strings.TrimSpace(d); d == "" {
			continue
		}
		out = append(out, domain.BackendExtraRule{RuleNumber: len(out) + 1, Description: d})
	}
	return out
}
