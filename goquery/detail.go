package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ifacedoc"
)

// The detailed strategies work on the raw markup rather than the parsed
// tree: the per-member sections of the generator are regular enough that
// position-indexed regex slicing is more reliable than tree walking, and
// the member type names only exist inside script fragments the tree
// flattens away.
var (
	segmentAnchorRe  = regexp.MustCompile(`<a name="([^"]+)"`)
	propertyHeaderRe = regexp.MustCompile(`o Property\s*<b>([^<]+)</b>`)
	simplePropertyRe = regexp.MustCompile(`o Property (\w+)\(\)`)
	methodHeaderRe   = regexp.MustCompile(`o (?:Sub|Func)\s*<b>([^<]+)</b>`)
	activateLinkRe   = regexp.MustCompile(`activateLink\('([^']+)','([^']+)'\)`)
	parenTokenRe     = regexp.MustCompile(`\(([^)]+)\)`)
	definitionDescRe = regexp.MustCompile(`<dd>\s*([^<]+)`)
	plainReturnRe    = regexp.MustCompile(`\bAs\s+([A-Za-z_]\w*)`)
	paramNameRe      = regexp.MustCompile(`<em>([A-Za-z_]\w*)</em>`)
	markupStripRe    = regexp.MustCompile(`<[^>]+>`)
)

// segment is one `<a name=...>` slice of the raw page, covering a single
// member section.
type segment struct {
	anchor string
	body   string
}

// splitSegments cuts the raw markup at member anchors. The slice before
// the first anchor is dropped: it is page chrome, never a member.
func splitSegments(raw string) []segment {
	anchors := segmentAnchorRe.FindAllStringSubmatchIndex(raw, -1)
	segments := make([]segment, 0, len(anchors))
	for i, m := range anchors {
		end := len(raw)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		segments = append(segments, segment{
			anchor: raw[m[2]:m[3]],
			body:   raw[m[0]:end],
		})
	}
	return segments
}

// detailedProperties extracts fully-attributed properties from per-member
// sections: name, declared type, access mode and description.
func detailedProperties(raw string, _ *goquery.Document) []*ifacedoc.Property {
	var properties []*ifacedoc.Property
	for _, seg := range splitSegments(raw) {
		header := propertyHeaderRe.FindStringSubmatchIndex(seg.body)
		if header == nil {
			continue
		}
		p := &ifacedoc.Property{
			Name:   strings.TrimSpace(seg.body[header[2]:header[3]]),
			Type:   "Unknown",
			Access: ifacedoc.AccessUnknown,
			Anchor: seg.anchor,
		}

		rest := seg.body[header[1]:]
		if link := activateLinkRe.FindStringSubmatchIndex(rest); link != nil {
			// The second link argument carries the resolved type name.
			p.Type = rest[link[4]:link[5]]
			if paren := parenTokenRe.FindStringSubmatch(rest[link[1]:]); paren != nil {
				p.Access = normalizeAccess(paren[1])
			}
		}
		if desc := definitionDescRe.FindStringSubmatch(rest); desc != nil {
			p.Description = collapseWhitespace(desc[1])
		}
		properties = append(properties, p)
	}
	return properties
}

// simpleProperties recovers bare property names from pages whose member
// sections carry no type markup at all.
func simpleProperties(raw string, _ *goquery.Document) []*ifacedoc.Property {
	matches := simplePropertyRe.FindAllStringSubmatch(raw, -1)
	properties := make([]*ifacedoc.Property, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		properties = append(properties, &ifacedoc.Property{
			Name:   m[1],
			Type:   "Unknown",
			Access: ifacedoc.AccessUnknown,
			Anchor: m[1],
		})
	}
	return properties
}

// detailedMethods extracts fully-attributed methods from per-member
// sections: name, signature, return type, description and parameters.
func detailedMethods(raw string, _ *goquery.Document) []*ifacedoc.Method {
	var methods []*ifacedoc.Method
	for _, seg := range splitSegments(raw) {
		header := methodHeaderRe.FindStringSubmatchIndex(seg.body)
		if header == nil {
			continue
		}
		m := &ifacedoc.Method{
			Name: strings.TrimSpace(seg.body[header[2]:header[3]]),
		}

		rest := seg.body[header[1]:]
		descStart := len(rest)
		if desc := definitionDescRe.FindStringSubmatchIndex(rest); desc != nil {
			m.Description = collapseWhitespace(rest[desc[2]:desc[3]])
			descStart = desc[0]
		}

		// The return type sits between the header and the description,
		// either as a resolved link or as a plain token.
		head := rest[:descStart]
		if link := activateLinkRe.FindStringSubmatchIndex(head); link != nil && strings.Contains(stripMarkup(head[:link[0]]), " As") {
			m.ReturnType = head[link[4]:link[5]]
		}
		if m.ReturnType == "" {
			if ret := plainReturnRe.FindStringSubmatch(stripMarkup(head)); ret != nil {
				m.ReturnType = ret[1]
			}
		}

		m.Params = methodParams(rest[descStart:])
		m.Signature = methodSignature(m)
		methods = append(methods, m)
	}
	return methods
}

// methodParams pairs each emphasized parameter name with the
// definition-description that follows it.
func methodParams(body string) []*ifacedoc.Param {
	names := paramNameRe.FindAllStringSubmatchIndex(body, -1)
	params := make([]*ifacedoc.Param, 0, len(names))
	for _, n := range names {
		param := &ifacedoc.Param{Name: body[n[2]:n[3]]}
		if desc := definitionDescRe.FindStringSubmatch(body[n[1]:]); desc != nil {
			param.Description = collapseWhitespace(desc[1])
		}
		params = append(params, param)
	}
	return params
}

// methodSignature renders the canonical call form of a method.
func methodSignature(m *ifacedoc.Method) string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	sig := m.Name + "(" + strings.Join(names, ", ") + ")"
	if m.ReturnType != "" {
		sig += " As " + m.ReturnType
	}
	return sig
}

// normalizeAccess maps the parenthesized access token of a property
// section onto the canonical access modes.
func normalizeAccess(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.ReplaceAll(t, "-", " ")
	switch {
	case strings.Contains(t, "read") && strings.Contains(t, "write"):
		return ifacedoc.AccessReadWrite
	case strings.Contains(t, "read") && strings.Contains(t, "only"):
		return ifacedoc.AccessReadOnly
	default:
		return ifacedoc.AccessUnknown
	}
}

func stripMarkup(s string) string {
	return markupStripRe.ReplaceAllString(s, " ")
}
