package xdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxChannelCount bounds a StreamHeader's declared channel_count. No
// real recording approaches this; it exists only to reject a corrupt
// field before it reaches a make([]T, nchns) allocation elsewhere.
const maxChannelCount = 1 << 16

// parseXMLTree parses an XML blob into the minimal generic tree used
// for stream desc/footer subtrees and file-header flattening (spec §2
// item 3, §9). It is a from-scratch stdlib component: no third-party
// XML library appears anywhere in the retrieval pack to ground a
// choice on, so encoding/xml's token decoder builds the tree directly.
func parseXMLTree(data []byte) (*XMLNode, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))

	var stack []*XMLNode
	var root *XMLNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing header XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &XMLNode{XMLName: t.Name.Local}
			if len(t.Attr) > 0 {
				node.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					node.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack[len(stack)-1].Text = strings.TrimSpace(stack[len(stack)-1].Text)
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parsing header XML: no root element")
	}
	return root, nil
}

// flattenDict walks a generic XML tree into a flat string map: leaf
// elements (no children) contribute tag -> text, keeping the last
// occurrence on duplicate tags, matching the "flat dictionary"
// construction the file header needs (spec §3's StreamInfo wants
// typed fields instead, so this flattening is only used for the file
// header and for fields we read ad hoc off a node).
func flattenDict(n *XMLNode) map[string]string {
	out := make(map[string]string)
	if n == nil {
		return out
	}
	var walk func(node *XMLNode)
	walk = func(node *XMLNode) {
		if len(node.Children) == 0 {
			out[node.XMLName] = node.Text
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	for _, c := range n.Children {
		walk(c)
	}
	return out
}

// parseStreamInfo extracts the fixed set of metadata paths a
// StreamHeader's <info> element carries (spec §3) from a parsed XML
// tree whose root is <info>.
func parseStreamInfo(root *XMLNode) (StreamInfo, error) {
	info := root.Child("info")
	if info == nil {
		info = root // tolerate a root already named "info"
	}

	name := info.Child("name")
	typ := info.Child("type")
	chCount := info.Child("channel_count")
	srate := info.Child("nominal_srate")
	chFmt := info.Child("channel_format")

	var si StreamInfo
	if name != nil {
		si.Name = name.Text
	}
	if typ != nil {
		si.Type = typ.Text
	}
	if chCount != nil {
		n, err := strconv.Atoi(strings.TrimSpace(chCount.Text))
		if err != nil {
			return si, fmt.Errorf("parsing channel_count %q: %w", chCount.Text, err)
		}
		if n < 0 || n > maxChannelCount {
			return si, fmt.Errorf("channel_count %d out of range [0,%d]", n, maxChannelCount)
		}
		si.ChannelCount = n
	}
	if srate != nil && strings.TrimSpace(srate.Text) != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(srate.Text), 64)
		if err != nil {
			return si, fmt.Errorf("parsing nominal_srate %q: %w", srate.Text, err)
		}
		si.NominalSRate = v
	}
	if chFmt != nil {
		f, err := ParseChannelFormat(strings.TrimSpace(chFmt.Text))
		if err != nil {
			return si, err
		}
		si.ChannelFormat = f
	}
	si.Desc = info.Child("desc")
	return si, nil
}
