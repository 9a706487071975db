// Package catalog implements a paginated, retrying, parallel client for
// the remote store's OCS XML API, and the decoder for its wire format.
package catalog

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/common/errors"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

// statusCode classifies an OCS <meta statuscode="…"> value.
type statusCode int

const (
	statusOK statusCode = iota
	statusRateLimited
	statusUnknown
)

func classifyStatus(code int) statusCode {
	switch code {
	case 100, 0:
		return statusOK
	case 200:
		return statusRateLimited
	default:
		return statusUnknown
	}
}

// ocsResponse mirrors the wire shape: <ocs><meta/><data><content>*</content></data></ocs>.
type ocsResponse struct {
	XMLName xml.Name `xml:"ocs"`
	Meta    ocsMeta  `xml:"meta"`
	Data    ocsData  `xml:"data"`
}

type ocsMeta struct {
	StatusCode int `xml:"statuscode"`
	TotalItems int `xml:"totalitems"`
}

type ocsData struct {
	Content []ocsContent `xml:"content"`
}

// ocsContent is decoded with a raw-element capture for the scalar fields
// plus the numbered download-link triples, since encoding/xml has no
// built-in support for "field name with a numeric suffix" grouping — the
// numbered fields are read via an inner any-element slice and grouped in
// Go code after decoding, mirroring the OCS decoder's two-pass approach.
type ocsContent struct {
	Raw []rawElement `xml:",any"`
}

type rawElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (c ocsContent) field(name string) (string, bool) {
	for _, e := range c.Raw {
		if e.XMLName.Local == name {
			return e.Value, true
		}
	}
	return "", false
}

// downloadParts accumulates the four sibling fields for one numbered
// download slot.
type downloadParts struct {
	url      string
	version  string
	checksum string
	sizeKB   uint64
}

// parseDownloadIndex strips a known prefix and returns the 1-based slot
// index (1..64), or false if name does not match prefix+digits.
func parseDownloadIndex(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	suffix := name[len(prefix):]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 || n > 64 {
		return 0, false
	}
	return n, true
}

func (c ocsContent) downloadLinks() []types.DownloadLink {
	slots := make(map[int]*downloadParts)
	slot := func(i int) *downloadParts {
		if slots[i] == nil {
			slots[i] = &downloadParts{}
		}
		return slots[i]
	}

	for _, e := range c.Raw {
		name := e.XMLName.Local
		if i, ok := parseDownloadIndex(name, "downloadlink"); ok {
			slot(i).url = e.Value
			continue
		}
		if i, ok := parseDownloadIndex(name, "download_version"); ok {
			slot(i).version = e.Value
			continue
		}
		if i, ok := parseDownloadIndex(name, "downloadmd5sum"); ok {
			slot(i).checksum = e.Value
			continue
		}
		if i, ok := parseDownloadIndex(name, "downloadsize"); ok {
			if n, err := strconv.ParseUint(e.Value, 10, 64); err == nil {
				slot(i).sizeKB = n
			}
			continue
		}
	}

	var links []types.DownloadLink
	for i := 1; i <= 64; i++ {
		p, ok := slots[i]
		if !ok || strings.TrimSpace(p.url) == "" {
			continue
		}
		links = append(links, types.DownloadLink{
			URL:      p.url,
			Version:  p.version,
			Checksum: p.checksum,
			SizeKB:   p.sizeKB,
		})
	}
	return links
}

func (c ocsContent) toEntry() types.CatalogEntry {
	id, _ := c.field("id")
	name, _ := c.field("name")
	version, _ := c.field("version")
	typeID, _ := c.field("typeid")
	changed, _ := c.field("changed")

	idNum, _ := strconv.ParseUint(id, 10, 64)
	typeIDNum, _ := strconv.ParseUint(typeID, 10, 16)

	return types.CatalogEntry{
		ID:            idNum,
		Name:          name,
		Version:       version,
		TypeID:        uint16(typeIDNum),
		DownloadLinks: c.downloadLinks(),
		ChangedDate:   changed,
	}
}

// decodedPage is the parsed form of one OCS response.
type decodedPage struct {
	entries    []types.CatalogEntry
	totalItems int
}

// decodeResponse parses raw OCS XML bytes into entries, or a
// classification error for rate-limit/api-error statuses.
func decodeResponse(raw []byte) (decodedPage, error) {
	var resp ocsResponse
	if err := xml.Unmarshal(raw, &resp); err != nil {
		return decodedPage{}, errors.ErrXMLParse.WithCause(err)
	}

	switch classifyStatus(resp.Meta.StatusCode) {
	case statusRateLimited:
		return decodedPage{}, errRateLimited
	case statusUnknown:
		return decodedPage{}, apiError(resp.Meta.StatusCode)
	}

	entries := make([]types.CatalogEntry, 0, len(resp.Data.Content))
	for _, c := range resp.Data.Content {
		entries = append(entries, c.toEntry())
	}
	return decodedPage{entries: entries, totalItems: resp.Meta.TotalItems}, nil
}

// buildCategoryString joins category ids with "x", the separator the
// store's query string expects for a multi-category request.
func buildCategoryString(ids []uint16) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, "x")
}
