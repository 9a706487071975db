package registry

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
)

// WriteParams carries everything needed to create or update a single
// <stuff> entry.
type WriteParams struct {
	DirectoryName string
	Name          string
	Version       string
	ContentID     uint64
	PayloadURL    string
	Path          string // on-disk install path of the component
	IsDirectory   bool   // true for a directory component (metadata.json appended)
	ReleaseDate   string // date-only portion of the ISO timestamp
}

func (p WriteParams) installedFilePath() string {
	if p.IsDirectory {
		return strings.TrimRight(p.Path, "/") + "/" + metadataJSONName
	}
	return p.Path
}

const emptyDocument = "<!DOCTYPE hotnewstuffregistry>\n<hotnewstuffregistry>\n</hotnewstuffregistry>\n"

var rewriteFields = map[string]bool{
	"version": true, "id": true, "payload": true, "releasedate": true,
	"status": true, "installedfile": true, "uninstalledfile": true,
}

// Write updates or creates the entry for params.DirectoryName in the
// knewstuff3 registry at path. Creation is lazy: if the file does not
// exist, an empty document is materialized first. An existing entry is
// identified by the first <stuff> whose installedfile or uninstalledfile
// path has any path segment equal to the directory name; if none is
// found, a new <stuff> element is inserted immediately before
// </hotnewstuffregistry>.
func Write(path string, k kind.Kind, params WriteParams) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		raw = []byte(emptyDocument)
	}

	matchIdx := findTargetIndex(raw, params.DirectoryName)

	out, err := rewriteDocument(raw, matchIdx, k, params)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func dirOf(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "."
	}
	return path[:i]
}

// findTargetIndex returns the zero-based index of the <stuff> element
// whose installedfile/uninstalledfile references directoryName, or -1.
func findTargetIndex(raw []byte, directoryName string) int {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	idx := -1
	cur := -1
	var inEntry bool
	var currentElement string
	var textBuf strings.Builder
	var candidateFiles []string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "stuff" {
				cur++
				inEntry = true
				candidateFiles = nil
				continue
			}
			if inEntry {
				currentElement = t.Name.Local
				textBuf.Reset()
			}
		case xml.CharData:
			if inEntry && currentElement != "" {
				textBuf.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "stuff" {
				if idx == -1 && matchesDirectory(candidateFiles, directoryName) {
					idx = cur
				}
				inEntry = false
				currentElement = ""
				continue
			}
			if inEntry && t.Name.Local == currentElement {
				if currentElement == "installedfile" || currentElement == "uninstalledfile" {
					candidateFiles = append(candidateFiles, strings.TrimSpace(textBuf.String()))
				}
				currentElement = ""
			}
		}
	}
	return idx
}

func matchesDirectory(files []string, directoryName string) bool {
	for _, f := range files {
		f = strings.TrimSuffix(f, "/*")
		for _, seg := range strings.Split(f, "/") {
			if seg == directoryName {
				return true
			}
		}
	}
	return false
}

// rewriteDocument streams raw through a reader/writer pair, forwarding
// every event verbatim except the text nodes inside the target entry
// (identified by matchIdx), or appending a brand new entry before
// </hotnewstuffregistry> if matchIdx is -1.
func rewriteDocument(raw []byte, matchIdx int, k kind.Kind, params WriteParams) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var out bytes.Buffer
	enc := xml.NewEncoder(&out)

	stuffIdx := -1
	var inTarget bool
	var currentElement string
	inserted := matchIdx >= 0 // nothing to insert if we're rewriting an existing entry

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "stuff" {
				stuffIdx++
				inTarget = stuffIdx == matchIdx
			}
			if inTarget && rewriteFields[t.Name.Local] {
				currentElement = t.Name.Local
				if err := enc.EncodeToken(t); err != nil {
					return nil, err
				}
				continue
			}
			currentElement = ""
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}

		case xml.CharData:
			if inTarget && currentElement != "" {
				continue // swallow; replacement written at EndElement
			}
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}

		case xml.EndElement:
			if inTarget && currentElement == t.Name.Local {
				if err := enc.EncodeToken(xml.CharData(replacementText(t.Name.Local, params))); err != nil {
					return nil, err
				}
				currentElement = ""
			}
			if t.Name.Local == "stuff" {
				inTarget = false
			}
			if t.Name.Local == "hotnewstuffregistry" && !inserted {
				if err := enc.Flush(); err != nil {
					return nil, err
				}
				out.WriteString(newStuffXML(k, params))
				inserted = true
			}
			if err := enc.EncodeToken(t); err != nil {
				return nil, err
			}

		case xml.Comment:
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}
		case xml.ProcInst:
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}
		case xml.Directive:
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, err
			}
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func replacementText(element string, params WriteParams) string {
	switch element {
	case "version":
		return params.Version
	case "id":
		return strconv.FormatUint(params.ContentID, 10)
	case "payload":
		return params.PayloadURL
	case "releasedate":
		return params.ReleaseDate
	case "status":
		return "installed"
	case "installedfile", "uninstalledfile":
		return params.installedFilePath()
	default:
		return ""
	}
}

// newStuffXML renders a brand new <stuff> entry for insertion.
func newStuffXML(k kind.Kind, params WriteParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, " <stuff category=\"%d\">\n", k.CategoryID())
	fmt.Fprintf(&b, "  <name>%s</name>\n", escapeXMLText(params.Name))
	fmt.Fprintf(&b, "  <version>%s</version>\n", escapeXMLText(params.Version))
	fmt.Fprintf(&b, "  <id>%d</id>\n", params.ContentID)
	fmt.Fprintf(&b, "  <installedfile>%s</installedfile>\n", escapeXMLText(params.installedFilePath()))
	fmt.Fprintf(&b, "  <releasedate>%s</releasedate>\n", escapeXMLText(params.ReleaseDate))
	fmt.Fprintf(&b, "  <payload>%s</payload>\n", escapeXMLText(params.PayloadURL))
	b.WriteString("  <status>installed</status>\n")
	b.WriteString(" </stuff>\n")
	return b.String()
}
