package registry

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

type rawStuff struct {
	name             string
	version          string
	id               string
	installedFiles   []string
	uninstalledFiles []string
	releaseDate      string
	payload          string
	status           string
}

func (r rawStuff) project() types.RegistryEntry {
	dirName, resolvedPath := "", ""
	if len(r.installedFiles) > 0 {
		dirName, resolvedPath = deriveComponentPath(r.installedFiles[0])
	} else if len(r.uninstalledFiles) > 0 {
		dirName, resolvedPath = deriveComponentPath(r.uninstalledFiles[0])
	}
	return types.RegistryEntry{
		DirectoryName:    dirName,
		ResolvedPath:     resolvedPath,
		Name:             r.name,
		Version:          r.version,
		ID:               r.id,
		InstalledFiles:   r.installedFiles,
		UninstalledFiles: r.uninstalledFiles,
		ReleaseDate:      r.releaseDate,
		Payload:          r.payload,
		Status:           r.status,
	}
}

// Read parses a knewstuff3 registry file. A missing file is reported via
// the same error os.Open would return (callers check os.IsNotExist).
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := &Document{Exists: true}

	dec := xml.NewDecoder(f)
	var inEntry bool
	var current rawStuff
	var currentElement string
	var textBuf strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			break // io.EOF or malformed tail; return what was parsed
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "stuff" {
				inEntry = true
				current = rawStuff{}
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
				if inEntry {
					doc.Entries = append(doc.Entries, current.project())
				}
				inEntry = false
				currentElement = ""
				continue
			}
			if inEntry && t.Name.Local == currentElement {
				text := strings.TrimSpace(textBuf.String())
				applyField(&current, currentElement, text)
				currentElement = ""
			}
		}
	}

	return doc, nil
}

func applyField(r *rawStuff, element, text string) {
	switch element {
	case "name":
		r.name = text
	case "version":
		r.version = text
	case "id":
		r.id = text
	case "installedfile":
		r.installedFiles = append(r.installedFiles, text)
	case "uninstalledfile":
		r.uninstalledFiles = append(r.uninstalledFiles, text)
	case "releasedate":
		r.releaseDate = text
	case "payload":
		r.payload = text
	case "status":
		r.status = text
	}
}
