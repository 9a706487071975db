package discovery

import (
	"encoding/json"
	"os"

	"gopkg.in/ini.v1"
)

// kpluginMetadata mirrors the KPlugin section of a KPackage metadata.json.
type kpluginMetadata struct {
	KPlugin struct {
		Name        string `json:"Name"`
		Version     string `json:"Version"`
		Description string `json:"Description"`
		Icon        string `json:"Icon"`
	} `json:"KPlugin"`
}

func (m kpluginMetadata) name() string    { return m.KPlugin.Name }
func (m kpluginMetadata) version() string { return m.KPlugin.Version }

// readMetadataJSON parses <path>/metadata.json and returns the name and
// version fields, which may be empty if the KPlugin section is absent.
func readMetadataJSON(path string) (name, version string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	var m kpluginMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return "", "", err
	}
	return m.name(), m.version(), nil
}

// readMetadataDesktop parses <path>/metadata.desktop (an INI-style file
// under the "Desktop Entry" section) and returns Name and
// X-KDE-PluginInfo-Version.
func readMetadataDesktop(path string) (name, version string, err error) {
	f, err := ini.Load(path)
	if err != nil {
		return "", "", err
	}
	sec := f.Section("Desktop Entry")
	return sec.Key("Name").String(), sec.Key("X-KDE-PluginInfo-Version").String(), nil
}
