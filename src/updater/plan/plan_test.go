package plan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/catalog"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/registry"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

func TestPlanFetchesCatalogPageUnconditionallyThenTargetsMissingIDs(t *testing.T) {
	var gotTargetedRequest bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/content/data/777") {
			gotTargetedRequest = true
			fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>1</totalitems></meta><data>
				<content><id>777</id><name>Locally Known Only</name><version>1.0.0</version><typeid>705</typeid>
				<downloadlink1>https://example.test/777.tar.xz</downloadlink1></content>
			</data></ocs>`)
			return
		}
		fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>1</totalitems></meta><data>
			<content><id>1</id><name>On Page</name><version>1.0.0</version><typeid>705</typeid>
			<downloadlink1>https://example.test/1.tar.xz</downloadlink1></content>
		</data></ocs>`)
	}))
	defer server.Close()

	client := catalog.New("test", server.URL, logs.NewDefault())
	components := []types.InstalledComponent{
		{DirectoryName: "on-page-widget", Kind: kind.PlasmaWidget},
		{DirectoryName: "locally-known-widget", Kind: kind.PlasmaWidget},
	}
	idCache := registry.IDCache{"locally-known-widget": 777}

	result, err := Plan(context.Background(), client, components, idCache, nil)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if !gotTargetedRequest {
		t.Error("expected a targeted fetch for the id absent from the catalog page")
	}

	ids := make(map[uint64]bool)
	for _, e := range result.Entries {
		ids[e.ID] = true
	}
	if !ids[1] || !ids[777] {
		t.Errorf("expected entries for both id 1 (page) and id 777 (targeted), got %+v", result.Entries)
	}
}

func TestPlanSkipsTargetedFetchWhenIDAlreadyOnPage(t *testing.T) {
	var targetedRequests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/content/data/1") && !strings.Contains(r.URL.RawQuery, "categories") {
			targetedRequests++
		}
		fmt.Fprint(w, `<ocs><meta><statuscode>100</statuscode><totalitems>1</totalitems></meta><data>
			<content><id>1</id><name>On Page</name><version>1.0.0</version><typeid>705</typeid>
			<downloadlink1>https://example.test/1.tar.xz</downloadlink1></content>
		</data></ocs>`)
	}))
	defer server.Close()

	client := catalog.New("test", server.URL, logs.NewDefault())
	components := []types.InstalledComponent{
		{DirectoryName: "widget-one", Kind: kind.PlasmaWidget},
	}
	idCache := registry.IDCache{"widget-one": 1}

	if _, err := Plan(context.Background(), client, components, idCache, nil); err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if targetedRequests != 0 {
		t.Errorf("expected no targeted fetch for an id already present on the page, got %d", targetedRequests)
	}
}
