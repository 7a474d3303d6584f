// Package fixtures provides CSV source sets for loader tests.
package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/shipload/internal/files/filesystem"
	"github.com/vvka-141/shipload/pkg/shipload"
)

const (
	ShipmentsHeader = "origin,destination,product,quantity"
	ProductsHeader  = "shipping_identifier,product,quantity"
	LocationsHeader = "shipping_identifier,origin,destination"
)

// SourceSet is the content of the three sources of a run. Rows exclude the header.
type SourceSet struct {
	Shipments []string
	Products  []string
	Locations []string
}

// Reference is the small set used across packages: one direct row, one
// product row that resolves and one that does not.
func Reference() SourceSet {
	return SourceSet{
		Shipments: []string{"A,B,Widget,10"},
		Products:  []string{"X1,Gadget,5", "X2,Gizmo,3"},
		Locations: []string{"X1,C,D"},
	}
}

func render(header string, rows []string) string {
	if len(rows) == 0 {
		return header + "\n"
	}
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

// Files returns the rendered CSV content keyed by the default source names.
func (s SourceSet) Files() map[string]string {
	return map[string]string{
		shipload.DefaultShipmentsSource: render(ShipmentsHeader, s.Shipments),
		shipload.DefaultProductsSource:  render(ProductsHeader, s.Products),
		shipload.DefaultLocationsSource: render(LocationsHeader, s.Locations),
	}
}

// Memory returns an in-memory file system holding the set.
func (s SourceSet) Memory() *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem()
	for name, content := range s.Files() {
		mfs.AddFile(name, content)
	}
	return mfs
}

// WriteDir writes the set under dir and returns the sources pointing at it.
func (s SourceSet) WriteDir(t *testing.T, dir string) shipload.Sources {
	t.Helper()

	for name, content := range s.Files() {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return Sources(dir)
}

// Sources returns the default source locations rooted at dir.
func Sources(dir string) shipload.Sources {
	return shipload.Sources{
		Shipments: filepath.Join(dir, filepath.FromSlash(shipload.DefaultShipmentsSource)),
		Products:  filepath.Join(dir, filepath.FromSlash(shipload.DefaultProductsSource)),
		Locations: filepath.Join(dir, filepath.FromSlash(shipload.DefaultLocationsSource)),
	}
}
