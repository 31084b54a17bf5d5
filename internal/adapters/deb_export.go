package adapters

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// DebExportAdapter turns a resolved lock into an apt-installable pin
// list for Debian-packaged Python modules. Locked names map onto the
// distro convention of python3-<name>; versions must also parse as
// Debian versions or apt would reject the pin.
type DebExportAdapter struct {
	Dir string
}

func NewDebExportAdapter(dir string) DebExportAdapter {
	return DebExportAdapter{Dir: dir}
}

func (a DebExportAdapter) WriteAptInstallList(entries []types.DebExportEntry) error {
	path, err := OutputFileAdapter{Dir: a.Dir}.ensurePath(AptInstallListName)
	if err != nil {
		return err
	}
	ordered := append([]types.DebExportEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Package < ordered[j].Package
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s=%s", entry.Package, entry.Version))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// ToDebEntries converts lock entries to Debian package pins, validating
// each version against the Debian version grammar.
func ToDebEntries(locks []types.LockEntry) ([]types.DebExportEntry, error) {
	var out []types.DebExportEntry
	for _, lock := range locks {
		if _, err := debversion.NewVersion(lock.Version); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version %q of %s is not a valid Debian version", lock.Version, lock.Name)).
				WithCause(err)
		}
		out = append(out, types.DebExportEntry{
			Package: NormalizeDebPackageName("python3-" + lock.Name),
			Version: lock.Version,
		})
	}
	return out, nil
}

// NormalizeDebPackageName lowercases and hyphenates a package name per
// Debian policy.
func NormalizeDebPackageName(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

var _ ports.DebExportPort = DebExportAdapter{}
